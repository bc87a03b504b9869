package domain

import "time"

type Customer struct {
	ID           int64     `json:"customer_id"`
	Name         string    `json:"name" validate:"required"`
	Phone        string    `json:"phone" validate:"required" gorm:"uniqueIndex"`
	Email        string    `json:"email" validate:"required,email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
