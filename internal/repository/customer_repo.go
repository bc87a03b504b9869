package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"taxibook/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Phone        string    `gorm:"column:phone"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	return &domain.Customer{
		ID:           m.ID,
		Name:         m.Name,
		Phone:        m.Phone,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func toCustomerModel(c *domain.Customer) customerModel {
	return customerModel{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		Email:        strings.TrimSpace(strings.ToLower(c.Email)),
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

// GetByEmailOrPhone resolves the login identifier the way the login form
// sends it: a single string that may be either an email or a phone number.
func (r *CustomerRepository) GetByEmailOrPhone(ctx context.Context, identifier string) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ? OR phone = ?", strings.ToLower(strings.TrimSpace(identifier)), strings.TrimSpace(identifier)).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&customerModel{}).
		Where("LOWER(email) = ? OR phone = ?", strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(phone)).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
