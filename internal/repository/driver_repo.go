package repository

import (
	"context"

	"gorm.io/gorm"

	"taxibook/internal/domain"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

type driverModel struct {
	ID     int64  `gorm:"column:id;primaryKey"`
	Name   string `gorm:"column:name"`
	Phone  string `gorm:"column:phone"`
	TaxiID int64  `gorm:"column:taxi_id"`
}

func (driverModel) TableName() string { return "drivers" }

func toDomainDriver(m driverModel) *domain.Driver {
	return &domain.Driver{
		ID:     m.ID,
		Name:   m.Name,
		Phone:  m.Phone,
		TaxiID: m.TaxiID,
	}
}

// DriverWithTaxi is the admin inventory row: driver plus the model of the
// taxi the driver is assigned to, empty when the taxi is gone.
type DriverWithTaxi struct {
	ID        int64  `json:"driver_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	TaxiID    int64  `json:"taxi_id"`
	TaxiModel string `json:"taxi_model"`
}

func (r *DriverRepository) Create(ctx context.Context, d *domain.Driver) error {
	m := driverModel{Name: d.Name, Phone: d.Phone, TaxiID: d.TaxiID}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDriver(m)
	return nil
}

func (r *DriverRepository) Update(ctx context.Context, d *domain.Driver) error {
	res := r.db.WithContext(ctx).
		Model(&driverModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"name":    d.Name,
			"phone":   d.Phone,
			"taxi_id": d.TaxiID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&driverModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DriverRepository) GetByTaxiID(ctx context.Context, taxiID int64) (*domain.Driver, error) {
	var m driverModel
	tx := r.db.WithContext(ctx).Where("taxi_id = ?", taxiID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDriver(m), nil
}

func (r *DriverRepository) ListWithTaxi(ctx context.Context) ([]DriverWithTaxi, error) {
	var rows []DriverWithTaxi
	tx := r.db.WithContext(ctx).
		Table("drivers d").
		Select("d.id, d.name, d.phone, d.taxi_id, COALESCE(t.model, '') AS taxi_model").
		Joins("LEFT JOIN taxis t ON d.taxi_id = t.id").
		Order("d.id").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
