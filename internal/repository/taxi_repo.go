package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taxibook/internal/domain"
)

type TaxiRepository struct {
	db *gorm.DB
}

func NewTaxiRepository(db *gorm.DB) *TaxiRepository {
	return &TaxiRepository{db: db}
}

type taxiModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Model     string    `gorm:"column:model"`
	Capacity  int       `gorm:"column:capacity"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (taxiModel) TableName() string { return "taxis" }

func toDomainTaxi(m taxiModel) *domain.Taxi {
	return &domain.Taxi{
		ID:        m.ID,
		Model:     m.Model,
		Capacity:  m.Capacity,
		Status:    domain.TaxiStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toTaxiModel(t *domain.Taxi) taxiModel {
	return taxiModel{
		ID:        t.ID,
		Model:     t.Model,
		Capacity:  t.Capacity,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (r *TaxiRepository) Create(ctx context.Context, t *domain.Taxi) error {
	m := toTaxiModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTaxi(m)
	return nil
}

func (r *TaxiRepository) GetByID(ctx context.Context, id int64) (*domain.Taxi, error) {
	var m taxiModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTaxi(m), nil
}

func (r *TaxiRepository) Update(ctx context.Context, t *domain.Taxi) error {
	res := r.db.WithContext(ctx).
		Model(&taxiModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"model":      t.Model,
			"capacity":   t.Capacity,
			"status":     string(t.Status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaxiRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&taxiModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaxiRepository) List(ctx context.Context) ([]domain.Taxi, error) {
	var ms []taxiModel
	tx := r.db.WithContext(ctx).Order("id").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Taxi, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainTaxi(m))
	}
	return out, nil
}

func (r *TaxiRepository) ListAvailable(ctx context.Context) ([]domain.Taxi, error) {
	var ms []taxiModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.TaxiAvailable)).
		Order("id").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Taxi, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainTaxi(m))
	}
	return out, nil
}
