package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type RevenueGormRepository struct {
	db *gorm.DB
}

func NewRevenueGormRepository(db *gorm.DB) *RevenueGormRepository {
	return &RevenueGormRepository{db: db}
}

func (r *RevenueGormRepository) MarkPublished(
	ctx context.Context,
	ids []uint,
	at time.Time,
) error {
	if len(ids) == 0 {
		return nil
	}
	return httperr.ErrStorage("mark_revenue_published", r.db.WithContext(ctx).
		Model(&models.RevenueRecord{}).
		Where("id IN ?", ids).
		Update("published_at", at.UTC()).Error)
}

// ListUnpublished alimenta a republicação após uma queda do broker.
func (r *RevenueGormRepository) ListUnpublished(
	ctx context.Context,
	limit int,
) ([]models.RevenueRecord, error) {

	var out []models.RevenueRecord
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, httperr.ErrStorage("list_unpublished_revenue", err)
	}
	return out, nil
}
