package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"doorquote/internal/model"
)

// PresupuestoRepository is the data access contract for the budget archive.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type PresupuestoRepository interface {
	Create(ctx context.Context, rec *model.BudgetRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetRecord, error)
	List(ctx context.Context) ([]model.BudgetRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type presupuestoRepo struct{ db *gorm.DB }

func NewPresupuestoRepository(db *gorm.DB) PresupuestoRepository {
	return &presupuestoRepo{db: db}
}

func (r *presupuestoRepo) Create(ctx context.Context, rec *model.BudgetRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *presupuestoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.BudgetRecord, error) {
	var rec model.BudgetRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *presupuestoRepo) List(ctx context.Context) ([]model.BudgetRecord, error) {
	var recs []model.BudgetRecord
	err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&recs).Error
	return recs, err
}

func (r *presupuestoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BudgetRecord{}, "id = ?", id).Error
}
