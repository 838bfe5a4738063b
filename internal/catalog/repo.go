package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
)

// Repository reads the reference catalog tables.
type Repository interface {
	FindMedicine(ctx context.Context, key string) (*models.Medicine, error)
	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	FindDoctor(ctx context.Context, id int) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	FindPlan(ctx context.Context, id enums.PlanID) (*models.SubscriptionPlan, error)
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository over the shared connection.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindMedicine(ctx context.Context, key string) (*models.Medicine, error) {
	var medicine models.Medicine
	if err := r.db.WithContext(ctx).First(&medicine, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *repository) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	var medicines []models.Medicine
	if err := r.db.WithContext(ctx).Order("key asc").Find(&medicines).Error; err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *repository) FindDoctor(ctx context.Context, id int) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *repository) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := r.db.WithContext(ctx).Order("id asc").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *repository) FindPlan(ctx context.Context, id enums.PlanID) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repository) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	if err := r.db.WithContext(ctx).Order("price asc").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
