package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
)

// Service exposes read-only access to the reference catalog.
type Service interface {
	GetMedicine(ctx context.Context, key string) (*models.Medicine, error)
	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	GetDoctor(ctx context.Context, id int) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	ListAvailableDoctors(ctx context.Context) ([]models.Doctor, error)
	GetPlan(ctx context.Context, id enums.PlanID) (*models.SubscriptionPlan, error)
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetMedicine(ctx context.Context, key string) (*models.Medicine, error) {
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "medicine key is required")
	}
	medicine, err := s.repo.FindMedicine(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "medicine not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load medicine")
	}
	return medicine, nil
}

func (s *service) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	medicines, err := s.repo.ListMedicines(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list medicines")
	}
	return medicines, nil
}

func (s *service) GetDoctor(ctx context.Context, id int) (*models.Doctor, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "doctor id is required")
	}
	doctor, err := s.repo.FindDoctor(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "doctor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load doctor")
	}
	return doctor, nil
}

func (s *service) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list doctors")
	}
	return doctors, nil
}

func (s *service) ListAvailableDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	available := make([]models.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if doctor.Available {
			available = append(available, doctor)
		}
	}
	return available, nil
}

func (s *service) GetPlan(ctx context.Context, id enums.PlanID) (*models.SubscriptionPlan, error) {
	if !id.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid subscription plan")
	}
	plan, err := s.repo.FindPlan(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription plan not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription plan")
	}
	return plan, nil
}

func (s *service) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscription plans")
	}
	return plans, nil
}
