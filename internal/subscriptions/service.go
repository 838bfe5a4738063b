package subscriptions

import (
	"context"
	"fmt"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/internal/session"
	"github.com/merodoctor/merodoctor-backend/pkg/db/models"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
)

type Service interface {
	// Subscribe activates a plan for the session, replacing any current one.
	Subscribe(ctx context.Context, sessionID string, planID enums.PlanID) (*models.SubscriptionPlan, error)
	// Current returns the session's active plan, or nil when unsubscribed.
	Current(ctx context.Context, sessionID string) (*models.SubscriptionPlan, error)
	// ListPlans exposes the plan catalog for the subscription picker.
	ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error)
}

type stateAccessor interface {
	Update(ctx context.Context, sessionID string, fn func(*session.State) error) error
	View(ctx context.Context, sessionID string, fn func(*session.State) error) error
}

type service struct {
	catalog  catalog.Service
	sessions stateAccessor
}

func NewService(catalogSvc catalog.Service, sessions *session.Manager) (Service, error) {
	if catalogSvc == nil {
		return nil, fmt.Errorf("subscriptions: catalog service is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("subscriptions: session manager is required")
	}
	return &service{catalog: catalogSvc, sessions: sessions}, nil
}

func (s *service) Subscribe(ctx context.Context, sessionID string, planID enums.PlanID) (*models.SubscriptionPlan, error) {
	plan, err := s.catalog.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	err = s.sessions.Update(ctx, sessionID, func(state *session.State) error {
		id := plan.ID
		state.Subscription = &id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *service) Current(ctx context.Context, sessionID string) (*models.SubscriptionPlan, error) {
	var planID *enums.PlanID
	err := s.sessions.View(ctx, sessionID, func(state *session.State) error {
		if state.Subscription != nil {
			id := *state.Subscription
			planID = &id
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if planID == nil {
		return nil, nil
	}
	return s.catalog.GetPlan(ctx, *planID)
}

func (s *service) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.catalog.ListPlans(ctx)
}
