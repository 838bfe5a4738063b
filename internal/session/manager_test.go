package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/merodoctor/merodoctor-backend/internal/catalog"
	"github.com/merodoctor/merodoctor-backend/pkg/enums"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "session-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
}

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	mgr, err := NewManager(store, testLogger())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func TestUpdatePersistsState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	err := mgr.Update(ctx, "sess-1", func(state *State) error {
		state.Cart = append(state.Cart, CartLine{
			MedicineKey: "paracetamol",
			Name:        "Paracetamol 500mg",
			UnitPrice:   decimal.NewFromInt(25),
			Dosage:      catalog.DosageOption{Label: "1 tablet", Quantity: 1},
			Quantity:    2,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	saved, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(saved.Cart) != 1 || saved.Cart[0].Quantity != 2 {
		t.Fatalf("unexpected persisted cart: %+v", saved.Cart)
	}
	if !saved.Cart[0].UnitPrice.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("unit price lost in round trip: %s", saved.Cart[0].UnitPrice)
	}
}

func TestUpdateErrorSkipsSave(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	wantErr := fmt.Errorf("boom")
	err := mgr.Update(ctx, "sess-2", func(state *State) error {
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Update error = %v, want %v", err, wantErr)
	}

	if _, err := store.Load(ctx, "sess-2"); err != ErrNotFound {
		t.Fatalf("Load after failed update = %v, want ErrNotFound", err)
	}
}

func TestMissingSessionStartsEmpty(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, NewMemoryStore())

	err := mgr.View(context.Background(), "fresh", func(state *State) error {
		if len(state.Cart) != 0 {
			t.Fatalf("fresh cart not empty: %+v", state.Cart)
		}
		if state.Subscription != nil {
			t.Fatalf("fresh subscription = %v, want nil", *state.Subscription)
		}
		if len(state.History) != 0 {
			t.Fatalf("fresh history not empty: %+v", state.History)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestLoadFailureFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, &failingStore{loadErr: fmt.Errorf("redis down")})

	err := mgr.Update(context.Background(), "sess-3", func(state *State) error {
		plan := enums.PlanPremium
		state.Subscription = &plan
		return nil
	})
	if err != nil {
		t.Fatalf("Update with failing store: %v", err)
	}

	// The in-memory copy stays authoritative even though saves fail too.
	err = mgr.View(context.Background(), "sess-3", func(state *State) error {
		if state.Subscription == nil || *state.Subscription != enums.PlanPremium {
			t.Fatalf("subscription not retained: %+v", state.Subscription)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestMissingSessionID(t *testing.T) {
	t.Parallel()

	mgr := newTestManager(t, NewMemoryStore())
	err := mgr.Update(context.Background(), "", func(*State) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing session id")
	}
}

func TestConcurrentUpdatesSerialize(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	mgr := newTestManager(t, store)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.Update(ctx, "shared", func(state *State) error {
				if len(state.Cart) == 0 {
					state.Cart = append(state.Cart, CartLine{
						MedicineKey: "cetirizine",
						Name:        "Cetirizine 10mg",
						UnitPrice:   decimal.NewFromInt(15),
						Dosage:      catalog.DosageOption{Label: "1 tablet", Quantity: 1},
						Quantity:    0,
					})
				}
				state.Cart[0].Quantity++
				return nil
			})
		}()
	}
	wg.Wait()

	err := mgr.View(ctx, "shared", func(state *State) error {
		if len(state.Cart) != 1 || state.Cart[0].Quantity != workers {
			t.Fatalf("cart after concurrent updates: %+v", state.Cart)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

type failingStore struct {
	loadErr error
}

func (s *failingStore) Load(context.Context, string) (*State, error) {
	return nil, s.loadErr
}

func (s *failingStore) Save(context.Context, string, *State) error {
	return fmt.Errorf("redis down")
}
