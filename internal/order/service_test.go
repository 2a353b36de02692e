package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeStore struct {
	recent    *Order
	recentErr error
	saved     []*Order
	saveErr   error
	lastQuery RecentQuery
}

func (f *fakeStore) FindRecent(ctx context.Context, query RecentQuery) (*Order, error) {
	f.lastQuery = query
	return f.recent, f.recentErr
}

func (f *fakeStore) SaveOrder(ctx context.Context, o *Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, o)
	return nil
}

type fakePublisher struct {
	published []*Order
	err       error
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, o)
	return nil
}

func validDraft() Draft {
	lines := []Line{{Name: "Pizza Calabresa", SizeTag: "8 fatias", BasePrice: 40, Quantity: 1}}
	return Draft{
		Customer: Customer{Name: "Maria", Phone: "5511988887777"},
		Address:  &Address{Street: "Rua das Flores", Number: "120", Neighborhood: "Centro"},
		Lines:    lines,
		Totals:   ComputeTotals(lines, 5, 0),
		Payment:  OtherPayment("Pix"),
	}
}

func newTestService(store *fakeStore, pub *fakePublisher) *Service {
	guard := NewDuplicateGuard(store, 3*time.Minute)
	return NewService(store, guard, pub, time.UTC, zap.NewNop())
}

func TestPlaceOrder(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	svc := newTestService(store, pub)

	res, err := svc.Place(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Order == nil || res.Duplicate != nil || res.PersistErr != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Order.Status != StatusNew {
		t.Fatalf("expected status New, got %q", res.Order.Status)
	}
	if !HashValid(res.Order.OrderHash) {
		t.Fatalf("expected a valid hash, got %q", res.Order.OrderHash)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected one saved order, got %d", len(store.saved))
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
}

func TestPlaceSuppressesDuplicate(t *testing.T) {
	existing := &Order{ID: "251231-2030-XYZ1", CreatedAt: time.Now().Add(-time.Minute)}
	store := &fakeStore{recent: existing}
	svc := newTestService(store, &fakePublisher{})

	res, err := svc.Place(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Duplicate != existing {
		t.Fatalf("expected the existing order back, got %+v", res)
	}
	if len(store.saved) != 0 {
		t.Fatal("duplicate suppression must not persist anything")
	}
	if store.lastQuery.Street != "Rua das Flores" {
		t.Fatalf("address must be part of the match keys, got %+v", store.lastQuery)
	}
}

func TestPlacePickupMatchKeys(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakePublisher{})

	draft := validDraft()
	draft.Customer.IsPickup = true
	draft.Address = nil

	if _, err := svc.Place(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.lastQuery.Pickup || store.lastQuery.Street != "" {
		t.Fatalf("pickup orders must not match on a street, got %+v", store.lastQuery)
	}
}

func TestPlaceRejectsInvalidDrafts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"no lines", func(d *Draft) { d.Lines = nil; d.Totals = ComputeTotals(nil, 0, 0) }},
		{"no name", func(d *Draft) { d.Customer.Name = "" }},
		{"no address", func(d *Draft) { d.Address = nil }},
		{"no payment", func(d *Draft) { d.Payment = Payment{} }},
		{"broken totals", func(d *Draft) { d.Totals.FinalTotal += 10 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := newTestService(store, &fakePublisher{})

			draft := validDraft()
			tc.mutate(&draft)

			_, err := svc.Place(context.Background(), draft)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if len(store.saved) != 0 {
				t.Fatal("invalid drafts must not persist")
			}
		})
	}
}

func TestPlaceRejectsUnhashable(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakePublisher{})

	draft := validDraft()
	draft.Lines[0].Extras = []SubItem{{Name: "", UnitPrice: 5}}
	draft.Totals = ComputeTotals(draft.Lines, 5, 0)

	_, err := svc.Place(context.Background(), draft)
	if !errors.Is(err, ErrUnhashable) {
		t.Fatalf("expected ErrUnhashable, got %v", err)
	}
}

func TestPlaceReportsPersistFailure(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("connection reset")}
	pub := &fakePublisher{}
	svc := newTestService(store, pub)

	res, err := svc.Place(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PersistErr == nil || res.Order == nil {
		t.Fatalf("expected an assembled order with a persist error, got %+v", res)
	}
	if len(pub.published) != 0 {
		t.Fatal("unpersisted orders must not publish events")
	}
}

func TestPlacePublishFailureIsBestEffort(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakePublisher{err: errors.New("broker down")})

	res, err := svc.Place(context.Background(), validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Order == nil || res.PersistErr != nil {
		t.Fatalf("publish failure must not fail placement, got %+v", res)
	}
}

// windowedStore returns the stored order only when its creation time
// still falls inside the queried window, like the real store's
// created_at >= $since filter.
type windowedStore struct {
	fakeStore
	prior *Order
}

func (w *windowedStore) FindRecent(ctx context.Context, query RecentQuery) (*Order, error) {
	w.lastQuery = query
	if w.prior != nil && w.prior.CreatedAt.After(query.Since) {
		return w.prior, nil
	}
	return nil, nil
}

func TestPlaceDuplicateWindowExpiry(t *testing.T) {
	prior := &Order{ID: "250828-1200-AAAA"}

	t.Run("inside the window the resubmission is suppressed", func(t *testing.T) {
		prior.CreatedAt = time.Now().Add(-1 * time.Minute)
		store := &windowedStore{prior: prior}
		svc := NewService(store, NewDuplicateGuard(store, 3*time.Minute), nil, time.UTC, zap.NewNop())

		res, err := svc.Place(context.Background(), validDraft())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Duplicate == nil || res.Duplicate.ID != prior.ID {
			t.Fatalf("expected the prior order back, got %+v", res)
		}
		if len(store.saved) != 0 {
			t.Fatal("a duplicate hit must not persist a second order")
		}
	})

	t.Run("after the window elapses the same order is new", func(t *testing.T) {
		prior.CreatedAt = time.Now().Add(-4 * time.Minute)
		store := &windowedStore{prior: prior}
		svc := NewService(store, NewDuplicateGuard(store, 3*time.Minute), nil, time.UTC, zap.NewNop())

		res, err := svc.Place(context.Background(), validDraft())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Duplicate != nil {
			t.Fatalf("an expired window must not suppress, got duplicate %+v", res.Duplicate)
		}
		if len(store.saved) != 1 {
			t.Fatalf("expected the order to be persisted, saved %d", len(store.saved))
		}
	})
}

func TestDuplicateGuardWindow(t *testing.T) {
	store := &fakeStore{}
	guard := NewDuplicateGuard(store, 3*time.Minute)

	candidate := &Order{
		Customer:  Customer{Name: "Maria"},
		OrderHash: "some-hash",
	}
	if _, err := guard.Check(context.Background(), candidate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	since := time.Until(store.lastQuery.Since)
	if since > -2*time.Minute-50*time.Second || since < -3*time.Minute-10*time.Second {
		t.Fatalf("expected Since about 3 minutes ago, got %v", store.lastQuery.Since)
	}
}
