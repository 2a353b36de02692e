package order

import (
	"context"
	"time"
)

// RecentQuery carries the duplicate-detection match keys. Pickup
// orders match on the pickup sentinel street instead of a real
// address; Phone narrows the match only when it was supplied.
type RecentQuery struct {
	CustomerName string
	OrderHash    string
	Phone        string
	Pickup       bool
	Street       string
	Number       string
	Neighborhood string
	Since        time.Time
}

type RecentFinder interface {
	FindRecent(ctx context.Context, query RecentQuery) (*Order, error)
}

// DuplicateGuard suppresses resubmission of the same order within a
// trailing window. The read-then-write race is accepted: order
// placement is human-paced, and the window for two identical
// submissions slipping through is a single insert.
type DuplicateGuard struct {
	finder RecentFinder
	window time.Duration
}

func NewDuplicateGuard(finder RecentFinder, window time.Duration) *DuplicateGuard {
	if window <= 0 {
		window = 3 * time.Minute
	}
	return &DuplicateGuard{finder: finder, window: window}
}

// Check returns the previously persisted order when the candidate is a
// duplicate, nil when it is new.
func (g *DuplicateGuard) Check(ctx context.Context, candidate *Order) (*Order, error) {
	query := RecentQuery{
		CustomerName: candidate.Customer.Name,
		OrderHash:    candidate.OrderHash,
		Phone:        candidate.Customer.Phone,
		Pickup:       candidate.Customer.IsPickup,
		Since:        time.Now().Add(-g.window),
	}
	if !candidate.Customer.IsPickup && candidate.Address != nil {
		query.Street = candidate.Address.Street
		query.Number = candidate.Address.Number
		query.Neighborhood = candidate.Address.Neighborhood
	}
	return g.finder.FindRecent(ctx, query)
}
