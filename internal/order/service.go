package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrUnhashable rejects submissions whose line data cannot produce a
// trustworthy duplicate-detection hash.
var ErrUnhashable = errors.New("order items cannot be hashed")

// ErrInvalid rejects submissions missing required fields.
var ErrInvalid = errors.New("order is incomplete")

type Store interface {
	RecentFinder
	SaveOrder(ctx context.Context, o *Order) error
}

// Publisher emits order lifecycle events. Nil-safe at the service
// level so the system keeps taking orders when the broker is down.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o *Order) error
}

// Draft is an order before placement: everything the customer decided,
// nothing the system derives (id, hash, timestamps, status).
type Draft struct {
	Customer    Customer
	Address     *Address
	Lines       []Line
	Totals      Totals
	Payment     Payment
	Observation string
}

type PlaceResult struct {
	Order     *Order
	Duplicate *Order
	// PersistErr is set when the order was assembled but could not be
	// saved. The counter flow still hands the ticket to the kitchen in
	// that case; conversational flows treat it as a hard failure.
	PersistErr error
}

// Service owns order placement: validation, hashing, duplicate
// suppression, persistence, event publication. Both the HTTP create
// endpoint and the WhatsApp bot finalize through here.
type Service struct {
	store     Store
	guard     *DuplicateGuard
	publisher Publisher
	location  *time.Location
	logger    *zap.Logger
}

func NewService(store Store, guard *DuplicateGuard, publisher Publisher, location *time.Location, logger *zap.Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		store:     store,
		guard:     guard,
		publisher: publisher,
		location:  location,
		logger:    logger,
	}
}

// Place validates and persists a draft, short-circuiting on duplicate
// detection. On a duplicate hit nothing is persisted and the existing
// order comes back so callers can surface its timestamp.
func (s *Service) Place(ctx context.Context, draft Draft) (*PlaceResult, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	hash := Hash(draft.Lines)
	if !HashValid(hash) {
		return nil, ErrUnhashable
	}

	candidate := &Order{
		ID:          GenerateID(s.location),
		CreatedAt:   time.Now().In(s.location),
		Customer:    draft.Customer,
		Address:     draft.Address,
		Lines:       draft.Lines,
		Totals:      draft.Totals,
		Payment:     draft.Payment,
		Observation: draft.Observation,
		Status:      StatusNew,
		OrderHash:   hash,
	}

	existing, err := s.guard.Check(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if existing != nil {
		s.logger.Info("duplicate order suppressed",
			zap.String("orderId", existing.ID),
			zap.String("customer", existing.Customer.Name))
		return &PlaceResult{Duplicate: existing}, nil
	}

	result := &PlaceResult{Order: candidate}
	if err := s.store.SaveOrder(ctx, candidate); err != nil {
		s.logger.Error("order persist failed",
			zap.String("orderId", candidate.ID), zap.Error(err))
		result.PersistErr = fmt.Errorf("persist order: %w", err)
	}

	if s.publisher != nil && result.PersistErr == nil {
		if err := s.publisher.PublishOrderCreated(ctx, candidate); err != nil {
			// The kitchen notification is best-effort; the order is
			// already persisted and the caller gets a success.
			s.logger.Warn("order event publish failed",
				zap.String("orderId", candidate.ID), zap.Error(err))
		}
	}

	s.logger.Info("order placed",
		zap.String("orderId", candidate.ID),
		zap.Float64("total", candidate.Totals.FinalTotal),
		zap.Int("lines", len(candidate.Lines)))
	return result, nil
}

func validateDraft(draft Draft) error {
	if len(draft.Lines) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalid)
	}
	if draft.Customer.Name == "" {
		return fmt.Errorf("%w: customer name missing", ErrInvalid)
	}
	if !draft.Customer.IsPickup && (draft.Address == nil || draft.Address.Street == "") {
		return fmt.Errorf("%w: delivery address missing", ErrInvalid)
	}
	if draft.Payment.IsZero() {
		return fmt.Errorf("%w: payment method missing", ErrInvalid)
	}
	for _, line := range draft.Lines {
		if line.Total() < 0 {
			return fmt.Errorf("%w: negative line price", ErrInvalid)
		}
	}
	if err := draft.Totals.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
