package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"pizzaria-pdv-services/internal/order"
)

var ErrOrderNotFound = errors.New("order not found")

func (s *Store) SaveOrder(ctx context.Context, o *order.Order) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", o.ID, err)
	}

	street, number, neighborhood := "", "", ""
	if o.Customer.IsPickup {
		street = order.PickupStreet
	} else if o.Address != nil {
		street = o.Address.Street
		number = o.Address.Number
		neighborhood = o.Address.Neighborhood
	}

	_, err = s.pool.Exec(ctx, `
		insert into orders (
			order_id, created_at, customer_name, phone,
			street, number, neighborhood, order_hash, status, doc
		) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		o.ID, o.CreatedAt, o.Customer.Name, o.Customer.Phone,
		street, number, neighborhood, o.OrderHash, string(o.Status), doc,
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.ID, err)
	}
	return nil
}

// FindRecent is the duplicate-guard lookup: newest persisted order in
// the window matching the candidate's identity keys, nil when none.
func (s *Store) FindRecent(ctx context.Context, query order.RecentQuery) (*order.Order, error) {
	conditions := []string{
		"customer_name = $1",
		"order_hash = $2",
		"created_at >= $3",
	}
	args := []any{query.CustomerName, query.OrderHash, query.Since}

	add := func(condition string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if query.Phone != "" {
		add("phone = $%d", query.Phone)
	}
	if query.Pickup {
		add("street = $%d", order.PickupStreet)
	} else {
		add("street = $%d", query.Street)
		add("number = $%d", query.Number)
		add("neighborhood = $%d", query.Neighborhood)
	}

	sql := `select doc from orders where ` + strings.Join(conditions, " and ") +
		` order by created_at desc limit 1`

	var raw []byte
	err := s.pool.QueryRow(ctx, sql, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find recent order: %w", err)
	}

	var found order.Order
	if err := json.Unmarshal(raw, &found); err != nil {
		return nil, fmt.Errorf("decode recent order: %w", err)
	}
	return &found, nil
}

func (s *Store) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `select doc from orders where order_id = $1`, orderID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}

	var found order.Order
	if err := json.Unmarshal(raw, &found); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return &found, nil
}

// MarkArchived flips the order's status in both the column and the
// stored document.
func (s *Store) MarkArchived(ctx context.Context, orderID string) error {
	tag, err := s.pool.Exec(ctx, `
		update orders
		set status = $2,
		    doc = jsonb_set(doc, '{status}', to_jsonb($2::text))
		where order_id = $1
	`, orderID, string(order.StatusArchived))
	if err != nil {
		return fmt.Errorf("archive order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
