package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the document persistence layer: a generic key/value JSON
// table for config and conversation state, plus the orders table with
// duplicate-detection keys promoted to columns.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get unmarshals the document at key into dest. The second return is
// false when the key does not exist.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `select doc from documents where key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if dest == nil {
		return true, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.pool.Exec(ctx, `
		insert into documents (key, doc, updated_at) values ($1, $2, now())
		on conflict (key) do update set doc = excluded.doc, updated_at = now()
	`, key, raw)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `delete from documents where key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// AppendToArray pushes value onto the named array field of a document,
// creating document and field as needed. Used for sangria entries on a
// cash-register document.
func (s *Store) AppendToArray(ctx context.Context, key, field string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s.%s: %w", key, field, err)
	}
	_, err = s.pool.Exec(ctx, `
		insert into documents (key, doc, updated_at)
		values ($1, jsonb_build_object($2::text, jsonb_build_array($3::jsonb)), now())
		on conflict (key) do update set
			doc = jsonb_set(
				documents.doc,
				array[$2::text],
				coalesce(documents.doc -> $2::text, '[]'::jsonb) || $3::jsonb
			),
			updated_at = now()
	`, key, field, raw)
	if err != nil {
		return fmt.Errorf("append %s.%s: %w", key, field, err)
	}
	return nil
}

// BoolMap reads an id→switch overlay document; a missing key yields an
// empty map so sheet defaults apply.
func (s *Store) BoolMap(ctx context.Context, key string) (map[string]bool, error) {
	values := map[string]bool{}
	if _, err := s.Get(ctx, key, &values); err != nil {
		return nil, err
	}
	return values, nil
}
