package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Orders are stored as JSON documents with the duplicate-guard match
// keys promoted to indexed columns. The documents table backs the
// generic key/value store (conversation state, config docs, cash
// registers).
const schema = `
create table if not exists orders (
	order_id      text primary key,
	created_at    timestamptz not null,
	customer_name text not null,
	phone         text not null default '',
	street        text not null default '',
	number        text not null default '',
	neighborhood  text not null default '',
	order_hash    text not null,
	status        text not null default 'New',
	doc           jsonb not null
);
create index if not exists orders_dedup_idx
	on orders (customer_name, order_hash, created_at);

create table if not exists documents (
	key        text primary key,
	doc        jsonb not null,
	updated_at timestamptz not null default now()
);
`

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return pool, nil
}
