package events

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Delivery is one authenticated inbound webhook as seen by the dispatcher.
type Delivery struct {
	ID          string    `json:"id"`
	Topic       string    `json:"topic"`
	ShopDomain  string    `json:"shopDomain"`
	WebhookID   string    `json:"webhookId"`
	PayloadHash string    `json:"payloadHash"`
	Handled     bool      `json:"handled"`
	ReceivedAt  time.Time `json:"receivedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Record appends d to the delivery ledger. It never deduplicates.
func (r *Repository) Record(ctx context.Context, d Delivery) error {
	if d.ReceivedAt.IsZero() {
		d.ReceivedAt = time.Now().UTC()
	}
	return Insert(ctx, r.db, d)
}

// ListRecent returns the newest deliveries first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Delivery, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	const q = `
SELECT id::text, topic, COALESCE(shop_domain, ''), COALESCE(webhook_id, ''), payload_hash, handled, received_at
FROM webhook_deliveries
ORDER BY received_at DESC, id DESC
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Delivery{}
	for rows.Next() {
		var d Delivery
		if err := rows.Scan(&d.ID, &d.Topic, &d.ShopDomain, &d.WebhookID, &d.PayloadHash, &d.Handled, &d.ReceivedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func Insert(ctx context.Context, db execer, d Delivery) error {
	const q = `
INSERT INTO webhook_deliveries (topic, shop_domain, webhook_id, payload_hash, handled, received_at)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
`
	_, err := db.Exec(ctx, q, d.Topic, d.ShopDomain, d.WebhookID, d.PayloadHash, d.Handled, d.ReceivedAt)
	return err
}
