package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Event names recorded by the mutation layer.
const (
	UserRegistered = "user.registered"
	UserFollowed   = "user.followed"
	PostCreated    = "post.created"
	PostLiked      = "post.liked"
	CommentCreated = "comment.created"
	CommentLiked   = "comment.liked"
)

// Recorder appends an event inside the caller's transaction.
type Recorder interface {
	Record(ctx context.Context, tx *sql.Tx, event, key string, payload any) error
}

// Row represents a single unpublished outbox entry.
type Row struct {
	ID      string
	Topic   string
	Key     string
	Payload []byte
}

// Repository manages the transactional outbox table.
type Repository struct{ DB *sql.DB }

// NewRepository returns an outbox repository backed by the given DB.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// Record marshals payload and stores it under event.
func (r *Repository) Record(ctx context.Context, tx *sql.Tx, event, key string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if err := r.InsertTx(ctx, tx, event, key, b); err != nil {
		return fmt.Errorf("save %s event: %w", event, err)
	}
	return nil
}

// InsertTx inserts a new outbox event inside an existing transaction.
func (r *Repository) InsertTx(ctx context.Context, tx *sql.Tx, topic, key string, payload []byte) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO outbox (id, topic, key, payload) VALUES ($1,$2,$3,$4)`,
		uuid.NewString(), topic, key, payload)
	return err
}

// Fetch returns up to `limit` unpublished outbox rows ordered by creation time.
func (r *Repository) Fetch(ctx context.Context, limit int) ([]Row, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, topic, key, payload FROM outbox WHERE published_at IS NULL ORDER BY created_at LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.Topic, &row.Key, &row.Payload); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MarkPublished sets the published_at timestamp for the given outbox row.
func (r *Repository) MarkPublished(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE outbox SET published_at = NOW() WHERE id = $1`, id)
	return err
}

// Discard drops every event. Wired when no broker is configured.
type Discard struct{}

func (Discard) Record(context.Context, *sql.Tx, string, string, any) error { return nil }
