package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/clubnet/internal/app/models"
)

// MessageRepository handles database operations for direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) (int64, error)
	History(ctx context.Context, userA, userB int64, limit int) ([]*models.Message, error)
}

type messageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository backed by PostgreSQL.
func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (sender_id, recipient_id, content, media)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.SenderID,
		message.RecipientID,
		message.Content,
		message.Media,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}

	return message.ID, nil
}

// History returns the conversation between two users, oldest first.
func (r *messageRepository) History(ctx context.Context, userA, userB int64, limit int) ([]*models.Message, error) {
	query := `
		SELECT id, sender_id, recipient_id, content, media, created_at
		FROM (
			SELECT id, sender_id, recipient_id, content, media, created_at
			FROM messages
			WHERE (sender_id = $1 AND recipient_id = $2)
			   OR (sender_id = $2 AND recipient_id = $1)
			ORDER BY created_at DESC
			LIMIT $3
		) latest
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userA, userB, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chat history: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var message models.Message
		err := rows.Scan(
			&message.ID,
			&message.SenderID,
			&message.RecipientID,
			&message.Content,
			&message.Media,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}
