package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/clubnet/internal/app/models"
)

// FriendRepository handles friend requests and the friends relation.
// Friendship is stored as two directed rows so lookups by either side
// stay single-column.
type FriendRepository interface {
	CreateRequest(ctx context.Context, requesterID, recipientID int64) (*models.FriendRequest, error)
	GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error)
	PendingBetween(ctx context.Context, userA, userB int64) (bool, error)
	DeleteRequest(ctx context.Context, id int64) error
	ListIncoming(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	ListOutgoing(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
	AddFriendship(ctx context.Context, requestID, userA, userB int64) error
	RemoveFriendship(ctx context.Context, userA, userB int64) error
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

type friendRepository struct {
	db *pgxpool.Pool
}

// NewFriendRepository creates a new FriendRepository backed by PostgreSQL.
func NewFriendRepository(db *pgxpool.Pool) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) CreateRequest(ctx context.Context, requesterID, recipientID int64) (*models.FriendRequest, error) {
	query := `
		INSERT INTO friend_requests (requester_id, recipient_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	request := &models.FriendRequest{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendRequestPending,
	}
	err := r.db.QueryRow(ctx, query, requesterID, recipientID, models.FriendRequestPending).
		Scan(&request.ID, &request.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating friend request: %w", err)
	}
	return request, nil
}

func (r *friendRepository) GetRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	query := `
		SELECT id, requester_id, recipient_id, status, created_at
		FROM friend_requests
		WHERE id = $1
	`

	var request models.FriendRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.RequesterID,
		&request.RecipientID,
		&request.Status,
		&request.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving friend request: %w", err)
	}
	return &request, nil
}

// PendingBetween checks for a pending request in either direction.
func (r *friendRepository) PendingBetween(ctx context.Context, userA, userB int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE (requester_id = $1 AND recipient_id = $2)
			   OR (requester_id = $2 AND recipient_id = $1)
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking pending request: %w", err)
	}
	return exists, nil
}

func (r *friendRepository) DeleteRequest(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no friend request found with ID %d", id)
	}
	return nil
}

func (r *friendRepository) ListIncoming(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return r.listRequests(ctx, `recipient_id = $1`, userID)
}

func (r *friendRepository) ListOutgoing(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return r.listRequests(ctx, `requester_id = $1`, userID)
}

func (r *friendRepository) listRequests(ctx context.Context, where string, userID int64) ([]*models.FriendRequest, error) {
	query := `
		SELECT id, requester_id, recipient_id, status, created_at
		FROM friend_requests
		WHERE ` + where + `
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing friend requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.FriendRequest{}
	for rows.Next() {
		var request models.FriendRequest
		err := rows.Scan(
			&request.ID,
			&request.RequesterID,
			&request.RecipientID,
			&request.Status,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning friend request row: %w", err)
		}
		requests = append(requests, &request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend request rows: %w", err)
	}
	return requests, nil
}

func (r *friendRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM friends WHERE user_id = $1 AND friend_id = $2)`,
		userA, userB).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking friendship: %w", err)
	}
	return exists, nil
}

// AddFriendship resolves a request into a friendship: both directed
// rows are inserted and the request row removed in one transaction.
func (r *friendRepository) AddFriendship(ctx context.Context, requestID, userA, userB int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO friends (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, insert, userA, userB); err != nil {
		return fmt.Errorf("error inserting friendship: %w", err)
	}
	if _, err := tx.Exec(ctx, insert, userB, userA); err != nil {
		return fmt.Errorf("error inserting friendship: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM friend_requests WHERE id = $1`, requestID); err != nil {
		return fmt.Errorf("error deleting resolved request: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing friendship: %w", err)
	}
	return nil
}

// RemoveFriendship deletes both directed rows and any leftover
// requests between the pair.
func (r *friendRepository) RemoveFriendship(ctx context.Context, userA, userB int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM friends WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`,
		userA, userB)
	if err != nil {
		return fmt.Errorf("error deleting friendship: %w", err)
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM friend_requests WHERE (requester_id = $1 AND recipient_id = $2) OR (requester_id = $2 AND recipient_id = $1)`,
		userA, userB)
	if err != nil {
		return fmt.Errorf("error deleting stale requests: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing removal: %w", err)
	}
	return nil
}

func (r *friendRepository) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT friend_id FROM friends WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving friends: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning friend row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend rows: %w", err)
	}
	return ids, nil
}
