package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FollowRepository handles the user-follows-club relation.
type FollowRepository interface {
	Add(ctx context.Context, userID, clubID int64) error
	Remove(ctx context.Context, userID, clubID int64) error
	IsFollowing(ctx context.Context, userID, clubID int64) (bool, error)
	ClubIDsForUser(ctx context.Context, userID int64) ([]int64, error)
	CountForClub(ctx context.Context, clubID int64) (int64, error)
}

type followRepository struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new FollowRepository backed by PostgreSQL.
func NewFollowRepository(db *pgxpool.Pool) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Add(ctx context.Context, userID, clubID int64) error {
	query := `
		INSERT INTO user_follows (user_id, club_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, club_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, clubID)
	if err != nil {
		return fmt.Errorf("error adding follow: %w", err)
	}
	return nil
}

func (r *followRepository) Remove(ctx context.Context, userID, clubID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM user_follows WHERE user_id = $1 AND club_id = $2`,
		userID, clubID)
	if err != nil {
		return fmt.Errorf("error removing follow: %w", err)
	}
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, clubID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_follows WHERE user_id = $1 AND club_id = $2)`,
		userID, clubID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking follow: %w", err)
	}
	return exists, nil
}

func (r *followRepository) ClubIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT club_id FROM user_follows WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving followed clubs: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning follow row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follow rows: %w", err)
	}
	return ids, nil
}

func (r *followRepository) CountForClub(ctx context.Context, clubID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_follows WHERE club_id = $1`, clubID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting followers: %w", err)
	}
	return count, nil
}
