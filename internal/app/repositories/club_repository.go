package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/clubnet/internal/app/models"
)

// ClubRepository handles database operations for clubs and their
// admin sets.
type ClubRepository interface {
	Create(ctx context.Context, club *models.Club, creatorID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page, limit int) ([]*models.Club, int64, error)
	Search(ctx context.Context, query string) ([]*models.Club, error)
	IsAdmin(ctx context.Context, clubID, userID int64) (bool, error)
	AddAdmin(ctx context.Context, clubID, userID int64) error
	RemoveAdmin(ctx context.Context, clubID, userID int64) error
	AdminCount(ctx context.Context, clubID int64) (int64, error)
	UpdateImage(ctx context.Context, id int64, imagePath string) error
}

type clubRepository struct {
	db *pgxpool.Pool
}

// NewClubRepository creates a new ClubRepository backed by PostgreSQL.
func NewClubRepository(db *pgxpool.Pool) ClubRepository {
	return &clubRepository{db: db}
}

// Create inserts the club and its first admin atomically.
func (r *clubRepository) Create(ctx context.Context, club *models.Club, creatorID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO clubs (name, description, club_image)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRow(ctx, query, club.Name, club.Description, club.ClubImage).
		Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating club: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO club_admins (club_id, user_id) VALUES ($1, $2)`,
		club.ID, creatorID)
	if err != nil {
		return 0, fmt.Errorf("error adding club admin: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing club creation: %w", err)
	}

	club.AdminIDs = []int64{creatorID}
	return club.ID, nil
}

func (r *clubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	query := `
		SELECT c.id, c.name, c.description, c.club_image, c.created_at, c.updated_at,
		       COALESCE(array_agg(ca.user_id ORDER BY ca.created_at) FILTER (WHERE ca.user_id IS NOT NULL), '{}')
		FROM clubs c
		LEFT JOIN club_admins ca ON ca.club_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	club, err := scanClub(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving club: %w", err)
	}
	return club, nil
}

func scanClub(row pgx.Row) (*models.Club, error) {
	var club models.Club
	var clubImage *string
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.Description,
		&clubImage,
		&club.CreatedAt,
		&club.UpdatedAt,
		&club.AdminIDs,
	)
	if err != nil {
		return nil, err
	}
	if clubImage != nil {
		club.ClubImage = *clubImage
	}
	return &club, nil
}

func (r *clubRepository) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clubs WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking club name: %w", err)
	}
	return exists, nil
}

func (r *clubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE clubs
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.Exec(ctx, query, club.Name, club.Description, club.ID)
	if err != nil {
		return fmt.Errorf("error updating club: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no club found with ID %d", club.ID)
	}
	return nil
}

// Delete removes the club; posts, admins and follows go with it via
// FK cascades.
func (r *clubRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting club: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no club found with ID %d", id)
	}
	return nil
}

func (r *clubRepository) List(ctx context.Context, page, limit int) ([]*models.Club, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clubs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting clubs: %w", err)
	}

	offset := (page - 1) * limit
	query := `
		SELECT c.id, c.name, c.description, c.club_image, c.created_at, c.updated_at,
		       COALESCE(array_agg(ca.user_id ORDER BY ca.created_at) FILTER (WHERE ca.user_id IS NOT NULL), '{}')
		FROM clubs c
		LEFT JOIN club_admins ca ON ca.club_id = c.id
		GROUP BY c.id
		ORDER BY c.name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing clubs: %w", err)
	}
	defer rows.Close()

	clubs, err := collectClubs(rows)
	if err != nil {
		return nil, 0, err
	}
	return clubs, total, nil
}

func (r *clubRepository) Search(ctx context.Context, query string) ([]*models.Club, error) {
	pattern := "%" + query + "%"
	queryBuilder := squirrel.Select(
		"c.id", "c.name", "c.description", "c.club_image", "c.created_at", "c.updated_at",
		"COALESCE(array_agg(ca.user_id ORDER BY ca.created_at) FILTER (WHERE ca.user_id IS NOT NULL), '{}')",
	).
		From("clubs c").
		LeftJoin("club_admins ca ON ca.club_id = c.id").
		Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.description": pattern},
		}).
		GroupBy("c.id").
		OrderBy("c.name").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching clubs: %w", err)
	}
	defer rows.Close()

	return collectClubs(rows)
}

func collectClubs(rows pgx.Rows) ([]*models.Club, error) {
	clubs := []*models.Club{}
	for rows.Next() {
		club, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning club row: %w", err)
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating club rows: %w", err)
	}
	return clubs, nil
}

func (r *clubRepository) IsAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM club_admins WHERE club_id = $1 AND user_id = $2)`,
		clubID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking club admin: %w", err)
	}
	return exists, nil
}

func (r *clubRepository) AddAdmin(ctx context.Context, clubID, userID int64) error {
	query := `
		INSERT INTO club_admins (club_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (club_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, clubID, userID)
	if err != nil {
		return fmt.Errorf("error adding club admin: %w", err)
	}
	return nil
}

func (r *clubRepository) RemoveAdmin(ctx context.Context, clubID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM club_admins WHERE club_id = $1 AND user_id = $2`,
		clubID, userID)
	if err != nil {
		return fmt.Errorf("error removing club admin: %w", err)
	}
	return nil
}

func (r *clubRepository) AdminCount(ctx context.Context, clubID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM club_admins WHERE club_id = $1`, clubID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting club admins: %w", err)
	}
	return count, nil
}

func (r *clubRepository) UpdateImage(ctx context.Context, id int64, imagePath string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE clubs SET club_image = $1, updated_at = NOW() WHERE id = $2`,
		imagePath, id)
	if err != nil {
		return fmt.Errorf("error updating club image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no club found with ID %d", id)
	}
	return nil
}
