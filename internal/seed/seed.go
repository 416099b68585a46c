package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/pkg/auth"
)

const (
	defaultSuperuserEmail     = "superuser@clubnet.local"
	defaultSuperuserPassword  = "changeme123"
	defaultSuperuserStudentID = "SU-0001"
)

// CreateDefaultData seeds the default superuser account if no
// superuser exists yet.
func CreateDefaultData(ctx context.Context, db *pgxpool.Pool, lgr zerolog.Logger) error {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`, models.RoleSuperuser).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for superuser: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultSuperuserPassword)
	if err != nil {
		return fmt.Errorf("failed to hash superuser password: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (student_id, first_name, last_name, email, password, role, verified)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
	`, defaultSuperuserStudentID, "Super", "User", defaultSuperuserEmail, hashed, models.RoleSuperuser)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	lgr.Info().Str("email", defaultSuperuserEmail).Msg("Default superuser created; change its password immediately")
	return nil
}
