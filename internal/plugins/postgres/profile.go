package postgres

import (
	"context"
	"database/sql"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"
)

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) FindByID(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}
	profile := &domain.Profile{UserID: userID}
	query := `SELECT first_name, last_name FROM users WHERE id = $1`
	exec := GetExecutor(ctx, r.db)
	err := exec.QueryRowContext(ctx, query, userID).Scan(&profile.FirstName, &profile.LastName)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
