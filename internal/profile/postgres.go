package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore returns a Postgres-backed implementation.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Put(ctx context.Context, record *domain.UserAccount) error {
	permissions := record.Permissions
	if permissions == nil {
		// pgx encodes a nil slice as SQL NULL, which the NOT NULL
		// permissions column rejects. An absent set is an empty array.
		permissions = []string{}
	}

	const query = `
        INSERT INTO user_profiles
            (id, email, display_name, phone, photo_url, home_country, current_country,
             role, admin_type, permissions, is_active, created_at, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), $12)
        RETURNING created_at`

	return s.pool.QueryRow(ctx, query,
		record.ID,
		record.Email,
		record.DisplayName,
		record.Phone,
		record.PhotoURL,
		record.HomeCountry,
		record.CurrentCountry,
		record.Role,
		record.AdminType,
		permissions,
		record.IsActive,
		record.CreatedBy,
	).Scan(&record.CreatedAt)
}

func (s *postgresStore) Get(ctx context.Context, id string) (*domain.UserAccount, error) {
	const query = `
        SELECT id, email, display_name, phone, photo_url, home_country, current_country,
               role, admin_type, permissions, is_active, created_at, created_by
        FROM user_profiles WHERE id=$1`

	var record domain.UserAccount
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Email,
		&record.DisplayName,
		&record.Phone,
		&record.PhotoURL,
		&record.HomeCountry,
		&record.CurrentCountry,
		&record.Role,
		&record.AdminType,
		&record.Permissions,
		&record.IsActive,
		&record.CreatedAt,
		&record.CreatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *postgresStore) Update(ctx context.Context, id string, update Update) error {
	sets := make([]string, 0, 10)
	args := make([]any, 0, 10)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.DisplayName != nil {
		add("display_name", *update.DisplayName)
	}
	if update.Phone != nil {
		add("phone", *update.Phone)
	}
	if update.PhotoURL != nil {
		add("photo_url", *update.PhotoURL)
	}
	if update.HomeCountry != nil {
		add("home_country", *update.HomeCountry)
	}
	if update.CurrentCountry != nil {
		add("current_country", *update.CurrentCountry)
	}
	if update.Role != nil {
		add("role", *update.Role)
	}
	if update.AdminType != nil {
		add("admin_type", *update.AdminType)
	}
	if update.Permissions != nil {
		add("permissions", update.Permissions)
	}
	if update.IsActive != nil {
		add("is_active", *update.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE id=$%d`,
		strings.Join(sets, ", "), len(args))

	cmd, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, id string) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM user_profiles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *postgresStore) GetAdminProfile(ctx context.Context, subjectID string) (*domain.AdminProfile, error) {
	const query = `SELECT id, admin_type, is_active FROM user_profiles WHERE id=$1 AND admin_type IS NOT NULL`

	var adminProfile domain.AdminProfile
	err := s.pool.QueryRow(ctx, query, subjectID).Scan(
		&adminProfile.SubjectID,
		&adminProfile.AdminType,
		&adminProfile.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &adminProfile, nil
}
