package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
)

// PostgresProvider is the default Provider implementation: credential
// records in Postgres, session revocation epochs in Redis.
type PostgresProvider struct {
	pool     *pgxpool.Pool
	sessions *SessionRegistry
	cfg      config.IdentityConfig
}

// NewPostgresProvider constructs the provider.
func NewPostgresProvider(pool *pgxpool.Pool, sessions *SessionRegistry, cfg config.IdentityConfig) *PostgresProvider {
	return &PostgresProvider{pool: pool, sessions: sessions, cfg: cfg}
}

// CreateAccount inserts a credential record and returns the assigned id.
func (p *PostgresProvider) CreateAccount(ctx context.Context, account NewAccount) (string, error) {
	// Fast path only; the unique index is what actually guarantees
	// email uniqueness under concurrent creates.
	var exists bool
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM identity_accounts WHERE email=$1)`
	if err := p.pool.QueryRow(ctx, existsQuery, account.Email).Scan(&exists); err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailExists
	}

	hash, err := auth.HashPassword(account.Password, p.cfg.BcryptCost)
	if err != nil {
		return "", err
	}

	const query = `
        INSERT INTO identity_accounts (email, password_hash, display_name, email_verified)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	var id string
	if err := p.pool.QueryRow(ctx, query,
		account.Email,
		hash,
		account.DisplayName,
		account.EmailVerified,
	).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (a concurrent create won the race past the exists check).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// UpdateAccount applies the non-nil fields as a single combined update.
func (p *PostgresProvider) UpdateAccount(ctx context.Context, id string, update AccountUpdate) error {
	if update.Empty() {
		return nil
	}

	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Email != nil {
		add("email", *update.Email)
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, p.cfg.BcryptCost)
		if err != nil {
			return err
		}
		add("password_hash", hash)
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

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE identity_accounts SET %s, updated_at=NOW() WHERE id=$%d`,
		strings.Join(sets, ", "), len(args))

	cmd, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount permanently removes the credential record.
func (p *PostgresProvider) DeleteAccount(ctx context.Context, id string) error {
	cmd, err := p.pool.Exec(ctx, `DELETE FROM identity_accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RevokeSessions invalidates every standing session for the account.
func (p *PostgresProvider) RevokeSessions(ctx context.Context, id string) error {
	now := time.Now()
	cmd, err := p.pool.Exec(ctx,
		`UPDATE identity_accounts SET sessions_valid_after=$1, updated_at=NOW() WHERE id=$2`, now, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	if p.sessions != nil {
		return p.sessions.Revoke(ctx, id, now)
	}
	return nil
}

// GenerateResetLink mints a one-time password-reset link for the email.
func (p *PostgresProvider) GenerateResetLink(ctx context.Context, email string) (string, error) {
	var accountID string
	err := p.pool.QueryRow(ctx, `SELECT id FROM identity_accounts WHERE email=$1`, email).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(time.Duration(p.cfg.ResetLinkTTLMinutes) * time.Minute)

	const query = `
        INSERT INTO identity_reset_links (account_id, token, expires_at)
        VALUES ($1, $2, $3)`
	if _, err := p.pool.Exec(ctx, query, accountID, token, expiresAt); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s?token=%s", p.cfg.ResetLinkBaseURL, token), nil
}

// VerifyPassword checks the credentials and returns the account id.
func (p *PostgresProvider) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	var (
		id   string
		hash string
	)
	err := p.pool.QueryRow(ctx,
		`SELECT id, password_hash FROM identity_accounts WHERE email=$1`, email).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if err := auth.ComparePassword(hash, password); err != nil {
		return "", errors.New("invalid credentials")
	}
	return id, nil
}
