package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/ai-interviewer/internal/logger"
	"github.com/MKhiriev/ai-interviewer/models"
)

type localCredentialRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalCredentialRepository returns the sqlite-backed [CredentialStore].
func NewLocalCredentialRepository(db *DB, logger *logger.Logger) CredentialStore {
	return &localCredentialRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (l *localCredentialRepository) Load(ctx context.Context) (models.Credential, error) {
	query, args, err := buildLoadCredentialQuery()
	if err != nil {
		return models.Credential{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		cred      models.Credential
		expiresAt sql.NullTime
	)
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&cred.Token, &cred.UserID, &expiresAt, &cred.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrCredentialNotFound
	}
	if err != nil {
		l.logger.Err(err).
			Str("func", "localCredentialRepository.Load").
			Msg("failed to scan credential row")
		return models.Credential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if expiresAt.Valid {
		t := expiresAt.Time
		cred.ExpiresAt = &t
	}

	return cred, nil
}

func (l *localCredentialRepository) Save(ctx context.Context, cred models.Credential) error {
	if cred.SavedAt.IsZero() {
		cred.SavedAt = l.now()
	}

	query, args, err := buildSaveCredentialQuery(cred.Token, cred.UserID, cred.ExpiresAt, cred.SavedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		l.logger.Err(err).
			Str("func", "localCredentialRepository.Save").
			Int64("user_id", cred.UserID).
			Msg("failed to execute upsert for credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localCredentialRepository) Clear(ctx context.Context) error {
	query, args, err := buildClearCredentialQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		l.logger.Err(err).
			Str("func", "localCredentialRepository.Clear").
			Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localCredentialRepository) Revoke(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	query, args, err := buildRevokeCredentialQuery(token)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		l.logger.Err(err).
			Str("func", "localCredentialRepository.Revoke").
			Msg("failed to revoke credential")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
