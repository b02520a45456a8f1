package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/guesscode/guesscode-cli/internal/dbx"
)

// SQLiteStore keeps the credential in the local client database, in a
// small key/value table. Writes run in a transaction so the token/userId
// pair stays atomic even if the process dies mid-write.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

// Token returns the stored access token, or "" when none is stored.
func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	return s.get(ctx, keyAuthToken)
}

// UserID returns the stored user id, or 0 when none is stored.
func (s *SQLiteStore) UserID(ctx context.Context) (int64, error) {
	v, err := s.get(ctx, keyUserID)
	if err != nil || v == "" {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stored user id is not numeric: %w", err)
	}
	return id, nil
}

// SetTokenData stores the token and user id as one credential, in a
// single transaction.
func (s *SQLiteStore) SetTokenData(ctx context.Context, token string, userID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string]string{
			keyAuthToken: token,
			keyUserID:    strconv.FormatInt(userID, 10),
		} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO credentials (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// RemoveTokenData clears both halves of the credential, in a single
// transaction.
func (s *SQLiteStore) RemoveTokenData(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key IN (?, ?)`, keyAuthToken, keyUserID)
		if err != nil {
			return fmt.Errorf("failed to remove credentials: %w", err)
		}
		return nil
	})
}
