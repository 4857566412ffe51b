// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	credentialsTable = "credentials"

	// credentialName is the fixed key the bearer token is stored under.
	credentialName = "auth_token"
)

var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildLoadCredentialQuery() (string, []any, error) {
	return sqlite.
		Select("token", "user_id", "expires_at", "saved_at").
		From(credentialsTable).
		Where(sq.Eq{"name": credentialName}).
		Limit(1).
		ToSql()
}

func buildSaveCredentialQuery(token string, userID int64, expiresAt *time.Time, savedAt time.Time) (string, []any, error) {
	return sqlite.
		Insert(credentialsTable).
		Columns("name", "token", "user_id", "expires_at", "saved_at").
		Values(credentialName, token, userID, expiresAt, savedAt).
		Suffix(`ON CONFLICT(name) DO UPDATE SET
			token      = excluded.token,
			user_id    = excluded.user_id,
			expires_at = excluded.expires_at,
			saved_at   = excluded.saved_at`).
		ToSql()
}

func buildClearCredentialQuery() (string, []any, error) {
	return sqlite.
		Delete(credentialsTable).
		Where(sq.Eq{"name": credentialName}).
		ToSql()
}

func buildRevokeCredentialQuery(token string) (string, []any, error) {
	return sqlite.
		Delete(credentialsTable).
		Where(sq.Eq{"name": credentialName}).
		Where(sq.Eq{"token": token}).
		ToSql()
}
