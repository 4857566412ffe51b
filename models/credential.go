// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Credential is the bearer token issued at login or registration together
// with the claims the client could read from it.
//
// The token is opaque to the client. When it happens to be a JWT, UserID and
// ExpiresAt are filled from its "sub" and "exp" claims without verifying the
// signature; the server stays the only authority on validity.
type Credential struct {
	// Token is the compact bearer token string sent in the Authorization
	// header.
	Token string

	// UserID is the owner parsed from the "sub" claim, zero when unknown.
	UserID int64

	// ExpiresAt is the "exp" claim, nil when the token carries none.
	ExpiresAt *time.Time

	// SavedAt is the moment the credential was written to local storage.
	SavedAt time.Time
}

// Expired reports whether the credential carries an expiry that has already
// passed at now. Credentials without an expiry never expire locally.
func (c Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

// String returns the bearer token.
func (c Credential) String() string {
	return c.Token
}
