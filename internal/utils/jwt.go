package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

// TokenClaims holds the claims the client reads from a bearer token.
//
// The signature is never verified on the client: the server stays the only
// authority on whether the token is valid. Claims are used for display and
// for dropping a token that has visibly expired.
type TokenClaims struct {
	UserID    int64
	ExpiresAt *time.Time
}

// ParseTokenClaims reads "sub" and "exp" from tokenString without verifying
// its signature.
//
// Returns ErrNotJWT (wrapped) if tokenString is not a parseable JWT. A
// missing or non-numeric subject leaves UserID zero; a missing exp leaves
// ExpiresAt nil.
//
// Example usage:
//
//	claims, err := utils.ParseTokenClaims(token)
//	if err == nil && claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
//	    // token expired locally
//	}
func ParseTokenClaims(tokenString string) (TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return TokenClaims{}, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, fmt.Errorf("%w: invalid token claims", ErrNotJWT)
	}

	var result TokenClaims
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			result.UserID = id
		}
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		result.ExpiresAt = &t
	}

	return result, nil
}

// ParseUserIDFromJWT returns the numeric "sub" claim of tokenString without
// verifying its signature.
func ParseUserIDFromJWT(tokenString string) (int64, error) {
	claims, err := ParseTokenClaims(tokenString)
	if err != nil {
		return 0, err
	}
	if claims.UserID == 0 {
		return 0, errors.New("token has no numeric subject")
	}
	return claims.UserID, nil
}
