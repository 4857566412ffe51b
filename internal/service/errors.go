package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrNotAuthenticated    = errors.New("not signed in")
	ErrCredentialExpired   = errors.New("stored credential has expired")

	ErrSessionNotFound  = errors.New("session not found")
	ErrQuestionNotFound = errors.New("question not found")

	ErrSavingCredential = errors.New("error saving credential")
)
