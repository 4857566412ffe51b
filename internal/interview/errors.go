package interview

import "errors"

var (
	ErrNoQuestions     = errors.New("session has no questions yet")
	ErrEmptyAnswer     = errors.New("answer must not be empty")
	ErrSubmitInFlight  = errors.New("an answer is already being submitted")
	ErrNotAnswering    = errors.New("the active question is not awaiting an answer")
	ErrNotReviewing    = errors.New("the active question is not being reviewed")
	ErrSessionNotReady = errors.New("session is not loaded yet")
)
