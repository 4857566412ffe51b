package tui

import (
	"github.com/MKhiriev/ai-interviewer/internal/interview"
	"github.com/MKhiriev/ai-interviewer/internal/navigation"
	"github.com/MKhiriev/ai-interviewer/models"
)

// NavigateTo switches the root model to Route. The router listener delivers
// it for every navigation, whoever triggered it.
type NavigateTo struct {
	Route navigation.Route
}

type authResultMsg struct {
	err error
}

type userLoadedMsg struct {
	user models.User
	err  error
}

type sessionsLoadedMsg struct {
	sessions []models.InterviewSession
	err      error
}

type sessionCreatedMsg struct {
	session models.InterviewSession
	err     error
}

type engineMsg struct {
	snapshot interview.Snapshot
	err      error
}

type resultsLoadedMsg struct {
	details models.SessionDetails
	err     error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
