package models

import "time"

// InterviewSession is one practice run owned by a user.
//
// TotalScore stays nil while the session is in progress. Once the server
// finalises scoring it is set and never changes again.
type InterviewSession struct {
	ID         int64      `json:"id" validate:"required"`
	UserID     int64      `json:"userId"`
	Role       string     `json:"role" validate:"required"`
	Level      string     `json:"level" validate:"required"`
	TechStack  []string   `json:"techStack"`
	TotalScore *int       `json:"totalScore" validate:"omitempty,min=0,max=100"`
	Summary    *string    `json:"summary"`
	CreatedAt  *time.Time `json:"createdAt"`
}

// InProgress reports whether the server has not finalised the session score yet.
func (s InterviewSession) InProgress() bool {
	return s.TotalScore == nil
}

// CreateSessionRequest is the body of POST /api/sessions.
type CreateSessionRequest struct {
	Role      string   `json:"role" validate:"required"`
	Level     string   `json:"level" validate:"required"`
	TechStack []string `json:"techStack" validate:"required,min=1,dive,required"`
}

// SessionDetails is the response of GET /api/sessions/:id. Questions are in
// server order, which is stable across fetches of the same session.
type SessionDetails struct {
	Session   *InterviewSession `json:"session" validate:"required"`
	Questions []Question        `json:"questions" validate:"required,dive"`
}

// Complete reports whether every question of the session has an answer.
// An empty question list is never complete.
func (d SessionDetails) Complete() bool {
	if len(d.Questions) == 0 {
		return false
	}
	for _, q := range d.Questions {
		if !q.Answered() {
			return false
		}
	}
	return true
}

// AnsweredCount returns how many questions already carry an answer.
func (d SessionDetails) AnsweredCount() int {
	n := 0
	for _, q := range d.Questions {
		if q.Answered() {
			n++
		}
	}
	return n
}
