package interview

import (
	"fmt"

	"github.com/MKhiriev/ai-interviewer/models"
)

// Phase is the stage of an open session.
type Phase int

const (
	// PhaseLoading precedes the first successful load.
	PhaseLoading Phase = iota
	// PhaseAnswering accepts a draft answer for the active question.
	PhaseAnswering
	// PhaseReviewing shows the answer and feedback of the active question.
	PhaseReviewing
	// PhaseCompleted is terminal; the session belongs on the results view.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseAnswering:
		return "answering"
	case PhaseReviewing:
		return "reviewing"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is a phase together with the active question index. Index is
// meaningful in PhaseAnswering and PhaseReviewing only.
type State struct {
	Phase Phase
	Index int
}

func (s State) String() string {
	switch s.Phase {
	case PhaseAnswering, PhaseReviewing:
		return fmt.Sprintf("%s(%d)", s.Phase, s.Index)
	default:
		return s.Phase.String()
	}
}

// Snapshot is a copy of the engine state safe to read without locking.
type Snapshot struct {
	State State

	Session   models.InterviewSession
	Questions []models.Question

	// Draft is the unsent answer of the active question.
	Draft string
	// Submitting is set while an answer is outstanding.
	Submitting bool
}

// Total returns the number of questions of the session.
func (s Snapshot) Total() int {
	return len(s.Questions)
}

// Current returns the active question, if the state has one.
func (s Snapshot) Current() (models.Question, bool) {
	switch s.State.Phase {
	case PhaseAnswering, PhaseReviewing:
	default:
		return models.Question{}, false
	}
	if s.State.Index < 0 || s.State.Index >= len(s.Questions) {
		return models.Question{}, false
	}
	return s.Questions[s.State.Index], true
}

// Progress returns the share of the interview behind the active question,
// in percent: the active index over the question count, 100 once completed.
func (s Snapshot) Progress() int {
	switch {
	case s.State.Phase == PhaseCompleted:
		return 100
	case len(s.Questions) == 0 || s.State.Phase == PhaseLoading:
		return 0
	default:
		return s.State.Index * 100 / len(s.Questions)
	}
}

// Last reports whether the active question is the final one.
func (s Snapshot) Last() bool {
	return len(s.Questions) > 0 && s.State.Index == len(s.Questions)-1
}
