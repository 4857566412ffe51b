package models

// MaxQuestionScore is the upper bound of a single question score.
const MaxQuestionScore = 20

// Question is one AI-generated interview question of a session.
//
// A nil AnswerText means the question is still unanswered. Answering is a
// one-way transition: the server fills AnswerText, AIFeedback and Score
// together and they are never cleared.
type Question struct {
	ID           int64   `json:"id" validate:"required"`
	SessionID    int64   `json:"sessionId"`
	QuestionText string  `json:"questionText" validate:"required"`
	AnswerText   *string `json:"answerText"`
	AIFeedback   *string `json:"aiFeedback"`
	Score        *int    `json:"score" validate:"omitempty,min=0,max=20"`
}

// Answered reports whether the question carries an answer.
func (q Question) Answered() bool {
	return q.AnswerText != nil
}

// SubmitAnswerRequest is the body of POST /api/questions/:id/answer.
type SubmitAnswerRequest struct {
	AnswerText string `json:"answerText" validate:"required"`
}
