package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int) *int { return &v }

func TestPerformanceTier(t *testing.T) {
	tests := []struct {
		score *int
		want  Tier
	}{
		{score: ptr(100), want: TierExcellent},
		{score: ptr(80), want: TierExcellent},
		{score: ptr(79), want: TierGood},
		{score: ptr(60), want: TierGood},
		{score: ptr(59), want: TierFair},
		{score: ptr(40), want: TierFair},
		{score: ptr(39), want: TierNeedsImprovement},
		{score: ptr(0), want: TierNeedsImprovement},
		{score: nil, want: TierNeedsImprovement},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PerformanceTier(tt.score), "score %v", tt.score)
	}
}

func TestQuestionRating(t *testing.T) {
	tests := []struct {
		score *int
		want  Rating
	}{
		{score: ptr(20), want: RatingStrong},
		{score: ptr(15), want: RatingStrong},
		{score: ptr(14), want: RatingFair},
		{score: ptr(10), want: RatingFair},
		{score: ptr(9), want: RatingWeak},
		{score: nil, want: RatingWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuestionRating(tt.score), "score %v", tt.score)
	}
}

func TestSessionDetails_Complete(t *testing.T) {
	answer := "a"

	assert.False(t, SessionDetails{}.Complete(), "no questions")

	partial := SessionDetails{Questions: []Question{{ID: 1, AnswerText: &answer}, {ID: 2}}}
	assert.False(t, partial.Complete())
	assert.Equal(t, 1, partial.AnsweredCount())

	done := SessionDetails{Questions: []Question{{ID: 1, AnswerText: &answer}}}
	assert.True(t, done.Complete())
	assert.True(t, InterviewSession{}.InProgress())
	assert.False(t, InterviewSession{TotalScore: ptr(50)}.InProgress())
}

func TestSessionStats(t *testing.T) {
	tests := []struct {
		name     string
		sessions []InterviewSession
		want     [3]int // completed, average, best
	}{
		{name: "no sessions"},
		{
			name:     "only in progress",
			sessions: []InterviewSession{{ID: 1}, {ID: 2}},
		},
		{
			name:     "in progress sessions are skipped",
			sessions: []InterviewSession{{ID: 1, TotalScore: ptr(70)}, {ID: 2}, {ID: 3, TotalScore: ptr(90)}},
			want:     [3]int{2, 80, 90},
		},
		{
			name:     "average rounds half up",
			sessions: []InterviewSession{{TotalScore: ptr(60)}, {TotalScore: ptr(61)}},
			want:     [3]int{2, 61, 61},
		},
		{
			name:     "average rounds down",
			sessions: []InterviewSession{{TotalScore: ptr(10)}, {TotalScore: ptr(10)}, {TotalScore: ptr(11)}},
			want:     [3]int{3, 10, 11},
		},
		{
			name:     "zero score counts as finished",
			sessions: []InterviewSession{{TotalScore: ptr(0)}},
			want:     [3]int{1, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completed, average, best := SessionStats(tt.sessions)
			assert.Equal(t, tt.want, [3]int{completed, average, best})
		})
	}
}
