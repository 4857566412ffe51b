package models

import "math"

// Tier is the performance band of a finished session.
type Tier string

const (
	TierExcellent        Tier = "Excellent"
	TierGood             Tier = "Good"
	TierFair             Tier = "Fair"
	TierNeedsImprovement Tier = "Needs Improvement"
)

// PerformanceTier maps a session total score (0-100) to its band.
// A nil score is treated as zero.
func PerformanceTier(totalScore *int) Tier {
	score := 0
	if totalScore != nil {
		score = *totalScore
	}

	switch {
	case score >= 80:
		return TierExcellent
	case score >= 60:
		return TierGood
	case score >= 40:
		return TierFair
	default:
		return TierNeedsImprovement
	}
}

// Rating is the feedback band of a single answered question.
type Rating string

const (
	RatingStrong Rating = "strong"
	RatingFair   Rating = "fair"
	RatingWeak   Rating = "weak"
)

// QuestionRating maps a question score (0-20) to its band.
func QuestionRating(score *int) Rating {
	switch {
	case score != nil && *score >= 15:
		return RatingStrong
	case score != nil && *score >= 10:
		return RatingFair
	default:
		return RatingWeak
	}
}

// SessionStats aggregates the finished sessions (those with a total score):
// how many there are, their average score rounded half up and the best
// score. All three are 0 when nothing is finished yet.
func SessionStats(sessions []InterviewSession) (completed, average, best int) {
	sum := 0
	for _, s := range sessions {
		if s.TotalScore == nil {
			continue
		}
		completed++
		sum += *s.TotalScore
		best = max(best, *s.TotalScore)
	}
	if completed == 0 {
		return 0, 0, 0
	}

	return completed, int(math.Round(float64(sum) / float64(completed))), best
}
