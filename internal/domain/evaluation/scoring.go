package evaluation

import (
	"math"
	"sort"
)

// Weights is the self/manager blend applied to validated answer pairs. The
// 40/60 split is the company-wide policy default.
type Weights struct {
	Self    float64
	Manager float64
}

func DefaultWeights() Weights {
	return Weights{Self: DefaultSelfWeight, Manager: DefaultManagerWeight}
}

// Round1 rounds to one decimal place for display.
func Round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// ValidatedPairs returns the answers scored on both tracks. Only these count
// toward the weighted score and the top-performer ranking; an answer with a
// single side filled contributes to that track's raw average only.
func ValidatedPairs(answers []Answer) []Answer {
	var pairs []Answer
	for _, answer := range answers {
		if answer.SelfScore != nil && answer.ManagerScore != nil {
			pairs = append(pairs, answer)
		}
	}
	return pairs
}

// TrackAverages computes the self and manager arithmetic means over the
// validated-pair subset. ok is false when no answer has both sides scored.
func TrackAverages(answers []Answer) (selfAvg, managerAvg float64, ok bool) {
	pairs := ValidatedPairs(answers)
	if len(pairs) == 0 {
		return 0, 0, false
	}
	var selfSum, managerSum int
	for _, pair := range pairs {
		selfSum += *pair.SelfScore
		managerSum += *pair.ManagerScore
	}
	count := float64(len(pairs))
	return float64(selfSum) / count, float64(managerSum) / count, true
}

// WeightedScore blends the validated-pair averages; the second return is
// false when the evaluation has no validated pair.
func WeightedScore(answers []Answer, weights Weights) (float64, bool) {
	selfAvg, managerAvg, ok := TrackAverages(answers)
	if !ok {
		return 0, false
	}
	return Round1(selfAvg*weights.Self + managerAvg*weights.Manager), true
}

type CategoryAverage struct {
	Category     string   `json:"category"`
	SelfAvg      *float64 `json:"selfAvg"`
	ManagerAvg   *float64 `json:"managerAvg"`
	SelfCount    int      `json:"selfCount"`
	ManagerCount int      `json:"managerCount"`
}

// CategoryAverages computes per-category raw averages for each track
// independently: every answer with that side scored counts, paired or not.
func CategoryAverages(answers []Answer, questions []Question) []CategoryAverage {
	categoryByQuestion := make(map[string]string, len(questions))
	var order []string
	seen := map[string]bool{}
	for _, question := range questions {
		categoryByQuestion[question.ID] = question.Category
		if !seen[question.Category] {
			seen[question.Category] = true
			order = append(order, question.Category)
		}
	}

	type sums struct {
		selfSum, selfN       int
		managerSum, managerN int
	}
	totals := map[string]*sums{}
	for _, answer := range answers {
		category, ok := categoryByQuestion[answer.QuestionID]
		if !ok {
			continue
		}
		total := totals[category]
		if total == nil {
			total = &sums{}
			totals[category] = total
		}
		if answer.SelfScore != nil {
			total.selfSum += *answer.SelfScore
			total.selfN++
		}
		if answer.ManagerScore != nil {
			total.managerSum += *answer.ManagerScore
			total.managerN++
		}
	}

	averages := make([]CategoryAverage, 0, len(order))
	for _, category := range order {
		avg := CategoryAverage{Category: category}
		if total := totals[category]; total != nil {
			avg.SelfCount = total.selfN
			avg.ManagerCount = total.managerN
			if total.selfN > 0 {
				value := Round1(float64(total.selfSum) / float64(total.selfN))
				avg.SelfAvg = &value
			}
			if total.managerN > 0 {
				value := Round1(float64(total.managerSum) / float64(total.managerN))
				avg.ManagerAvg = &value
			}
		}
		averages = append(averages, avg)
	}
	return averages
}

// TrackStatus derives a track's status from its answers: CONCLUIDA once at
// least one answer on that track is scored, Pendente otherwise. Clearing all
// scores regresses the track; the update contract permits that.
func TrackStatus(answers []Answer, manager bool) string {
	for _, answer := range answers {
		score := answer.SelfScore
		if manager {
			score = answer.ManagerScore
		}
		if score != nil {
			return StatusConcluida
		}
	}
	return StatusPendente
}

type RankedEvaluation struct {
	EvaluationID string  `json:"evaluationId"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Department   string  `json:"department"`
	Score        float64 `json:"score"`
}

// TopPerformers ranks evaluations by weighted score descending, ties broken
// by input order, and keeps the first limit entries.
func TopPerformers(entries []RankedEvaluation, limit int) []RankedEvaluation {
	ranked := make([]RankedEvaluation, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
