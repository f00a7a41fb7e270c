package evaluation

import "testing"

func intPtr(v int) *int { return &v }

func TestWeightedScoreIgnoresUnpairedAnswers(t *testing.T) {
	answers := []Answer{
		{SelfScore: intPtr(8), ManagerScore: intPtr(9)},
		{SelfScore: intPtr(6), ManagerScore: nil},
	}

	selfAvg, managerAvg, ok := TrackAverages(answers)
	if !ok {
		t.Fatal("expected at least one validated pair")
	}
	if selfAvg != 8 || managerAvg != 9 {
		t.Fatalf("expected selfAvg=8 managerAvg=9, got %v and %v", selfAvg, managerAvg)
	}

	score, ok := WeightedScore(answers, DefaultWeights())
	if !ok {
		t.Fatal("expected a weighted score")
	}
	if score != 8.6 {
		t.Fatalf("expected weighted score 8.6, got %v", score)
	}
}

func TestWeightedScoreNoValidatedPairs(t *testing.T) {
	answers := []Answer{
		{SelfScore: intPtr(7)},
		{ManagerScore: intPtr(5)},
		{},
	}
	if _, ok := WeightedScore(answers, DefaultWeights()); ok {
		t.Fatal("expected no weighted score without a validated pair")
	}
}

func TestWeightedScoreRounding(t *testing.T) {
	answers := []Answer{
		{SelfScore: intPtr(7), ManagerScore: intPtr(8)},
		{SelfScore: intPtr(8), ManagerScore: intPtr(8)},
		{SelfScore: intPtr(7), ManagerScore: intPtr(9)},
	}
	// self avg 22/3, manager avg 25/3 -> 0.4*7.333 + 0.6*8.333 = 7.933 -> 7.9
	score, ok := WeightedScore(answers, DefaultWeights())
	if !ok {
		t.Fatal("expected a weighted score")
	}
	if score != 7.9 {
		t.Fatalf("expected 7.9, got %v", score)
	}
}

func TestCategoryAveragesCountSingleSidedAnswers(t *testing.T) {
	questions := []Question{
		{ID: "q1", Category: "Técnica"},
		{ID: "q2", Category: "Técnica"},
		{ID: "q3", Category: "Comportamental"},
	}
	answers := []Answer{
		{QuestionID: "q1", SelfScore: intPtr(8), ManagerScore: intPtr(6)},
		{QuestionID: "q2", SelfScore: intPtr(6)},
		{QuestionID: "q3", ManagerScore: intPtr(10)},
	}

	averages := CategoryAverages(answers, questions)
	if len(averages) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(averages))
	}

	tecnica := averages[0]
	if tecnica.Category != "Técnica" {
		t.Fatalf("expected category order preserved, got %s first", tecnica.Category)
	}
	if tecnica.SelfAvg == nil || *tecnica.SelfAvg != 7 {
		t.Fatalf("expected self avg 7 over both answers, got %v", tecnica.SelfAvg)
	}
	if tecnica.ManagerAvg == nil || *tecnica.ManagerAvg != 6 {
		t.Fatalf("expected manager avg 6 over the single scored answer, got %v", tecnica.ManagerAvg)
	}

	comportamental := averages[1]
	if comportamental.SelfAvg != nil {
		t.Fatalf("expected no self avg, got %v", *comportamental.SelfAvg)
	}
	if comportamental.ManagerAvg == nil || *comportamental.ManagerAvg != 10 {
		t.Fatalf("expected manager avg 10, got %v", comportamental.ManagerAvg)
	}
}

func TestTrackStatusTransitions(t *testing.T) {
	if got := TrackStatus(nil, false); got != StatusPendente {
		t.Fatalf("empty answers should be %s, got %s", StatusPendente, got)
	}

	answers := []Answer{{SelfScore: intPtr(5)}}
	if got := TrackStatus(answers, false); got != StatusConcluida {
		t.Fatalf("scored self track should be %s, got %s", StatusConcluida, got)
	}
	if got := TrackStatus(answers, true); got != StatusPendente {
		t.Fatalf("unscored manager track should be %s, got %s", StatusPendente, got)
	}

	// Clearing scores regresses the track; there is no locked state.
	answers[0].SelfScore = nil
	if got := TrackStatus(answers, false); got != StatusPendente {
		t.Fatalf("cleared track should regress to %s, got %s", StatusPendente, got)
	}
}

func TestTrackStatusRecomputeIsIdempotent(t *testing.T) {
	answers := []Answer{
		{SelfScore: intPtr(8), ManagerScore: intPtr(9)},
		{SelfScore: intPtr(6)},
	}
	first := TrackStatus(answers, false)
	second := TrackStatus(answers, false)
	if first != second {
		t.Fatalf("recompute changed status: %s then %s", first, second)
	}
	scoreA, _ := WeightedScore(answers, DefaultWeights())
	scoreB, _ := WeightedScore(answers, DefaultWeights())
	if scoreA != scoreB {
		t.Fatalf("recompute changed score: %v then %v", scoreA, scoreB)
	}
}

func TestTopPerformersStableOrderAndLimit(t *testing.T) {
	entries := []RankedEvaluation{
		{EvaluationID: "a", Score: 7.0},
		{EvaluationID: "b", Score: 9.5},
		{EvaluationID: "c", Score: 7.0},
		{EvaluationID: "d", Score: 8.2},
	}

	ranked := TopPerformers(entries, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(ranked))
	}
	if ranked[0].EvaluationID != "b" || ranked[1].EvaluationID != "d" {
		t.Fatalf("unexpected ranking head: %s, %s", ranked[0].EvaluationID, ranked[1].EvaluationID)
	}
	// a and c tie at 7.0; input order wins.
	if ranked[2].EvaluationID != "a" {
		t.Fatalf("expected stable tie-break to keep a, got %s", ranked[2].EvaluationID)
	}
}

func TestTopPerformersDoesNotMutateInput(t *testing.T) {
	entries := []RankedEvaluation{
		{EvaluationID: "x", Score: 1},
		{EvaluationID: "y", Score: 2},
	}
	_ = TopPerformers(entries, 10)
	if entries[0].EvaluationID != "x" {
		t.Fatal("input slice was reordered")
	}
}
