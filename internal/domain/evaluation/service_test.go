package evaluation

import "testing"

func TestMergeAnswersOverlaysUpdates(t *testing.T) {
	stored := []Answer{
		{ID: "a1", QuestionID: "q1", SelfScore: intPtr(5)},
		{ID: "a2", QuestionID: "q2"},
	}
	updates := []AnswerUpdate{
		{ID: "a2", SelfScore: intPtr(7), ManagerScore: intPtr(8), Comment: "ok"},
	}

	merged := mergeAnswers(stored, updates)
	if merged[0].SelfScore == nil || *merged[0].SelfScore != 5 {
		t.Fatalf("untouched answer changed: %+v", merged[0])
	}
	if merged[1].SelfScore == nil || *merged[1].SelfScore != 7 || merged[1].ManagerScore == nil || *merged[1].ManagerScore != 8 {
		t.Fatalf("update not applied: %+v", merged[1])
	}
	if merged[1].Comment != "ok" {
		t.Fatalf("comment not applied: %q", merged[1].Comment)
	}
	if stored[1].SelfScore != nil {
		t.Fatal("stored slice was mutated")
	}
}

func TestEnsureOwnedAnswersRejectsForeignID(t *testing.T) {
	owned := map[string]bool{"a1": true, "a2": true}

	if err := ensureOwnedAnswers(owned, []AnswerUpdate{{ID: "a1"}, {ID: "a2"}}); err != nil {
		t.Fatalf("owned ids rejected: %v", err)
	}
	if err := ensureOwnedAnswers(owned, nil); err != nil {
		t.Fatalf("empty payload rejected: %v", err)
	}

	err := ensureOwnedAnswers(owned, []AnswerUpdate{{ID: "a1"}, {ID: "b9"}})
	if err != ErrAnswerNotOwned {
		t.Fatalf("expected ErrAnswerNotOwned, got %v", err)
	}
}

func TestMergeAnswersCanClearScores(t *testing.T) {
	stored := []Answer{{ID: "a1", SelfScore: intPtr(9), ManagerScore: intPtr(9)}}
	merged := mergeAnswers(stored, []AnswerUpdate{{ID: "a1"}})
	if merged[0].SelfScore != nil || merged[0].ManagerScore != nil {
		t.Fatalf("expected cleared scores, got %+v", merged[0])
	}
	if TrackStatus(merged, false) != StatusPendente {
		t.Fatal("cleared answers should regress the track")
	}
}
