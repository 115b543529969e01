package achievements

import "testing"

func TestEvaluate_FirstBlood(t *testing.T) {
	earned := Evaluate(Progress{CorrectHits: 1, Lives: 3})
	if !hasAchievement(earned, FirstBlood) {
		t.Error("should earn First Blood with one correct hit")
	}
}

func TestEvaluate_NoFirstBlood(t *testing.T) {
	earned := Evaluate(Progress{Lives: 3})
	if hasAchievement(earned, FirstBlood) {
		t.Error("should not earn First Blood without a hit")
	}
}

func TestEvaluate_AccuracyMaster(t *testing.T) {
	earned := Evaluate(Progress{Accuracy: 90, ShotsFired: 10, Lives: 3})
	if !hasAchievement(earned, AccuracyMaster) {
		t.Error("should earn Accuracy Master at 90% over 10 shots")
	}
}

func TestEvaluate_AccuracyMasterNeedsShots(t *testing.T) {
	earned := Evaluate(Progress{Accuracy: 100, ShotsFired: 9, Lives: 3})
	if hasAchievement(earned, AccuracyMaster) {
		t.Error("should not earn Accuracy Master with 9 shots")
	}
}

func TestEvaluate_PrimeExpert(t *testing.T) {
	if !hasAchievement(Evaluate(Progress{MaxStreak: 10, Lives: 3}), PrimeExpert) {
		t.Error("should earn Prime Expert with a 10 streak")
	}
	if hasAchievement(Evaluate(Progress{MaxStreak: 9, Lives: 3}), PrimeExpert) {
		t.Error("should not earn Prime Expert with a 9 streak")
	}
}

func TestEvaluate_WaveMasterAndMathematician(t *testing.T) {
	earned := Evaluate(Progress{Wave: 10, Score: 1000, Lives: 3})
	if !hasAchievement(earned, WaveMaster) || !hasAchievement(earned, Mathematician) {
		t.Errorf("earned = %v, want wave_master and mathematician", earned)
	}
	earned = Evaluate(Progress{Wave: 9, Score: 999, Lives: 3})
	if hasAchievement(earned, WaveMaster) || hasAchievement(earned, Mathematician) {
		t.Errorf("earned = %v, want neither", earned)
	}
}

func TestEvaluate_ComboKing(t *testing.T) {
	if !hasAchievement(Evaluate(Progress{MaxCombo: 5, Lives: 3}), ComboKing) {
		t.Error("should earn Combo King with a 5 combo")
	}
}

func TestEvaluate_Survivor(t *testing.T) {
	if !hasAchievement(Evaluate(Progress{Lives: 1}), Survivor) {
		t.Error("should earn Survivor with one life left")
	}
	if hasAchievement(Evaluate(Progress{Lives: 0}), Survivor) {
		t.Error("should not earn Survivor with no lives left")
	}
}

func TestEvaluate_NoHintsOnlyAtEndGame(t *testing.T) {
	p := Progress{Wave: 3, Lives: 2}
	if hasAchievement(Evaluate(p), NoHints) {
		t.Error("No Hints should not be evaluated during play")
	}
	if !hasAchievement(EvaluateEndGame(p), NoHints) {
		t.Error("should earn No Hints at wave 3 with no hints used")
	}
	p.HintsUsed = 1
	if hasAchievement(EvaluateEndGame(p), NoHints) {
		t.Error("should not earn No Hints after using one")
	}
	p = Progress{Wave: 2, Lives: 2}
	if hasAchievement(EvaluateEndGame(p), NoHints) {
		t.Error("should not earn No Hints before wave 3")
	}
}

func TestEvaluate_MultipleAchievements(t *testing.T) {
	p := Progress{
		CorrectHits:  25,
		ShotsFired:   25,
		Accuracy:     100,
		SpeedDemon:   true,
		PerfectWaves: 3,
		MaxStreak:    25,
		MaxCombo:     6,
		Wave:         10,
		Lives:        1,
		Score:        1200,
	}
	if got := EvaluateEndGame(p); len(got) != len(All) {
		t.Errorf("should earn all %d achievements, got %d", len(All), len(got))
	}
}

func TestCatalogOrderMatchesAll(t *testing.T) {
	if len(Order) != len(All) {
		t.Fatalf("Order has %d ids, All has %d", len(Order), len(All))
	}
	for _, id := range Order {
		if All[id].ID != id {
			t.Errorf("All[%s].ID = %s", id, All[id].ID)
		}
	}
}

func hasAchievement(ids []ID, id ID) bool {
	for _, got := range ids {
		if got == id {
			return true
		}
	}
	return false
}
