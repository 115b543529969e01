package achievements

import "primehunt/internal/gameconfig"

type ID string

const (
	FirstBlood     ID = "first_blood"
	AccuracyMaster ID = "accuracy_master"
	SpeedDemon     ID = "speed_demon"
	Perfectionist  ID = "perfectionist"
	PrimeExpert    ID = "prime_expert"
	WaveMaster     ID = "wave_master"
	Mathematician  ID = "mathematician"
	NoHints        ID = "no_hints"
	ComboKing      ID = "combo_king"
	Survivor       ID = "survivor"
)

type Achievement struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Order is the display order of the catalog.
var Order = []ID{FirstBlood, AccuracyMaster, SpeedDemon, Perfectionist, PrimeExpert, WaveMaster, Mathematician, NoHints, ComboKing, Survivor}

var All = map[ID]Achievement{
	FirstBlood:     {ID: FirstBlood, Name: "First Blood", Description: "Destroy your first prime number", Icon: "🎯"},
	AccuracyMaster: {ID: AccuracyMaster, Name: "Accuracy Master", Description: "Achieve 90% accuracy in a game", Icon: "🎯"},
	SpeedDemon:     {ID: SpeedDemon, Name: "Speed Demon", Description: "Destroy 20 primes in under 60 seconds", Icon: "⚡"},
	Perfectionist:  {ID: Perfectionist, Name: "Perfectionist", Description: "Complete 3 waves without hitting a composite", Icon: "✨"},
	PrimeExpert:    {ID: PrimeExpert, Name: "Prime Expert", Description: "Get a 10-prime hit streak", Icon: "🧠"},
	WaveMaster:     {ID: WaveMaster, Name: "Wave Master", Description: "Reach wave 10", Icon: "🌊"},
	Mathematician:  {ID: Mathematician, Name: "Mathematician", Description: "Score 1000 points in a single game", Icon: "🔢"},
	NoHints:        {ID: NoHints, Name: "No Hints Needed", Description: "Complete a game without using any hints", Icon: "🧩"},
	ComboKing:      {ID: ComboKing, Name: "Combo King", Description: "Get a 5x combo", Icon: "👑"},
	Survivor:       {ID: Survivor, Name: "Survivor", Description: "Win a game with only 1 life remaining", Icon: "💪"},
}

// Progress is the state the unlock rules are evaluated against.
type Progress struct {
	CorrectHits  int
	ShotsFired   int
	Accuracy     int
	SpeedDemon   bool
	PerfectWaves int
	MaxStreak    int
	MaxCombo     int
	HintsUsed    int
	Wave         int
	Lives        int
	Score        int
}

// Evaluate returns the achievements whose in-game conditions hold.
func Evaluate(p Progress) []ID {
	var earned []ID

	if p.CorrectHits >= 1 {
		earned = append(earned, FirstBlood)
	}
	if p.Accuracy >= gameconfig.AccuracyMasterThreshold && p.ShotsFired >= gameconfig.AccuracyMasterMinShots {
		earned = append(earned, AccuracyMaster)
	}
	if p.SpeedDemon {
		earned = append(earned, SpeedDemon)
	}
	if p.PerfectWaves >= gameconfig.PerfectionistWaves {
		earned = append(earned, Perfectionist)
	}
	if p.MaxStreak >= gameconfig.PrimeExpertStreak {
		earned = append(earned, PrimeExpert)
	}
	if p.Wave >= gameconfig.WaveMasterWave {
		earned = append(earned, WaveMaster)
	}
	if p.Score >= gameconfig.MathematicianScore {
		earned = append(earned, Mathematician)
	}
	if p.MaxCombo >= gameconfig.ComboKingCombo {
		earned = append(earned, ComboKing)
	}
	if p.Lives == 1 {
		earned = append(earned, Survivor)
	}

	return earned
}

// EvaluateEndGame adds the end-of-game rules to Evaluate.
func EvaluateEndGame(p Progress) []ID {
	var earned []ID
	if p.HintsUsed == 0 && p.Wave >= gameconfig.NoHintsMinWave {
		earned = append(earned, NoHints)
	}
	return append(earned, Evaluate(p)...)
}
