package session

import "primehunt/internal/events"

// Server message types beyond the game events.
const (
	MsgState   = "state"
	MsgPaused  = "paused"
	MsgResumed = "resumed"
)

var wireTypes = map[events.Type]string{
	events.EnemySpawned:         "spawn",
	events.EnemyDestroyed:       "destroyed",
	events.EnemyEscaped:         "escaped",
	events.CorrectHit:           "correct",
	events.WrongHit:             "wrong",
	events.ScoreChanged:         "score",
	events.LivesChanged:         "lives",
	events.ComboChanged:         "combo",
	events.WaveStarted:          "wave",
	events.WaveCompleted:        "wave_complete",
	events.PowerUpSpawned:       "powerup",
	events.PowerUpCollected:     "collected",
	events.EffectStarted:        "effect",
	events.EffectEnded:          "effect_end",
	events.HintShown:            "hint",
	events.Feedback:             "feedback",
	events.AchievementShown:     "achievement",
	events.AchievementDismissed: "achievement_end",
	events.SoundCue:             "sound",
	events.TimerChanged:         "timer",
	events.ChallengeProgress:    "progress",
	events.GameOver:             "game_over",
}

// WireType names an event on the websocket. Events without a wire name stay
// on the server.
func WireType(t events.Type) (string, bool) {
	name, ok := wireTypes[t]
	return name, ok
}
