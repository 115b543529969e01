package powerup

import (
	"encoding/json"
	"fmt"
	"time"

	"primehunt/internal/gameconfig"
)

type Kind int

const (
	Shield Kind = iota
	SlowMotion
	PrimeVision
	RapidFire
	ScoreMultiplier
	LifeRestore
	Freeze
)

// Kinds lists every power-up in catalog order.
var Kinds = []Kind{Shield, SlowMotion, PrimeVision, RapidFire, ScoreMultiplier, LifeRestore, Freeze}

type Info struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Color       uint32        `json:"color"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"-"`
}

var catalog = map[Kind]Info{
	Shield:          {Key: "SHIELD", Name: "Shield", Color: 0x00ffff, Icon: "S", Description: "Protects from one wrong hit"},
	SlowMotion:      {Key: "SLOW_MOTION", Name: "Slow Motion", Color: 0x9966ff, Icon: "T", Description: "Slows enemies for 5 seconds", Duration: gameconfig.SlowMotionDuration},
	PrimeVision:     {Key: "PRIME_VISION", Name: "Prime Vision", Color: 0x00ff00, Icon: "V", Description: "Highlights primes for 3 seconds", Duration: gameconfig.PrimeVisionDuration},
	RapidFire:       {Key: "RAPID_FIRE", Name: "Rapid Fire", Color: 0xff6600, Icon: "R", Description: "Double fire rate for 5 seconds", Duration: gameconfig.RapidFireDuration},
	ScoreMultiplier: {Key: "SCORE_MULTIPLIER", Name: "2x Score", Color: 0xffff00, Icon: "2", Description: "2x points for 10 seconds", Duration: gameconfig.ScoreMultiplierDuration},
	LifeRestore:     {Key: "LIFE_RESTORE", Name: "Extra Life", Color: 0xff0066, Icon: "+", Description: "Gain +1 life"},
	Freeze:          {Key: "FREEZE", Name: "Freeze", Color: 0x66ccff, Icon: "F", Description: "Stops all enemies for 3 seconds", Duration: gameconfig.FreezeDuration},
}

func (k Kind) Info() Info {
	return catalog[k]
}

func (k Kind) String() string {
	if info, ok := catalog[k]; ok {
		return info.Key
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Timed reports whether the effect expires on its own.
func (k Kind) Timed() bool {
	return catalog[k].Duration > 0
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Parse maps a catalog key such as "RAPID_FIRE" to its Kind.
func Parse(key string) (Kind, bool) {
	for k, info := range catalog {
		if info.Key == key {
			return k, true
		}
	}
	return 0, false
}
