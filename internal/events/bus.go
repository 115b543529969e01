package events

// LeaderboardUpdate carries a mode's board after a successful insert.
type LeaderboardUpdate struct {
	Mode    string
	Payload []byte
}

// Bus carries cross-session notifications to long-lived consumers.
type Bus struct {
	LeaderboardUpdates chan LeaderboardUpdate
}

func NewBus() *Bus {
	return &Bus{
		LeaderboardUpdates: make(chan LeaderboardUpdate, 10),
	}
}

// PublishLeaderboard sends without blocking; updates are dropped when the
// buffer is full.
func (b *Bus) PublishLeaderboard(u LeaderboardUpdate) bool {
	select {
	case b.LeaderboardUpdates <- u:
		return true
	default:
		return false
	}
}
