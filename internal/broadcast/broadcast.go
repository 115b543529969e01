package broadcast

import (
	"sync"

	"primehunt/internal/events"
)

const LeaderboardEvent = "leaderboard"

type Message struct {
	Event string
	Data  string
}

// Broadcaster fans out server-sent events to every subscribed stream.
type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan Message]bool
}

func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan Message]bool),
	}
	go func() {
		for u := range bus.LeaderboardUpdates {
			b.Broadcast(LeaderboardEvent, string(u.Payload))
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

func (b *Broadcaster) Count() int {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	return len(b.Clients)
}

func (b *Broadcaster) Broadcast(event string, data string) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- Message{Event: event, Data: data}:
		default:
			// skip clients with full data channels
		}
	}
}
