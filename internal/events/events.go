package events

// Type names a game event.
type Type string

const (
	EnemySpawned         Type = "EnemySpawned"
	EnemyDestroyed       Type = "EnemyDestroyed"
	EnemyEscaped         Type = "EnemyEscaped"
	CorrectHit           Type = "CorrectHit"
	WrongHit             Type = "WrongHit"
	ScoreChanged         Type = "ScoreChanged"
	LivesChanged         Type = "LivesChanged"
	ComboChanged         Type = "ComboChanged"
	WaveStarted          Type = "WaveStarted"
	WaveCompleted        Type = "WaveCompleted"
	WaveAdvanced         Type = "WaveAdvanced"
	PowerUpSpawned       Type = "PowerUpSpawned"
	PowerUpCollected     Type = "PowerUpCollected"
	EffectStarted        Type = "EffectStarted"
	EffectEnded          Type = "EffectEnded"
	HintShown            Type = "HintShown"
	Feedback             Type = "Feedback"
	AchievementShown     Type = "AchievementShown"
	AchievementDismissed Type = "AchievementDismissed"
	SoundCue             Type = "SoundCue"
	TimerChanged         Type = "TimerChanged"
	ChallengeProgress    Type = "ChallengeProgress"
	GameOver             Type = "GameOver"
)

type Event struct {
	Type Type
	Data any
}

// Listener receives dispatched events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Dispatcher delivers events synchronously, in subscription order, on the
// caller's goroutine.
type Dispatcher struct {
	nextID    int
	listeners map[Type][]subscription
	all       []subscription
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[Type][]subscription),
	}
}

// Subscribe registers fn for one event type and returns an id for Unsubscribe.
func (d *Dispatcher) Subscribe(t Type, fn Listener) int {
	d.nextID++
	d.listeners[t] = append(d.listeners[t], subscription{id: d.nextID, fn: fn})
	return d.nextID
}

// SubscribeAll registers fn for every event type.
func (d *Dispatcher) SubscribeAll(fn Listener) int {
	d.nextID++
	d.all = append(d.all, subscription{id: d.nextID, fn: fn})
	return d.nextID
}

func (d *Dispatcher) Unsubscribe(id int) {
	for t, subs := range d.listeners {
		d.listeners[t] = remove(subs, id)
	}
	d.all = remove(d.all, id)
}

func remove(subs []subscription, id int) []subscription {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i:i], subs[i+1:]...)
		}
	}
	return subs
}

func (d *Dispatcher) Dispatch(ev Event) {
	for _, s := range d.listeners[ev.Type] {
		s.fn(ev)
	}
	for _, s := range d.all {
		s.fn(ev)
	}
}

// Emit is shorthand for Dispatch(Event{Type: t, Data: data}).
func (d *Dispatcher) Emit(t Type, data any) {
	d.Dispatch(Event{Type: t, Data: data})
}
