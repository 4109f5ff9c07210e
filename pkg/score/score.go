// pkg/score/score.go
package score

import (
	ctxpkg "context"
	"encoding/json"
	"time"

	"github.com/dock108/mini-golf-break-sub004/pkg/event"
	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
)

// HoleState is the score record for one hole.
type HoleState struct {
	Completed bool      `json:"completed"`
	Strokes   int       `json:"strokes"`
	Par       int       `json:"par"`
	Hazards   []string  `json:"hazards,omitempty"`
	StartTime time.Time `json:"-"`
	EndTime   time.Time `json:"-"`
}

// MarshalJSON emits null for unset timestamps instead of the zero time.
func (s HoleState) MarshalJSON() ([]byte, error) {
	type bare HoleState
	out := struct {
		bare
		StartTime *time.Time `json:"startTime"`
		EndTime   *time.Time `json:"endTime"`
	}{bare: bare(s)}
	if !s.StartTime.IsZero() {
		out.StartTime = &s.StartTime
	}
	if !s.EndTime.IsZero() {
		out.EndTime = &s.EndTime
	}
	return json.Marshal(out)
}

// StatePatch is a partial hole-state update. Nil fields are left untouched;
// AddHazard appends one hazard kind to the record.
type StatePatch struct {
	Completed *bool
	Strokes   *int
	Par       *int
	AddHazard string
	StartTime *time.Time
	EndTime   *time.Time
}

// Manager tracks per-hole scoring. It is driven entirely by events: hole
// lifecycle, ball hits and hazard penalties all funnel through the single
// Update primitive, so every mutation publishes exactly one state snapshot.
type Manager struct {
	logger *logging.Logger
	events *event.Bus
	now    func() time.Time

	states map[int]HoleState
	subs   []*event.Subscription
}

// NewManager creates a score manager and subscribes it to the gameplay
// events it tracks.
func NewManager(logger *logging.Logger, events *event.Bus) *Manager {
	m := &Manager{
		logger: logging.OrDefault(logger),
		events: events,
		now:    time.Now,
		states: make(map[int]HoleState),
	}
	if events != nil {
		m.subs = []*event.Subscription{
			events.Subscribe(event.HoleStarted, m.onHoleStarted),
			events.Subscribe(event.HoleCompleted, m.onHoleCompleted),
			events.Subscribe(event.BallHit, m.onBallHit),
			events.Subscribe(event.HazardPenalty, m.onHazardPenalty),
		}
	}
	return m
}

// Reset seeds one fresh state per hole with the given pars, discarding any
// previous scores.
func (m *Manager) Reset(pars []int) {
	m.states = make(map[int]HoleState, len(pars))
	for i, par := range pars {
		m.states[i] = HoleState{Par: par}
	}
}

// Update merges a patch into the hole's state and publishes the updated
// snapshot. Updates for unknown hole indices are dropped.
func (m *Manager) Update(index int, patch StatePatch) {
	state, ok := m.states[index]
	if !ok {
		m.logger.Debug(ctxpkg.Background(), "score update for unknown hole",
			"hole_index", index,
		)
		return
	}

	if patch.Completed != nil {
		state.Completed = *patch.Completed
	}
	if patch.Strokes != nil {
		state.Strokes = *patch.Strokes
	}
	if patch.Par != nil {
		state.Par = *patch.Par
	}
	if patch.AddHazard != "" {
		state.Hazards = append(state.Hazards, patch.AddHazard)
	}
	if patch.StartTime != nil {
		state.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		state.EndTime = *patch.EndTime
	}

	m.states[index] = state
	if m.events != nil {
		m.events.Publish(event.NewHoleStateUpdatedEvent(m, index, state))
	}
}

// State returns the recorded state for a hole.
func (m *Manager) State(index int) (HoleState, bool) {
	s, ok := m.states[index]
	return s, ok
}

// Snapshot returns a copy of every hole's state keyed by index.
func (m *Manager) Snapshot() map[int]HoleState {
	out := make(map[int]HoleState, len(m.states))
	for i, s := range m.states {
		out[i] = s
	}
	return out
}

// TotalStrokes sums strokes across all holes.
func (m *Manager) TotalStrokes() int {
	total := 0
	for _, s := range m.states {
		total += s.Strokes
	}
	return total
}

// RelativeToPar returns strokes minus par, counted over completed holes only.
func (m *Manager) RelativeToPar() int {
	diff := 0
	for _, s := range m.states {
		if s.Completed {
			diff += s.Strokes - s.Par
		}
	}
	return diff
}

// Detach cancels the manager's event subscriptions.
func (m *Manager) Detach() {
	for _, sub := range m.subs {
		sub.Cancel()
	}
	m.subs = nil
}

func (m *Manager) onHoleStarted(e event.Event) {
	he, ok := e.(*event.HoleEvent)
	if !ok {
		return
	}
	started := m.now()
	zero := 0
	notDone := false
	m.Update(he.HoleIndex, StatePatch{
		Strokes:   &zero,
		Completed: &notDone,
		StartTime: &started,
	})
}

func (m *Manager) onHoleCompleted(e event.Event) {
	he, ok := e.(*event.HoleEvent)
	if !ok {
		return
	}
	ended := m.now()
	done := true
	m.Update(he.HoleIndex, StatePatch{
		Completed: &done,
		EndTime:   &ended,
	})
}

func (m *Manager) onBallHit(e event.Event) {
	hit, ok := e.(*event.BallHitEvent)
	if !ok {
		return
	}
	state, exists := m.states[hit.HoleIndex]
	if !exists {
		return
	}
	strokes := state.Strokes + 1
	m.Update(hit.HoleIndex, StatePatch{Strokes: &strokes})
}

func (m *Manager) onHazardPenalty(e event.Event) {
	pen, ok := e.(*event.HazardPenaltyEvent)
	if !ok {
		return
	}
	state, exists := m.states[pen.HoleIndex]
	if !exists {
		return
	}
	strokes := state.Strokes + 1
	m.Update(pen.HoleIndex, StatePatch{
		Strokes:   &strokes,
		AddHazard: pen.Kind,
	})
}
