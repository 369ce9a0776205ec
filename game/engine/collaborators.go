package engine

import "sync"

// Renderer is the presentation collaborator driven by the engine.
// ShowDamage is a request: the presentation answers by calling
// GameEngine.Acknowledge exactly once when the animation is done.
type Renderer interface {
	DrawTheme(theme string)
	Redraw(units []UnitView)
	Select(position int, color HighlightColor)
	Deselect(position int)
	ShowTooltip(text string, position int)
	HideTooltip(position int)
	ShowDamage(position, amount int)
}

// NoticeKind distinguishes error notices from informational ones
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeMessage NoticeKind = "message"
)

// Notice is a user-facing message
type Notice struct {
	Kind NoticeKind `json:"kind"`
	Text string     `json:"text"`
}

// Notifier receives user-facing notices
type Notifier interface {
	Notice(n Notice)
}

// Event is one recorded collaborator call
type Event struct {
	Type     string         `json:"type"`
	Position *int           `json:"position,omitempty"`
	Color    HighlightColor `json:"color,omitempty"`
	Text     string         `json:"text,omitempty"`
	Amount   int            `json:"amount,omitempty"`
	Units    []UnitView     `json:"units,omitempty"`
	Notice   *Notice        `json:"notice,omitempty"`
}

// Event types
const (
	EventDrawTheme   = "draw_theme"
	EventRedraw      = "redraw"
	EventSelect      = "select"
	EventDeselect    = "deselect"
	EventShowTooltip = "show_tooltip"
	EventHideTooltip = "hide_tooltip"
	EventShowDamage  = "show_damage"
	EventNotice      = "notice"
)

// EventLog is a Renderer and Notifier that records every call so that
// remote presentations can replay them.
type EventLog struct {
	mu     sync.Mutex
	events []Event
}

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) record(e Event) {
	l.mu.Lock()
	l.events = append(l.events, e)
	l.mu.Unlock()
}

func at(position int) *int {
	return &position
}

func (l *EventLog) DrawTheme(theme string) {
	l.record(Event{Type: EventDrawTheme, Text: theme})
}

func (l *EventLog) Redraw(units []UnitView) {
	cp := make([]UnitView, len(units))
	copy(cp, units)
	l.record(Event{Type: EventRedraw, Units: cp})
}

func (l *EventLog) Select(position int, color HighlightColor) {
	l.record(Event{Type: EventSelect, Position: at(position), Color: color})
}

func (l *EventLog) Deselect(position int) {
	l.record(Event{Type: EventDeselect, Position: at(position)})
}

func (l *EventLog) ShowTooltip(text string, position int) {
	l.record(Event{Type: EventShowTooltip, Position: at(position), Text: text})
}

func (l *EventLog) HideTooltip(position int) {
	l.record(Event{Type: EventHideTooltip, Position: at(position)})
}

func (l *EventLog) ShowDamage(position, amount int) {
	l.record(Event{Type: EventShowDamage, Position: at(position), Amount: amount})
}

func (l *EventLog) Notice(n Notice) {
	l.record(Event{Type: EventNotice, Notice: &n, Text: n.Text})
}

// Events returns a copy of the recorded events
func (l *EventLog) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Drain returns the recorded events and clears the log
func (l *EventLog) Drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.events
	l.events = nil
	return out
}

// nopRenderer discards everything
type nopRenderer struct{}

func (nopRenderer) DrawTheme(string) {}
func (nopRenderer) Redraw([]UnitView) {}
func (nopRenderer) Select(int, HighlightColor) {}
func (nopRenderer) Deselect(int) {}
func (nopRenderer) ShowTooltip(string, int) {}
func (nopRenderer) HideTooltip(int) {}
func (nopRenderer) ShowDamage(int, int) {}
func (nopRenderer) Notice(Notice) {}
