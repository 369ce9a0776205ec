package engine

// Side identifies which team a unit fights for
type Side string

const (
	Player Side = "player"
	Enemy  Side = "enemy"
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == Player {
		return Enemy
	}
	return Player
}

// Edge classifies a board cell by its position relative to the board border
type Edge string

const (
	TopLeft     Edge = "top-left"
	TopRight    Edge = "top-right"
	BottomLeft  Edge = "bottom-left"
	BottomRight Edge = "bottom-right"
	Top         Edge = "top"
	Bottom      Edge = "bottom"
	Left        Edge = "left"
	Right       Edge = "right"
	Center      Edge = "center"
)

// Phase is the turn state machine's current state
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseUnitSelected      Phase = "unit_selected"
	PhaseMovePending       Phase = "move_pending"
	PhaseAttackPending     Phase = "attack_pending"
	PhaseResolvingResponse Phase = "resolving_response"
	PhaseLevelComplete     Phase = "level_complete"
	PhaseGameOver          Phase = "game_over"
)

// HighlightColor is the colour hint sent with a cell selection
type HighlightColor string

const (
	HighlightSelected HighlightColor = "yellow"
	HighlightMove     HighlightColor = "green"
	HighlightAttack   HighlightColor = "red"
)

// CellStatus describes what a click on a hovered cell would do
type CellStatus string

const (
	StatusFreeSpace  CellStatus = "freespace"
	StatusEnemy      CellStatus = "enemy"
	StatusAllied     CellStatus = "allied"
	StatusNotAllowed CellStatus = "notallowed"
)

const (
	// Validation constants
	MinBoardSize   = 4
	MaxBoardSize   = 26
	MaxHealth      = 100
	BaseHealth     = 50
	DefaultBoard   = 8
	DefaultTheme   = "prairie"
	LevelUpHealth  = 80
	ChipDamageRate = 0.1
)

// Archetype is a named base-stat template units are built from
type Archetype struct {
	Name        string `json:"name" yaml:"name"`
	Side        Side   `json:"side" yaml:"side"`
	Attack      int    `json:"attack" yaml:"attack"`
	Defence     int    `json:"defence" yaml:"defence"`
	MoveRange   int    `json:"move_range" yaml:"move_range"`
	AttackRange int    `json:"attack_range" yaml:"attack_range"`
}

// Unit is a combat entity. Identity is the ID, never the stats.
type Unit struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Side        Side   `json:"side"`
	Level       int    `json:"level"`
	Attack      int    `json:"attack"`
	Defence     int    `json:"defence"`
	Health      int    `json:"health"`
	MoveRange   int    `json:"move_range"`
	AttackRange int    `json:"attack_range"`
}

// IsDead reports whether the unit has no health left
func (u *Unit) IsDead() bool {
	return u.Health <= 0
}

// PlacedUnit binds a unit to a board position
type PlacedUnit struct {
	Unit     *Unit `json:"character"`
	Position int   `json:"position"`
}

// Side returns the side of the placed unit
func (p *PlacedUnit) Side() Side {
	return p.Unit.Side
}

// UnitStats are the display stats shown by the presentation layer
type UnitStats struct {
	Level       int    `json:"level"`
	Attack      int    `json:"attack"`
	Defence     int    `json:"defence"`
	Health      int    `json:"health"`
	HealthLevel string `json:"health_level"`
}

// UnitView is the render-facing projection of a placed unit
type UnitView struct {
	UnitID   string    `json:"unit_id"`
	Type     string    `json:"type"`
	Side     Side      `json:"side"`
	Position int       `json:"position"`
	Stats    UnitStats `json:"stats"`
}

// ViewOf builds the render projection of a placed unit
func ViewOf(p *PlacedUnit) UnitView {
	return UnitView{
		UnitID:   p.Unit.ID,
		Type:     p.Unit.Type,
		Side:     p.Unit.Side,
		Position: p.Position,
		Stats: UnitStats{
			Level:       p.Unit.Level,
			Attack:      p.Unit.Attack,
			Defence:     p.Unit.Defence,
			Health:      p.Unit.Health,
			HealthLevel: HealthLevel(p.Unit.Health),
		},
	}
}

// TurnContext is the selection and progress state owned by the engine
type TurnContext struct {
	Selected   *PlacedUnit `json:"selected,omitempty"`
	Phase      Phase       `json:"phase"`
	Reachable  []int       `json:"reachable"`
	Attackable []int       `json:"attackable"`
	Score      int         `json:"score"`
	Level      int         `json:"level"`
}

// SaveState is the persisted blob. Its field set is exactly these four keys.
type SaveState struct {
	Level     int           `json:"level"`
	Positions []*PlacedUnit `json:"positions"`
	Theme     string        `json:"theme"`
	Score     int           `json:"score"`
}

// Outcome reports what a player interaction did
type Outcome struct {
	Accepted    bool   `json:"accepted"`
	Phase       Phase  `json:"phase"`
	AwaitingAck bool   `json:"awaiting_ack"`
	Message     string `json:"message,omitempty"`

	// Set when a run ends
	RunOver    bool `json:"run_over,omitempty"`
	Victory    bool `json:"victory,omitempty"`
	FinalScore int  `json:"final_score,omitempty"`

	// Set when a level is cleared and the next one starts
	LevelCleared bool `json:"level_cleared,omitempty"`
	NextLevel    int  `json:"next_level,omitempty"`
}

// HoverInfo describes a hovered cell
type HoverInfo struct {
	Position int        `json:"position"`
	Status   CellStatus `json:"status,omitempty"`
	Tooltip  string     `json:"tooltip,omitempty"`
}

// Snapshot is a read-only picture of the engine for transports
type Snapshot struct {
	ConfigName   string     `json:"config_name"`
	BoardSize    int        `json:"board_size"`
	FinalLevel   int        `json:"final_level"`
	Level        int        `json:"level"`
	Score        int        `json:"score"`
	Theme        string     `json:"theme"`
	Phase        Phase      `json:"phase"`
	AwaitingAck  bool       `json:"awaiting_ack"`
	Selected     *UnitView  `json:"selected,omitempty"`
	Reachable    []int      `json:"reachable"`
	Attackable   []int      `json:"attackable"`
	Units        []UnitView `json:"units"`
	Message      string     `json:"message,omitempty"`
	LastOutcome  *Outcome   `json:"last_outcome,omitempty"`
	PlayerAlive  int        `json:"player_alive"`
	EnemiesAlive int        `json:"enemies_alive"`
}
