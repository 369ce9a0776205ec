package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"github.com/wricardo/retro-tactics/pkg/logger"
)

var (
	ErrAwaitingAck    = errors.New("awaiting presentation acknowledgement")
	ErrNoPendingAck   = errors.New("no pending acknowledgement")
	ErrCancelRejected = errors.New("cancel is only accepted while idle or with a unit selected")
	ErrNoSelection    = errors.New("no unit selected")
	ErrBoardFull      = errors.New("not enough free cells to deploy units")
)

// User-facing notice texts
const (
	MsgEnemyUnit     = "This is an enemy unit!"
	MsgInvalidAction = "Invalid action!"
	MsgGameOver      = "Game over!"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Run management
	NewGame(ctx context.Context, level int) (*Outcome, error)
	Cancel(ctx context.Context) (*Outcome, error)

	// Interaction
	Click(ctx context.Context, index int) (*Outcome, error)
	Acknowledge(ctx context.Context) (*Outcome, error)
	Hover(index int) (*HoverInfo, error)
	Leave(index int) error

	// Queries
	Turn() TurnContext
	Selection() (*UnitView, error)
	Units() []UnitView
	Snapshot() *Snapshot
	GetConfig() *GameConfig

	// Persistence
	SaveState() *SaveState
	Restore(ctx context.Context, state *SaveState) error
}

// Turn phase machine events
const (
	evSelect  = "select"
	evMove    = "move"
	evAttack  = "attack"
	evRespond = "respond"
	evSettle  = "settle"
	evRelease = "release"
	evClear   = "clear"
	evEnd     = "end"
	evCancel  = "cancel"
	evStart   = "start"
)

func newPhaseMachine() *fsm.FSM {
	all := []string{
		string(PhaseIdle), string(PhaseUnitSelected), string(PhaseMovePending),
		string(PhaseAttackPending), string(PhaseResolvingResponse),
		string(PhaseLevelComplete), string(PhaseGameOver),
	}
	return fsm.NewFSM(
		string(PhaseIdle),
		fsm.Events{
			{Name: evSelect, Src: []string{string(PhaseIdle), string(PhaseUnitSelected)}, Dst: string(PhaseUnitSelected)},
			{Name: evMove, Src: []string{string(PhaseUnitSelected)}, Dst: string(PhaseMovePending)},
			{Name: evAttack, Src: []string{string(PhaseUnitSelected)}, Dst: string(PhaseAttackPending)},
			{Name: evRespond, Src: []string{string(PhaseMovePending), string(PhaseAttackPending)}, Dst: string(PhaseResolvingResponse)},
			{Name: evSettle, Src: []string{string(PhaseResolvingResponse)}, Dst: string(PhaseUnitSelected)},
			{Name: evRelease, Src: []string{string(PhaseResolvingResponse)}, Dst: string(PhaseIdle)},
			{Name: evClear, Src: []string{string(PhaseAttackPending)}, Dst: string(PhaseLevelComplete)},
			{Name: evEnd, Src: []string{string(PhaseAttackPending), string(PhaseResolvingResponse)}, Dst: string(PhaseGameOver)},
			{Name: evCancel, Src: []string{string(PhaseIdle), string(PhaseUnitSelected)}, Dst: string(PhaseIdle)},
			{Name: evStart, Src: all, Dst: string(PhaseIdle)},
		},
		fsm.Callbacks{},
	)
}

// pendingAck names the transition suspended on a ShowDamage request
type pendingAck int

const (
	ackNone pendingAck = iota
	ackPlayerHit
	ackEnemyHit
)

// Option configures a GameEngine
type Option func(*GameEngine)

// WithRenderer sets the presentation collaborator
func WithRenderer(r Renderer) Option {
	return func(e *GameEngine) { e.renderer = r }
}

// WithNotifier sets the notice collaborator
func WithNotifier(n Notifier) Option {
	return func(e *GameEngine) { e.notifier = n }
}

// WithRand sets the random source used for generation and the enemy AI
func WithRand(rng RandSource) Option {
	return func(e *GameEngine) { e.rng = rng }
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	config   *GameConfig
	board    Board
	rng      RandSource
	renderer Renderer
	notifier Notifier
	phase    *fsm.FSM
	log      *logrus.Entry

	units []*PlacedUnit
	turn  TurnContext
	theme string

	pending pendingAck
	target  *PlacedUnit
	message string
	last    *Outcome
}

// NewEngine creates a game engine for the rule set and starts level 1
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:   config,
		board:    Board{Size: config.BoardSize},
		renderer: nopRenderer{},
		notifier: nopRenderer{},
		phase:    newPhaseMachine(),
		log:      logger.Log.WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}

	if err := e.startLevel(1, nil, 0); err != nil {
		return nil, err
	}
	return e, nil
}

// NewEngineWithDefaults creates a game engine with the classic rule set
func NewEngineWithDefaults(opts ...Option) *GameEngine {
	e, err := NewEngine(DefaultGameConfig(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default game config is invalid: %v", err))
	}
	return e
}

// GetConfig returns the rule set
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// Phase returns the current turn phase
func (e *GameEngine) Phase() Phase {
	return Phase(e.phase.Current())
}

// AwaitingAck reports whether a ShowDamage request is outstanding
func (e *GameEngine) AwaitingAck() bool {
	return e.pending != ackNone
}

// Turn returns a copy of the turn context
func (e *GameEngine) Turn() TurnContext {
	t := e.turn
	t.Phase = e.Phase()
	t.Reachable = append([]int{}, e.turn.Reachable...)
	t.Attackable = append([]int{}, e.turn.Attackable...)
	return t
}

// Selection returns the selected unit
func (e *GameEngine) Selection() (*UnitView, error) {
	if e.turn.Selected == nil {
		return nil, ErrNoSelection
	}
	v := ViewOf(e.turn.Selected)
	return &v, nil
}

// Units returns the render projection of every placed unit
func (e *GameEngine) Units() []UnitView {
	views := make([]UnitView, 0, len(e.units))
	for _, u := range e.units {
		views = append(views, ViewOf(u))
	}
	return views
}

// NewGame abandons the current run and starts a fresh one at level
func (e *GameEngine) NewGame(ctx context.Context, level int) (*Outcome, error) {
	if e.AwaitingAck() {
		return nil, ErrAwaitingAck
	}
	if level < 1 || level > e.config.FinalLevel() {
		return nil, fmt.Errorf("%w: level must be between 1 and %d, got %d",
			ErrInvalidArgument, e.config.FinalLevel(), level)
	}
	e.message = ""
	if e.turn.Selected != nil {
		e.renderer.Deselect(e.turn.Selected.Position)
	}
	if err := e.startLevel(level, nil, 0); err != nil {
		return nil, err
	}
	return e.finish(true), nil
}

// Click handles a click on a board cell
func (e *GameEngine) Click(ctx context.Context, index int) (*Outcome, error) {
	if e.AwaitingAck() {
		return nil, ErrAwaitingAck
	}
	if !e.board.Contains(index) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	e.message = ""

	phase := e.Phase()
	if phase != PhaseIdle && phase != PhaseUnitSelected {
		return e.reject(MsgInvalidAction), nil
	}

	target := e.unitAt(index)
	selected := e.turn.Selected

	switch {
	case target != nil && target.Side() == Player:
		return e.selectUnit(ctx, target)
	case selected == nil && target != nil:
		return e.reject(MsgEnemyUnit), nil
	case selected == nil:
		return e.reject(MsgInvalidAction), nil
	case target == nil && contains(e.turn.Reachable, index):
		return e.moveSelected(ctx, index)
	case target != nil && contains(e.turn.Attackable, index):
		return e.attack(ctx, target)
	default:
		return e.reject(MsgInvalidAction), nil
	}
}

// Acknowledge resumes the transition suspended on the last ShowDamage request
func (e *GameEngine) Acknowledge(ctx context.Context) (*Outcome, error) {
	step := e.pending
	if step == ackNone {
		return nil, ErrNoPendingAck
	}
	e.pending = ackNone
	e.message = ""

	if step == ackPlayerHit {
		return e.afterPlayerHit(ctx)
	}
	return e.finalizeResponse(ctx)
}

// Cancel clears the selection and resets the run to the level 1 defaults
func (e *GameEngine) Cancel(ctx context.Context) (*Outcome, error) {
	if e.AwaitingAck() {
		return nil, ErrAwaitingAck
	}
	if !e.phase.Can(evCancel) {
		return nil, fmt.Errorf("%w: phase is %s", ErrCancelRejected, e.Phase())
	}
	e.message = ""

	if e.turn.Selected != nil {
		e.renderer.Deselect(e.turn.Selected.Position)
	}
	e.units = nil
	e.turn = TurnContext{Level: 1}
	e.theme = e.config.ThemeFor(1)
	e.renderer.DrawTheme(e.theme)
	e.redraw()

	if err := e.fire(ctx, evCancel); err != nil {
		return nil, err
	}
	e.log.Info("Run cancelled")
	return e.finish(true), nil
}

// Hover shows the tooltip of a unit and classifies the cell for the selection
func (e *GameEngine) Hover(index int) (*HoverInfo, error) {
	if !e.board.Contains(index) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	info := &HoverInfo{Position: index}

	unit := e.unitAt(index)
	if unit != nil {
		info.Tooltip = UnitInfo(unit.Unit)
		e.renderer.ShowTooltip(info.Tooltip, index)
	}

	selected := e.turn.Selected
	if selected == nil || e.Phase() != PhaseUnitSelected || index == selected.Position {
		return info, nil
	}

	switch {
	case unit != nil && unit.Side() == Player:
		info.Status = StatusAllied
	case unit != nil && contains(e.turn.Attackable, index):
		info.Status = StatusEnemy
		e.renderer.Select(index, HighlightAttack)
	case unit == nil && contains(e.turn.Reachable, index):
		info.Status = StatusFreeSpace
		e.renderer.Select(index, HighlightMove)
	default:
		info.Status = StatusNotAllowed
	}
	return info, nil
}

// Leave hides the tooltip of a cell and drops its hover highlight
func (e *GameEngine) Leave(index int) error {
	if !e.board.Contains(index) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	e.renderer.HideTooltip(index)
	if e.turn.Selected == nil || e.turn.Selected.Position != index {
		e.renderer.Deselect(index)
	}
	return nil
}

// SaveState returns the persistable blob of the current game. A unit killed
// by a hit still awaiting acknowledgement is left out.
func (e *GameEngine) SaveState() *SaveState {
	alive := make([]*PlacedUnit, 0, len(e.units))
	for _, p := range e.units {
		if !p.Unit.IsDead() {
			alive = append(alive, p)
		}
	}
	return &SaveState{
		Level:     e.turn.Level,
		Positions: clonePlacements(alive),
		Theme:     e.theme,
		Score:     e.turn.Score,
	}
}

// Restore replaces the current game with a saved one
func (e *GameEngine) Restore(ctx context.Context, state *SaveState) error {
	if e.AwaitingAck() {
		return ErrAwaitingAck
	}
	if state == nil {
		return fmt.Errorf("%w: state is nil", ErrInvalidArgument)
	}
	if state.Level < 1 || state.Level > e.config.FinalLevel() {
		return fmt.Errorf("%w: level %d outside 1..%d", ErrInvalidArgument, state.Level, e.config.FinalLevel())
	}

	seen := make(map[int]bool, len(state.Positions))
	for _, p := range state.Positions {
		if p == nil || p.Unit == nil {
			return ErrInvalidUnit
		}
		if p.Unit.Side != Player && p.Unit.Side != Enemy {
			return fmt.Errorf("%w: unknown side %q", ErrInvalidUnit, p.Unit.Side)
		}
		if p.Unit.Health < 1 || p.Unit.Health > MaxHealth {
			return fmt.Errorf("%w: %s health %d outside 1..%d", ErrInvalidUnit, p.Unit.ID, p.Unit.Health, MaxHealth)
		}
		if p.Unit.Level < 1 {
			return fmt.Errorf("%w: %s level %d", ErrInvalidUnit, p.Unit.ID, p.Unit.Level)
		}
		if !e.board.Contains(p.Position) {
			return fmt.Errorf("%w: %d", ErrInvalidIndex, p.Position)
		}
		if seen[p.Position] {
			return fmt.Errorf("%w: position %d occupied twice", ErrInvalidArgument, p.Position)
		}
		seen[p.Position] = true
	}

	e.message = ""
	if e.turn.Selected != nil {
		e.renderer.Deselect(e.turn.Selected.Position)
	}
	e.units = clonePlacements(state.Positions)
	e.turn = TurnContext{Level: state.Level, Score: state.Score}
	e.theme = state.Theme
	if e.theme == "" {
		e.theme = e.config.ThemeFor(state.Level)
	}
	e.renderer.DrawTheme(e.theme)
	e.redraw()

	if err := e.fire(ctx, evStart); err != nil {
		return err
	}
	e.last = nil
	e.log.WithFields(logrus.Fields{"game_level": state.Level, "units": len(state.Positions)}).Info("Game restored")
	return nil
}

// Snapshot returns a read-only picture of the engine
func (e *GameEngine) Snapshot() *Snapshot {
	s := &Snapshot{
		ConfigName:   e.config.Name,
		BoardSize:    e.board.Size,
		FinalLevel:   e.config.FinalLevel(),
		Level:        e.turn.Level,
		Score:        e.turn.Score,
		Theme:        e.theme,
		Phase:        e.Phase(),
		AwaitingAck:  e.AwaitingAck(),
		Reachable:    append([]int{}, e.turn.Reachable...),
		Attackable:   append([]int{}, e.turn.Attackable...),
		Units:        e.Units(),
		Message:      e.message,
		PlayerAlive:  e.count(Player),
		EnemiesAlive: e.count(Enemy),
	}
	if sel, err := e.Selection(); err == nil {
		s.Selected = sel
	}
	if e.last != nil {
		last := *e.last
		s.LastOutcome = &last
	}
	return s
}

func (e *GameEngine) selectUnit(ctx context.Context, unit *PlacedUnit) (*Outcome, error) {
	if prev := e.turn.Selected; prev != nil && prev != unit {
		e.renderer.Deselect(prev.Position)
	}
	e.turn.Selected = unit
	e.refreshRanges()
	e.renderer.Select(unit.Position, HighlightSelected)

	if err := e.fire(ctx, evSelect); err != nil {
		return nil, err
	}
	return e.finish(true), nil
}

func (e *GameEngine) moveSelected(ctx context.Context, to int) (*Outcome, error) {
	selected := e.turn.Selected
	from := selected.Position

	e.renderer.Deselect(from)
	selected.Position = to
	e.renderer.Select(to, HighlightSelected)
	e.redraw()

	if err := e.fire(ctx, evMove); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{"unit": selected.Unit.Type, "from": from, "to": to}).Debug("Unit moved")
	return e.enemyResponse(ctx)
}

func (e *GameEngine) attack(ctx context.Context, target *PlacedUnit) (*Outcome, error) {
	attacker := e.turn.Selected
	damage := ComputeDamage(attacker.Unit, target.Unit)
	ApplyDamage(target.Unit, damage)

	if err := e.fire(ctx, evAttack); err != nil {
		return nil, err
	}
	e.log.WithFields(logrus.Fields{
		"attacker": attacker.Unit.Type,
		"target":   target.Unit.Type,
		"damage":   damage,
		"health":   target.Unit.Health,
	}).Info("Player attack resolved")

	e.pending = ackPlayerHit
	e.target = target
	e.renderer.ShowDamage(target.Position, damage)
	return e.finish(true), nil
}

func (e *GameEngine) afterPlayerHit(ctx context.Context) (*Outcome, error) {
	target := e.target
	e.target = nil

	if target != nil && target.Unit.IsDead() {
		e.renderer.HideTooltip(target.Position)
		e.remove(target)
	}
	e.redraw()

	if e.count(Enemy) == 0 {
		return e.levelCleared(ctx)
	}
	return e.enemyResponse(ctx)
}

func (e *GameEngine) levelCleared(ctx context.Context) (*Outcome, error) {
	survivors := e.side(Player)
	for _, s := range survivors {
		e.turn.Score += s.Unit.Health
	}
	level := e.turn.Level
	score := e.turn.Score

	if e.turn.Selected != nil {
		e.renderer.Deselect(e.turn.Selected.Position)
		e.turn.Selected = nil
		e.clearRanges()
	}

	if level >= e.config.FinalLevel() {
		if err := e.fire(ctx, evEnd); err != nil {
			return nil, err
		}
		e.units = nil
		e.turn.Level = 1
		e.redraw()
		e.notify(NoticeMessage, fmt.Sprintf("Victory! Your score is %d.", score))
		e.log.WithField("score", score).Info("Run won")

		out := e.finish(true)
		out.RunOver = true
		out.Victory = true
		out.FinalScore = score
		return out, nil
	}

	if err := e.fire(ctx, evClear); err != nil {
		return nil, err
	}
	next := level + 1
	for _, s := range survivors {
		LevelUp(s.Unit)
		s.Unit.Level = next
	}
	e.log.WithFields(logrus.Fields{"game_level": level, "next": next, "score": score}).Info("Level cleared")

	if err := e.startLevel(next, survivors, score); err != nil {
		return nil, err
	}
	e.notify(NoticeMessage, fmt.Sprintf("Victory! Advancing to level %d. Score %d.", next, score))

	out := e.finish(true)
	out.LevelCleared = true
	out.NextLevel = next
	return out, nil
}

// enemyResponse lets the strongest enemy hit the selection or relocate
func (e *GameEngine) enemyResponse(ctx context.Context) (*Outcome, error) {
	if err := e.fire(ctx, evRespond); err != nil {
		return nil, err
	}

	selected := e.turn.Selected
	attacker := e.strongest(Enemy)
	if attacker == nil || selected == nil {
		return e.finalizeResponse(ctx)
	}

	size := e.board.Size
	if InRange(attacker.Position, attacker.Unit.AttackRange, selected.Position, size) {
		damage := ComputeDamage(attacker.Unit, selected.Unit)
		ApplyDamage(selected.Unit, damage)
		e.log.WithFields(logrus.Fields{
			"attacker": attacker.Unit.Type,
			"target":   selected.Unit.Type,
			"damage":   damage,
			"health":   selected.Unit.Health,
		}).Info("Enemy attack resolved")

		if damage == 0 {
			return e.finalizeResponse(ctx)
		}
		e.pending = ackEnemyHit
		e.renderer.ShowDamage(selected.Position, damage)
		return e.finish(true), nil
	}

	move, ok := ChooseDefensiveMove(attacker, selected, e.side(Enemy), OccupancyOf(e.units), size, e.rng)
	if ok {
		e.log.WithFields(logrus.Fields{"unit": move.Mover.Unit.Type, "from": move.Mover.Position, "to": move.To}).Debug("Enemy relocated")
		move.Mover.Position = move.To
		e.redraw()
	}
	return e.finalizeResponse(ctx)
}

func (e *GameEngine) finalizeResponse(ctx context.Context) (*Outcome, error) {
	selected := e.turn.Selected
	if selected != nil && selected.Unit.IsDead() {
		e.renderer.Deselect(selected.Position)
		e.remove(selected)
		e.turn.Selected = nil
		e.clearRanges()
	}
	e.redraw()

	if e.count(Player) == 0 {
		score := e.turn.Score
		if err := e.fire(ctx, evEnd); err != nil {
			return nil, err
		}
		e.units = nil
		e.turn = TurnContext{Level: 1}
		e.redraw()
		e.notify(NoticeMessage, MsgGameOver)
		e.log.WithField("score", score).Info("Run lost")

		out := e.finish(true)
		out.RunOver = true
		out.FinalScore = score
		return out, nil
	}

	if e.turn.Selected != nil {
		e.refreshRanges()
		if err := e.fire(ctx, evSettle); err != nil {
			return nil, err
		}
	} else if err := e.fire(ctx, evRelease); err != nil {
		return nil, err
	}
	return e.finish(true), nil
}

// startLevel deploys a level. survivors carry over from a cleared level.
func (e *GameEngine) startLevel(level int, survivors []*PlacedUnit, score int) error {
	var players []*Unit
	if level == 1 || len(survivors) == 0 {
		starters, err := GenerateRoster(e.config.Starters(), level, e.config.StarterCount, e.rng)
		if err != nil {
			return err
		}
		players = starters.Units()
	} else {
		for _, s := range survivors {
			players = append(players, s.Unit)
		}
		if n := e.config.ReinforcementsFor(level); n > 0 {
			extra, err := GenerateRoster(e.config.PlayerArchetypes, max(level-1, 1), n, e.rng)
			if err != nil {
				return err
			}
			players = append(players, extra.Units()...)
		}
	}

	enemies, err := GenerateRoster(e.config.EnemyArchetypes, level, len(players), e.rng)
	if err != nil {
		return err
	}

	size := e.board.Size
	placedPlayers, err := e.deploy(players, ColumnCells(size, 0, 1))
	if err != nil {
		return err
	}
	placedEnemies, err := e.deploy(enemies.Units(), ColumnCells(size, size-1, size-2))
	if err != nil {
		return err
	}

	e.units = append(placedPlayers, placedEnemies...)
	e.turn = TurnContext{Level: level, Score: score}
	e.theme = e.config.ThemeFor(level)
	e.renderer.DrawTheme(e.theme)
	e.redraw()

	if err := e.fire(context.Background(), evStart); err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"game_level": level,
		"theme":      e.theme,
		"players":    len(placedPlayers),
		"enemies":    len(placedEnemies),
	}).Info("Level started")
	return nil
}

// deploy places units on distinct uniformly random cells
func (e *GameEngine) deploy(units []*Unit, cells []int) ([]*PlacedUnit, error) {
	if len(units) > len(cells) {
		return nil, fmt.Errorf("%w: %d units for %d cells", ErrBoardFull, len(units), len(cells))
	}
	free := append([]int{}, cells...)
	placed := make([]*PlacedUnit, 0, len(units))
	for _, u := range units {
		i := e.rng.Intn(len(free))
		p, err := NewPlacedUnit(u, free[i], e.board.Size)
		if err != nil {
			return nil, err
		}
		free = append(free[:i], free[i+1:]...)
		placed = append(placed, p)
	}
	return placed, nil
}

// fire drives the phase machine; a self-transition is not an error
func (e *GameEngine) fire(ctx context.Context, event string) error {
	err := e.phase.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if err != nil && !errors.As(err, &noTransition) {
		return fmt.Errorf("turn phase %s: event %s: %w", e.phase.Current(), event, err)
	}
	return nil
}

func (e *GameEngine) reject(text string) *Outcome {
	e.notify(NoticeError, text)
	return e.finish(false)
}

func (e *GameEngine) notify(kind NoticeKind, text string) {
	e.message = text
	e.notifier.Notice(Notice{Kind: kind, Text: text})
}

func (e *GameEngine) finish(accepted bool) *Outcome {
	out := &Outcome{
		Accepted:    accepted,
		Phase:       e.Phase(),
		AwaitingAck: e.AwaitingAck(),
		Message:     e.message,
	}
	e.last = out
	return out
}

func (e *GameEngine) redraw() {
	e.renderer.Redraw(e.Units())
}

func (e *GameEngine) refreshRanges() {
	s := e.turn.Selected
	e.turn.Reachable = Reachable(s.Position, s.Unit.MoveRange, OccupancyOf(e.units), e.board.Size)
	e.turn.Attackable = Attackable(s.Position, s.Unit.AttackRange, e.board.Size)
}

func (e *GameEngine) clearRanges() {
	e.turn.Reachable = nil
	e.turn.Attackable = nil
}

func (e *GameEngine) unitAt(index int) *PlacedUnit {
	for _, u := range e.units {
		if u.Position == index {
			return u
		}
	}
	return nil
}

func (e *GameEngine) remove(target *PlacedUnit) {
	for i, u := range e.units {
		if u == target {
			e.units = append(e.units[:i], e.units[i+1:]...)
			return
		}
	}
}

func (e *GameEngine) side(s Side) []*PlacedUnit {
	var out []*PlacedUnit
	for _, u := range e.units {
		if u.Side() == s {
			out = append(out, u)
		}
	}
	return out
}

func (e *GameEngine) count(s Side) int {
	return len(e.side(s))
}

// strongest returns the first unit of a side with the highest attack
func (e *GameEngine) strongest(s Side) *PlacedUnit {
	var best *PlacedUnit
	for _, u := range e.units {
		if u.Side() == s && (best == nil || u.Unit.Attack > best.Unit.Attack) {
			best = u
		}
	}
	return best
}

func contains(cells []int, index int) bool {
	for _, c := range cells {
		if c == index {
			return true
		}
	}
	return false
}

func clonePlacements(units []*PlacedUnit) []*PlacedUnit {
	out := make([]*PlacedUnit, 0, len(units))
	for _, p := range units {
		u := *p.Unit
		out = append(out, &PlacedUnit{Unit: &u, Position: p.Position})
	}
	return out
}
