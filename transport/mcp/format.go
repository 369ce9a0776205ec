package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/retro-tactics/game/engine"
	"github.com/wricardo/retro-tactics/game/service"
)

// glyphs maps archetype names to board letters; unknown names use their
// first letter
var glyphs = map[string]string{
	"swordsman": "S",
	"bowman":    "B",
	"magician":  "M",
	"undead":    "U",
	"vampire":   "V",
	"daemon":    "D",
}

func unitGlyph(u engine.UnitView) string {
	g, ok := glyphs[u.Type]
	if !ok {
		g = "?"
		if u.Type != "" {
			g = strings.ToUpper(u.Type[:1])
		}
	}
	if u.Side == engine.Enemy {
		return strings.ToLower(g)
	}
	return g
}

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard draws the board with row start indices on the left
func formatBoard(state *engine.Snapshot) string {
	size := state.BoardSize
	if size <= 0 {
		return ""
	}

	units := make(map[int]engine.UnitView, len(state.Units))
	for _, u := range state.Units {
		units[u.Position] = u
	}
	reachable := make(map[int]bool, len(state.Reachable))
	for _, idx := range state.Reachable {
		reachable[idx] = true
	}
	attackable := make(map[int]bool, len(state.Attackable))
	for _, idx := range state.Attackable {
		attackable[idx] = true
	}
	selected := -1
	if state.Selected != nil {
		selected = state.Selected.Position
	}

	var b strings.Builder
	b.WriteString("     ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&b, "%3d", col)
	}
	b.WriteString("\n")

	for row := 0; row < size; row++ {
		fmt.Fprintf(&b, "%4d ", row*size)
		for col := 0; col < size; col++ {
			idx := row*size + col
			u, occupied := units[idx]
			switch {
			case idx == selected:
				fmt.Fprintf(&b, "[%s]", unitGlyph(u))
			case occupied && u.Side == engine.Enemy && attackable[idx]:
				fmt.Fprintf(&b, " %s!", unitGlyph(u))
			case occupied:
				fmt.Fprintf(&b, " %s ", unitGlyph(u))
			case reachable[idx]:
				b.WriteString(" + ")
			default:
				b.WriteString(" . ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatGameState(state *engine.Snapshot) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Level: %d/%d | Theme: %s | Score: %d | Phase: %s\n",
		state.Level, state.FinalLevel, state.Theme, state.Score, state.Phase)
	fmt.Fprintf(&result, "Your units: %d | Enemies: %d\n", state.PlayerAlive, state.EnemiesAlive)
	if state.AwaitingAck {
		result.WriteString("Waiting for acknowledge (damage animation)\n")
	}
	result.WriteString("\n")
	result.WriteString(formatBoard(state))

	if len(state.Units) > 0 {
		result.WriteString("\nUnits:\n")
		for _, u := range state.Units {
			fmt.Fprintf(&result, "  %s %-9s %-6s at %3d  %s (%s)\n",
				unitGlyph(u), u.Type, u.Side, u.Position,
				engine.FormatUnitInfo(u.Stats.Level, u.Stats.Attack, u.Stats.Defence, u.Stats.Health),
				u.Stats.HealthLevel)
		}
	}

	if state.Selected != nil {
		fmt.Fprintf(&result, "\nSelected: %s at %d\n", state.Selected.Type, state.Selected.Position)
		fmt.Fprintf(&result, "Reachable: %v\nAttackable: %v\n", state.Reachable, state.Attackable)
	}

	if last := state.LastOutcome; last != nil && last.RunOver {
		if last.Victory {
			fmt.Fprintf(&result, "\nVICTORY! Final score: %d", last.FinalScore)
		} else {
			fmt.Fprintf(&result, "\nGAME OVER. Final score: %d", last.FinalScore)
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatActionResult(action string, result *service.ActionResult) string {
	var b strings.Builder

	status := "OK"
	if !result.Success {
		status = "REJECTED"
	}
	fmt.Fprintf(&b, "%s: %s", action, status)
	if result.Message != "" {
		fmt.Fprintf(&b, " - %s", result.Message)
	}
	b.WriteString("\n")

	for _, e := range result.Events {
		switch e.Type {
		case engine.EventShowDamage:
			if e.Position != nil {
				fmt.Fprintf(&b, "  damage %d at %d\n", e.Amount, *e.Position)
			}
		case engine.EventNotice:
			fmt.Fprintf(&b, "  notice: %s\n", e.Text)
		case engine.EventDrawTheme:
			fmt.Fprintf(&b, "  theme: %s\n", e.Text)
		}
	}

	if o := result.Outcome; o != nil {
		if o.LevelCleared {
			fmt.Fprintf(&b, "  level cleared, now level %d\n", o.NextLevel)
		}
		if o.AwaitingAck {
			b.WriteString("  call acknowledge to continue\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHover(info *engine.HoverInfo) string {
	if info == nil {
		return "Nothing to describe"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cell %d", info.Position)
	if info.Tooltip != "" {
		fmt.Fprintf(&b, ": %s", info.Tooltip)
	}
	switch info.Status {
	case engine.StatusFreeSpace:
		b.WriteString("\nClick moves the selected unit here")
	case engine.StatusEnemy:
		b.WriteString("\nClick attacks this enemy")
	case engine.StatusAllied:
		b.WriteString("\nClick selects this unit")
	case engine.StatusNotAllowed:
		b.WriteString("\nClick would be rejected")
	}
	return b.String()
}
