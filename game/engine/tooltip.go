package engine

import "fmt"

// FormatUnitInfo renders the tooltip summary: one glyph per stat in the
// order level, attack, defence, health.
func FormatUnitInfo(level, attack, defence, health int) string {
	return fmt.Sprintf("\U0001F396%d ⚔%d \U0001F6E1%d ❤%d", level, attack, defence, health)
}

// UnitInfo is FormatUnitInfo applied to a unit
func UnitInfo(u *Unit) string {
	return FormatUnitInfo(u.Level, u.Attack, u.Defence, u.Health)
}

// HealthLevel buckets health for display: critical below 15, normal below 50,
// high otherwise.
func HealthLevel(health int) string {
	switch {
	case health < 15:
		return "critical"
	case health < 50:
		return "normal"
	default:
		return "high"
	}
}
