package engine

// ComputeDamage returns the damage attacker deals to defender:
// max(attack - defence, ceil(attack * 0.1)). The second term is a chip
// damage floor that defence can never cancel.
func ComputeDamage(attacker, defender *Unit) int {
	raw := attacker.Attack - defender.Defence
	chip := ceilDiv(attacker.Attack, 10)
	if raw > chip {
		return raw
	}
	return chip
}

// ApplyDamage lowers the defender's health, never below zero, and reports
// whether the defender died. Removing the dead unit is the caller's job.
func ApplyDamage(defender *Unit, damage int) bool {
	defender.Health -= damage
	if defender.Health < 0 {
		defender.Health = 0
	}
	return defender.IsDead()
}

// LevelUp grows a surviving unit's stats.
//
// attack and defence become ceil(max(v, v*(1.8 - min(health,80)/100))) and
// health becomes min(100, health+80). Growth never lowers a stat.
func LevelUp(u *Unit) {
	h := u.Health
	if h > LevelUpHealth {
		h = LevelUpHealth
	}
	u.Attack = grow(u.Attack, h)
	u.Defence = grow(u.Defence, h)

	u.Health += LevelUpHealth
	if u.Health > MaxHealth {
		u.Health = MaxHealth
	}
}

// grow computes ceil(max(v, v*(180-h)/100)) in integers so that a factor of
// exactly 1.0 cannot round up through float error.
func grow(v, h int) int {
	scaled := ceilDiv(v*(180-h), 100)
	if scaled < v {
		return v
	}
	return scaled
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return -((-a) / b)
	}
	return (a + b - 1) / b
}
