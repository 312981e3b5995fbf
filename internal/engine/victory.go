package engine

import "math"

// checkVictory runs once per completed turn cycle, on the breaking-news ->
// next-turn edge. Only the territorial condition is evaluated: a player
// wins by owning at least the configured fraction of all territories.
// Factions declare other victory types in data; those are not wired here.
func (e *Engine) checkVictory() string {
	needed := int(math.Ceil(float64(len(e.match.Territories)) * e.rules.TerritorialFraction))
	if needed <= 0 {
		return ""
	}
	for i := range e.match.Players {
		if len(e.match.Players[i].Territories) >= needed {
			return e.match.Players[i].ID
		}
	}
	return ""
}
