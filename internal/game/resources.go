package game

import "math"

// Resources is the wealth/attention/technology triple shared by players,
// territories and action costs. Values are never negative after any
// mutation; Deduct and Apply clamp each axis at zero independently.
type Resources struct {
	Wealth     int `json:"wealth"`
	Attention  int `json:"attention"`
	Technology int `json:"technology"`
}

// ResourceDelta is a signed change applied to a Resources triple. Unlike
// Resources it may hold negative values.
type ResourceDelta struct {
	Wealth     int `json:"wealth"`
	Attention  int `json:"attention"`
	Technology int `json:"technology"`
}

// Add accumulates another triple into r.
func (r *Resources) Add(other Resources) {
	r.Wealth += other.Wealth
	r.Attention += other.Attention
	r.Technology += other.Technology
}

// Deduct subtracts a cost from r, clamping every axis at zero.
func (r *Resources) Deduct(cost Resources) {
	r.Wealth = clampZero(r.Wealth - cost.Wealth)
	r.Attention = clampZero(r.Attention - cost.Attention)
	r.Technology = clampZero(r.Technology - cost.Technology)
}

// Apply adds a signed delta to r, clamping every axis at zero.
func (r *Resources) Apply(d ResourceDelta) {
	r.Wealth = clampZero(r.Wealth + d.Wealth)
	r.Attention = clampZero(r.Attention + d.Attention)
	r.Technology = clampZero(r.Technology + d.Technology)
}

// Exceeds reports whether the cost overdrafts the available triple on any
// single axis. Partial overdraft counts as exceeding.
func (cost Resources) Exceeds(available Resources) bool {
	return cost.Wealth > available.Wealth ||
		cost.Attention > available.Attention ||
		cost.Technology > available.Technology
}

// Scale multiplies every axis by factor, flooring each result.
func (r Resources) Scale(factor float64) Resources {
	return Resources{
		Wealth:     int(math.Floor(float64(r.Wealth) * factor)),
		Attention:  int(math.Floor(float64(r.Attention) * factor)),
		Technology: int(math.Floor(float64(r.Technology) * factor)),
	}
}

// Total returns the sum of all three axes.
func (r Resources) Total() int {
	return r.Wealth + r.Attention + r.Technology
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
