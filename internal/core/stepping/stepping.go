// Package stepping maps a remaining time and a direction to the next manually adjusted value.
//
// Steps are coarse far from zero and fine close to it. Two policies exist: Refined, the
// default, and Legacy, which moves in fixed five minute steps and never drops below a minute.
package stepping

const (
	// MinSeconds is the lowest value Refined can produce.
	MinSeconds = 1
	// LegacyMinSeconds is the lowest value Legacy can produce.
	LegacyMinSeconds = 60
	// MaxSeconds is the highest value either policy can produce.
	MaxSeconds = 3600

	// CoarseStep is used above ten minutes.
	CoarseStep = 5 * 60
	minuteStep = 60
	fineStep   = 5
	unitStep   = 1
)

// Direction is the sign of a manual adjustment.
type Direction int

const (
	Decrease Direction = -1
	Increase Direction = 1
)

// StepFunc returns the positive step size for current seconds.
type StepFunc func(current int, increasing bool) int

// Policy couples a step function with its clamp bounds.
type Policy struct {
	Name  string
	Floor int
	Ceil  int
	Step  StepFunc
}

// Refined is the proportional policy used by the countdown view.
var Refined = Policy{
	Name:  "refined",
	Floor: MinSeconds,
	Ceil:  MaxSeconds,
	Step:  RefinedStep,
}

// Legacy moves in fixed five minute steps.
var Legacy = Policy{
	Name:  "legacy",
	Floor: LegacyMinSeconds,
	Ceil:  MaxSeconds,
	Step:  FixedStep,
}

// RefinedStep picks 1s, 5s, 1m or 5m depending on how far current is from zero.
// The ten minute boundary is >= when increasing and > when decreasing, so a value of exactly
// ten minutes moves up by five minutes and down by one.
func RefinedStep(current int, increasing bool) int {
	if current <= 60 {
		if increasing {
			switch {
			case current < 10:
				return unitStep
			case current == 60:
				return minuteStep
			default:
				return fineStep
			}
		}
		if current <= 10 {
			return unitStep
		}
		return fineStep
	}

	minutes := current / 60
	if increasing {
		if minutes >= 10 {
			return CoarseStep
		}
		return minuteStep
	}
	if minutes > 10 {
		return CoarseStep
	}
	return minuteStep
}

// FixedStep always returns CoarseStep.
func FixedStep(int, bool) int {
	return CoarseStep
}

// Adjust applies one step in direction and clamps the result into [Floor, Ceil].
// A zero direction only clamps.
func (policy Policy) Adjust(current int, direction Direction) int {
	next := current
	switch {
	case direction > 0:
		next = current + policy.Step(current, true)
	case direction < 0:
		next = current - policy.Step(current, false)
	}
	return policy.Clamp(next)
}

// Clamp bounds value into [Floor, Ceil].
func (policy Policy) Clamp(value int) int {
	if value < policy.Floor {
		return policy.Floor
	}
	if value > policy.Ceil {
		return policy.Ceil
	}
	return value
}

// StepMinutes returns the step, in minutes, shown on the adjust button tooltips.
func StepMinutes(current int) int {
	if current > 10*60 {
		return CoarseStep / 60
	}
	return 1
}
