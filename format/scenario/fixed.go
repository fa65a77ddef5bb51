package scenario

import "math"

// fixedSin1000 evaluates sin() for an angle encoded as thousandths of a full
// turn (so 1000 == 360 degrees), returning the result scaled by 1000 to
// match the fixed-point convention TermMultiplyReal/TermDivideReal use.
func fixedSin1000(angleMilliTurns int32) int32 {
	radians := float64(angleMilliTurns) / 1000 * 2 * math.Pi
	return int32(math.Round(math.Sin(radians) * 1000))
}
