package core

// CupSize is a letter on the 28-bucket bra cup ladder, derived from the
// difference between bust-top and bust-under measurements.
type CupSize string

// cupLetters lists every rung of the ladder after AAA, in order. Each
// rung's width alternates 2,3,2,3,... starting from AA, which is what
// the spec's "+3/+2/+3 cycles" works out to when chained tier-to-tier:
// the cumulative alternation lands Z's threshold at exactly 72, matching
// the spec's worked example.
var cupLetters = []string{
	"AA", "A", "B", "C", "D", "E", "F", "G", "H",
	"I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// cupThresholds[i] is the minimum delta for cupLetters[i]; cupLetters[i]
// covers [cupThresholds[i], cupThresholds[i+1]) except the last (Z),
// which is open-ended.
var cupThresholds = buildCupThresholds()

func buildCupThresholds() []int {
	thresholds := make([]int, len(cupLetters))
	start := 7 // AA begins at delta 7 (AAA covers delta <= 6)
	width := 2
	for i := range cupLetters {
		thresholds[i] = start
		start += width
		if width == 2 {
			width = 3
		} else {
			width = 2
		}
	}
	return thresholds
}

// CupSizeFromDelta maps a bust-top-minus-under delta (in cm) to its
// ladder bucket.
func CupSizeFromDelta(delta float64) CupSize {
	if delta <= 6 {
		return "AAA"
	}
	d := int(delta)
	for i := len(cupThresholds) - 1; i >= 0; i-- {
		if d >= cupThresholds[i] {
			return CupSize(cupLetters[i])
		}
	}
	return "AAA"
}
