package llm

// Score bands used in the instruction block and in client output.
const (
	BandExcellent = "excellent"
	BandStrong    = "strong"
	BandModerate  = "moderate"
	BandWeak      = "weak"
	BandPoor      = "poor"
)

// Band returns the scoring band for a normalized score.
func Band(score int) string {
	switch {
	case score >= 90:
		return BandExcellent
	case score >= 75:
		return BandStrong
	case score >= 60:
		return BandModerate
	case score >= 40:
		return BandWeak
	default:
		return BandPoor
	}
}
