package domain

// Status classifies one branch during a trace.
type Status int

const (
	StatusMatching Status = iota
	StatusOverflow
	StatusIncomplete
	StatusNoDestination
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMatching:
		return "MATCHING"
	case StatusOverflow:
		return "OVERFLOW"
	case StatusIncomplete:
		return "INCOMPLETE"
	case StatusNoDestination:
		return "NO_DESTINATION"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Absorbing reports whether descendants inherit the status unconditionally.
func (s Status) Absorbing() bool {
	return s == StatusFailed || s == StatusIncomplete
}

// Accepting reports whether a branch with this status lets its children be reached.
func (s Status) Accepting() bool {
	return s == StatusMatching || s == StatusOverflow || s == StatusNoDestination
}

// Conclusion summarizes a whole trace.
type Conclusion int

const (
	ConclusionEmpty Conclusion = iota
	ConclusionMatch
	ConclusionAmbiguous
	ConclusionIncomplete
	ConclusionOverflow
	ConclusionFailed
)

func (c Conclusion) String() string {
	switch c {
	case ConclusionEmpty:
		return "EMPTY"
	case ConclusionMatch:
		return "MATCH"
	case ConclusionAmbiguous:
		return "AMBIGUOUS"
	case ConclusionIncomplete:
		return "INCOMPLETE"
	case ConclusionOverflow:
		return "OVERFLOW"
	default:
		return "FAILED"
	}
}
