package domain

import "strings"

// Result is the outcome code of dispatching a command.
type Result int

const (
	ResultSuccess Result = iota
	ResultNotPermitted
	ResultWrongUsage
	ResultWrongClient
	ResultFail
	ResultBranchCooldown
)

var resultNames = [...]string{
	ResultSuccess:        "SUCCESS",
	ResultNotPermitted:   "NOT_PERMITTED",
	ResultWrongUsage:     "WRONG_USAGE",
	ResultWrongClient:    "WRONG_CLIENT",
	ResultFail:           "FAIL",
	ResultBranchCooldown: "BRANCH_COOLDOWN",
}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "UNKNOWN"
	}
	return resultNames[r]
}

// Results lists every result code in declaration order.
func Results() []Result {
	return []Result{
		ResultSuccess,
		ResultNotPermitted,
		ResultWrongUsage,
		ResultWrongClient,
		ResultFail,
		ResultBranchCooldown,
	}
}

// FeedbackKey returns the message key hosts use to render feedback for r.
func (r Result) FeedbackKey() string {
	switch r {
	case ResultSuccess:
		return ""
	case ResultNotPermitted:
		return "interchange.feedback.notPermitted"
	case ResultWrongUsage:
		return "interchange.feedback.wrongUsage"
	case ResultWrongClient:
		return "interchange.feedback.wrongClient"
	case ResultBranchCooldown:
		return "interchange.feedback.cooldown"
	default:
		return "interchange.feedback.crash"
	}
}

// ParseResult maps a String form (case-insensitive) back to its Result.
func ParseResult(s string) (Result, bool) {
	for _, r := range Results() {
		if strings.EqualFold(r.String(), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return 0, false
}
