package trace

import (
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/tree"
)

// Way is the classification of one branch for one trace.
type Way struct {
	Address string
	Node    tree.NodeID
	// Completion holds the tokens the branch generated for the token at Depth.
	Completion []string
	// Depth is the token index the branch was judged against; -1 for the root.
	Depth int
	Query []string
}

// Result groups the ways of one trace by status, in visit order.
type Result struct {
	Query         []string
	Matching      []Way
	Overflow      []Way
	Incomplete    []Way
	NoDestination []Way
	Failed        []Way
	Conclusion    domain.Conclusion
}

// Ways returns the ways filed under status.
func (r *Result) Ways(status domain.Status) []Way {
	switch status {
	case domain.StatusMatching:
		return r.Matching
	case domain.StatusOverflow:
		return r.Overflow
	case domain.StatusIncomplete:
		return r.Incomplete
	case domain.StatusNoDestination:
		return r.NoDestination
	default:
		return r.Failed
	}
}

// Status finds the status of the branch at address.
func (r *Result) Status(address string) (domain.Status, bool) {
	for _, s := range []domain.Status{
		domain.StatusMatching,
		domain.StatusOverflow,
		domain.StatusIncomplete,
		domain.StatusNoDestination,
		domain.StatusFailed,
	} {
		for _, w := range r.Ways(s) {
			if w.Address == address {
				return s, true
			}
		}
	}
	return 0, false
}

func (r *Result) add(status domain.Status, w Way) {
	switch status {
	case domain.StatusMatching:
		r.Matching = append(r.Matching, w)
	case domain.StatusOverflow:
		r.Overflow = append(r.Overflow, w)
	case domain.StatusIncomplete:
		r.Incomplete = append(r.Incomplete, w)
	case domain.StatusNoDestination:
		r.NoDestination = append(r.NoDestination, w)
	default:
		r.Failed = append(r.Failed, w)
	}
}

func (r *Result) conclude() domain.Conclusion {
	switch {
	case len(r.Matching) == 1:
		return domain.ConclusionMatch
	case len(r.Matching) > 1:
		return domain.ConclusionAmbiguous
	case len(r.Query) == 0:
		return domain.ConclusionEmpty
	case len(r.Incomplete)+len(r.NoDestination) > 0:
		return domain.ConclusionIncomplete
	case len(r.Overflow) > 0:
		return domain.ConclusionOverflow
	default:
		return domain.ConclusionFailed
	}
}
