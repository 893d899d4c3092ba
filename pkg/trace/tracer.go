package trace

import (
	"slices"
	"strings"
	"unicode"

	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/ports"
	"github.com/aretw0/interchange/pkg/tree"
)

// Tracer classifies a built tree. It is safe for concurrent use.
type Tracer struct {
	tree      *tree.Tree
	approvals ports.ApprovalChecker
}

// New creates a Tracer. A nil checker falls back to ports.HolderApprovals.
func New(t *tree.Tree, approvals ports.ApprovalChecker) *Tracer {
	if approvals == nil {
		approvals = ports.HolderApprovals
	}
	return &Tracer{tree: t, approvals: approvals}
}

// Tree returns the traced tree.
func (tr *Tracer) Tree() *tree.Tree {
	return tr.tree
}

// Permits reports whether executor passes the gates of n.
func (tr *Tracer) Permits(n *tree.Node, executor domain.Executor) bool {
	return n.Restriction.Allows(executor.Kind()) && ports.HasAll(tr.approvals, executor, n.Approvals)
}

// Trace classifies every branch of the tree against query.
func (tr *Tracer) Trace(query []string, executor domain.Executor) Result {
	r := Result{Query: slices.Clone(query)}
	root := tr.tree.Root()
	for _, child := range root.Children {
		tr.visit(&r, child, 0, domain.StatusMatching, executor)
	}
	// The root is judged last and never re-enters its children.
	tr.judge(&r, root, -1, domain.StatusMatching, executor)
	r.Conclusion = r.conclude()
	return r
}

// Validate reports whether query resolves to a branch, or is empty.
func (tr *Tracer) Validate(query []string, executor domain.Executor) bool {
	r := tr.Trace(query, executor)
	return len(r.Matching) > 0 || (len(query) == 0 && r.Conclusion == domain.ConclusionEmpty)
}

func (tr *Tracer) visit(r *Result, id tree.NodeID, depth int, parent domain.Status, executor domain.Executor) {
	n := tr.tree.Node(id)
	status := tr.judge(r, n, depth, parent, executor)
	for _, child := range n.Children {
		tr.visit(r, child, depth+1, status, executor)
	}
}

func (tr *Tracer) judge(r *Result, n *tree.Node, depth int, parent domain.Status, executor domain.Executor) domain.Status {
	token := tokenAt(r.Query, depth)
	completions := n.Completion(completion.Context{
		Executor: executor,
		Query:    r.Query,
		Input:    token,
	})
	status := tr.classify(n, r.Query, depth, token, completions, parent, executor)
	r.add(status, Way{
		Address:    n.Address,
		Node:       n.ID,
		Completion: completions,
		Depth:      depth,
		Query:      r.Query,
	})
	return status
}

func (tr *Tracer) classify(n *tree.Node, query []string, depth int, token string, completions []string, parent domain.Status, executor domain.Executor) domain.Status {
	if parent.Absorbing() {
		return parent
	}
	if !tr.Permits(n, executor) {
		return domain.StatusFailed
	}

	bareRoot := n.IsRoot() && len(query) == 0 && n.Action != nil
	parentIsRoot := n.Parent == tree.RootID

	if !inputValid(n, token, completions) {
		switch {
		case bareRoot:
			return domain.StatusMatching
		case !n.IsRoot() && !parentIsRoot && parent.Accepting() && isBlank(token):
			return domain.StatusIncomplete
		case parentIsRoot && len(query) == 0:
			return domain.StatusIncomplete
		}
		return domain.StatusFailed
	}

	if bareRoot {
		return domain.StatusMatching
	}
	// Absorbing parents returned above, so only accepting parents reach their children.
	if n.IsRoot() || !(parentIsRoot || parent.Accepting()) {
		return domain.StatusFailed
	}

	lastIndex := len(query) - 1
	if lastIndex < depth && tr.anyRequiredChild(n) {
		return domain.StatusIncomplete
	}
	if depth >= lastIndex || n.Config.InfiniteSubParameters {
		if len(n.Children) > 0 && tr.allRequiredChildren(n) && n.Action == nil {
			return domain.StatusNoDestination
		}
		return domain.StatusMatching
	}
	return domain.StatusOverflow
}

func (tr *Tracer) anyRequiredChild(n *tree.Node) bool {
	for _, id := range n.Children {
		if tr.tree.Node(id).Config.Required {
			return true
		}
	}
	return false
}

func (tr *Tracer) allRequiredChildren(n *tree.Node) bool {
	for _, id := range n.Children {
		if !tr.tree.Node(id).Config.Required {
			return false
		}
	}
	return true
}

func inputValid(n *tree.Node, token string, completions []string) bool {
	cfg := n.Config
	if cfg.MustMatchOutput && !completion.Contains(completions, token, cfg.IgnoreCase) {
		return false
	}
	if cfg.Required && isBlank(token) {
		return false
	}
	if !cfg.MultiWord && strings.ContainsFunc(token, unicode.IsSpace) {
		return false
	}
	return true
}

func tokenAt(query []string, depth int) string {
	if depth < 0 || depth >= len(query) {
		return ""
	}
	return query[depth]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
