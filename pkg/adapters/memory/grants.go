package memory

import (
	"strings"
	"sync"

	"github.com/aretw0/interchange/pkg/domain"
)

// Grants implements ports.ApprovalChecker from an in-memory table keyed by
// executor name. A grant of "*" holds every approval and "prefix.*" holds
// every approval below prefix. Consoles hold every approval.
type Grants struct {
	mu     sync.RWMutex
	grants map[string]map[domain.Approval]struct{}
}

// NewGrants creates an empty grant table.
func NewGrants() *Grants {
	return &Grants{grants: make(map[string]map[domain.Approval]struct{})}
}

// Grant gives approvals to the executor called name.
func (g *Grants) Grant(name string, approvals ...domain.Approval) {
	g.mu.Lock()
	defer g.mu.Unlock()
	held, ok := g.grants[name]
	if !ok {
		held = make(map[domain.Approval]struct{})
		g.grants[name] = held
	}
	for _, a := range approvals {
		held[a] = struct{}{}
	}
}

// Revoke takes an approval away.
func (g *Grants) Revoke(name string, approval domain.Approval) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.grants[name], approval)
}

// HasApproval implements ports.ApprovalChecker.
func (g *Grants) HasApproval(executor domain.Executor, approval domain.Approval) bool {
	if executor.Kind() == domain.KindConsole {
		return true
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	held := g.grants[executor.Name()]
	if _, ok := held[approval]; ok {
		return true
	}
	if _, ok := held["*"]; ok {
		return true
	}
	for a := range held {
		prefix, ok := strings.CutSuffix(string(a), ".*")
		if ok && strings.HasPrefix(string(approval), prefix+".") {
			return true
		}
	}
	return false
}
