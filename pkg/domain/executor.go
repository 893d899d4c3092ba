package domain

import "strings"

// ExecutorKind distinguishes the categories an executor can belong to.
type ExecutorKind int

const (
	KindConsole ExecutorKind = iota
	KindPlayer
)

func (k ExecutorKind) String() string {
	switch k {
	case KindConsole:
		return "console"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// ParseExecutorKind maps "console" and "player" (case-insensitive) to a kind.
func ParseExecutorKind(s string) (ExecutorKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console":
		return KindConsole, true
	case "player":
		return KindPlayer, true
	}
	return 0, false
}

// Executor describes whoever issued a command.
type Executor interface {
	Kind() ExecutorKind
	Name() string
}

// ApprovalHolder is implemented by executors that can answer approval checks themselves.
type ApprovalHolder interface {
	HasApproval(Approval) bool
}

// Approval is an opaque permission identifier.
type Approval string

// UserRestriction limits which executor kinds may use a branch.
type UserRestriction int

const (
	RestrictionAny UserRestriction = iota
	RestrictionPlayersOnly
	RestrictionConsoleOnly
)

func (r UserRestriction) String() string {
	switch r {
	case RestrictionPlayersOnly:
		return "players_only"
	case RestrictionConsoleOnly:
		return "console_only"
	default:
		return "any"
	}
}

// ParseUserRestriction accepts the String forms plus "" (any).
func ParseUserRestriction(s string) (UserRestriction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "not_restricted":
		return RestrictionAny, true
	case "players_only", "players", "player":
		return RestrictionPlayersOnly, true
	case "console_only", "console":
		return RestrictionConsoleOnly, true
	}
	return 0, false
}

// Allows reports whether an executor of the given kind passes the restriction.
func (r UserRestriction) Allows(kind ExecutorKind) bool {
	switch r {
	case RestrictionPlayersOnly:
		return kind == KindPlayer
	case RestrictionConsoleOnly:
		return kind == KindConsole
	default:
		return true
	}
}

// Narrows reports whether child is at least as strict as r, i.e. a branch
// restricted by r may carry a child restricted by child.
func (r UserRestriction) Narrows(child UserRestriction) bool {
	if r == RestrictionAny {
		return true
	}
	return child == r
}

// Actor is a plain Executor carrying its own approvals.
type Actor struct {
	ActorName string
	ActorKind ExecutorKind
	Approvals []Approval
}

// Console returns the console actor.
func Console() *Actor {
	return &Actor{ActorName: "CONSOLE", ActorKind: KindConsole}
}

// Player returns a player actor holding the given approvals.
func Player(name string, approvals ...Approval) *Actor {
	return &Actor{ActorName: name, ActorKind: KindPlayer, Approvals: approvals}
}

func (a *Actor) Kind() ExecutorKind { return a.ActorKind }

func (a *Actor) Name() string { return a.ActorName }

// HasApproval reports whether the actor holds approval. Consoles hold every approval.
func (a *Actor) HasApproval(approval Approval) bool {
	if a.ActorKind == KindConsole {
		return true
	}
	for _, held := range a.Approvals {
		if held == approval {
			return true
		}
	}
	return false
}
