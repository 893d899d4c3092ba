package tree

import (
	"time"

	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
)

// NodeID indexes a node inside its Tree.
type NodeID int

const (
	// RootID is the index of the root node of every tree.
	RootID NodeID = 0
	// NoParent is the parent of the root.
	NoParent NodeID = -1
)

// RootAddress is the address of every root node.
const RootAddress = "/"

// Configuration controls how a branch judges the token at its depth.
type Configuration struct {
	// Required rejects a blank token.
	Required bool
	// IgnoreCase compares tokens with generated completions case-insensitively.
	IgnoreCase bool
	// MustMatchOutput requires the token to equal one of the generated completions.
	MustMatchOutput bool
	// InfiniteSubParameters lets the branch absorb every remaining token.
	InfiniteSubParameters bool
	// MultiWord accepts tokens containing whitespace (quoted input).
	MultiWord bool
}

// DefaultConfiguration is required and must match its output.
func DefaultConfiguration() Configuration {
	return Configuration{Required: true, MustMatchOutput: true}
}

// Node is one branch of a Tree. Nodes of a built tree must not be modified.
type Node struct {
	ID       NodeID
	Parent   NodeID
	Children []NodeID

	Identity string
	Address  string
	Label    string

	Content     []completion.Component
	Config      Configuration
	Restriction domain.UserRestriction
	Approvals   []domain.Approval
	Cooldown    time.Duration
	Action      domain.Action
}

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool {
	return n.Parent == NoParent
}

// Display is the text shown for n in syntax output.
func (n *Node) Display() string {
	if n.Label != "" {
		return n.Label
	}
	if labels := completion.Labels(n.Content); len(labels) > 0 {
		return joinLabels(labels)
	}
	return n.Identity
}

// Completion generates the tokens n accepts for ctx.
func (n *Node) Completion(ctx completion.Context) []string {
	ctx.IgnoreCase = n.Config.IgnoreCase
	return completion.Collect(ctx, n.Content)
}

func childAddress(parent, identity string) string {
	if parent == RootAddress {
		return RootAddress + identity
	}
	return parent + "/" + identity
}
