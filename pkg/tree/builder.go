package tree

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
)

// Builder manages the tree construction.
// The first illegal operation poisons the builder: it is logged, every later
// operation becomes a no-op and Build returns the error.
type Builder struct {
	label  string
	nodes  []Node
	built  *Tree
	err    error
	logger *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for build warnings and errors.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a builder whose root represents the command label.
func NewBuilder(label string, opts ...Option) *Builder {
	b := &Builder{
		label:  label,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.nodes = append(b.nodes, Node{
		ID:       RootID,
		Parent:   NoParent,
		Identity: label,
		Address:  RootAddress,
		Label:    label,
		Config:   DefaultConfiguration(),
	})
	return b
}

// Root returns the handle of the root node.
func (b *Builder) Root() *Branch {
	return &Branch{b: b, id: RootID}
}

// Err returns the first build error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build locks the tree and returns it. Calling Build again returns the same tree.
func (b *Builder) Build() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built != nil {
		return b.built, nil
	}
	t := &Tree{
		label: b.label,
		nodes: b.nodes,
		index: make(map[string]NodeID, len(b.nodes)),
	}
	for _, n := range t.nodes {
		t.index[n.Address] = n.ID
	}
	b.built = t
	b.nodes = nil
	return t, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Tree {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *Builder) fail(address, op string, err error) {
	if b.err != nil {
		return
	}
	b.err = &BuildError{Address: address, Op: op, Err: err}
	b.logger.Error("Illegal tree construction", "command", b.label, "address", address, "op", op, "err", err)
}

// usable reports whether operations may still touch the arena.
func (b *Builder) usable(id NodeID, op string) bool {
	if b.err != nil {
		return false
	}
	if b.built != nil {
		address := ""
		if n := b.built.Node(id); n != nil {
			address = n.Address
		}
		b.fail(address, op, ErrTreeLocked)
		return false
	}
	return id >= 0 && int(id) < len(b.nodes)
}

// Branch is a handle to one node under construction.
type Branch struct {
	b  *Builder
	id NodeID
}

// ID returns the arena index of the node.
func (br *Branch) ID() NodeID {
	return br.id
}

// Address returns the address of the node.
func (br *Branch) Address() string {
	if br.b.built != nil {
		if n := br.b.built.Node(br.id); n != nil {
			return n.Address
		}
		return ""
	}
	if br.id < 0 || int(br.id) >= len(br.b.nodes) {
		return ""
	}
	return br.b.nodes[br.id].Address
}

// BranchOption configures a child before it is attached.
type BranchOption func(*Node)

// Identity sets the identity of the child. Defaults to "way-<n>".
func Identity(identity string) BranchOption {
	return func(n *Node) {
		n.Identity = identity
	}
}

// Literal accepts exactly the given tokens and names the branch after the first one.
func Literal(tokens ...string) BranchOption {
	return func(n *Node) {
		n.Content = append(n.Content, completion.Static(tokens...))
		if n.Identity == "" && len(tokens) > 0 {
			n.Identity = tokens[0]
		}
	}
}

// Content appends completion components.
func Content(components ...completion.Component) BranchOption {
	return func(n *Node) {
		n.Content = append(n.Content, components...)
	}
}

// Label sets the display label used in syntax output.
func Label(label string) BranchOption {
	return func(n *Node) {
		n.Label = label
	}
}

// Configure replaces the configuration of the child.
func Configure(cfg Configuration) BranchOption {
	return func(n *Node) {
		n.Config = cfg
	}
}

// Optional accepts a blank token.
func Optional() BranchOption {
	return func(n *Node) {
		n.Config.Required = false
	}
}

// IgnoreCase compares tokens case-insensitively.
func IgnoreCase() BranchOption {
	return func(n *Node) {
		n.Config.IgnoreCase = true
	}
}

// FreeInput accepts tokens that are not among the generated completions.
func FreeInput() BranchOption {
	return func(n *Node) {
		n.Config.MustMatchOutput = false
	}
}

// OpenEnd lets the branch absorb every remaining token.
func OpenEnd() BranchOption {
	return func(n *Node) {
		n.Config.InfiniteSubParameters = true
	}
}

// MultiWord accepts tokens containing whitespace.
func MultiWord() BranchOption {
	return func(n *Node) {
		n.Config.MultiWord = true
	}
}

// Restrict limits the executor kinds allowed on the branch.
func Restrict(r domain.UserRestriction) BranchOption {
	return func(n *Node) {
		n.Restriction = r
	}
}

// Approve adds approvals an executor must hold.
func Approve(approvals ...domain.Approval) BranchOption {
	return func(n *Node) {
		n.Approvals = appendApprovals(n.Approvals, approvals...)
	}
}

// Cooldown sets the per-executor cooldown of the branch.
func Cooldown(d time.Duration) BranchOption {
	return func(n *Node) {
		n.Cooldown = d
	}
}

// Execute binds the action of the branch.
func Execute(action domain.Action) BranchOption {
	return func(n *Node) {
		n.Action = action
	}
}

// Branch attaches a new child and returns its handle. Children inherit the
// restriction and approvals of their parent.
func (br *Branch) Branch(opts ...BranchOption) *Branch {
	b := br.b
	if !b.usable(br.id, "branch") {
		return &Branch{b: b, id: NoParent}
	}
	parent := &b.nodes[br.id]
	if parent.Config.InfiniteSubParameters {
		b.fail(parent.Address, "branch", ErrInfiniteBranch)
		return &Branch{b: b, id: NoParent}
	}

	child := Node{
		ID:          NodeID(len(b.nodes)),
		Parent:      br.id,
		Config:      DefaultConfiguration(),
		Restriction: parent.Restriction,
		Approvals:   slices.Clone(parent.Approvals),
	}
	for _, opt := range opts {
		opt(&child)
	}
	if child.Identity == "" {
		child.Identity = fmt.Sprintf("way-%d", len(parent.Children))
	}
	child.Address = childAddress(parent.Address, child.Identity)

	switch {
	case strings.ContainsAny(child.Identity, "/ \t\n"):
		b.fail(child.Address, "branch", ErrInvalidIdentity)
	case child.Config.Required && !parent.Config.Required:
		b.fail(child.Address, "branch", ErrRequiredUnderOptional)
	case !parent.Restriction.Narrows(child.Restriction):
		b.fail(child.Address, "branch", ErrRestrictionWidened)
	case b.hasChild(parent, child.Identity):
		b.fail(child.Address, "branch", ErrDuplicateIdentity)
	}
	if b.err != nil {
		return &Branch{b: b, id: NoParent}
	}

	b.nodes = append(b.nodes, child)
	// append may have moved the arena.
	parent = &b.nodes[br.id]
	parent.Children = append(parent.Children, child.ID)
	return &Branch{b: b, id: child.ID}
}

func (b *Builder) hasChild(parent *Node, identity string) bool {
	for _, id := range parent.Children {
		if b.nodes[id].Identity == identity {
			return true
		}
	}
	return false
}

// Content appends completion components. Rejected once the node has children.
func (br *Branch) Content(components ...completion.Component) *Branch {
	if !br.b.usable(br.id, "content") {
		return br
	}
	n := &br.b.nodes[br.id]
	if len(n.Children) > 0 {
		br.b.fail(n.Address, "content", ErrContentAfterBranch)
		return br
	}
	n.Content = append(n.Content, components...)
	return br
}

// Configure edits the configuration. Rejected once the node has children.
func (br *Branch) Configure(edit func(*Configuration)) *Branch {
	if !br.b.usable(br.id, "configure") {
		return br
	}
	n := &br.b.nodes[br.id]
	if len(n.Children) > 0 {
		br.b.fail(n.Address, "configure", ErrConfigurationLocked)
		return br
	}
	cfg := n.Config
	edit(&cfg)
	if cfg.Required && !n.IsRoot() && !br.b.nodes[n.Parent].Config.Required {
		br.b.fail(n.Address, "configure", ErrRequiredUnderOptional)
		return br
	}
	n.Config = cfg
	return br
}

// Restrict changes the user restriction of the node.
func (br *Branch) Restrict(r domain.UserRestriction) *Branch {
	if !br.b.usable(br.id, "restrict") {
		return br
	}
	n := &br.b.nodes[br.id]
	if !n.IsRoot() && !br.b.nodes[n.Parent].Restriction.Narrows(r) {
		br.b.fail(n.Address, "restrict", ErrRestrictionWidened)
		return br
	}
	for _, id := range n.Children {
		if !r.Narrows(br.b.nodes[id].Restriction) {
			br.b.fail(n.Address, "restrict", ErrRestrictionWidened)
			return br
		}
	}
	n.Restriction = r
	return br
}

// Approve adds approvals to the node and everything already below it.
func (br *Branch) Approve(approvals ...domain.Approval) *Branch {
	if !br.b.usable(br.id, "approve") {
		return br
	}
	var visit func(id NodeID)
	visit = func(id NodeID) {
		n := &br.b.nodes[id]
		n.Approvals = appendApprovals(n.Approvals, approvals...)
		for _, child := range n.Children {
			visit(child)
		}
	}
	visit(br.id)
	return br
}

// Cooldown sets the per-executor cooldown of the node.
func (br *Branch) Cooldown(d time.Duration) *Branch {
	if br.b.usable(br.id, "cooldown") {
		br.b.nodes[br.id].Cooldown = d
	}
	return br
}

// Label sets the display label of the node.
func (br *Branch) Label(label string) *Branch {
	if br.b.usable(br.id, "label") {
		br.b.nodes[br.id].Label = label
	}
	return br
}

// Execute binds the action of the node, warning when one is replaced.
func (br *Branch) Execute(action domain.Action) *Branch {
	if !br.b.usable(br.id, "execute") {
		return br
	}
	n := &br.b.nodes[br.id]
	if n.Action != nil {
		br.b.logger.Warn("Overwriting existing execution", "command", br.b.label, "address", n.Address)
	}
	n.Action = action
	return br
}

func appendApprovals(dst []domain.Approval, approvals ...domain.Approval) []domain.Approval {
	for _, a := range approvals {
		if a != "" && !slices.Contains(dst, a) {
			dst = append(dst, a)
		}
	}
	return dst
}
