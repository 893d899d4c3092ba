package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/interchange"
	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/registry"
	"github.com/aretw0/interchange/pkg/tree"
)

var (
	ErrUnknownAction      = errors.New("unknown action")
	ErrUnknownAsset       = errors.New("unknown asset")
	ErrUnknownRestriction = errors.New("unknown restriction")
	ErrUnknownResult      = errors.New("unknown result")
)

// DefinitionError locates a problem inside a definitions document.
type DefinitionError struct {
	Command string
	// Path is the chain of branch identities, "/" for the command itself.
	Path string
	Err  error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("command %s at %s: %v", e.Command, e.Path, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Bindings resolves the names used in definitions.
type Bindings struct {
	Actions *registry.Actions
	// Assets by name. Long, Double, Boolean and Duration are always available
	// as "long", "double", "boolean" and "duration" unless overridden.
	Assets map[string]completion.Component
	Logger *slog.Logger
}

func (b Bindings) asset(name string) (completion.Component, bool) {
	if c, ok := b.Assets[name]; ok {
		return c, true
	}
	switch strings.ToLower(name) {
	case "long":
		return completion.Long(), true
	case "double":
		return completion.Double(), true
	case "boolean":
		return completion.Boolean(), true
	case "duration":
		return completion.Duration(), true
	}
	return nil, false
}

func (b Bindings) action(name string) (domain.Action, bool) {
	if b.Actions == nil {
		return nil, false
	}
	return b.Actions.Lookup(name)
}

// Build turns every definition into a command. opts are applied to all of
// them, after the options derived from the definition. Every broken
// definition is reported, joined into one error.
func (f *File) Build(bindings Bindings, opts ...interchange.Option) ([]*interchange.Interchange, error) {
	if bindings.Logger == nil {
		bindings.Logger = logging.NewNop()
	}
	var (
		cmds []*interchange.Interchange
		errs []error
	)
	for _, def := range f.Commands {
		cmd, err := def.build(bindings, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cmds = append(cmds, cmd)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cmds, nil
}

// Registry builds the commands and groups them.
func (f *File) Registry(bindings Bindings, opts ...interchange.Option) (*registry.Registry, error) {
	cmds, err := f.Build(bindings, opts...)
	if err != nil {
		return nil, err
	}
	list := make([]registry.Command, 0, len(cmds))
	for _, cmd := range cmds {
		list = append(list, cmd)
	}
	return registry.New(list...)
}

func (def *CommandDefinition) build(bindings Bindings, extra []interchange.Option) (*interchange.Interchange, error) {
	errs := &collector{command: def.Label}

	b := tree.NewBuilder(def.Label, tree.WithLogger(bindings.Logger))
	if def.Execute != "" {
		if action, ok := bindings.action(def.Execute); ok {
			b.Root().Execute(action)
		} else {
			errs.add(tree.RootAddress, fmt.Errorf("%w: %s", ErrUnknownAction, def.Execute))
		}
	}
	for i := range def.Branches {
		buildBranch(b.Root(), &def.Branches[i], bindings, errs)
	}

	var opts []interchange.Option
	if len(def.Aliases) > 0 {
		opts = append(opts, interchange.WithAliases(def.Aliases...))
	}
	if def.Protected {
		opts = append(opts, interchange.WithProtectedAccess())
	}
	for _, a := range def.Approvals {
		opts = append(opts, interchange.WithRequiredApproval(domain.Approval(a)))
	}
	if r, ok := domain.ParseUserRestriction(def.Restriction); ok {
		opts = append(opts, interchange.WithUserRestriction(r))
	} else {
		errs.add(tree.RootAddress, fmt.Errorf("%w: %s", ErrUnknownRestriction, def.Restriction))
	}
	if def.Hidden {
		opts = append(opts, interchange.WithHidden())
	}
	if def.IgnoreInputValidation {
		opts = append(opts, interchange.WithIgnoreInputValidation())
	}
	if def.Cooldown > 0 {
		opts = append(opts, interchange.WithCooldown(def.Cooldown))
	}
	if def.Execution != "" {
		if action, ok := bindings.action(def.Execution); ok {
			opts = append(opts, interchange.WithExecution(action))
		} else {
			errs.add(tree.RootAddress, fmt.Errorf("%w: %s", ErrUnknownAction, def.Execution))
		}
	}
	for name, msg := range def.Feedback {
		if r, ok := domain.ParseResult(name); ok {
			opts = append(opts, interchange.WithFeedback(r, msg))
		} else {
			errs.add(tree.RootAddress, fmt.Errorf("%w: %s", ErrUnknownResult, name))
		}
	}

	t, err := b.Build()
	if err != nil {
		var be *tree.BuildError
		address := tree.RootAddress
		if errors.As(err, &be) {
			address = be.Address
		}
		errs.add(address, err)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	cmd, err := interchange.New(def.Label, t, append(opts, extra...)...)
	if err != nil {
		return nil, &DefinitionError{Command: def.Label, Path: tree.RootAddress, Err: err}
	}
	return cmd, nil
}

func buildBranch(parent *tree.Branch, def *BranchDefinition, bindings Bindings, errs *collector) {
	var opts []tree.BranchOption
	if len(def.Literal) > 0 {
		opts = append(opts, tree.Literal(def.Literal...))
	}
	if len(def.Values) > 0 {
		opts = append(opts, tree.Content(completion.Static(def.Values...)))
	}
	where := branchPath(parent.Address(), def)
	for _, name := range def.Assets {
		if c, ok := bindings.asset(name); ok {
			opts = append(opts, tree.Content(c))
		} else {
			errs.add(where, fmt.Errorf("%w: %s", ErrUnknownAsset, name))
		}
	}
	if def.Identity != "" {
		opts = append(opts, tree.Identity(def.Identity))
	}
	if def.Label != "" {
		opts = append(opts, tree.Label(def.Label))
	}
	if def.Required != nil && !*def.Required {
		opts = append(opts, tree.Optional())
	}
	if mustMatch := def.MustMatch; (mustMatch != nil && !*mustMatch) || (mustMatch == nil && !def.hasContent()) {
		opts = append(opts, tree.FreeInput())
	}
	if def.IgnoreCase {
		opts = append(opts, tree.IgnoreCase())
	}
	if def.OpenEnd {
		opts = append(opts, tree.OpenEnd())
	}
	if def.MultiWord {
		opts = append(opts, tree.MultiWord())
	}
	if def.Restriction != "" {
		if r, ok := domain.ParseUserRestriction(def.Restriction); ok {
			opts = append(opts, tree.Restrict(r))
		} else {
			errs.add(where, fmt.Errorf("%w: %s", ErrUnknownRestriction, def.Restriction))
		}
	}
	if len(def.Approvals) > 0 {
		approvals := make([]domain.Approval, 0, len(def.Approvals))
		for _, a := range def.Approvals {
			approvals = append(approvals, domain.Approval(a))
		}
		opts = append(opts, tree.Approve(approvals...))
	}
	if def.Cooldown > 0 {
		opts = append(opts, tree.Cooldown(def.Cooldown))
	}
	if def.Execute != "" {
		if action, ok := bindings.action(def.Execute); ok {
			opts = append(opts, tree.Execute(action))
		} else {
			errs.add(where, fmt.Errorf("%w: %s", ErrUnknownAction, def.Execute))
		}
	}

	branch := parent.Branch(opts...)
	for i := range def.Branches {
		buildBranch(branch, &def.Branches[i], bindings, errs)
	}
}

// branchPath names a branch before it exists, for error messages.
func branchPath(parent string, def *BranchDefinition) string {
	name := def.Identity
	if name == "" && len(def.Literal) > 0 {
		name = def.Literal[0]
	}
	if name == "" {
		name = "?"
	}
	return strings.TrimSuffix(parent, "/") + "/" + name
}

type collector struct {
	command string
	errs    []error
}

func (c *collector) add(path string, err error) {
	c.errs = append(c.errs, &DefinitionError{Command: c.command, Path: path, Err: err})
}

func (c *collector) err() error {
	return errors.Join(c.errs...)
}
