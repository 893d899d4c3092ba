package tree

import (
	"errors"
	"fmt"
)

var (
	ErrTreeLocked            = errors.New("tree is locked")
	ErrInfiniteBranch        = errors.New("cannot branch a node with infinite sub-parameters")
	ErrRequiredUnderOptional = errors.New("required branch below an optional branch")
	ErrRestrictionWidened    = errors.New("branch widens the user restriction of its parent")
	ErrContentAfterBranch    = errors.New("content cannot be added after branching")
	ErrConfigurationLocked   = errors.New("configuration is locked once a node has children")
	ErrDuplicateIdentity     = errors.New("duplicate branch identity")
	ErrInvalidIdentity       = errors.New("invalid branch identity")
)

// BuildError reports an illegal tree construction.
type BuildError struct {
	Address string
	Op      string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("tree: %s at %q: %v", e.Op, e.Address, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
