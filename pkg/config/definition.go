package config

import "time"

// File is the root of a command definitions document.
type File struct {
	Commands []CommandDefinition `mapstructure:"commands"`
}

// CommandDefinition declares one command and its branch tree.
type CommandDefinition struct {
	Label                 string            `mapstructure:"label"`
	Aliases               []string          `mapstructure:"aliases"`
	Protected             bool              `mapstructure:"protected"`
	Approvals             []string          `mapstructure:"approvals"`
	Restriction           string            `mapstructure:"restriction"`
	Hidden                bool              `mapstructure:"hidden"`
	IgnoreInputValidation bool              `mapstructure:"ignore_input_validation"`
	Cooldown              time.Duration     `mapstructure:"cooldown"`
	Feedback              map[string]string `mapstructure:"feedback"`

	// Execute binds the action run when the command is typed without arguments.
	Execute string `mapstructure:"execute"`
	// Execution replaces tree dispatch with a single command-level action.
	Execution string `mapstructure:"execution"`

	Branches []BranchDefinition `mapstructure:"branches"`
}

// BranchDefinition declares one branch. Unset booleans follow the builder
// defaults: required, and must_match whenever the branch has content.
type BranchDefinition struct {
	Identity string   `mapstructure:"identity"`
	Literal  []string `mapstructure:"literal"`
	Values   []string `mapstructure:"values"`
	Assets   []string `mapstructure:"assets"`
	Label    string   `mapstructure:"label"`

	Required   *bool `mapstructure:"required"`
	MustMatch  *bool `mapstructure:"must_match"`
	IgnoreCase bool  `mapstructure:"ignore_case"`
	OpenEnd    bool  `mapstructure:"open_end"`
	MultiWord  bool  `mapstructure:"multi_word"`

	Restriction string        `mapstructure:"restriction"`
	Approvals   []string      `mapstructure:"approvals"`
	Cooldown    time.Duration `mapstructure:"cooldown"`
	Execute     string        `mapstructure:"execute"`

	Branches []BranchDefinition `mapstructure:"branches"`
}

func (d *BranchDefinition) hasContent() bool {
	return len(d.Literal) > 0 || len(d.Values) > 0 || len(d.Assets) > 0
}
