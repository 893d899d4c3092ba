package domain

import "time"

// Report is the detailed outcome of one command execution.
type Report struct {
	Result Result
	// Address of the executed branch, empty for command-level outcomes.
	Address string
	// Remaining is the cooldown left when Result is ResultBranchCooldown.
	Remaining time.Duration
	Duration  time.Duration
	Err       error
}
