// Package memory provides in-process adapters for cooldowns and approvals.
package memory
