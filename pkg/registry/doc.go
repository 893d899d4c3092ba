/*
Package registry groups commands for a host.

A Registry resolves the first token of a command line to a command by label
or alias and hands it the remaining tokens; it also completes command names.
Actions is the name-to-code binding table used when commands are declared in
configuration files rather than in Go.
*/
package registry
