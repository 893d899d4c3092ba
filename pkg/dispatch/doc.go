/*
Package dispatch turns a classified trace into an execution.

A Dispatcher resolves the single MATCHING branch for a token list, enforces
its per-executor cooldown through a ports.CooldownStore (console executors
are exempt), and invokes its action with the tokens that follow the branch.
Panics and errors raised by the action are logged and reported as
domain.ResultFail, so one faulty command can never take down its host.
*/
package dispatch
