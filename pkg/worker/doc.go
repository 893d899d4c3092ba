/*
Package worker schedules command executions.

Every command gets one logical thread of control: tasks submitted under the
same key run one after another in submission order, while tasks of different
keys run concurrently. A slow action therefore never blocks the caller, and a
command's own state is never touched by two executions at once.
*/
package worker
