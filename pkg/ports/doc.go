/*
Package ports defines the driven ports (interfaces) consulted while tracing
and dispatching commands.

These interfaces decouple the tracer and the dispatcher from the storage of
mutable state, so hosts can keep cooldowns in memory, in Redis, or anywhere else.

# Key Interfaces

  - CooldownStore: Tracks active cooldowns per command, branch and executor.
  - ApprovalChecker: Answers whether an executor holds an approval.
*/
package ports
