/*
Package domain contains the core vocabulary shared by every interchange package.

It is kept free of I/O so that the tree, the tracer and the dispatcher can be
reasoned about (and tested) as pure functions over these types.

# Key Entities

  - Executor: Who runs a command (console or player) and what it is called.
  - Approval: An opaque permission identifier gating a branch.
  - UserRestriction: Which executor kinds may traverse a branch.
  - Status / Conclusion: Classification of branches produced by a trace.
  - Result: The outcome code of a dispatch.
  - Access / Action: The invocation context handed to bound actions.
*/
package domain
