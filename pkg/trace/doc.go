/*
Package trace classifies a command tree against a token list.

A trace visits every branch of the tree, depth first, and files each one
under exactly one status:

  - MATCHING: the tokens end here (or are absorbed here) and the branch accepts them.
  - OVERFLOW: the branch accepts its token but more tokens follow.
  - INCOMPLETE: a required token is missing at or below this branch.
  - NO_DESTINATION: the tokens end here but only required children could follow.
  - FAILED: the executor may not use the branch, or its token is wrong.

FAILED and INCOMPLETE are absorbing: every descendant inherits them. A trace
is a pure function of the tree, the tokens and the executor's capabilities;
the same inputs always produce an equal Result.

The same classification drives dispatch (the single MATCHING branch runs) and
completion (INCOMPLETE, MATCHING and NO_DESTINATION branches at the next
token index contribute suggestions).
*/
package trace
