/*
Package interchange is a declarative command framework for host applications
that accept textual commands from players and from an operator console.

A command is described once, as a tree of branches, and the framework answers
three questions about any token list an executor types:

  - does it dispatch, and to which action (Dispatch, DispatchAsync, Run);
  - which values could come next (Complete);
  - what does the command look like to this executor (Syntax).

# Concept

Each branch of a tree.Tree consumes one token. Its completion components
describe the values it accepts, its configuration says whether the token is
required, free-form, case-insensitive, multi-word or open-ended, and its
restriction, approvals and cooldown gate who may pass through it. The
trace.Tracer classifies every branch against the tokens; exactly one MATCHING
branch with an action is a successful dispatch.

The Interchange wraps a tree with command-level gates (approval, restriction,
cooldown, input validation) and runs executions on a per-command worker, so a
command's actions never run concurrently with each other while different
commands proceed independently.

# Usage

	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"), tree.Execute(listComponents))
	b.Root().Branch(tree.Literal("start")).Branch(
		tree.Identity("component"),
		tree.Content(components),
		tree.Cooldown(10*time.Second),
		tree.Execute(startComponent),
	)

	cmd, err := interchange.New("component", b.MustBuild(),
		interchange.WithProtectedAccess(),
		interchange.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.Close(context.Background())

	result, err := cmd.Dispatch(ctx, []string{"start", "alpha"}, domain.Player("Steve"))

Cooldowns live in a ports.CooldownStore: memory.CooldownStore by default,
redis.CooldownStore to share them across hosts. Approvals are answered by a
ports.ApprovalChecker; memory.Grants is a simple in-process implementation.
*/
package interchange
