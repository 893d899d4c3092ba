/*
Package tree models a command as an immutable tree of branches.

Trees are assembled top-down with a Builder, which hands out explicit Branch
handles for every node it creates. Nodes live in a flat arena and refer to
their parent and children by NodeID, so a built Tree has no pointer cycles
and can be shared by concurrent readers without synchronization.

	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"))
	b.Root().Branch(tree.Literal("start", "stop")).
		Branch(tree.Identity("component"), tree.Content(components))
	t, err := b.Build()

Illegal constructions (branching an open-ended node, a required branch below
an optional one, widening a user restriction, mutating after Build) are
reported as *BuildError by Build. Nothing is validated at trace time.
*/
package tree
