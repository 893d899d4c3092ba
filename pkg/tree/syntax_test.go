package tree_test

import (
	"testing"

	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/tree"
	"github.com/stretchr/testify/assert"
)

func TestSyntax(t *testing.T) {
	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"))
	b.Root().Branch(tree.Literal("start", "stop")).
		Branch(tree.Identity("component"), tree.Content(completion.NewAsset[string]("component", nil)))
	b.Root().Branch(tree.Literal("say")).
		Branch(tree.Identity("message"), tree.Label("message"), tree.Optional(), tree.IgnoreCase(), tree.FreeInput(), tree.OpenEnd())
	b.Root().Branch(tree.Identity("raw"), tree.FreeInput())

	want := "/component\n" +
		"  |- (list)=\n" +
		"  |- (start|stop)=\n" +
		"    |- (<component>)=\n" +
		"  |- (say)=\n" +
		"    |- (message)?^*\n" +
		"  |- (raw)\n"
	assert.Equal(t, want, b.MustBuild().Syntax(nil))
}

func TestSyntax_HidesInvisibleSubtrees(t *testing.T) {
	b := tree.NewBuilder("cmd")
	b.Root().Branch(tree.Literal("public"))
	b.Root().Branch(tree.Literal("secret"), tree.Approve("cmd.secret")).
		Branch(tree.Literal("deeper"))
	tr := b.MustBuild()

	got := tr.Syntax(func(n *tree.Node) bool { return len(n.Approvals) == 0 })
	assert.Equal(t, "/cmd\n  |- (public)=\n", got)
}
