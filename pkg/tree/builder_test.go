package tree_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/interchange/internal/logging"
	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *domain.Access) (domain.Result, error) {
	return domain.ResultSuccess, nil
}

func TestBuilder_Addresses(t *testing.T) {
	b := tree.NewBuilder("component")
	list := b.Root().Branch(tree.Literal("list"))
	start := b.Root().Branch(tree.Literal("start", "stop"))
	comp := start.Branch(tree.Identity("component"), tree.FreeInput())
	anon := b.Root().Branch(tree.FreeInput())

	tr, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "/", tr.Root().Address)
	assert.Equal(t, "component", tr.Label())
	assert.Equal(t, "/list", tr.Node(list.ID()).Address)
	assert.Equal(t, "/start", tr.Node(start.ID()).Address)
	assert.Equal(t, "/start/component", tr.Node(comp.ID()).Address)
	assert.Equal(t, "/way-2", tr.Node(anon.ID()).Address)
	assert.Equal(t, 5, tr.Len())

	n, ok := tr.Lookup("/start/component")
	require.True(t, ok)
	assert.Equal(t, comp.ID(), n.ID)
	assert.Equal(t, start.ID(), n.Parent)

	_, ok = tr.Lookup("/missing")
	assert.False(t, ok)
	assert.Nil(t, tr.Node(99))
}

func TestBuilder_Inheritance(t *testing.T) {
	b := tree.NewBuilder("admin")
	parent := b.Root().Branch(
		tree.Literal("ban"),
		tree.Restrict(domain.RestrictionPlayersOnly),
		tree.Approve("admin.ban"),
	)
	child := parent.Branch(tree.Identity("target"), tree.FreeInput(), tree.Approve("admin.ban.target"))

	tr := b.MustBuild()
	n := tr.Node(child.ID())
	assert.Equal(t, domain.RestrictionPlayersOnly, n.Restriction)
	assert.Equal(t, []domain.Approval{"admin.ban", "admin.ban.target"}, n.Approvals)
}

func TestBuilder_ApprovePropagatesToExistingChildren(t *testing.T) {
	b := tree.NewBuilder("cmd")
	parent := b.Root().Branch(tree.Literal("a"))
	child := parent.Branch(tree.Literal("b"))
	parent.Approve("late")

	tr := b.MustBuild()
	assert.Equal(t, []domain.Approval{"late"}, tr.Node(child.ID()).Approvals)
}

func TestBuilder_Defaults(t *testing.T) {
	b := tree.NewBuilder("cmd")
	br := b.Root().Branch(tree.Literal("a"))
	tr := b.MustBuild()

	cfg := tr.Node(br.ID()).Config
	assert.True(t, cfg.Required)
	assert.True(t, cfg.MustMatchOutput)
	assert.False(t, cfg.IgnoreCase)
	assert.False(t, cfg.InfiniteSubParameters)
	assert.False(t, cfg.MultiWord)
	assert.Equal(t, domain.RestrictionAny, tr.Node(br.ID()).Restriction)
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *tree.Builder)
		wantErr error
		address string
	}{
		{
			name: "branching an open-ended node",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("say")).
					Branch(tree.Identity("message"), tree.FreeInput(), tree.OpenEnd()).
					Branch(tree.Literal("more"))
			},
			wantErr: tree.ErrInfiniteBranch,
			address: "/say/message",
		},
		{
			name: "required below optional",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("help")).
					Branch(tree.Identity("topic"), tree.Optional()).
					Branch(tree.Identity("page"))
			},
			wantErr: tree.ErrRequiredUnderOptional,
			address: "/help/topic/page",
		},
		{
			name: "console parent gains unrestricted child",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("stop"), tree.Restrict(domain.RestrictionConsoleOnly)).
					Branch(tree.Literal("now"), tree.Restrict(domain.RestrictionAny))
			},
			wantErr: tree.ErrRestrictionWidened,
			address: "/stop/now",
		},
		{
			name: "console parent gains players-only child",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("stop"), tree.Restrict(domain.RestrictionConsoleOnly)).
					Branch(tree.Literal("now"), tree.Restrict(domain.RestrictionPlayersOnly))
			},
			wantErr: tree.ErrRestrictionWidened,
			address: "/stop/now",
		},
		{
			name: "content after branching",
			build: func(b *tree.Builder) {
				br := b.Root().Branch(tree.Literal("a"))
				br.Branch(tree.Literal("b"))
				br.Content(completion.Static("c"))
			},
			wantErr: tree.ErrContentAfterBranch,
			address: "/a",
		},
		{
			name: "configure after branching",
			build: func(b *tree.Builder) {
				br := b.Root().Branch(tree.Literal("a"))
				br.Branch(tree.Literal("b"))
				br.Configure(func(c *tree.Configuration) { c.IgnoreCase = true })
			},
			wantErr: tree.ErrConfigurationLocked,
			address: "/a",
		},
		{
			name: "configure required below optional",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("a"), tree.Optional()).
					Branch(tree.Literal("b"), tree.Optional()).
					Configure(func(c *tree.Configuration) { c.Required = true })
			},
			wantErr: tree.ErrRequiredUnderOptional,
			address: "/a/b",
		},
		{
			name: "duplicate identity",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("a"))
				b.Root().Branch(tree.Literal("a", "b"))
			},
			wantErr: tree.ErrDuplicateIdentity,
			address: "/a",
		},
		{
			name: "identity with separator",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Identity("a/b"))
			},
			wantErr: tree.ErrInvalidIdentity,
			address: "/a/b",
		},
		{
			name: "restrict wider than parent",
			build: func(b *tree.Builder) {
				b.Root().Branch(tree.Literal("a"), tree.Restrict(domain.RestrictionPlayersOnly)).
					Branch(tree.Literal("b")).
					Restrict(domain.RestrictionAny)
			},
			wantErr: tree.ErrRestrictionWidened,
			address: "/a/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tree.NewBuilder("cmd")
			tt.build(b)

			tr, err := b.Build()
			assert.Nil(t, tr)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var buildErr *tree.BuildError
			require.True(t, errors.As(err, &buildErr))
			assert.Equal(t, tt.address, buildErr.Address)
		})
	}
}

func TestBuilder_FirstErrorSticks(t *testing.T) {
	b := tree.NewBuilder("cmd")
	b.Root().Branch(tree.Literal("say"), tree.OpenEnd(), tree.FreeInput()).Branch(tree.Literal("x"))
	b.Root().Branch(tree.Literal("a"))
	b.Root().Branch(tree.Literal("a"))

	assert.ErrorIs(t, b.Err(), tree.ErrInfiniteBranch)
	assert.NotErrorIs(t, b.Err(), tree.ErrDuplicateIdentity)
}

func TestBuilder_LockedAfterBuild(t *testing.T) {
	b := tree.NewBuilder("cmd")
	root := b.Root()
	root.Branch(tree.Literal("a"))
	first, err := b.Build()
	require.NoError(t, err)

	again, err := b.Build()
	require.NoError(t, err)
	assert.Same(t, first, again)

	root.Branch(tree.Literal("b"))
	assert.ErrorIs(t, b.Err(), tree.ErrTreeLocked)
	assert.Equal(t, 2, first.Len(), "built tree must not change")
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	b := tree.NewBuilder("cmd")
	b.Root().Branch(tree.Literal("a"), tree.Optional()).Branch(tree.Literal("b"))

	assert.Panics(t, func() { b.MustBuild() })
}

func TestBuilder_ExecuteOverwriteWarns(t *testing.T) {
	var buf bytes.Buffer
	b := tree.NewBuilder("cmd", tree.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)))
	br := b.Root().Branch(tree.Literal("a")).Execute(noop)
	assert.Empty(t, buf.String())

	br.Execute(noop)
	_, err := b.Build()

	require.NoError(t, err, "overwriting an action is not fatal")
	assert.Contains(t, buf.String(), "Overwriting existing execution")
	assert.Contains(t, buf.String(), "address=/a")
}

func TestBuilder_Setters(t *testing.T) {
	b := tree.NewBuilder("cmd")
	br := b.Root().Branch(tree.Identity("a")).
		Content(completion.Static("x", "y")).
		Configure(func(c *tree.Configuration) { c.IgnoreCase = true }).
		Cooldown(5 * time.Second).
		Label("thing")
	tr := b.MustBuild()

	n := tr.Node(br.ID())
	assert.True(t, n.Config.IgnoreCase)
	assert.Equal(t, 5*time.Second, n.Cooldown)
	assert.Equal(t, "thing", n.Display())
	assert.Equal(t, []string{"x", "y"}, n.Completion(completion.Context{}))
}

func TestTree_Walk(t *testing.T) {
	b := tree.NewBuilder("cmd")
	a := b.Root().Branch(tree.Literal("a"))
	a.Branch(tree.Literal("a1"))
	b.Root().Branch(tree.Literal("b"))
	tr := b.MustBuild()

	var visited []string
	tr.Walk(func(n *tree.Node, level int) bool {
		visited = append(visited, n.Address)
		return n.Address != "/a"
	})
	assert.Equal(t, []string{"/", "/a", "/b"}, visited)
}
