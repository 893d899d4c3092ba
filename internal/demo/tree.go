package demo

import (
	"io"
	"time"

	"github.com/aretw0/interchange"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/tree"
)

// Seed registers the components the console host starts with.
func Seed(cs *Components) {
	cs.Register(Component{Name: "Chat", AutoStart: true})
	cs.Register(Component{Name: "Economy"})
	cs.Register(Component{Name: "Storage", AutoStart: true, Static: true})
	cs.Register(Component{Name: "Scoreboard"})
}

// Tree builds the component command in Go, mirroring examples/commands.yaml.
//
//	/component
//	  |- (list)=
//	  |- (start|stop|autostart)=
//	    |- (<component>)^=
func Tree(cs *Components, out io.Writer) (*tree.Tree, error) {
	b := tree.NewBuilder("component")
	b.Root().Branch(tree.Literal("list"), tree.Execute(listAction(cs, out)))
	b.Root().Branch(tree.Identity("manage"), tree.Literal("start", "stop", "autostart")).Branch(
		tree.Identity("component"),
		tree.Content(Asset(cs)),
		tree.IgnoreCase(),
		tree.Cooldown(5*time.Second),
		tree.Execute(manageAction(cs, out)),
	)
	return b.Build()
}

// Commands builds the component and broadcast commands without a
// definitions file. opts are applied to both.
func Commands(cs *Components, out io.Writer, opts ...interchange.Option) ([]*interchange.Interchange, error) {
	t, err := Tree(cs, out)
	if err != nil {
		return nil, err
	}
	component, err := interchange.New("component", t, append([]interchange.Option{
		interchange.WithAliases("comp"),
		interchange.WithProtectedAccess(),
		interchange.WithFeedback(domain.ResultWrongUsage, "Usage: /component list | (start|stop|autostart) <component>"),
	}, opts...)...)
	if err != nil {
		return nil, err
	}

	b := tree.NewBuilder("broadcast")
	b.Root().Branch(
		tree.Identity("message"),
		tree.FreeInput(),
		tree.OpenEnd(),
		tree.MultiWord(),
		tree.Execute(broadcastAction(out)),
	)
	bt, err := b.Build()
	if err != nil {
		return nil, err
	}
	broadcast, err := interchange.New("broadcast", bt, append([]interchange.Option{
		interchange.WithAliases("bc"),
	}, opts...)...)
	if err != nil {
		return nil, err
	}
	return []*interchange.Interchange{component, broadcast}, nil
}
