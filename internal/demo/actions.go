package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/interchange/pkg/completion"
	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/registry"
)

// Action names used by the definitions in examples/commands.yaml.
const (
	ActionList      = "component.list"
	ActionManage    = "component.manage"
	ActionBroadcast = "broadcast"
)

// Asset completes registered component names.
func Asset(cs *Components) *completion.Asset[Component] {
	return completion.NewAsset[Component]("component", func(completion.Context) []string {
		return cs.Names()
	}).Refreshing().WithCheck(func(ctx completion.Context) bool {
		_, ok := cs.Get(ctx.Input)
		return ok
	}).WithTransformer(func(ctx completion.Context) (Component, bool) {
		return cs.Get(ctx.Input)
	})
}

// Bind registers the demo actions, writing their messages to out.
func Bind(actions *registry.Actions, cs *Components, out io.Writer) {
	actions.Register(ActionList, listAction(cs, out))
	actions.Register(ActionManage, manageAction(cs, out))
	actions.Register(ActionBroadcast, broadcastAction(out))
}

func listAction(cs *Components, out io.Writer) domain.Action {
	return domain.Succeed(func(_ context.Context, _ *domain.Access) {
		fmt.Fprintln(out, "Components (⏻ running / ⭘ stopped, ⚡ autostart):")
		for _, c := range cs.List() {
			status := "⭘"
			if c.Running {
				status = "⏻"
			}
			auto := " "
			if c.AutoStart {
				auto = "⚡"
			}
			fmt.Fprintf(out, "  %s %s %s\n", status, auto, c.Name)
		}
	})
}

// manageAction handles start, stop and autostart; the verb is the first
// parameter and the component the second.
func manageAction(cs *Components, out io.Writer) domain.Action {
	return func(_ context.Context, access *domain.Access) (domain.Result, error) {
		verb, _ := access.Parameter(0)
		name, _ := access.Parameter(1)
		c, ok := cs.Get(name)
		if !ok {
			return domain.ResultWrongUsage, nil
		}

		switch strings.ToLower(verb) {
		case "start":
			changed, err := cs.Start(c.Name)
			if err != nil {
				return domain.ResultFail, err
			}
			if changed {
				fmt.Fprintf(out, "Component %s is now running.\n", c.Name)
			} else {
				fmt.Fprintf(out, "Component %s is already running.\n", c.Name)
			}
			return domain.ResultSuccess, nil

		case "stop":
			changed, err := cs.Stop(c.Name)
			if err != nil {
				return domain.ResultFail, err
			}
			if changed {
				fmt.Fprintf(out, "Component %s stopped.\n", c.Name)
			} else {
				fmt.Fprintf(out, "Component %s is not running.\n", c.Name)
			}
			return domain.ResultSuccess, nil

		case "autostart":
			enabled, err := cs.ToggleAutoStart(c.Name)
			switch {
			case errors.Is(err, ErrAutoStartStatic):
				fmt.Fprintf(out, "Autostart of %s can not be changed.\n", c.Name)
			case err != nil:
				return domain.ResultFail, err
			case enabled:
				fmt.Fprintf(out, "Component %s will start automatically.\n", c.Name)
			default:
				fmt.Fprintf(out, "Component %s will no longer start automatically.\n", c.Name)
			}
			return domain.ResultSuccess, nil
		}
		return domain.ResultWrongUsage, nil
	}
}

func broadcastAction(out io.Writer) domain.Action {
	return domain.Succeed(func(_ context.Context, access *domain.Access) {
		fmt.Fprintf(out, "[%s] %s\n", access.Executor.Name(), strings.Join(access.Parameters, " "))
	})
}
