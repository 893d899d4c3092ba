package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/interchange/pkg/domain"
	"github.com/aretw0/interchange/pkg/trace"
	"github.com/aretw0/interchange/pkg/tree"
)

// TraceOverlay colours branches by the status a trace gave them.
type TraceOverlay struct {
	Statuses map[string]domain.Status
}

// OverlayFrom records the status of every way in r.
func OverlayFrom(r trace.Result) *TraceOverlay {
	o := &TraceOverlay{Statuses: make(map[string]domain.Status)}
	for _, s := range []domain.Status{
		domain.StatusMatching,
		domain.StatusOverflow,
		domain.StatusIncomplete,
		domain.StatusNoDestination,
		domain.StatusFailed,
	} {
		for _, w := range r.Ways(s) {
			o.Statuses[w.Address] = s
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a command tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Branch with an action: [[Subroutine]]
// - Free input: [/Parallelogram/]
// - Default: [Rectangle]
// Optional branches hang from dotted edges.
func GenerateMermaid(t *tree.Tree, overlay *TraceOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	t.Walk(func(n *tree.Node, level int) bool {
		id := nodeID(n)
		opener, closer := "[", "]"
		switch {
		case n.IsRoot():
			opener, closer = "((", "))"
		case n.Action != nil:
			opener, closer = "[[", "]]"
		case !n.Config.MustMatchOutput:
			opener, closer = "[/", "/]"
		}

		label := escape(n.Display())
		if n.IsRoot() {
			label = "/" + label
		}
		if n.Cooldown > 0 {
			label = fmt.Sprintf("%s <br/> ⏱️ %s", label, n.Cooldown)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)

		if !n.IsRoot() {
			parent := t.Node(n.Parent)
			arrow := "-->"
			if !n.Config.Required {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", nodeID(parent), arrow, id)
		}
		return true
	})

	if overlay != nil && len(overlay.Statuses) > 0 {
		sb.WriteString("\n    %% Trace Overlay\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef matching fill:#c8e6c9,stroke:#2e7d32,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef overflow fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef incomplete fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#eeeeee,stroke:#9e9e9e,color:#000;\n")

		t.Walk(func(n *tree.Node, level int) bool {
			if s, ok := overlay.Statuses[n.Address]; ok {
				fmt.Fprintf(&sb, "    class %s %s;\n", nodeID(n), className(s))
			}
			return true
		})
	}

	return sb.String()
}

func className(s domain.Status) string {
	switch s {
	case domain.StatusMatching:
		return "matching"
	case domain.StatusOverflow:
		return "overflow"
	case domain.StatusIncomplete, domain.StatusNoDestination:
		return "incomplete"
	default:
		return "failed"
	}
}

func nodeID(n *tree.Node) string {
	return fmt.Sprintf("n%d", n.ID)
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
