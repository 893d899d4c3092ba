package tree

import "strings"

// Visible decides whether a node (and its subtree) appears in syntax output.
type Visible func(n *Node) bool

// Syntax renders the usage of the tree, one line per visible node:
//
//	/component
//	  |- (list)=
//	  |- (start|stop)=
//	    |- (<component>)=
//
// Markers: ? optional, ^ case-insensitive, = must match output, * open end.
// A nil visible shows every node.
func (t *Tree) Syntax(visible Visible) string {
	var sb strings.Builder
	t.Walk(func(n *Node, level int) bool {
		if visible != nil && !visible(n) {
			return false
		}
		if level == 0 {
			sb.WriteString("/")
			sb.WriteString(n.Display())
			sb.WriteString("\n")
			return true
		}
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString("|- (")
		sb.WriteString(n.Display())
		sb.WriteString(")")
		sb.WriteString(markers(n.Config))
		sb.WriteString("\n")
		return true
	})
	return sb.String()
}

func markers(cfg Configuration) string {
	var m []byte
	if !cfg.Required {
		m = append(m, '?')
	}
	if cfg.IgnoreCase {
		m = append(m, '^')
	}
	if cfg.MustMatchOutput {
		m = append(m, '=')
	}
	if cfg.InfiniteSubParameters {
		m = append(m, '*')
	}
	return string(m)
}

func joinLabels(labels []string) string {
	return strings.Join(labels, "|")
}
