// Package workflow recognizes the two JSON shapes a saved workflow can take:
// the editor's UI workflow (a top-level "nodes" list plus links and layout)
// and the machine-executable API graph (node id -> {class_type, inputs}).
package workflow

// Kind is the detected shape of a workflow document.
type Kind int

const (
	KindUI Kind = iota
	KindAPI
)

func (k Kind) String() string {
	if k == KindAPI {
		return "api"
	}
	return "ui"
}

// IsAPIGraph reports whether doc is an API graph. A top-level "nodes" list
// always means UI, even when node-shaped entries are present as well.
func IsAPIGraph(doc any) bool {
	m, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	if nodes, ok := m["nodes"]; ok {
		if _, isList := nodes.([]any); isList {
			return false
		}
	}
	for _, v := range m {
		if isNodeDef(v) {
			return true
		}
	}
	return false
}

// Classify maps doc to its Kind. Anything that is not an API graph is UI.
func Classify(doc any) Kind {
	if IsAPIGraph(doc) {
		return KindAPI
	}
	return KindUI
}

func isNodeDef(v any) bool {
	node, ok := v.(map[string]any)
	if !ok {
		return false
	}
	_, hasClass := node["class_type"]
	_, hasInputs := node["inputs"]
	return hasClass && hasInputs
}
