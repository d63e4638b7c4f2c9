// Package ast holds the node model for Miru declarations: types, members,
// statements and expressions, plus the canonical type cache and the builder
// helpers used by transformations.
package ast

// Position describes where a node came from in source.
type Position struct {
	Line       int
	Column     int
	LastLine   int
	LastColumn int
}

// IsValid reports whether the position was ever set.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// BaseNode carries source position and attached metadata. It is embedded in
// every node type; replacement utilities rely on SetSourcePosition and
// CopyNodeMetaData to keep both intact when swapping nodes.
type BaseNode struct {
	Pos  Position
	meta map[string]any
}

// Base returns the embedded node state. It exists so interfaces over
// concrete node types can reach position and metadata uniformly.
func (n *BaseNode) Base() *BaseNode { return n }

// SetSourcePosition copies the source position of other onto this node.
func (n *BaseNode) SetSourcePosition(other *BaseNode) {
	n.Pos = other.Pos
}

// NodeMetaData returns the metadata value stored under key, or nil.
func (n *BaseNode) NodeMetaData(key string) any {
	if n.meta == nil {
		return nil
	}
	return n.meta[key]
}

// PutNodeMetaData stores value under key, replacing any previous value.
func (n *BaseNode) PutNodeMetaData(key string, value any) {
	if n.meta == nil {
		n.meta = make(map[string]any)
	}
	n.meta[key] = value
}

// RemoveNodeMetaData deletes the metadata entry for key.
func (n *BaseNode) RemoveNodeMetaData(key string) {
	delete(n.meta, key)
}

// CopyNodeMetaData copies all metadata entries from other onto this node.
// Existing entries with the same key are overwritten.
func (n *BaseNode) CopyNodeMetaData(other *BaseNode) {
	if len(other.meta) == 0 {
		return
	}
	if n.meta == nil {
		n.meta = make(map[string]any, len(other.meta))
	}
	for k, v := range other.meta {
		n.meta[k] = v
	}
}

const generatedKey = "miru.generated"

// MarkGenerated tags a node as compiler-synthesized. Generated members lose
// against hand-written ones when a transformation decides whether to run.
func MarkGenerated(n *BaseNode) {
	n.PutNodeMetaData(generatedKey, true)
}

// IsGenerated reports whether the node was synthesized by a transformation.
func IsGenerated(n *BaseNode) bool {
	v, _ := n.NodeMetaData(generatedKey).(bool)
	return v
}
