package stroke

// Layer is one node of the host's layer tree. Group and switch layers carry
// children; the rigging core only cares about identity and nesting.
type Layer struct {
	ID       string
	Name     string
	Children []*Layer
}

// Descendants returns the layer's subtree ids in depth-first document order,
// the layer itself first. The order is load-bearing for layer-binding
// resolution, where the last processed binding wins.
func (l *Layer) Descendants() []string {
	if l == nil {
		return nil
	}
	ids := []string{l.ID}
	for _, c := range l.Children {
		ids = append(ids, c.Descendants()...)
	}
	return ids
}

// FindLayer locates a layer by id in a forest of layer trees.
// Returns nil if no layer matches.
func FindLayer(roots []*Layer, id string) *Layer {
	for _, r := range roots {
		if r == nil {
			continue
		}
		if r.ID == id {
			return r
		}
		if found := FindLayer(r.Children, id); found != nil {
			return found
		}
	}
	return nil
}
