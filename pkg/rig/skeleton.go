package rig

// Skeleton is an ordered, owned collection of bones tied to one host layer.
// The bone hierarchy within a skeleton must stay acyclic; this is a
// caller-maintained invariant, not actively enforced.
type Skeleton struct {
	ID      string
	LayerID string // owning host layer (external id)
	Name    string
	Bones   []*Bone // ordered; exclusive ownership
}

// Bone returns the bone with the given id, or nil if absent.
func (s *Skeleton) Bone(id string) *Bone {
	for _, b := range s.Bones {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Children returns the bones whose parent is parentID, in skeleton order.
func (s *Skeleton) Children(parentID string) []*Bone {
	var out []*Bone
	for _, b := range s.Bones {
		if b.ParentID == parentID && parentID != "" {
			out = append(out, b)
		}
	}
	return out
}

// Roots returns the parentless bones in skeleton order. A bone whose parent
// id no longer resolves is treated as a root for traversal purposes.
func (s *Skeleton) Roots() []*Bone {
	var out []*Bone
	for _, b := range s.Bones {
		if b.ParentID == "" || s.Bone(b.ParentID) == nil {
			out = append(out, b)
		}
	}
	return out
}
