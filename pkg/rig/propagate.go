package rig

import "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"

// degenerateLength is the threshold below which a parent segment is treated
// as zero-length: rotation/scale math is skipped and descendants fall back
// to pure translation by the parent's head delta.
const degenerateLength = 1e-9

// propagate recomputes every descendant of b after b's pose changed, so
// parent-child joints stay visually connected. prev is b's transform before
// the mutation. Traversal is breadth-first, parent before child, each
// descendant visited exactly once; a bone's update always reads its parent's
// already-updated transform.
func (s *Skeleton) propagate(b *Bone, prev pose, mode Mode) {
	type item struct {
		bone *Bone
		prev pose
	}
	queue := []item{{bone: b, prev: prev}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		for _, child := range s.Children(it.bone.ID) {
			childPrev := livePose(child)
			switch mode {
			case ModeEdit:
				propagateEdit(it.bone, it.prev, child)
			default:
				propagateAnimate(it.bone, it.prev, child)
			}
			queue = append(queue, item{bone: child, prev: childPrev})
		}
	}
}

// propagateAnimate repositions child under the Animate strategy: the child's
// rest-pose offset from the parent's rest tail is rotated by the parent's
// angle delta and re-anchored at the parent's live tail, then the child's
// independent delta is re-added. The child's own angle and length are left
// untouched - parent rotation translates the attachment point, it never
// spins children.
//
// The independent delta is measured against the attachment position implied
// by the parent's pre-mutation pose, so incremental drag updates compose
// without double-counting. When the parent was previously at rest this is
// exactly the live-minus-rest decomposition.
func propagateAnimate(parent *Bone, parentPrev pose, child *Bone) {
	if parentPrev.length < degenerateLength || parent.Length < degenerateLength {
		// Degenerate segment: pure translation by the parent's head delta.
		child.Head = child.Head.Add(parent.Head.Sub(parentPrev.head))
		return
	}
	independent := child.Head.Sub(attachmentHead(parentPrev, parent, child))
	child.Head = attachmentHead(livePose(parent), parent, child).Add(independent)
}

// attachmentHead returns where child's head lands when it follows parent
// rigidly under the given parent pose: the child's structural offset
// (rest head relative to the parent's rest tail) rotated by the parent's
// delta angle from rest, anchored at the parent pose's tail.
func attachmentHead(parentPose pose, parent *Bone, child *Bone) geom.Point {
	structural := child.RestHead.Sub(parent.RestTail())
	delta := parentPose.angle - parent.RestAngle
	return tailOf(parentPose).Add(structural.Rotate(delta))
}

// propagateEdit applies the parent's geometric delta - the similarity
// transform (translation + rotation + uniform scale) carrying the parent's
// previous head/tail segment onto its current one - to the child's head and
// tail directly. Edit mode redefines the skeleton baseline, so the result is
// written into both live and rest fields.
func propagateEdit(parent *Bone, parentPrev pose, child *Bone) {
	var newHead, newTail geom.Point
	if parentPrev.length < degenerateLength || parent.Length < degenerateLength {
		d := parent.Head.Sub(parentPrev.head)
		newHead = child.Head.Add(d)
		newTail = child.Tail().Add(d)
	} else {
		cur := livePose(parent)
		rot := cur.angle - parentPrev.angle
		scale := cur.length / parentPrev.length
		transform := func(p geom.Point) geom.Point {
			return cur.head.Add(p.Sub(parentPrev.head).Rotate(rot).Mul(scale))
		}
		newHead = transform(child.Head)
		newTail = transform(child.Tail())
	}
	child.Head = newHead
	child.Angle = geom.Angle(newHead, newTail)
	child.Length = newHead.Distance(newTail)
	child.RestHead = child.Head
	child.RestAngle = child.Angle
	child.RestLength = child.Length
}
