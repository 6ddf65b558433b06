package rig

import (
	"sort"
	"strings"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
)

// Channel is a bitmask of independently animatable pose facets. Translate
// covers the head position (x and y jointly), Rotate the angle, Scale the
// length.
type Channel uint8

const (
	ChannelTranslate Channel = 1 << iota
	ChannelRotate
	ChannelScale
)

// AllChannels is the default channel set for recording and deletion.
const AllChannels = ChannelTranslate | ChannelRotate | ChannelScale

// Has reports whether every channel in ch is present in c.
func (c Channel) Has(ch Channel) bool { return c&ch == ch }

// String returns a stable "translate+rotate+scale" style representation.
func (c Channel) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	if c.Has(ChannelTranslate) {
		parts = append(parts, "translate")
	}
	if c.Has(ChannelRotate) {
		parts = append(parts, "rotate")
	}
	if c.Has(ChannelScale) {
		parts = append(parts, "scale")
	}
	return strings.Join(parts, "+")
}

// ParseChannels parses a "translate+rotate+scale" style channel set, the
// inverse of [Channel.String]. Unknown channel names report ok=false.
func ParseChannels(s string) (Channel, bool) {
	if s == "" || s == "none" {
		return 0, true
	}
	var c Channel
	for _, part := range strings.Split(s, "+") {
		switch part {
		case "translate":
			c |= ChannelTranslate
		case "rotate":
			c |= ChannelRotate
		case "scale":
			c |= ChannelScale
		default:
			return 0, false
		}
	}
	return c, true
}

// boneChannels is one bone's partial record at a single frame. Values for
// channels absent from Keyed are carried for bookkeeping but are not
// authoritative; evaluation resolves them against other frames.
type boneChannels struct {
	Angle  float64
	HeadX  float64
	HeadY  float64
	Length float64
	Keyed  Channel
}

// frameRecord holds the partial channel records of every bone keyed at one
// (skeleton, frame) slot.
type frameRecord map[string]*boneChannels

// =============================================================================
// Recording and deletion
// =============================================================================

// RecordKeyframe captures the current live pose of every bone in the
// skeleton at the given frame, for the channels in the set (use
// [AllChannels] for a full key). Channels outside the set preserve the
// record's existing values, or default to the rest pose when no record
// existed yet. The record's keyed set grows by union; only an explicit
// deletion narrows it. Unknown skeleton ids are a no-op.
func (st *Store) RecordKeyframe(skeletonID string, frame int, channels Channel) {
	s := st.byID[skeletonID]
	if s == nil || channels == 0 {
		return
	}
	frames := st.keys[skeletonID]
	if frames == nil {
		frames = make(map[int]frameRecord)
		st.keys[skeletonID] = frames
	}
	rec := frames[frame]
	if rec == nil {
		rec = make(frameRecord)
		frames[frame] = rec
	}
	for _, b := range s.Bones {
		bc := rec[b.ID]
		if bc == nil {
			// Seed unkeyed channels from the rest pose.
			bc = &boneChannels{
				Angle:  b.RestAngle,
				HeadX:  b.RestHead.X,
				HeadY:  b.RestHead.Y,
				Length: b.RestLength,
			}
			rec[b.ID] = bc
		}
		if channels.Has(ChannelRotate) {
			bc.Angle = b.Angle
		}
		if channels.Has(ChannelTranslate) {
			bc.HeadX = b.Head.X
			bc.HeadY = b.Head.Y
		}
		if channels.Has(ChannelScale) {
			bc.Length = b.Length
		}
		bc.Keyed |= channels
	}
}

// DeleteKeyframe removes the given channels from every bone's record at the
// frame. Deleting all channels removes the frame's record entirely. A record
// left with zero keyed channels on some bone is kept; it is simply no longer
// authoritative for anything.
func (st *Store) DeleteKeyframe(skeletonID string, frame int, channels Channel) {
	frames := st.keys[skeletonID]
	if frames == nil {
		return
	}
	if channels.Has(AllChannels) {
		delete(frames, frame)
		return
	}
	rec := frames[frame]
	for _, bc := range rec {
		bc.Keyed &^= channels
	}
}

// HasKeyframes reports whether any skeleton has at least one keyframe record.
func (st *Store) HasKeyframes() bool {
	for _, frames := range st.keys {
		if len(frames) > 0 {
			return true
		}
	}
	return false
}

// KeyedFrames returns the sorted frame indices holding records for the
// skeleton.
func (st *Store) KeyedFrames(skeletonID string) []int {
	frames := st.keys[skeletonID]
	out := make([]int, 0, len(frames))
	for f := range frames {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// =============================================================================
// Evaluation
// =============================================================================

// ApplyPoseAtFrame mutates every skeleton's live bone poses to the
// keyframe-evaluated result for the frame, then re-propagates each hierarchy
// so descendants reflect their parents' frame-evaluated pose. The operation
// is idempotent: evaluating the same frame twice without other mutation
// yields bit-identical poses.
func (st *Store) ApplyPoseAtFrame(frame int) {
	for _, s := range st.skeletons {
		st.applySkeletonPose(s, frame)
	}
}

func (st *Store) applySkeletonPose(s *Skeleton, frame int) {
	frames := st.KeyedFrames(s.ID)
	table := st.keys[s.ID]

	// Pass 1: per-bone, per-channel interpolation. This yields every bone's
	// authored pose - keyed values blended across the bracketing frames,
	// rest-pose values for channels never keyed.
	for _, b := range s.Bones {
		b.Angle = st.evalChannel(table, frames, b, frame, ChannelRotate, b.RestAngle, func(bc *boneChannels) float64 { return bc.Angle }, geom.LerpAngle)
		b.Head.X = st.evalChannel(table, frames, b, frame, ChannelTranslate, b.RestHead.X, func(bc *boneChannels) float64 { return bc.HeadX }, geom.Lerp)
		b.Head.Y = st.evalChannel(table, frames, b, frame, ChannelTranslate, b.RestHead.Y, func(bc *boneChannels) float64 { return bc.HeadY }, geom.Lerp)
		b.Length = st.evalChannel(table, frames, b, frame, ChannelScale, b.RestLength, func(bc *boneChannels) float64 { return bc.Length }, geom.Lerp)
	}

	// Pass 2: hierarchy propagation under the Animate strategy, parent
	// before child. Every bone now holds a freshly authored pose, so a
	// child's independent delta is exactly live-minus-rest and the anchor is
	// the parent's rest pose.
	for _, b := range hierarchyOrder(s) {
		parent := s.Bone(b.ParentID)
		if parent == nil {
			continue
		}
		independent := b.Head.Sub(b.RestHead)
		if parent.RestLength < degenerateLength || parent.Length < degenerateLength {
			b.Head = b.RestHead.Add(independent).Add(parent.Head.Sub(parent.RestHead))
			continue
		}
		b.Head = attachmentHead(livePose(parent), parent, b).Add(independent)
	}
}

// evalChannel resolves one channel of one bone at the frame: gather the
// frames where the channel is explicitly keyed for the bone, select the
// bracketing pair, and interpolate. With no keyed frames the channel
// resolves to the rest-pose value.
func (st *Store) evalChannel(table map[int]frameRecord, frames []int, b *Bone, frame int, ch Channel, restVal float64, value func(*boneChannels) float64, lerp func(a, b, t float64) float64) float64 {
	prev, next := -1, -1
	var prevBC, nextBC *boneChannels
	for _, f := range frames {
		bc := table[f][b.ID]
		if bc == nil || !bc.Keyed.Has(ch) {
			continue
		}
		if f <= frame {
			prev, prevBC = f, bc
		}
		if f >= frame && next == -1 {
			next, nextBC = f, bc
		}
	}
	switch {
	case prevBC == nil && nextBC == nil:
		return restVal
	case prevBC == nil:
		return value(nextBC)
	case nextBC == nil:
		return value(prevBC)
	}
	t := 0.0
	if next != prev {
		t = float64(frame-prev) / float64(next-prev)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return lerp(value(prevBC), value(nextBC), t)
}

// hierarchyOrder returns the skeleton's bones parent-before-child,
// breadth-first from the roots. Bones in parent cycles (a caller-broken
// invariant) are appended at the end so evaluation still terminates.
func hierarchyOrder(s *Skeleton) []*Bone {
	out := make([]*Bone, 0, len(s.Bones))
	seen := make(map[string]bool, len(s.Bones))
	queue := s.Roots()
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
		queue = append(queue, s.Children(b.ID)...)
	}
	for _, b := range s.Bones {
		if !seen[b.ID] {
			out = append(out, b)
		}
	}
	return out
}
