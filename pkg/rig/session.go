package rig

import "github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"

// Session models one pointer drag: it begins on pointer-down, applies a
// bounded sequence of pose updates driven by the host's update loop, and
// ends on pointer-up. In Animate mode exactly one keyframe write per touched
// channel set happens at session end - never per intermediate move - so the
// keyframe store is not flooded during a drag.
type Session struct {
	store      *Store
	skeletonID string
	boneID     string
	mode       Mode
	frame      int
	touched    Channel
	ended      bool
}

// BeginSession starts a drag on one bone at the host's current frame.
// Sessions on unknown ids are valid but inert: every update is a no-op,
// matching the store's silent-ignore contract.
func (st *Store) BeginSession(skeletonID, boneID string, mode Mode, frame int) *Session {
	return &Session{
		store:      st,
		skeletonID: skeletonID,
		boneID:     boneID,
		mode:       mode,
		frame:      frame,
	}
}

// Move updates the dragged bone's head position.
func (s *Session) Move(head geom.Point) {
	if s.ended {
		return
	}
	s.store.MoveBone(s.skeletonID, s.boneID, s.mode, head)
	s.touched |= ChannelTranslate
}

// Rotate updates the dragged bone's absolute angle.
func (s *Session) Rotate(angle float64) {
	if s.ended {
		return
	}
	s.store.RotateBone(s.skeletonID, s.boneID, s.mode, angle)
	s.touched |= ChannelRotate
}

// Scale updates the dragged bone's length.
func (s *Session) Scale(length float64) {
	if s.ended {
		return
	}
	s.store.ScaleBone(s.skeletonID, s.boneID, s.mode, length)
	s.touched |= ChannelScale
}

// End finishes the drag. In Animate mode, if any channel was touched, the
// skeleton's pose is recorded once at the session frame for exactly those
// channels. Edit-mode sessions never write keyframes. End is idempotent.
func (s *Session) End() {
	if s.ended {
		return
	}
	s.ended = true
	if s.mode == ModeAnimate && s.touched != 0 {
		s.store.RecordKeyframe(s.skeletonID, s.frame, s.touched)
	}
}
