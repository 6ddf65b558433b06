// Package rig implements the 2D skeletal rigging and deformation core for the
// vector animation editor: bones, skeletons, pose propagation, per-channel
// keyframing, point/layer binding, and the deformation math that turns bone
// poses into displaced stroke points.
//
// # Architecture
//
// All rig state lives in a single [Store]. The host drives it through three
// independent flows:
//
//  1. Bone edits: a pointer gesture mutates one bone (move/rotate/scale) and
//     the propagation engine cascades the change to descendants, using the
//     Edit strategy (rest-pose redefinition) or the Animate strategy
//     (pose-only, rest pose untouched).
//  2. Frame changes: [Store.ApplyPoseAtFrame] re-evaluates every bone's pose
//     from the keyframe table and re-propagates in hierarchy order.
//  3. Rendering: [Store.DeformStrokes] and [Store.DeformBoundLayerStrokes]
//     are pure functions from the host's undeformed stroke list to a deformed
//     copy; they never mutate stored state.
//
// # Poses
//
// A bone carries two poses. The rest pose is the deformation baseline and
// changes only under Edit-mode operations. The live pose is what is displayed
// and keyframed. For both, the tail is derived: tail = head + length·(cos a,
// sin a). Tails are always recomputed from head/angle/length and never stored.
//
// # Error handling
//
// Mutations referencing unknown skeleton, bone, or layer ids are silent
// no-ops: the interaction layer may legitimately reference an id deleted
// moments earlier mid-gesture. No mutation returns an error for malformed
// input. Negative or non-finite weights and radii are not validated here;
// clamping is the caller's responsibility.
//
// # Concurrency
//
// A Store is single-threaded by contract. Callers sharing one Store across
// goroutines must serialize access externally.
package rig
