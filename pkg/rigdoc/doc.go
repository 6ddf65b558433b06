// Package rigdoc provides serialization for rig state and scene content.
//
// # Overview
//
// Two document kinds cross the package boundary:
//
//   - Rig documents (TOML): skeletons, bones, keyframes, and binding tables.
//     This is the authoring artifact an editor saves alongside its project
//     file, and the input the CLI renders from.
//   - Scene documents (JSON): the flat stroke list and layer tree for one
//     frame, as exported by the host's drawing subsystem.
//
// # Rig Format
//
// A rig document is TOML with nested array tables:
//
//	version = 1
//
//	[[skeleton]]
//	id = "torso"
//	layer = "figure"
//	name = "Torso"
//
//	[[skeleton.bone]]
//	id = "hip"
//	name = "Hip"
//	head = [120.0, 200.0]
//	angle = 1.5708
//	length = 48.0
//
//	[[skeleton.key]]
//	frame = 12
//
//	[[skeleton.key.bone]]
//	bone = "hip"
//	channels = "rotate"
//	angle = 1.2
//
// Bone rest fields (rest_head, rest_angle, rest_length) default to the live
// pose when omitted, matching how a freshly drawn bone starts out.
//
// # Validation
//
// Import validates referential integrity before building a store: duplicate
// ids, unknown parent references, keyframe and binding records naming
// nonexistent bones, and non-positive weights all fail with
// [errors.ErrCodeInvalidDocument]. Malformed TOML or JSON fails with
// [errors.ErrCodeInvalidFormat].
//
// # Round Trips
//
// Export writes everything [rig.Store.Snapshot] captures, in deterministic
// order, so an import/export cycle is stable byte-for-byte. Transient state
// (drag sessions, the flexi-bind undo snapshot) is not persisted.
package rigdoc
