package rigdoc

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/errors"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
)

// Version is the rig document format version this package reads and writes.
const Version = 1

type document struct {
	Version   int            `toml:"version"`
	FlexiBind bool           `toml:"flexi_bind,omitempty"`
	Skeletons []skeletonDoc  `toml:"skeleton,omitempty"`
	Points    []pointBindDoc `toml:"point_binding,omitempty"`
	Layers    []layerBindDoc `toml:"layer_binding,omitempty"`
}

type skeletonDoc struct {
	ID    string    `toml:"id"`
	Layer string    `toml:"layer,omitempty"`
	Name  string    `toml:"name,omitempty"`
	Bones []boneDoc `toml:"bone,omitempty"`
	Keys  []keyDoc  `toml:"key,omitempty"`
}

type boneDoc struct {
	ID     string     `toml:"id"`
	Name   string     `toml:"name,omitempty"`
	Parent string     `toml:"parent,omitempty"`
	Head   [2]float64 `toml:"head"`
	Angle  float64    `toml:"angle"`
	Length float64    `toml:"length"`

	// Rest fields default to the live pose when omitted.
	RestHead   *[2]float64 `toml:"rest_head,omitempty"`
	RestAngle  *float64    `toml:"rest_angle,omitempty"`
	RestLength *float64    `toml:"rest_length,omitempty"`

	Color       string   `toml:"color,omitempty"`
	Strength    *float64 `toml:"strength,omitempty"`
	FlexiRadius *float64 `toml:"flexi_radius,omitempty"`
	ZOrder      int      `toml:"z_order,omitempty"`
}

type keyDoc struct {
	Frame int          `toml:"frame"`
	Bones []keyBoneDoc `toml:"bone,omitempty"`
}

type keyBoneDoc struct {
	Bone     string  `toml:"bone"`
	Channels string  `toml:"channels"`
	Angle    float64 `toml:"angle"`
	HeadX    float64 `toml:"head_x"`
	HeadY    float64 `toml:"head_y"`
	Length   float64 `toml:"length"`
}

type pointBindDoc struct {
	Stroke  string      `toml:"stroke"`
	Index   int         `toml:"index"`
	Weights []weightDoc `toml:"weight,omitempty"`
}

type weightDoc struct {
	Bone   string  `toml:"bone"`
	Weight float64 `toml:"weight"`
}

type layerBindDoc struct {
	Layer    string `toml:"layer"`
	Bone     string `toml:"bone"`
	Skeleton string `toml:"skeleton"`
}

// =============================================================================
// Import
// =============================================================================

// ReadRig decodes a TOML rig document from r into a new store.
//
// The document is validated before the store is built: duplicate ids,
// dangling parent/bone references, unparseable channel sets, and
// non-positive binding weights are all rejected. ReadRig does not close r.
func ReadRig(r io.Reader) (*rig.Store, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode rig document")
	}
	snap, err := toSnapshot(doc)
	if err != nil {
		return nil, err
	}
	return rig.FromSnapshot(snap), nil
}

// ImportRig reads a TOML rig document from the file at path.
func ImportRig(path string) (*rig.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadRig(f)
}

func toSnapshot(doc document) (rig.Snapshot, error) {
	var snap rig.Snapshot

	if doc.Version == 0 {
		return snap, errors.New(errors.ErrCodeInvalidDocument, "missing document version")
	}
	if doc.Version > Version {
		return snap, errors.New(errors.ErrCodeUnsupported, "document version %d is newer than supported version %d", doc.Version, Version)
	}

	snap.FlexiActive = doc.FlexiBind

	// Bone ids are referenced globally by bindings, so uniqueness is
	// document-wide, not per skeleton.
	skeletonIDs := make(map[string]bool)
	boneSkeleton := make(map[string]string)

	for _, sd := range doc.Skeletons {
		if sd.ID == "" {
			return snap, errors.New(errors.ErrCodeInvalidDocument, "skeleton with empty id")
		}
		if skeletonIDs[sd.ID] {
			return snap, errors.New(errors.ErrCodeInvalidDocument, "duplicate skeleton id %q", sd.ID)
		}
		skeletonIDs[sd.ID] = true

		ss := rig.SkeletonSnapshot{ID: sd.ID, LayerID: sd.Layer, Name: sd.Name}
		if ss.Name == "" {
			ss.Name = "Skeleton"
		}

		bonesHere := make(map[string]bool)
		for _, bd := range sd.Bones {
			if bd.ID == "" {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "skeleton %q: bone with empty id", sd.ID)
			}
			if _, dup := boneSkeleton[bd.ID]; dup {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "duplicate bone id %q", bd.ID)
			}
			boneSkeleton[bd.ID] = sd.ID
			bonesHere[bd.ID] = true
			ss.Bones = append(ss.Bones, toBoneSnapshot(bd))
		}

		for _, bd := range sd.Bones {
			if bd.Parent == "" {
				continue
			}
			if bd.Parent == bd.ID {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "bone %q is its own parent", bd.ID)
			}
			if !bonesHere[bd.Parent] {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "bone %q: unknown parent %q", bd.ID, bd.Parent)
			}
		}

		seenFrames := make(map[int]bool)
		for _, kd := range sd.Keys {
			if seenFrames[kd.Frame] {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "skeleton %q: duplicate keyframe for frame %d", sd.ID, kd.Frame)
			}
			seenFrames[kd.Frame] = true

			ks := rig.KeyframeSnapshot{Frame: kd.Frame}
			for _, bk := range kd.Bones {
				if !bonesHere[bk.Bone] {
					return snap, errors.New(errors.ErrCodeInvalidDocument, "skeleton %q frame %d: unknown bone %q", sd.ID, kd.Frame, bk.Bone)
				}
				channels, ok := rig.ParseChannels(bk.Channels)
				if !ok {
					return snap, errors.New(errors.ErrCodeInvalidDocument, "bone %q frame %d: bad channel set %q", bk.Bone, kd.Frame, bk.Channels)
				}
				ks.Bones = append(ks.Bones, rig.BoneKeySnapshot{
					BoneID:   bk.Bone,
					Channels: channels,
					Angle:    bk.Angle,
					HeadX:    bk.HeadX,
					HeadY:    bk.HeadY,
					Length:   bk.Length,
				})
			}
			ss.Keyframes = append(ss.Keyframes, ks)
		}

		snap.Skeletons = append(snap.Skeletons, ss)
	}

	for _, pd := range doc.Points {
		pb := rig.PointBindingSnapshot{StrokeID: pd.Stroke, Index: pd.Index}
		if pd.Stroke == "" {
			return snap, errors.New(errors.ErrCodeInvalidDocument, "point binding with empty stroke id")
		}
		for _, wd := range pd.Weights {
			if _, ok := boneSkeleton[wd.Bone]; !ok {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "point binding %s[%d]: unknown bone %q", pd.Stroke, pd.Index, wd.Bone)
			}
			if wd.Weight <= 0 {
				return snap, errors.New(errors.ErrCodeInvalidDocument, "point binding %s[%d]: non-positive weight for bone %q", pd.Stroke, pd.Index, wd.Bone)
			}
			pb.Weights = append(pb.Weights, rig.WeightSnapshot{BoneID: wd.Bone, Weight: wd.Weight})
		}
		snap.PointBindings = append(snap.PointBindings, pb)
	}

	for _, ld := range doc.Layers {
		owner, ok := boneSkeleton[ld.Bone]
		if !ok {
			return snap, errors.New(errors.ErrCodeInvalidDocument, "layer binding %q: unknown bone %q", ld.Layer, ld.Bone)
		}
		if ld.Skeleton != "" && ld.Skeleton != owner {
			return snap, errors.New(errors.ErrCodeInvalidDocument, "layer binding %q: bone %q belongs to skeleton %q, not %q", ld.Layer, ld.Bone, owner, ld.Skeleton)
		}
		snap.LayerBindings = append(snap.LayerBindings, rig.LayerBindingSnapshot{
			LayerID:    ld.Layer,
			BoneID:     ld.Bone,
			SkeletonID: owner,
		})
	}

	return snap, nil
}

func toBoneSnapshot(bd boneDoc) rig.BoneSnapshot {
	bs := rig.BoneSnapshot{
		ID:          bd.ID,
		Name:        bd.Name,
		ParentID:    bd.Parent,
		Head:        geom.Pt(bd.Head[0], bd.Head[1]),
		Angle:       bd.Angle,
		Length:      bd.Length,
		Color:       bd.Color,
		Strength:    rig.DefaultStrength,
		FlexiRadius: rig.DefaultFlexiRadius,
		ZOrder:      bd.ZOrder,
	}
	if bs.Name == "" {
		bs.Name = "Bone"
	}
	if bs.Color == "" {
		bs.Color = rig.DefaultColor
	}
	bs.RestHead = bs.Head
	bs.RestAngle = bs.Angle
	bs.RestLength = bs.Length
	if bd.RestHead != nil {
		bs.RestHead = geom.Pt(bd.RestHead[0], bd.RestHead[1])
	}
	if bd.RestAngle != nil {
		bs.RestAngle = *bd.RestAngle
	}
	if bd.RestLength != nil {
		bs.RestLength = *bd.RestLength
	}
	if bd.Strength != nil {
		bs.Strength = *bd.Strength
	}
	if bd.FlexiRadius != nil {
		bs.FlexiRadius = *bd.FlexiRadius
	}
	return bs
}

// =============================================================================
// Export
// =============================================================================

// WriteRig encodes the store's persistent state as a TOML rig document. The
// output is deterministic for a given store and re-imports identically.
func WriteRig(st *rig.Store, w io.Writer) error {
	doc := fromSnapshot(st.Snapshot())
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode rig document")
	}
	return nil
}

// ExportRig writes the store to a TOML file at path.
func ExportRig(st *rig.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteRig(st, f)
}

func fromSnapshot(snap rig.Snapshot) document {
	doc := document{Version: Version, FlexiBind: snap.FlexiActive}

	for _, ss := range snap.Skeletons {
		sd := skeletonDoc{ID: ss.ID, Layer: ss.LayerID, Name: ss.Name}
		for _, bs := range ss.Bones {
			restHead := [2]float64{bs.RestHead.X, bs.RestHead.Y}
			restAngle := bs.RestAngle
			restLength := bs.RestLength
			strength := bs.Strength
			radius := bs.FlexiRadius
			sd.Bones = append(sd.Bones, boneDoc{
				ID:          bs.ID,
				Name:        bs.Name,
				Parent:      bs.ParentID,
				Head:        [2]float64{bs.Head.X, bs.Head.Y},
				Angle:       bs.Angle,
				Length:      bs.Length,
				RestHead:    &restHead,
				RestAngle:   &restAngle,
				RestLength:  &restLength,
				Color:       bs.Color,
				Strength:    &strength,
				FlexiRadius: &radius,
				ZOrder:      bs.ZOrder,
			})
		}
		for _, ks := range ss.Keyframes {
			kd := keyDoc{Frame: ks.Frame}
			for _, bk := range ks.Bones {
				kd.Bones = append(kd.Bones, keyBoneDoc{
					Bone:     bk.BoneID,
					Channels: bk.Channels.String(),
					Angle:    bk.Angle,
					HeadX:    bk.HeadX,
					HeadY:    bk.HeadY,
					Length:   bk.Length,
				})
			}
			sd.Keys = append(sd.Keys, kd)
		}
		doc.Skeletons = append(doc.Skeletons, sd)
	}

	for _, pb := range snap.PointBindings {
		pd := pointBindDoc{Stroke: pb.StrokeID, Index: pb.Index}
		for _, w := range pb.Weights {
			pd.Weights = append(pd.Weights, weightDoc{Bone: w.BoneID, Weight: w.Weight})
		}
		doc.Points = append(doc.Points, pd)
	}
	for _, lb := range snap.LayerBindings {
		doc.Layers = append(doc.Layers, layerBindDoc{
			Layer:    lb.LayerID,
			Bone:     lb.BoneID,
			Skeleton: lb.SkeletonID,
		})
	}

	return doc
}
