package rig

import (
	"sort"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
)

// Snapshot is a plain-data copy of a store's persistent state: skeletons,
// bones, keyframe records, and binding tables. Transient editor state (the
// flexi-bind undo snapshot, drag sessions) is not part of it.
//
// Snapshots decouple serialization from the store: pkg/rigdoc marshals them
// to and from rig documents without reaching into store internals.
type Snapshot struct {
	Skeletons     []SkeletonSnapshot
	PointBindings []PointBindingSnapshot
	LayerBindings []LayerBindingSnapshot
	FlexiActive   bool
}

// SkeletonSnapshot captures one skeleton with its bones and keyframes.
type SkeletonSnapshot struct {
	ID        string
	LayerID   string
	Name      string
	Bones     []BoneSnapshot
	Keyframes []KeyframeSnapshot
}

// BoneSnapshot captures one bone's full state, live and rest.
type BoneSnapshot struct {
	ID          string
	Name        string
	ParentID    string
	Head        geom.Point
	Angle       float64
	Length      float64
	RestHead    geom.Point
	RestAngle   float64
	RestLength  float64
	Color       string
	Strength    float64
	FlexiRadius float64
	ZOrder      int
}

// KeyframeSnapshot captures the per-bone channel records at one frame.
type KeyframeSnapshot struct {
	Frame int
	Bones []BoneKeySnapshot
}

// BoneKeySnapshot is one bone's partial record at a frame.
type BoneKeySnapshot struct {
	BoneID   string
	Channels Channel
	Angle    float64
	HeadX    float64
	HeadY    float64
	Length   float64
}

// PointBindingSnapshot captures one stroke point's bone weights.
type PointBindingSnapshot struct {
	StrokeID string
	Index    int
	Weights  []WeightSnapshot
}

// WeightSnapshot is a single bone weight.
type WeightSnapshot struct {
	BoneID string
	Weight float64
}

// LayerBindingSnapshot captures one layer's whole-layer bone binding.
type LayerBindingSnapshot struct {
	LayerID    string
	BoneID     string
	SkeletonID string
}

// Snapshot copies the store's persistent state into plain data. Ordering is
// deterministic: skeletons in creation order, bones in skeleton order,
// keyframes by frame, bindings and weights sorted by id.
func (st *Store) Snapshot() Snapshot {
	snap := Snapshot{FlexiActive: st.flexiActive}

	for _, s := range st.skeletons {
		ss := SkeletonSnapshot{ID: s.ID, LayerID: s.LayerID, Name: s.Name}
		for _, b := range s.Bones {
			ss.Bones = append(ss.Bones, BoneSnapshot{
				ID:          b.ID,
				Name:        b.Name,
				ParentID:    b.ParentID,
				Head:        b.Head,
				Angle:       b.Angle,
				Length:      b.Length,
				RestHead:    b.RestHead,
				RestAngle:   b.RestAngle,
				RestLength:  b.RestLength,
				Color:       b.Color,
				Strength:    b.Strength,
				FlexiRadius: b.FlexiRadius,
				ZOrder:      b.ZOrder,
			})
		}
		for _, frame := range st.KeyedFrames(s.ID) {
			ks := KeyframeSnapshot{Frame: frame}
			rec := st.keys[s.ID][frame]
			ids := make([]string, 0, len(rec))
			for id := range rec {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				bc := rec[id]
				ks.Bones = append(ks.Bones, BoneKeySnapshot{
					BoneID:   id,
					Channels: bc.Keyed,
					Angle:    bc.Angle,
					HeadX:    bc.HeadX,
					HeadY:    bc.HeadY,
					Length:   bc.Length,
				})
			}
			ss.Keyframes = append(ss.Keyframes, ks)
		}
		snap.Skeletons = append(snap.Skeletons, ss)
	}

	pointKeys := make([]PointKey, 0, len(st.pointBindings))
	for k := range st.pointBindings {
		pointKeys = append(pointKeys, k)
	}
	sort.Slice(pointKeys, func(i, j int) bool {
		if pointKeys[i].StrokeID != pointKeys[j].StrokeID {
			return pointKeys[i].StrokeID < pointKeys[j].StrokeID
		}
		return pointKeys[i].Index < pointKeys[j].Index
	})
	for _, k := range pointKeys {
		pb := PointBindingSnapshot{StrokeID: k.StrokeID, Index: k.Index}
		for _, id := range sortedBoneIDs(st.pointBindings[k]) {
			pb.Weights = append(pb.Weights, WeightSnapshot{BoneID: id, Weight: st.pointBindings[k][id]})
		}
		snap.PointBindings = append(snap.PointBindings, pb)
	}

	layerIDs := make([]string, 0, len(st.layerBindings))
	for id := range st.layerBindings {
		layerIDs = append(layerIDs, id)
	}
	sort.Strings(layerIDs)
	for _, id := range layerIDs {
		lb := st.layerBindings[id]
		snap.LayerBindings = append(snap.LayerBindings, LayerBindingSnapshot{
			LayerID:    id,
			BoneID:     lb.BoneID,
			SkeletonID: lb.SkeletonID,
		})
	}

	return snap
}

// FromSnapshot builds a store from plain data. Ids are taken verbatim; the
// caller is responsible for referential integrity (pkg/rigdoc validates
// documents before calling this).
func FromSnapshot(snap Snapshot) *Store {
	st := NewStore()
	st.flexiActive = snap.FlexiActive

	for _, ss := range snap.Skeletons {
		s := &Skeleton{ID: ss.ID, LayerID: ss.LayerID, Name: ss.Name}
		for _, bs := range ss.Bones {
			b := &Bone{
				ID:          bs.ID,
				Name:        bs.Name,
				ParentID:    bs.ParentID,
				Head:        bs.Head,
				Angle:       bs.Angle,
				Length:      bs.Length,
				RestHead:    bs.RestHead,
				RestAngle:   bs.RestAngle,
				RestLength:  bs.RestLength,
				Color:       bs.Color,
				Strength:    bs.Strength,
				FlexiRadius: bs.FlexiRadius,
				ZOrder:      bs.ZOrder,
			}
			s.Bones = append(s.Bones, b)
		}
		st.skeletons = append(st.skeletons, s)
		st.byID[s.ID] = s

		if len(ss.Keyframes) > 0 {
			frames := make(map[int]frameRecord, len(ss.Keyframes))
			for _, ks := range ss.Keyframes {
				rec := make(frameRecord, len(ks.Bones))
				for _, bk := range ks.Bones {
					rec[bk.BoneID] = &boneChannels{
						Angle:  bk.Angle,
						HeadX:  bk.HeadX,
						HeadY:  bk.HeadY,
						Length: bk.Length,
						Keyed:  bk.Channels,
					}
				}
				frames[ks.Frame] = rec
			}
			st.keys[ss.ID] = frames
		}
	}

	for _, pb := range snap.PointBindings {
		weights := make(map[string]float64, len(pb.Weights))
		for _, w := range pb.Weights {
			weights[w.BoneID] = w.Weight
		}
		st.pointBindings[PointKey{StrokeID: pb.StrokeID, Index: pb.Index}] = weights
	}
	for _, lb := range snap.LayerBindings {
		st.layerBindings[lb.LayerID] = LayerBinding{BoneID: lb.BoneID, SkeletonID: lb.SkeletonID}
	}

	return st
}
