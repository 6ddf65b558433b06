package rigdoc

import (
	"encoding/json"
	"io"
	"os"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/errors"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/geom"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/stroke"
)

// Scene is one frame's drawable content: the layer forest and the flat
// stroke list, as exported by the host's drawing subsystem.
type Scene struct {
	Layers  []*stroke.Layer
	Strokes []stroke.Stroke
}

type sceneDoc struct {
	Layers  []layerNode `json:"layers"`
	Strokes []strokeDoc `json:"strokes"`
}

type layerNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Children []layerNode `json:"children,omitempty"`
}

type strokeDoc struct {
	ID     string     `json:"id"`
	Layer  string     `json:"layer"`
	Parent string     `json:"parent,omitempty"`
	Points []pointDoc `json:"points"`
}

type pointDoc struct {
	Anchor [2]float64  `json:"anchor"`
	In     *[2]float64 `json:"in,omitempty"`
	Out    *[2]float64 `json:"out,omitempty"`
}

// ReadScene decodes a JSON scene document from r.
//
// Each stroke must have a unique id and name an existing layer. Derived
// strokes reference their source stroke via "parent"; the source must appear
// in the same document. ReadScene does not close r.
func ReadScene(r io.Reader) (*Scene, error) {
	var doc sceneDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene document")
	}

	scene := &Scene{}
	layerIDs := make(map[string]bool)
	for _, ln := range doc.Layers {
		l, err := toLayer(ln, layerIDs)
		if err != nil {
			return nil, err
		}
		scene.Layers = append(scene.Layers, l)
	}

	strokeIDs := make(map[string]bool)
	for _, sd := range doc.Strokes {
		if sd.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "stroke with empty id")
		}
		if strokeIDs[sd.ID] {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "duplicate stroke id %q", sd.ID)
		}
		strokeIDs[sd.ID] = true
		if sd.Layer != "" && !layerIDs[sd.Layer] {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "stroke %q: unknown layer %q", sd.ID, sd.Layer)
		}

		s := stroke.Stroke{ID: sd.ID, LayerID: sd.Layer, ParentID: sd.Parent}
		for _, pd := range sd.Points {
			p := stroke.Point{Anchor: geom.Pt(pd.Anchor[0], pd.Anchor[1])}
			if pd.In != nil {
				in := geom.Pt(pd.In[0], pd.In[1])
				p.In = &in
			}
			if pd.Out != nil {
				out := geom.Pt(pd.Out[0], pd.Out[1])
				p.Out = &out
			}
			s.Points = append(s.Points, p)
		}
		scene.Strokes = append(scene.Strokes, s)
	}

	for _, s := range scene.Strokes {
		if s.ParentID != "" && !strokeIDs[s.ParentID] {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "stroke %q: unknown parent stroke %q", s.ID, s.ParentID)
		}
	}

	return scene, nil
}

// ImportScene reads a JSON scene document from the file at path.
func ImportScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadScene(f)
}

func toLayer(ln layerNode, seen map[string]bool) (*stroke.Layer, error) {
	if ln.ID == "" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "layer with empty id")
	}
	if seen[ln.ID] {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "duplicate layer id %q", ln.ID)
	}
	seen[ln.ID] = true

	l := &stroke.Layer{ID: ln.ID, Name: ln.Name}
	for _, c := range ln.Children {
		child, err := toLayer(c, seen)
		if err != nil {
			return nil, err
		}
		l.Children = append(l.Children, child)
	}
	return l, nil
}

// WriteScene encodes a scene as indented JSON. The output re-imports
// identically, handles included.
func WriteScene(scene *Scene, w io.Writer) error {
	doc := sceneDoc{}
	for _, l := range scene.Layers {
		doc.Layers = append(doc.Layers, fromLayer(l))
	}
	for _, s := range scene.Strokes {
		sd := strokeDoc{ID: s.ID, Layer: s.LayerID, Parent: s.ParentID}
		for _, p := range s.Points {
			pd := pointDoc{Anchor: [2]float64{p.Anchor.X, p.Anchor.Y}}
			if p.In != nil {
				in := [2]float64{p.In.X, p.In.Y}
				pd.In = &in
			}
			if p.Out != nil {
				out := [2]float64{p.Out.X, p.Out.Y}
				pd.Out = &out
			}
			sd.Points = append(sd.Points, pd)
		}
		doc.Strokes = append(doc.Strokes, sd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode scene document")
	}
	return nil
}

// ExportScene writes a scene to a JSON file at path.
func ExportScene(scene *Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteScene(scene, f)
}

func fromLayer(l *stroke.Layer) layerNode {
	ln := layerNode{ID: l.ID, Name: l.Name}
	for _, c := range l.Children {
		ln.Children = append(ln.Children, fromLayer(c))
	}
	return ln
}
