package cli

import (
	"reflect"
	"testing"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty defaults to svg", input: "", want: []string{"svg"}},
		{name: "single", input: "png", want: []string{"png"}},
		{name: "multiple", input: "svg,png,pdf", want: []string{"svg", "png", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		frame  int
		want   string
	}{
		{
			name:   "explicit output wins",
			output: "out.svg",
			input:  "walk.rig.toml",
			format: "svg",
			want:   "out.svg",
		},
		{
			name:   "derived from input at frame zero",
			input:  "walk.rig.toml",
			format: "svg",
			want:   "walk.svg",
		},
		{
			name:   "frame suffix",
			input:  "walk.rig.toml",
			format: "png",
			frame:  12,
			want:   "walk_f0012.png",
		},
		{
			name:   "plain toml input",
			input:  "docs/run.toml",
			format: "pdf",
			want:   "docs/run.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.output, tt.input, tt.format, tt.frame)
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectSkeleton(t *testing.T) {
	store := rig.NewStore()
	first := store.CreateSkeleton("layer-1", "torso")
	second := store.CreateSkeleton("layer-2", "left-arm")

	t.Run("empty selector picks first", func(t *testing.T) {
		s, err := selectSkeleton(store, "")
		if err != nil {
			t.Fatalf("selectSkeleton() error: %v", err)
		}
		if s.ID != first.ID {
			t.Errorf("got skeleton %q, want %q", s.Name, first.Name)
		}
	})

	t.Run("by name", func(t *testing.T) {
		s, err := selectSkeleton(store, "left-arm")
		if err != nil {
			t.Fatalf("selectSkeleton() error: %v", err)
		}
		if s.ID != second.ID {
			t.Errorf("got skeleton %q, want %q", s.Name, second.Name)
		}
	})

	t.Run("by id", func(t *testing.T) {
		s, err := selectSkeleton(store, second.ID)
		if err != nil {
			t.Fatalf("selectSkeleton() error: %v", err)
		}
		if s.ID != second.ID {
			t.Errorf("got skeleton %q, want %q", s.Name, second.Name)
		}
	})

	t.Run("unknown selector", func(t *testing.T) {
		if _, err := selectSkeleton(store, "tail"); err == nil {
			t.Error("expected error for unknown skeleton")
		}
	})

	t.Run("empty store", func(t *testing.T) {
		if _, err := selectSkeleton(rig.NewStore(), ""); err == nil {
			t.Error("expected error for empty store")
		}
	})
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
