package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rig"
	"github.com/bigboiiijones/Vector-Tweener-Pro-sub001/pkg/rigdoc"
)

// Inspector styles
var (
	inspectKeyedStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	inspectNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	inspectDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command: an interactive frame scrubber
// that shows each bone's posed transform at the selected frame.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <rig.toml>",
		Short: "Interactively scrub through a rig's keyframed poses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
}

func (c *CLI) runInspect(rigPath string) error {
	store, err := rigdoc.ImportRig(rigPath)
	if err != nil {
		return err
	}
	if len(store.Skeletons()) == 0 {
		return fmt.Errorf("rig document has no skeletons")
	}

	model := newInspectModel(store, rigPath)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}

	m := final.(inspectModel)
	printDetail("stopped at frame %d", m.Frame)
	return nil
}

// =============================================================================
// inspectModel - Interactive pose scrubber
// =============================================================================

// inspectModel is the bubbletea model for the rig inspector. Scrubbing a
// frame re-poses the whole store, so the bone table always reflects the
// interpolated transform at the current frame.
type inspectModel struct {
	Store    *rig.Store
	Path     string
	Frame    int
	MaxFrame int
	SkelIdx  int
	Cursor   int
	Height   int
	Offset   int
}

func newInspectModel(store *rig.Store, path string) inspectModel {
	m := inspectModel{
		Store:  store,
		Path:   path,
		Height: 15,
	}
	for _, s := range store.Skeletons() {
		for _, f := range store.KeyedFrames(s.ID) {
			if f > m.MaxFrame {
				m.MaxFrame = f
			}
		}
	}
	store.ApplyPoseAtFrame(0)
	return m
}

func (m inspectModel) skeleton() *rig.Skeleton {
	return m.Store.Skeletons()[m.SkelIdx]
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Frame > 0 {
				m.Frame--
				m.Store.ApplyPoseAtFrame(m.Frame)
			}
		case "right", "l":
			m.Frame++
			m.Store.ApplyPoseAtFrame(m.Frame)
		case "home", "0":
			m.Frame = 0
			m.Store.ApplyPoseAtFrame(m.Frame)
		case "end":
			m.Frame = m.MaxFrame
			m.Store.ApplyPoseAtFrame(m.Frame)
		case "tab":
			m.SkelIdx = (m.SkelIdx + 1) % len(m.Store.Skeletons())
			m.Cursor = 0
			m.Offset = 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.skeleton().Bones)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	s := m.skeleton()
	keyed := map[int]bool{}
	for _, f := range m.Store.KeyedFrames(s.ID) {
		keyed[f] = true
	}

	b.WriteString(StyleTitle.Render("Rig Inspector"))
	b.WriteString("  ")
	b.WriteString(inspectDimStyle.Render(m.Path))
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render("←/→ frame  ↑/↓ bone  ⇥ skeleton  q quit"))
	b.WriteString("\n\n")

	frameStatus := "rest"
	if keyed[m.Frame] {
		frameStatus = "keyed"
	} else if m.MaxFrame > 0 {
		frameStatus = "interpolated"
	}
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n\n",
		inspectDimStyle.Render("skeleton"), inspectNormalStyle.Render(s.Name),
		inspectDimStyle.Render("frame"),
		inspectNormalStyle.Render(fmt.Sprintf("%d/%d (%s)", m.Frame, m.MaxFrame, frameStatus))))

	end := m.Offset + m.Height
	if end > len(s.Bones) {
		end = len(s.Bones)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		bone := s.Bones[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		parent := "—"
		if p := s.Bone(bone.ParentID); p != nil {
			parent = p.Name
		}

		rows = append(rows, []string{
			cursor,
			bone.Name,
			parent,
			fmt.Sprintf("%.1f, %.1f", bone.Head.X, bone.Head.Y),
			fmt.Sprintf("%.1f°", bone.Angle*180/math.Pi),
			fmt.Sprintf("%.1f", bone.Length),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Bone", "Parent", "Head", "Angle", "Length").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(s.Bones) {
				return lipgloss.NewStyle()
			}
			bone := s.Bones[actualIdx]
			moved := bone.Head != bone.RestHead ||
				bone.Angle != bone.RestAngle ||
				bone.Length != bone.RestLength

			if actualIdx == m.Cursor {
				if moved {
					return inspectKeyedStyle.Bold(true)
				}
				return inspectNormalStyle.Bold(true)
			}
			if moved {
				return inspectKeyedStyle
			}
			return inspectNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(inspectDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(s.Bones))))

	return b.String()
}
