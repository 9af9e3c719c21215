package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/contactsheet/pkg/config"
	"github.com/matzehuels/contactsheet/pkg/errors"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// FolderListModel - Interactive folder selection
// =============================================================================

// FolderListModel is the bubbletea model for picking one folder from a list.
type FolderListModel struct {
	Title    string
	Parent   string
	Folders  []string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewFolderListModel creates a list of the given folder names under parent.
func NewFolderListModel(title, parent string, folders []string) FolderListModel {
	return FolderListModel{
		Title:   title,
		Parent:  parent,
		Folders: folders,
		Height:  15,
	}
}

func (m FolderListModel) Init() tea.Cmd {
	return nil
}

func (m FolderListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Folders)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Folders) == 0 {
				return m, nil
			}
			m.Selected = m.Folders[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m FolderListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.Parent))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Folders))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, m.Folders[i]})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Folder").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Folders))))

	return b.String()
}

// =============================================================================
// Sequence Chooser
// =============================================================================

// pickFolder runs a FolderListModel and returns the chosen name, or "" if
// the user quit.
func pickFolder(title, parent string, folders []string) (string, error) {
	final, err := tea.NewProgram(NewFolderListModel(title, parent, folders)).Run()
	if err != nil {
		return "", fmt.Errorf("run chooser: %w", err)
	}
	fm, ok := final.(FolderListModel)
	if !ok {
		return "", nil
	}
	return fm.Selected, nil
}

// chooseSequence lets the user pick a project under cfg.RootPath, then a
// sequence inside it. It returns "" if the user quit at either step.
func chooseSequence(cfg config.Config) (string, error) {
	if cfg.RootPath == "" {
		return "", errors.New(errors.ErrCodeInvalidConfig,
			"no sequence folder given and root_path is not set in the config")
	}

	projects, err := renders.ListProjects(cfg.RootPath, cfg.ProjectPrefix)
	if err != nil {
		return "", err
	}
	if len(projects) == 0 {
		return "", errors.New(errors.ErrCodeNotFound,
			"no projects starting with %q in %s", cfg.ProjectPrefix, cfg.RootPath)
	}
	project, err := pickFolder("Select Project", cfg.RootPath, projects)
	if err != nil || project == "" {
		return "", err
	}

	projectDir := filepath.Join(cfg.RootPath, project)
	sequences, err := renders.ListSequences(projectDir, cfg.SequencesDir)
	if err != nil {
		return "", err
	}
	if len(sequences) == 0 {
		return "", errors.New(errors.ErrCodeNotFound, "no sequences in %s", project)
	}
	sequence, err := pickFolder("Select Sequence", filepath.Join(projectDir, cfg.SequencesDir), sequences)
	if err != nil || sequence == "" {
		return "", err
	}
	return filepath.Join(projectDir, cfg.SequencesDir, sequence), nil
}
