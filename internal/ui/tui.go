// Package ui provides an optional terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasker/internal/config"
	"github.com/nibzard/tasker/internal/task"
)

// RunTUI starts the read-only task browser for the given task file.
func RunTUI(ctx context.Context, cfg *config.Config, tasksPath string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(cfg, tasksPath)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	cfg           *config.Config
	tasksPath     string
	loadErr       error
	data          *tuiData
	tickInterval  time.Duration
	hideCompleted bool
	showHelp      bool
}

type tuiData struct {
	total     int
	open      int
	completed int
	overdue   int
	groups    []task.Group
}

type tickMsg time.Time

func newTUIModel(cfg *config.Config, tasksPath string) *tuiModel {
	return &tuiModel{
		cfg:          cfg,
		tasksPath:    tasksPath,
		tickInterval: time.Second,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "c":
			m.hideCompleted = !m.hideCompleted
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}

	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	if m.hideCompleted {
		b.WriteString("Hiding completed tasks (c to show)\n\n")
	}

	if m.loadErr != nil {
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	writeOverview(&b, m.data)
	writeGroups(&b, m.data)
	writeConfig(&b, m.tasksPath)
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	store, err := task.Open(m.tasksPath)
	if err != nil {
		m.loadErr = err
		m.data = nil
		return
	}
	m.loadErr = nil
	m.data = buildTUIData(store, m.hideCompleted)
}

func buildTUIData(store *task.Store, hideCompleted bool) *tuiData {
	data := &tuiData{}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, t := range store.Tasks() {
		data.total++
		if t.Completed {
			data.completed++
			continue
		}
		data.open++
		if t.DueDate != nil && t.DueDate.Before(today) {
			data.overdue++
		}
	}

	data.groups = store.GroupByCategory(task.Filter{HideCompleted: hideCompleted})
	return data
}

func writeTitle(b *strings.Builder) {
	title := "Tasker"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, data *tuiData) {
	b.WriteString("Overview\n\n")
	b.WriteString(fmt.Sprintf("  Open: %d  Completed: %d  Overdue: %d  Total: %d\n\n",
		data.open, data.completed, data.overdue, data.total))
}

func writeGroups(b *strings.Builder, data *tuiData) {
	if len(data.groups) == 0 {
		b.WriteString("No tasks to display.\n\n")
		return
	}
	for _, group := range data.groups {
		b.WriteString(group.Category + "\n\n")
		for i := range group.Tasks {
			b.WriteString(formatTask(&group.Tasks[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func writeConfig(b *strings.Builder, tasksPath string) {
	b.WriteString("Configuration\n\n")
	b.WriteString(fmt.Sprintf("  Task File: %s\n\n", tasksPath))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  c            Toggle completed tasks\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}

func formatTask(t *task.Task) string {
	statusIcon := " "
	if t.Completed {
		statusIcon = "x"
	}

	line := fmt.Sprintf("  [%s] #%d [%s] %s", statusIcon, t.ID, t.Priority, t.Description)
	if t.DueDate != nil {
		line += " due " + t.DueDate.String()
	}
	if len(t.Tags) > 0 {
		line += " #" + strings.Join(t.Tags, " #")
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
