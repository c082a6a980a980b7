package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bcplc/internal/driver"
)

// fileState is where one input file is in a compile session. States from
// stateCached on are final.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateParsing
	stateCached
	stateDone
	stateFailed
)

var stateLabels = [...]string{
	stateQueued:  "queued",
	stateLoading: "loading",
	stateParsing: "parsing",
	stateCached:  "cached",
	stateDone:    "ok",
	stateFailed:  "failed",
}

var stateColors = [...]lipgloss.Color{
	stateQueued:  "8",
	stateLoading: "6",
	stateParsing: "6",
	stateCached:  "4",
	stateDone:    "2",
	stateFailed:  "1",
}

func (s fileState) String() string { return stateLabels[s] }

func (s fileState) final() bool { return s >= stateCached }

// weight is the share of a file's work the state stands for.
func (s fileState) weight() float64 {
	switch {
	case s.final():
		return 1
	case s == stateParsing:
		return 0.5
	case s == stateLoading:
		return 0.1
	}
	return 0
}

// stateOf maps a driver event to a file state; ok is false for events that
// do not move the file.
func stateOf(ev driver.Event) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusDone:
		if ev.Stage == driver.StageCache {
			return stateCached, true
		}
		return stateDone, true
	case driver.StatusWorking:
		if ev.Stage == driver.StageLoad {
			return stateLoading, true
		}
		return stateParsing, true
	}
	return stateQueued, false
}

type fileRow struct {
	path     string
	state    fileState
	elapsed  time.Duration
	warnings int
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	// session is the state carried by the final session event.
	session fileState
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model listing every input file with
// its state, parse time and warning count. It quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(stateColors[stateParsing])

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
	}
	for i, file := range files {
		m.rows[i] = fileRow{path: file}
		m.byPath[file] = i
	}
	m.resize(80)
	return m
}

func (m *progressModel) resize(width int) {
	m.width = width
	m.bar.Width = max(width-4, 10)
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.resize(msg.Width)
		}
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply records ev. Events for paths outside the input list are dropped.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	state, ok := stateOf(ev)
	if !ok {
		return nil
	}
	if ev.File == "" {
		m.session = state
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.state = state
	if state.final() {
		row.elapsed, row.warnings = ev.Elapsed, ev.Warnings
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.rows {
		sum += row.state.weight()
	}
	return sum / float64(len(m.rows))
}

type tally struct {
	finished, failed, cached, warnings int
}

func (m *progressModel) tally() tally {
	var t tally
	for _, row := range m.rows {
		if !row.state.final() {
			continue
		}
		t.finished++
		t.warnings += row.warnings
		switch row.state {
		case stateFailed:
			t.failed++
		case stateCached:
			t.cached++
		}
	}
	return t
}

func (m *progressModel) header() string {
	t := m.tally()
	parts := []string{fmt.Sprintf("%d/%d files", t.finished, len(m.rows))}
	if t.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", t.failed))
	}
	if t.cached > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", t.cached))
	}
	if t.warnings > 0 {
		parts = append(parts, plural(t.warnings, "warning"))
	}
	lead := m.spinner.View()
	if m.done {
		lead = "done:"
		if m.session == stateFailed || t.failed > 0 {
			lead = "failed:"
		}
	}
	return fmt.Sprintf("%s %s (%s)", lead, m.title, strings.Join(parts, ", "))
}

const (
	stateWidth  = 8
	detailWidth = 24
)

func (m *progressModel) row(row fileRow) string {
	label := lipgloss.NewStyle().Width(stateWidth).Foreground(stateColors[row.state]).Render(row.state.String())
	name := truncate(row.path, max(m.width-stateWidth-detailWidth-4, 12))

	var detail []string
	if row.state == stateDone || row.state == stateFailed {
		detail = append(detail, row.elapsed.Round(time.Microsecond).String())
	}
	if row.warnings > 0 {
		detail = append(detail, plural(row.warnings, "warning"))
	}
	line := "  " + label + " " + name
	if len(detail) > 0 {
		line += "  " + lipgloss.NewStyle().Faint(true).Render(strings.Join(detail, ", "))
	}
	return line
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.header()))
	b.WriteString("\n\n")
	for _, row := range m.rows {
		b.WriteString(m.row(row))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// truncate shortens value to width display cells, ending in "..." when
// there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
