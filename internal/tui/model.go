package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/value"
)

const (
	linoWidth     = 5
	defaultWidth  = 80
	defaultHeight = 24
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type Options struct {
	Width     int
	Formatter format.Formatter
	Save      func(*grid.Sheet) error
}

type Model struct {
	sheet *grid.Sheet
	opts  Options

	cursor layout.Position
	top    layout.Position
	input  textinput.Model

	editing bool
	status  string
	failed  bool
	width   int
	height  int
}

func New(sh *grid.Sheet, opts Options) *Model {
	if opts.Width <= 0 {
		opts.Width = 12
	}
	if opts.Formatter == nil {
		opts.Formatter = format.Plain()
	}
	in := textinput.New()
	in.Prompt = "> "
	m := Model{
		sheet:  sh,
		opts:   opts,
		input:  in,
		width:  defaultWidth,
		height: defaultHeight,
		cursor: layout.Position{Line: 1, Column: 1},
		top:    layout.Position{Line: 1, Column: 1},
	}
	return &m
}

// Cursor gives the position of the selected cell.
func (m *Model) Cursor() layout.Position {
	return m.cursor
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.input.Blur()
		m.assign(m.input.Value())
		return m, nil
	case "esc":
		m.editing = false
		m.input.Blur()
		m.info("edit cancelled")
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.sheet.Dimension()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.cursor.Line = max(1, m.cursor.Line-1)
	case "down", "j":
		m.cursor.Line = min(size.Lines, m.cursor.Line+1)
	case "left", "h":
		m.cursor.Column = max(1, m.cursor.Column-1)
	case "right", "l", "tab":
		m.cursor.Column = min(size.Columns, m.cursor.Column+1)
	case "home":
		m.cursor.Column = 1
	case "end":
		m.cursor.Column = size.Columns
	case "enter", "e", "=":
		return m, m.edit(msg.String() == "=")
	case "delete", "backspace", "x":
		m.assign("")
	case "r":
		if err := m.sheet.RecomputeAll(); err != nil {
			m.fail(err)
		} else {
			m.info("recomputed")
		}
	case "ctrl+s":
		m.save()
	}
	m.scroll()
	return m, nil
}

func (m *Model) edit(formula bool) tea.Cmd {
	c, err := m.sheet.Cell(m.cursor)
	if err != nil {
		m.fail(err)
		return nil
	}
	raw := c.Raw()
	if formula {
		raw = "="
	}
	m.editing = true
	m.input.SetValue(raw)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) assign(raw string) {
	if err := m.sheet.Assign(m.cursor, raw); err != nil {
		m.fail(err)
		return
	}
	m.info(fmt.Sprintf("%s updated", m.cursor))
}

func (m *Model) save() {
	if m.opts.Save == nil {
		m.fail(fmt.Errorf("no file to save to"))
		return
	}
	if err := m.opts.Save(m.sheet); err != nil {
		m.fail(err)
		return
	}
	m.info("saved")
}

func (m *Model) info(msg string) {
	m.status = msg
	m.failed = false
}

func (m *Model) fail(err error) {
	m.status = err.Error()
	m.failed = true
}

func (m *Model) visibleColumns() int64 {
	n := (m.width - linoWidth) / (m.opts.Width + 1)
	return int64(max(1, n))
}

func (m *Model) visibleLines() int64 {
	return int64(max(1, m.height-4))
}

func (m *Model) scroll() {
	var (
		cols  = m.visibleColumns()
		lines = m.visibleLines()
	)
	if m.cursor.Column < m.top.Column {
		m.top.Column = m.cursor.Column
	} else if m.cursor.Column >= m.top.Column+cols {
		m.top.Column = m.cursor.Column - cols + 1
	}
	if m.cursor.Line < m.top.Line {
		m.top.Line = m.cursor.Line
	} else if m.cursor.Line >= m.top.Line+lines {
		m.top.Line = m.cursor.Line - lines + 1
	}
}

func (m *Model) View() string {
	var (
		buf  strings.Builder
		size = m.sheet.Dimension()
		last = layout.Position{
			Line:   min(size.Lines, m.top.Line+m.visibleLines()-1),
			Column: min(size.Columns, m.top.Column+m.visibleColumns()-1),
		}
	)
	buf.WriteString(format.Fit("", linoWidth, false))
	for col := m.top.Column; col <= last.Column; col++ {
		label := format.Fit(layout.ColumnLabel(col), m.opts.Width, false)
		buf.WriteString(" ")
		buf.WriteString(headerStyle.Render(label))
	}
	buf.WriteString("\n")
	for line := m.top.Line; line <= last.Line; line++ {
		buf.WriteString(dimStyle.Render(format.Fit(fmt.Sprint(line), linoWidth, true)))
		for col := m.top.Column; col <= last.Column; col++ {
			pos := layout.Position{
				Line:   line,
				Column: col,
			}
			buf.WriteString(" ")
			buf.WriteString(m.renderCell(pos))
		}
		buf.WriteString("\n")
	}
	buf.WriteString(m.footer())
	return buf.String()
}

func (m *Model) renderCell(pos layout.Position) string {
	v, err := m.sheet.Read(pos)
	var (
		str   = format.Display(v, err, m.opts.Formatter)
		right = err == nil && v.Numeric && v.Kind != value.KindText
		cell  = format.Fit(str, m.opts.Width, right)
	)
	if pos == m.cursor {
		return cursorStyle.Render(cell)
	}
	if err != nil {
		return errorStyle.Render(cell)
	}
	return cell
}

func (m *Model) footer() string {
	var buf strings.Builder
	c, _ := m.sheet.Cell(m.cursor)
	if c != nil {
		fmt.Fprintf(&buf, "%s %s %s", headerStyle.Render(m.cursor.Addr()), dimStyle.Render(c.Kind().String()), c.Raw())
	}
	buf.WriteString("\n")
	if m.editing {
		buf.WriteString(m.input.View())
	} else if m.failed {
		buf.WriteString(errorStyle.Render(m.status))
	} else {
		buf.WriteString(infoStyle.Render(m.status))
	}
	return buf.String()
}

// Run starts the interactive editor until the user quits.
func Run(sh *grid.Sheet, opts Options) error {
	_, err := tea.NewProgram(New(sh, opts), tea.WithAltScreen()).Run()
	return err
}
