package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/detective-quest/internal/engine"
	"github.com/tatianab/detective-quest/internal/navigator"
	"github.com/tatianab/detective-quest/internal/verdict"
)

type sessionState int

const (
	stateExploring sessionState = iota
	stateAccusing
	stateVerdict
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	opening   navigator.Arrival
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	width     int
	height    int
	result    verdict.Result
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	clueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(eng *engine.Engine) model {
	ti := textinput.New()
	ti.Placeholder = "e, d, b or s..."
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40

	m := model{
		state:     stateExploring,
		engine:    eng,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		width:     100,
		height:    26,
	}
	if !eng.SupportsUndo() {
		m.textInput.Placeholder = "e, d or s..."
	}

	m.opening = eng.Start(context.Background())
	m.gameLog = gameStyle.Bold(true).Render(eng.Case().Title) + "\n\n"
	if eng.Case().Description != "" {
		m.gameLog += gameStyle.Render(strings.TrimSpace(eng.Case().Description)) + "\n\n"
	}
	m.logArrival(m.opening)
	if eng.Done() {
		m.beginAccusation()
	}
	m.viewport.SetContent(m.renderLog())
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.narrate(m.opening))
}

type narratedMsg struct {
	room string
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			switch m.state {
			case stateExploring:
				token := m.textInput.Value()
				if token == "" {
					return m, nil
				}
				m.textInput.Reset()
				if token == "/quit" {
					return m, tea.Quit
				}
				m.echo(token)
				cmd = m.step(token)
				m.refresh()
				return m, cmd

			case stateAccusing:
				accused := m.textInput.Value()
				m.textInput.Reset()
				m.textInput.Blur()
				if accused != "" {
					m.echo(accused)
				}
				m.result = m.engine.Accuse(context.Background(), accused)
				m.logVerdict(m.result)
				m.state = stateVerdict
				m.refresh()
				return m, nil

			case stateVerdict:
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = int(float64(msg.Width) * 0.70)
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.renderLog())

	case narratedMsg:
		// Failed or stale narration is dropped; the room text is already on screen.
		if msg.err != nil || msg.text == "" || msg.room != m.engine.Current().Name {
			return m, nil
		}
		m.gameLog += helpStyle.Width(m.logWidth()).Render(msg.text) + "\n\n"
		m.refresh()
		return m, nil
	}

	if m.state == stateExploring || m.state == stateAccusing {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// step applies one token and returns the narration command for the room
// reached, if any.
func (m *model) step(token string) tea.Cmd {
	arrival, err := m.engine.Step(context.Background(), token)
	if err != nil {
		m.gameLog += helpStyle.Render(fmt.Sprintf("Cannot do that: %s.", navigator.Reason(err))) + "\n\n"
		if m.engine.Done() {
			m.gameLog += gameStyle.Render("You are stuck here. Exploration ended.") + "\n\n"
			m.beginAccusation()
		}
		return nil
	}
	if arrival == nil {
		m.gameLog += gameStyle.Render("Exploration ended by the player.") + "\n\n"
		m.beginAccusation()
		return nil
	}

	m.logArrival(*arrival)
	if m.engine.Done() {
		m.beginAccusation()
	}
	return m.narrate(*arrival)
}

func (m *model) echo(text string) {
	m.gameLog += userStyle.Width(m.logWidth()).Render("> "+text) + "\n\n"
}

func (m *model) logArrival(a navigator.Arrival) {
	var b strings.Builder
	b.WriteString(gameStyle.Bold(true).Render("You are in: " + a.Room.Name))
	b.WriteString("\n")
	if a.Clue == nil {
		b.WriteString("No clue in sight here.\n")
	} else {
		if a.Clue.Kind == navigator.SightingNew {
			b.WriteString(clueStyle.Render(fmt.Sprintf("New clue found: %q", a.Clue.Text)))
		} else {
			b.WriteString(clueStyle.Render(fmt.Sprintf("Already collected: %q (count %d)", a.Clue.Text, a.Clue.Count)))
		}
		b.WriteString("\n")
		suspect := a.Clue.Suspect
		if suspect == "" {
			suspect = "unknown"
		}
		b.WriteString("-> This clue points to: " + suspect + "\n")
	}
	if a.Final {
		b.WriteString("There are no more paths to follow. Exploration ended.\n")
	}
	m.gameLog += gameStyle.Width(m.logWidth()).Render(b.String()) + "\n"
}

func (m *model) beginAccusation() {
	m.state = stateAccusing
	m.textInput.Placeholder = "Suspect to accuse (blank for no one)..."

	s := m.engine.Summary()
	var b strings.Builder
	b.WriteString(titleStyle.Render("INVESTIGATION SUMMARY") + "\n")
	if len(s.Clues) == 0 {
		b.WriteString("You did not collect any clue.\n")
	}
	for _, c := range s.Clues {
		suspect := c.Suspect
		if suspect == "" {
			suspect = "(none)"
		}
		fmt.Fprintf(&b, "- %q (collected %d time(s)) => points to: %s\n", c.Text, c.Count, suspect)
	}
	if len(s.Suspects) == 0 {
		b.WriteString("No suspects registered.\n")
	} else {
		b.WriteString("\nKnown suspects: " + strings.Join(s.Suspects, ", ") + "\n")
	}
	b.WriteString("\nWho do you accuse?")
	m.gameLog += gameStyle.Width(m.logWidth()).Render(b.String()) + "\n\n"
}

func (m *model) logVerdict(r verdict.Result) {
	var line string
	switch r.Outcome {
	case verdict.OutcomeNoAccusation:
		line = "No accusation made. Investigation closed."
	case verdict.OutcomeSupported:
		line = fmt.Sprintf("Clues pointing to %q: %d\nAccusation supported: there is enough evidence to arrest %s.", r.Accused, r.Count, r.Accused)
	case verdict.OutcomeUnsupported:
		line = fmt.Sprintf("Clues pointing to %q: %d\nAccusation unsupported: not enough clues to blame %s.", r.Accused, r.Count, r.Accused)
	}
	m.gameLog += titleStyle.Render(r.Outcome.String()) + "\n" + gameStyle.Width(m.logWidth()).Render(line) + "\n"
}

func (m *model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.70)
}

func (m model) View() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)

	var help string
	switch m.state {
	case stateExploring:
		if m.engine.SupportsUndo() {
			help = "Commands: e (left), d (right), b (back), s (stop exploring), /quit"
		} else {
			help = "Commands: e (left), d (right), s (stop exploring), /quit"
		}
	case stateAccusing:
		help = "Type a suspect name and press Enter. Leave it blank to accuse no one."
	case stateVerdict:
		help = "Press Enter to quit."
	}

	s := lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+helpStyle.Render(help),
	)
	return "\n" + s + "\n"
}

// renderState is the side panel: the current room, its exits and the clues
// gathered so far.
func (m model) renderState() string {
	room := titleStyle.Render("ROOM") + "\n" + m.engine.Current().Name + "\n\n"

	ex := m.engine.Exits()
	exits := titleStyle.Render("EXITS") + "\n"
	if ex.Left != "" {
		exits += "(e) " + ex.Left + "\n"
	}
	if ex.Right != "" {
		exits += "(d) " + ex.Right + "\n"
	}
	if ex.Back != "" {
		exits += "(b) " + ex.Back + "\n"
	}
	if ex.Left == "" && ex.Right == "" && ex.Back == "" {
		exits += "(none)\n"
	}
	exits += "\n"

	cluesTitle := titleStyle.Render("CLUES") + "\n"
	collected := ""
	summary := m.engine.Summary()
	if len(summary.Clues) == 0 {
		collected = "(none yet)"
	}
	for _, c := range summary.Clues {
		collected += fmt.Sprintf("- %s x%d\n", c.Text, c.Count)
	}

	content := room + exits + cluesTitle + collected

	stateWidth := int(float64(m.width) * 0.27)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

func (m model) renderLog() string {
	return m.gameLog
}

func (m model) narrate(a navigator.Arrival) tea.Cmd {
	if !m.engine.HasNarrator() {
		return nil
	}
	return func() tea.Msg {
		text, err := m.engine.Narrate(context.Background(), a)
		return narratedMsg{room: a.Room.Name, text: text, err: err}
	}
}

func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
