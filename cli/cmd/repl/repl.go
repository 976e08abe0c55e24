package repl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/mdt/log"
	"github.com/ardnew/mdt/mfile"
)

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help     Print this help
  list     List variables with kind, shape, and unit
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type an expression to evaluate it against the dataset
  Variables are nested number lists; Map[i][j][k] indexes the map tensor
  Functions: shape(name), plane(name, k), spectrum(i, j), unit(name)
  Indices are 0-based
  Press Tab / Shift-Tab to cycle through completions
  Press Space to accept the current completion
  Use Up/Down for history, Shift+Up/Shift+Down for this mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// inputMode selects whether input is evaluated or run as a command.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

func prompt(mode inputMode) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

// echo formats a submitted line the way it appeared at the prompt.
func echo(mode inputMode, input string) string {
	return prompt(mode) + inputStyle.Render(input)
}

// draft is the unsubmitted input of one mode.
type draft struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	ds           *mfile.Dataset
	logger       log.Logger
	history      *History
	historyIdx   int
	candidates   []string      // eval-mode completion candidates
	matches      fuzzy.Matches // ranked matches for the current word
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected match while tab-cycling
	tabActive    bool
	preTabText   string
	preTabCursor int
	width        int
	quitting     bool
	mode         inputMode
	drafts       [2]draft // indexed by inputMode
}

// Run starts an interactive session evaluating expressions against ds.
// History is read from and appended to historyPath; an empty path keeps it
// in memory.
func Run(
	ctx context.Context,
	ds *mfile.Dataset,
	historyPath string,
	logger log.Logger,
	opts ...tea.ProgramOption,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if ds == nil {
		return ErrNoDataset
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.String("error", err.Error()),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.Int("variables", ds.Len()),
		slog.Int("history", history.Len()),
	)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	_, err = tea.NewProgram(newModel(ctx, ds, history, logger), opts...).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	ds *mfile.Dataset,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = prompt(modeEval)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		ds:         ds,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		candidates: evalCandidates(ds),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hint() + "\n"
}

// hint renders the line below the input: the history position, a usage
// hint, the signature of the enclosing call, or the completion bar.
func (m model) hint() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		pos := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx + 1))

		return hintStyle.Render(fmt.Sprintf("%s/%d", pos, m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeCtrl {
			return hintStyle.Render(
				"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)",
			)
		}

		return hintStyle.Render("Type an expression or press Esc for commands")
	}

	if m.mode == modeEval && !m.tabActive {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if _, params := getSignature(call.name); params != nil {
				return renderSignatureHint(call.name, params, call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.submit()
		}

		// Lock in the selected completion without submitting.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyStep(-1, false), nil

	case tea.KeyDown:
		return m.historyStep(1, false), nil

	case tea.KeyShiftUp:
		return m.historyStep(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyStep(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.switchToMode(1 - m.mode), nil
	}

	// Space accepts the selected completion.
	confirm := msg.Type == tea.KeyRunes
	if !confirm || msg.String() == " " {
		m.tabActive = false
	}

	var cmd tea.Cmd

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, confirm)

	return m, cmd
}

// cycle moves the completion selection by dir, starting tab-cycling if it
// is not active. A single match is completed immediately.
func (m model) cycle(dir int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the word under the cursor and moves the cursor
// to its end.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes matches for the word under the cursor. With
// autoConfirm, a word that already equals its only match is accepted so the
// bar disappears; deletions and cursor motion pass false.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// submit records the input in history and evaluates it or runs it as a
// command, depending on the mode.
func (m model) submit() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.drafts = [2]draft{}
	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed",
			slog.String("error", err.Error()),
		)
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	result, err := m.evaluate(input)
	if err != nil {
		return m, tea.Sequence(
			tea.Println(echo(modeEval, input)),
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		tea.Println(echo(modeEval, input)),
		tea.Println(resultStyle.Render(result)),
	)
}

// evaluate evaluates an expression against the dataset and formats the
// result.
func (m model) evaluate(input string) (string, error) {
	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	result, err := m.ds.Evaluate(m.ctxFunc(), input)
	if err != nil {
		return "", err
	}

	return mfile.FormatResult(result), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	name, _, _ := strings.Cut(input, " ")
	echoCmd := tea.Println(echo(modeCtrl, input))

	m.logger.TraceContext(m.ctxFunc(), "repl command", slog.String("command", name))

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(listVariables(m.ds)))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("Unknown command: "+name+" (try 'help')"),
		))
	}
}

// historyStep moves through history by dir (-1 older, 1 newer), switching
// mode to match the entry unless sameMode restricts the walk to entries of
// the current mode. Stepping past the newest entry clears the input.
func (m model) historyStep(dir int, sameMode bool) model {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// switchToMode saves the current draft and restores the draft of mode.
func (m model) switchToMode(mode inputMode) model {
	m.drafts[m.mode] = draft{m.input.Value(), m.input.Position()}
	m.mode = mode
	m.tabActive = false

	m.input.Prompt = prompt(mode)
	m.input.SetValue(m.drafts[mode].text)
	m.input.SetCursor(m.drafts[mode].cursor)
	refreshMatches(&m, false)

	return m
}

// listVariables renders one line per variable: name, kind, shape, and unit.
func listVariables(ds *mfile.Dataset) string {
	width := 0
	for _, name := range ds.Names() {
		width = max(width, len(name))
	}

	var b strings.Builder

	for name, a := range ds.All() {
		desc := mfile.KindOf(a) + " " + mfile.FormatShape(a)
		if unit := mfile.Unit(name); unit != "" {
			desc += " [" + unit + "]"
		}

		fmt.Fprintf(&b, "  %-*s %s\n", width, name, hintStyle.Render(desc))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
