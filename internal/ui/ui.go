// Package ui implements the interactive bridge panel: a terminal analogue
// of the host addon's sidebar with one-key actions for pairing, connection
// testing, job fetching, and importing the next queued job.
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/soul-abducter-glitch/Store-3D/internal/bridge"
	"github.com/soul-abducter-glitch/Store-3D/internal/config"
	"github.com/soul-abducter-glitch/Store-3D/internal/runner"
	"github.com/soul-abducter-glitch/Store-3D/internal/state"
)

// Options configures the panel.
type Options struct {
	Context    context.Context
	ConfigPath string
	Runner     *runner.Runner
	Store      *state.Store
}

// Run starts the panel and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	if opts.Runner == nil {
		return fmt.Errorf("ui requires a runner")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	program := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return filterQuitErr(err)
}

// filterQuitErr treats a killed or interrupted program as a normal quit: a
// SIGINT while the panel is open should exit cleanly, not report a failure.
func filterQuitErr(err error) error {
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}

// statusKind classifies the status line for styling.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// Model is the root panel state for Bubble Tea.
type Model struct {
	ctx        context.Context
	configPath string
	runner     *runner.Runner
	store      *state.Store

	keys   keyMap
	styles Styles
	width  int
	height int

	cfg    config.Config
	hasCfg bool

	// busy is set while an operation runs; action keys are ignored so
	// only one run is ever in flight.
	busy bool

	// pairing switches the panel into pair-code entry.
	pairing   bool
	pairInput textinput.Model

	status     string
	statusKind statusKind

	snapshot state.Snapshot
}

// New creates the panel model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = "A1B2-C3D4"
	input.CharLimit = 32
	input.Width = 20

	return Model{
		ctx:        ctx,
		configPath: opts.ConfigPath,
		runner:     opts.Runner,
		store:      opts.Store,
		keys:       defaultKeyMap(),
		styles:     defaultStyles(),
		pairInput:  input,
		status:     "Ready.",
	}
}

// Messages produced by background operations.
type (
	configMsg struct {
		cfg config.Config
		err error
	}
	jobsMsg struct {
		jobs []bridge.Job
		err  error
	}
	testMsg struct {
		count int
		err   error
	}
	pairMsg struct{ err error }
	runMsg  struct {
		outcome runner.Outcome
		err     error
	}
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadConfigCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case configMsg:
		if msg.err != nil {
			m.setStatus(statusError, "Config: "+msg.err.Error())
			return m, nil
		}
		m.cfg = msg.cfg
		m.hasCfg = true
		return m, nil

	case jobsMsg:
		m.busy = false
		m.refreshSnapshot()
		if msg.err != nil {
			m.setStatus(statusError, msg.err.Error())
			return m, nil
		}
		m.setStatus(statusInfo, fmt.Sprintf("Fetched %d queued jobs.", len(msg.jobs)))
		return m, nil

	case testMsg:
		m.busy = false
		m.refreshSnapshot()
		if msg.err != nil {
			m.setStatus(statusError, msg.err.Error())
			return m, nil
		}
		m.setStatus(statusSuccess, fmt.Sprintf("Connection OK. Queued jobs: %d", msg.count))
		return m, nil

	case pairMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(statusError, msg.err.Error())
			return m, nil
		}
		m.setStatus(statusSuccess, "Pairing successful. API token saved.")
		return m, m.loadConfigCmd()

	case runMsg:
		m.busy = false
		m.refreshSnapshot()
		if msg.err != nil {
			m.setStatus(statusError, msg.err.Error())
			return m, nil
		}
		if msg.outcome.NoJobs {
			m.setStatus(statusInfo, "No queued jobs.")
			return m, nil
		}
		m.setStatus(statusSuccess, fmt.Sprintf("Imported job %s. Objects: %d", shorten(msg.outcome.JobID, 16), msg.outcome.Imported))
		return m, nil
	}

	if m.pairing {
		var cmd tea.Cmd
		m.pairInput, cmd = m.pairInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pairing {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			code := m.pairInput.Value()
			m.pairing = false
			m.busy = true
			m.setStatus(statusInfo, "Pairing...")
			return m, m.pairCmd(code)
		case key.Matches(msg, m.keys.Cancel):
			m.pairing = false
			m.pairInput.Reset()
			return m, nil
		case key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.pairInput, cmd = m.pairInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pair):
		if m.busy {
			return m, nil
		}
		m.pairing = true
		m.pairInput.Reset()
		return m, m.pairInput.Focus()

	case key.Matches(msg, m.keys.Test):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.setStatus(statusInfo, "Testing connection...")
		return m, m.testCmd()

	case key.Matches(msg, m.keys.Fetch):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.setStatus(statusInfo, "Fetching jobs...")
		return m, m.fetchCmd()

	case key.Matches(msg, m.keys.Import):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.setStatus(statusInfo, "Importing latest job...")
		return m, m.runCmd()

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadConfigCmd()
	}
	return m, nil
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) refreshSnapshot() {
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
}

func (m Model) loadConfigCmd() tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.Load(m.configPath)
		return configMsg{cfg: cfg, err: err}
	}
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		jobs, err := m.runner.FetchJobs(m.ctx)
		return jobsMsg{jobs: jobs, err: err}
	}
}

func (m Model) testCmd() tea.Cmd {
	return func() tea.Msg {
		count, err := m.runner.TestConnection(m.ctx)
		return testMsg{count: count, err: err}
	}
}

func (m Model) pairCmd(code string) tea.Cmd {
	return func() tea.Msg {
		return pairMsg{err: m.runner.Pair(m.ctx, code)}
	}
}

func (m Model) runCmd() tea.Cmd {
	return func() tea.Msg {
		outcome, err := m.runner.Run(m.ctx)
		return runMsg{outcome: outcome, err: err}
	}
}
