// Package app implements the interactive status UI. It wires the git
// service, the file tree, and the screen stack into a single Bubble Tea
// model.
package app

import (
	"context"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazystatus/internal/app/screen"
	"github.com/chmouel/lazystatus/internal/app/services"
	"github.com/chmouel/lazystatus/internal/app/state"
	"github.com/chmouel/lazystatus/internal/config"
	"github.com/chmouel/lazystatus/internal/git"
	"github.com/chmouel/lazystatus/internal/log"
	"github.com/chmouel/lazystatus/internal/models"
	"github.com/chmouel/lazystatus/internal/theme"
)

// uiState groups the Bubble Tea components the model renders with.
type uiState struct {
	previewViewport viewport.Model
	filterInput     textinput.Model
	spinner         spinner.Model
	screenManager   *screen.Manager
}

// dataState holds the repository snapshot currently on screen.
type dataState struct {
	candidates []models.Candidate
	info       *models.RepoInfo
	marks      map[string]bool

	// Single preview slot. previewed pins the candidate whose diff is
	// shown until it is toggled off or disappears from the listing.
	previewed      *models.Candidate
	previewCached  bool
	previewContent string

	statusLine string
}

type serviceSet struct {
	watch   *services.GitWatchService
	history *services.HistoryService
	filter  *services.FilterService
	tree    *services.TreeService
}

// Model is the top-level Bubble Tea model for the status UI.
type Model struct {
	config    *config.AppConfig
	theme     *theme.Theme
	themeName string
	git       *git.Service

	root    string
	repoKey string

	ui       uiState
	view     state.ViewState
	data     dataState
	services serviceSet

	removal git.RemovalStrategy

	loading  bool
	quitting bool

	notified map[string]bool

	ctx    context.Context
	cancel context.CancelFunc

	// Subprocess hooks, swappable in tests.
	commandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd
	execProcess   func(c *exec.Cmd, fn tea.ExecCallback) tea.Cmd
}

// NewModel builds the UI model for the repository rooted at root.
// initialFilter pre-populates the fuzzy filter, matching the CLI flag.
func NewModel(cfg *config.AppConfig, root string, initialFilter string) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	themeName := config.NormalizeThemeName(cfg.Theme)
	if themeName == "" {
		themeName = theme.DefaultDark()
	}
	thm := theme.GetTheme(themeName)

	m := &Model{
		config:    cfg,
		theme:     thm,
		themeName: themeName,
		root:      root,
		view:      state.ViewState{FocusedPane: state.PaneList, ZoomedPane: -1},
		notified:  make(map[string]bool),
		ctx:       ctx,
		cancel:    cancel,
		commandRunner: func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, name, args...)
		},
		execProcess: tea.ExecProcess,
	}

	m.git = git.NewService(m.notifyOnce)
	m.git.SetGitPager(cfg.GitPager)
	if cfg.GitPagerArgsSet {
		m.git.SetGitPagerArgs(cfg.GitPagerArgs)
	} else {
		m.git.SetGitPagerArgs(config.DefaultGitPagerArgsForTheme(themeName))
	}
	m.repoKey = m.git.RepoKey(ctx, root)
	m.removal = m.resolveRemoval()

	m.data.marks = make(map[string]bool)

	m.ui.screenManager = screen.NewManager()
	m.ui.previewViewport = viewport.New(0, 0)

	fi := textinput.New()
	fi.Placeholder = "Filter files..."
	fi.Prompt = "/ "
	fi.PromptStyle = fi.PromptStyle.Foreground(thm.Accent)
	fi.CharLimit = 128
	m.ui.filterInput = fi

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = sp.Style.Foreground(thm.Accent)
	m.ui.spinner = sp

	m.services.filter = services.NewFilterService(initialFilter)
	m.services.tree = services.NewTreeService()
	m.services.history = services.NewHistoryService()
	m.services.watch = services.NewGitWatchService(m.git, m.debugf)

	if initialFilter != "" {
		m.view.ShowingFilter = true
		m.ui.filterInput.SetValue(initialFilter)
		m.ui.filterInput.Focus()
	}

	return m
}

// Init kicks off the first status read and the loading animations.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	m.ui.screenManager.Push(screen.NewLoadingScreen("Reading repository status...", m.theme, nil))
	return tea.Batch(m.refreshStatus(), m.ui.spinner.Tick, m.loadingTick())
}

// Update routes messages to the screen stack, the key handlers, and the
// background message handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if m.ui.screenManager.IsActive() {
			return m.handleScreenKey(msg)
		}
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.ui.spinner, cmd = m.ui.spinner.Update(msg)
		return m, cmd
	case loadingTickMsg:
		if ls, ok := m.ui.screenManager.Current().(*screen.LoadingScreen); ok {
			ls.Tick()
			return m, m.loadingTick()
		}
		return m, nil
	}
	return m.handleStatusMessages(msg)
}

func (m *Model) handleScreenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.ui.screenManager.Current()
	if scr == nil {
		return m, nil
	}
	next, cmd := scr.Update(msg)
	if next == nil {
		m.ui.screenManager.Pop()
	} else {
		m.ui.screenManager.Set(next)
	}
	return m, cmd
}

func (m *Model) loadingTick() tea.Cmd {
	return tea.Tick(180*time.Millisecond, func(time.Time) tea.Msg {
		return loadingTickMsg{}
	})
}

// resolveRemoval picks the strategy for discarding untracked files.
// Explicit config wins; auto probes for trash helpers so removals go to
// the system trash when one is installed.
func (m *Model) resolveRemoval() git.RemovalStrategy {
	if strategy, ok := git.RemovalFromName(m.config.Removal); ok {
		return strategy
	}
	if _, err := git.LookupPath("trash-put"); err == nil {
		return git.RemoveTrashPut
	}
	if _, err := git.LookupPath("rmtrash"); err == nil {
		return git.RemoveRmtrash
	}
	return git.RemovePermanent
}

func (m *Model) notify(message string, severity string) {
	m.data.statusLine = message
	if severity == "error" {
		log.Printf("git: %s", message)
	}
}

func (m *Model) notifyOnce(key string, message string, severity string) {
	if m.notified[key] {
		return
	}
	m.notified[key] = true
	m.notify(message, severity)
}

func (m *Model) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func (m *Model) applyTheme(name string, thm *theme.Theme) {
	m.themeName = name
	m.theme = thm
	m.ui.spinner.Style = m.ui.spinner.Style.Foreground(thm.Accent)
	m.ui.filterInput.PromptStyle = m.ui.filterInput.PromptStyle.Foreground(thm.Accent)
	if !m.config.GitPagerArgsSet {
		m.git.SetGitPagerArgs(config.DefaultGitPagerArgsForTheme(name))
	}
}

// Close releases background resources. Safe to call more than once.
func (m *Model) Close() {
	m.stopGitWatcher()
	m.cancel()
}

// Run starts the UI and blocks until the user quits.
func Run(cfg *config.AppConfig, root string, initialFilter string) error {
	m := NewModel(cfg, root, initialFilter)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
