// Package tui provides the terminal user interface for almanac.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/drag"
	"github.com/javiermolinar/almanac/internal/item"
	"github.com/javiermolinar/almanac/internal/projection"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal  Mode = iota
	ModeDrag         // A pointer gesture is in progress
	ModePrompt       // Typing a new item
	ModeConfirm      // Waiting for y/n
)

// confirmKind identifies what a y/n question is about.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmInit
)

// tooltipOffset lifts the drag tooltip one row above the pointer.
const tooltipOffset = 1

// itemStore owns the item collection shown on the timeline. The drag
// controller reads from it and commits replacements through replace.
type itemStore struct {
	items []item.Item
}

// Items implements drag.Source.
func (s *itemStore) Items() []item.Item {
	return s.items
}

func (s *itemStore) set(items []item.Item) {
	s.items = items
}

func (s *itemStore) replace(updated item.Item) bool {
	items, ok := item.Replace(s.items, updated)
	if ok {
		s.items = items
	}
	return ok
}

func (s *itemStore) add(it item.Item) {
	s.items = append(s.items, it)
}

// remove drops the item with id. It builds a new slice so collections
// handed out earlier by Items stay intact.
func (s *itemStore) remove(id string) {
	out := make([]item.Item, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	s.items = out
}

func (s *itemStore) get(id string) (item.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return item.Item{}, false
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo    item.Repository
	config  *config.Config
	changes <-chan struct{}

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Timeline state. The engine, controller and store are shared by every
	// copy of the model.
	engine *projection.Engine
	drag   *drag.Controller
	store  *itemStore

	// State
	mode       Mode
	confirm    confirmKind
	initState  InitState
	loading    bool
	selectedID string
	scrollX    int // timeline cells hidden on the left
	scrollY    int // item rows hidden above

	// Details box
	overlay OverlayModel

	// Components
	prompt textinput.Model

	// Terminal dimensions and layout
	width       int
	height      int
	layoutCache LayoutCache

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		if state.NeedsInit {
			m.mode = ModeConfirm
			m.confirm = confirmInit
		}
	}
}

// WithChanges subscribes the model to external database changes.
func WithChanges(changes <-chan struct{}) ModelOption {
	return func(m *Model) {
		m.changes = changes
	}
}

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(repo item.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "Title; 2006-01-02; 2006-01-02"
	ti.CharLimit = 256
	ti.Prompt = "add> "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.PromptStyle

	mode, err := projection.ParseViewMode(cfg.Timeline.DefaultView)
	if err != nil {
		mode = projection.ViewMonths
	}

	store := &itemStore{}
	engine := projection.NewEngine(cfg.StartYear(), mode, 0)
	controller := drag.NewController(engine, store, drag.Hooks{
		OnUpdate: func(it item.Item) { store.replace(it) },
	}, drag.Options{
		ClickThreshold: cfg.Timeline.ClickThreshold,
		MinWidth:       cfg.Timeline.MinWidth,
		TooltipOffset:  tooltipOffset,
	})

	overlay := NewOverlayModel()
	overlay.SetBackground(styles.colorBgHighlight)
	overlay.SetBorder(styles.colorAccent)

	m := &Model{
		repo:    repo,
		config:  cfg,
		theme:   t,
		styles:  styles,
		engine:  engine,
		drag:    controller,
		store:   store,
		mode:    ModeNormal,
		loading: repo != nil,
		overlay: overlay,
		prompt:  ti,
		now:     time.Now,
	}
	m.layoutCache = m.buildLayoutCache(0, 0)

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.initState.NeedsInit {
		return nil
	}
	return tea.Batch(m.loadItems(), commands.WaitForChange(m.changes))
}

func (m Model) loadItems() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadItems(m.repo, m.engine.Year())
}

// Run starts the TUI.
func Run(repo item.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging. A nil repo is
// opened from the configured database path, asking first when the config
// or database does not exist yet.
func RunWithDebug(repo item.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	initialRepo := repo
	var initState InitState

	if repo == nil {
		state, err := DetectInitState(cfg)
		if err != nil {
			return err
		}
		initState = state
		if !state.NeedsInit {
			repo, err = openRepo(state.DBPath)
			if err != nil {
				return err
			}
		}
	}

	opts := []ModelOption{WithInitState(initState)}
	w, err := startWatcher(cfg.Storage.DBPath)
	if err != nil {
		LogError("watch", err)
	} else {
		defer func() { _ = w.Close() }()
		opts = append(opts, WithChanges(w.Changes()))
	}

	model := New(repo, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	finalModel, err := p.Run()
	if initialRepo == nil {
		if m, ok := finalModel.(Model); ok && m.repo != nil {
			_ = m.repo.Close()
		}
	}
	return err
}

// Items returns the items currently held by the model.
func (m Model) Items() []item.Item {
	return m.store.Items()
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Selected returns the selected item, if any.
func (m Model) Selected() (item.Item, bool) {
	if m.selectedID == "" {
		return item.Item{}, false
	}
	return m.store.get(m.selectedID)
}

func (m *Model) setMode(to Mode, reason string) {
	LogModeChange(m.mode, to, reason)
	m.mode = to
}
