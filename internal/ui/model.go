package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"polyscope/internal/api"
	"polyscope/internal/bookmarks"
	"polyscope/internal/config"
	"polyscope/internal/domain"
	"polyscope/internal/ui/logic"
	"polyscope/internal/ui/requests"
	"polyscope/internal/ui/state"
	"polyscope/internal/ui/toasts"
	"polyscope/internal/ui/views"
)

// Backend is the slice of the API client the UI consumes.
type Backend interface {
	ListMarkets(ctx context.Context, params api.ListParams) ([]domain.Market, error)
	Trending(ctx context.Context, limit int) ([]domain.Market, error)
	GetMarket(ctx context.Context, id string) (domain.Market, error)
	PredictAll(ctx context.Context, id, timeframe string) (domain.PredictionResult, error)
	SubscribeEmail(ctx context.Context, email string, prefs domain.SubscriptionPreferences) error
}

// Mode is the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeSubscribe
)

// Form focus positions in the subscription screen.
const (
	focusEmail = iota
	focusImmediate
	focusDaily
	focusSubmit
)

// Model is the Bubble Tea model for the whole client.
type Model struct {
	cfg       *config.Config
	backend   Backend
	bookmarks *bookmarks.Store

	state      *state.AppState
	coord      *requests.Coordinator
	debouncer  *logic.Debouncer
	pager      *logic.Pagination
	toastQueue *toasts.Queue
	renderer   *views.Renderer
	logger     zerolog.Logger

	mode Mode
	tab  views.Tab

	// Bookmark panel focus. The panel owns the cursor keys while
	// focused so entries off the current page can be opened.
	panelFocused bool
	panelCursor  int

	searchInput textinput.Model
	emailInput  textinput.Model
	formFocus   int
	immediate   bool
	dailyDigest bool

	pageSize int
	width    int
	height   int
}

// NewModel creates the UI model.
func NewModel(cfg *config.Config, backend Backend, bm *bookmarks.Store) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search markets"
	searchInput.CharLimit = 120

	emailInput := textinput.New()
	emailInput.Placeholder = "Enter your email"
	emailInput.CharLimit = 120

	return &Model{
		cfg:         cfg,
		backend:     backend,
		bookmarks:   bm,
		state:       state.NewAppState(),
		coord:       requests.NewCoordinator(),
		debouncer:   &logic.Debouncer{},
		pager:       logic.NewPagination(),
		toastQueue:  toasts.NewQueue(),
		renderer:    views.NewRenderer(),
		logger:      log.With().Str("component", "ui").Logger(),
		searchInput: searchInput,
		emailInput:  emailInput,
		pageSize:    cfg.UISettings.PageSize,
	}
}

// Init starts the initial listing fetch, the one-shot category
// derivation, and the bookmark resolution.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadMarketsCmd(),
		m.loadCategoriesCmd(),
		m.resolveBookmarksCmd(),
		tickCmd(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m, tickCmd()

	case marketsLoadedMsg:
		return m.onMarketsLoaded(msg)

	case categoriesLoadedMsg:
		if msg.err != nil {
			// Non-fatal: categories are simply absent.
			m.logger.Warn().Err(msg.err).Msg("failed to load categories")
			return m, nil
		}
		m.state.Categories = msg.categories
		return m, nil

	case predictionLoadedMsg:
		return m.onPredictionLoaded(msg)

	case bookmarksResolvedMsg:
		if !m.coord.Current(msg.ticket) {
			return m, nil
		}
		m.state.BookmarkList = msg.markets
		m.clampPanelCursor()
		return m, nil

	case subscribeResultMsg:
		return m.onSubscribeResult(msg)

	case searchSettledMsg:
		return m.onSearchSettled(msg)

	case toastExpiredMsg:
		m.toastQueue.Expire(msg.id)
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeSubscribe:
		return m.handleSubscribeKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal takes key precedence while open.
	if m.state.Selected != nil {
		switch msg.String() {
		case "esc", "q":
			m.closeModal()
			return m, nil
		case "b":
			return m, m.toggleBookmark(m.state.Selected.ID)
		case "r":
			if m.state.ModalState == state.LoadError {
				return m, m.loadPredictionCmd(m.state.Selected.ID)
			}
		}
		return m, nil
	}

	if m.panelFocused {
		return m.handlePanelKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.tab = (m.tab + 1) % 4
		return m, nil

	case "shift+tab":
		m.tab = (m.tab + 3) % 4
		return m, nil

	case "/":
		if m.tab != views.TabMarkets {
			return m, nil
		}
		m.mode = ModeSearch
		m.searchInput.SetValue(m.debouncer.Value())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink

	case "s":
		m.mode = ModeSubscribe
		m.formFocus = focusEmail
		m.emailInput.Focus()
		return m, textinput.Blink

	case "p":
		if m.tab == views.TabMarkets && len(m.state.BookmarkList) > 0 {
			m.panelFocused = true
			m.clampPanelCursor()
		}
		return m, nil

	case "up", "k":
		if m.state.Cursor > 0 {
			m.state.Cursor--
		}
		return m, nil

	case "down", "j":
		if m.state.Cursor < len(m.state.Markets)-1 {
			m.state.Cursor++
		}
		return m, nil

	case "enter":
		if m.tab != views.TabMarkets {
			return m, nil
		}
		return m, m.selectMarket(m.state.SelectedMarket())

	case "b":
		if market := m.state.SelectedMarket(); market != nil {
			return m, m.toggleBookmark(market.ID)
		}
		return m, nil

	case "left", "h":
		before := m.pager.Query().Page
		m.pager.PrevPage()
		if m.pager.Query().Page != before {
			return m, m.loadMarketsCmd()
		}
		return m, nil

	case "right", "l":
		m.pager.NextPage()
		return m, m.loadMarketsCmd()

	case "c":
		if m.pager.Query().Category != "" {
			m.pager.SetCategory("")
			return m, m.loadMarketsCmd()
		}
		return m, nil

	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(m.state.Categories) {
			m.pager.ToggleCategory(m.state.Categories[idx])
			return m, m.loadMarketsCmd()
		}
		return m, nil

	case "r":
		if m.state.ListState == state.LoadError {
			// Retry starts over from page 1, like the original.
			m.pager.ResetPage()
			return m, m.loadMarketsCmd()
		}
		return m, nil
	}

	return m, nil
}

// handlePanelKey drives the bookmark panel while it holds focus. A
// panel entry opens the same prediction modal as a list row, so a
// bookmarked market off the current page is still reachable.
func (m *Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "p":
		m.panelFocused = false
		return m, nil

	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.panelCursor > 0 {
			m.panelCursor--
		}
		return m, nil

	case "down", "j":
		if m.panelCursor < len(m.state.BookmarkList)-1 {
			m.panelCursor++
		}
		return m, nil

	case "enter":
		if m.panelCursor < len(m.state.BookmarkList) {
			market := m.state.BookmarkList[m.panelCursor]
			m.panelFocused = false
			return m, m.selectMarket(&market)
		}
		return m, nil

	case "b":
		if m.panelCursor < len(m.state.BookmarkList) {
			return m, m.toggleBookmark(m.state.BookmarkList[m.panelCursor].ID)
		}
		return m, nil
	}
	return m, nil
}

// clampPanelCursor keeps the panel cursor inside the resolved list and
// drops focus when the list empties.
func (m *Model) clampPanelCursor() {
	if m.panelCursor >= len(m.state.BookmarkList) {
		m.panelCursor = len(m.state.BookmarkList) - 1
	}
	if m.panelCursor < 0 {
		m.panelCursor = 0
	}
	if len(m.state.BookmarkList) == 0 {
		m.panelFocused = false
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)

	if value := m.searchInput.Value(); value != before {
		seq := m.debouncer.Touch(value)
		return m, tea.Batch(cmd, debounceCmd(seq))
	}
	return m, cmd
}

func (m *Model) handleSubscribeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.emailInput.Blur()
		return m, nil

	case "tab", "down":
		m.setFormFocus((m.formFocus + 1) % 4)
		return m, nil

	case "shift+tab", "up":
		m.setFormFocus((m.formFocus + 3) % 4)
		return m, nil

	case " ":
		switch m.formFocus {
		case focusImmediate:
			m.immediate = !m.immediate
			return m, nil
		case focusDaily:
			m.dailyDigest = !m.dailyDigest
			return m, nil
		}

	case "enter":
		return m, m.submitSubscription()
	}

	if m.formFocus == focusEmail {
		var cmd tea.Cmd
		m.emailInput, cmd = m.emailInput.Update(msg)
		m.state.SubscribeInvalid = m.emailInput.Value() != "" && !logic.IsValidEmail(m.emailInput.Value())
		return m, cmd
	}
	return m, nil
}

func (m *Model) setFormFocus(focus int) {
	m.formFocus = focus
	if focus == focusEmail {
		m.emailInput.Focus()
	} else {
		m.emailInput.Blur()
	}
}

// submitSubscription validates locally and submits. An invalid address
// never reaches the network.
func (m *Model) submitSubscription() tea.Cmd {
	if m.state.SubscribeBusy {
		return nil
	}

	email := m.emailInput.Value()
	if !logic.IsValidEmail(email) {
		m.state.SubscribeInvalid = true
		m.logger.Debug().Msg("subscription blocked by email validation")
		return nil
	}

	m.state.SubscribeBusy = true
	m.state.SubscribeError = ""
	m.state.SubscribeStatus = ""

	prefs := domain.SubscriptionPreferences{
		Immediate:   m.immediate,
		DailyDigest: m.dailyDigest,
	}
	return m.subscribeCmd(email, prefs)
}

// selectMarket opens (or clears, for nil) the prediction modal.
func (m *Model) selectMarket(market *domain.Market) tea.Cmd {
	if market == nil {
		m.closeModal()
		return nil
	}

	selected := *market
	m.state.Selected = &selected
	return m.loadPredictionCmd(selected.ID)
}

// closeModal clears detail state immediately and supersedes any
// in-flight forecast so a late response is discarded.
func (m *Model) closeModal() {
	if m.state.Selected != nil {
		m.coord.Supersede(keyPredict + m.state.Selected.ID)
	}
	m.state.ClearModal()
}

// toggleBookmark flips membership, confirms with a toast, and re-runs
// bookmark resolution.
func (m *Model) toggleBookmark(id string) tea.Cmd {
	added := m.bookmarks.Toggle(id)

	text := "Removed from bookmarks"
	if added {
		text = "Added to bookmarks"
	}
	t := m.toastQueue.Push(text, toasts.KindSuccess)

	return tea.Batch(toastCmd(t), m.resolveBookmarksCmd())
}

func (m *Model) onMarketsLoaded(msg marketsLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.coord.Current(msg.ticket) {
		m.logger.Debug().Msg("discarding stale market listing")
		return m, nil
	}

	if msg.err != nil {
		m.state.ListState = state.LoadError
		m.state.ListError = fetchMessage(msg.err)
		m.state.Markets = nil
		return m, nil
	}

	m.state.ListState = state.LoadSuccess
	m.state.Markets = msg.markets
	m.state.ClampCursor()
	return m, nil
}

func (m *Model) onPredictionLoaded(msg predictionLoadedMsg) (tea.Model, tea.Cmd) {
	if !m.coord.Current(msg.ticket) {
		m.logger.Debug().Str("market", msg.marketID).Msg("discarding stale forecast")
		return m, nil
	}
	// Selection may have moved to another market while this was in
	// flight; its ticket lives under a different key, so check the id.
	if m.state.Selected == nil || m.state.Selected.ID != msg.marketID {
		return m, nil
	}

	if msg.err != nil {
		m.state.ModalState = state.LoadError
		m.state.ModalError = fetchMessage(msg.err)
		return m, nil
	}

	result := msg.result
	m.state.ModalState = state.LoadSuccess
	m.state.Prediction = &result
	return m, nil
}

func (m *Model) onSubscribeResult(msg subscribeResultMsg) (tea.Model, tea.Cmd) {
	m.state.SubscribeBusy = false

	if msg.err != nil {
		// Keep the form so the user can resubmit.
		m.state.SubscribeError = fetchMessage(msg.err)
		return m, nil
	}

	m.state.SubscribeStatus = "Subscribed! Please check your email to verify."
	m.emailInput.SetValue("")
	m.immediate = false
	m.dailyDigest = false
	m.state.SubscribeInvalid = false

	t := m.toastQueue.Push("Subscription confirmed", toasts.KindSuccess)
	return m, toastCmd(t)
}

func (m *Model) onSearchSettled(msg searchSettledMsg) (tea.Model, tea.Cmd) {
	settled, ok := m.debouncer.Resolve(msg.seq)
	if !ok {
		// A newer edit superseded this timer.
		return m, nil
	}
	if !m.pager.SetTerm(settled) {
		return m, nil
	}
	return m, m.loadMarketsCmd()
}

// fetchMessage extracts the user-facing message from a fetch error.
func fetchMessage(err error) string {
	fe := domain.NewFetchError(err)
	if fe.Message == "" {
		return "Request failed. Please try again."
	}
	return fe.Message
}

// bookmarkedIDs builds the membership lookup the renderer needs.
func (m *Model) bookmarkedIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, id := range m.bookmarks.List() {
		ids[id] = true
	}
	return ids
}

// View renders the UI.
func (m *Model) View() string {
	q := m.pager.Query()

	vs := views.ViewState{
		Width:  m.width,
		Height: m.height,
		Tab:    m.tab,

		Markets:        m.state.Markets,
		ListState:      m.state.ListState,
		ListError:      m.state.ListError,
		Categories:     m.state.Categories,
		ActiveCategory: q.Category,
		Cursor:         m.state.Cursor,
		Page:           q.Page,
		Searching:      m.mode == ModeSearch,
		SearchValue:    m.debouncer.Value(),
		SearchInput:    m.searchInput.View(),

		BookmarkedIDs: m.bookmarkedIDs(),
		BookmarkList:  m.state.BookmarkList,
		PanelFocused:  m.panelFocused,
		PanelCursor:   m.panelCursor,

		Selected:   m.state.Selected,
		Prediction: m.state.Prediction,
		ModalState: m.state.ModalState,
		ModalError: m.state.ModalError,

		Subscribing:     m.mode == ModeSubscribe,
		EmailInput:      m.emailInput.View(),
		EmailValue:      m.emailInput.Value(),
		Immediate:       m.immediate,
		DailyDigest:     m.dailyDigest,
		FormFocus:       m.formFocus,
		SubscribeStatus: m.state.SubscribeStatus,
		SubscribeError:  m.state.SubscribeError,
		SubscribeBusy:   m.state.SubscribeBusy,
		EmailInvalid:    m.state.SubscribeInvalid,

		Toasts: m.toastQueue.Toasts(),
	}
	return m.renderer.Render(vs)
}
