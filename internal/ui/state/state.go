package state

import (
	"polyscope/internal/domain"
)

// LoadState is the lifecycle of one fetch-backed view: Idle until the
// first fetch, Loading while one is outstanding, then Success or Error.
// A new fetch from any terminal state returns to Loading.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadSuccess
	LoadError
)

// AppState contains the data-bearing application state. UI chrome
// (dimensions, input focus) stays on the model.
type AppState struct {
	// Markets list view
	Markets    []domain.Market
	ListState  LoadState
	ListError  string
	Categories []string
	Cursor     int // selected row in the list

	// Prediction modal. Selected is nil when the modal is closed; its
	// load state is independent of the list's.
	Selected   *domain.Market
	Prediction *domain.PredictionResult
	ModalState LoadState
	ModalError string

	// Bookmarks panel: bookmarked ids resolved to full market records.
	// Ids that fail to resolve are simply absent.
	BookmarkList []domain.Market

	// Subscription form
	SubscribeStatus  string // confirmation message after success
	SubscribeError   string // inline error, kept until next submit
	SubscribeBusy    bool
	SubscribeInvalid bool // email failed the local syntax check
}

// NewAppState creates the initial application state.
func NewAppState() *AppState {
	return &AppState{
		ListState:  LoadIdle,
		ModalState: LoadIdle,
	}
}

// SelectedMarket returns the market under the cursor, or nil when the
// list is empty.
func (s *AppState) SelectedMarket() *domain.Market {
	if len(s.Markets) == 0 || s.Cursor < 0 || s.Cursor >= len(s.Markets) {
		return nil
	}
	return &s.Markets[s.Cursor]
}

// ClampCursor keeps the cursor inside the current result set.
func (s *AppState) ClampCursor() {
	if s.Cursor >= len(s.Markets) {
		s.Cursor = len(s.Markets) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

// ClearModal drops all detail state immediately. No fetch is issued.
func (s *AppState) ClearModal() {
	s.Selected = nil
	s.Prediction = nil
	s.ModalState = LoadIdle
	s.ModalError = ""
}
