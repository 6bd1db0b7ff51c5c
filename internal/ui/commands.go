package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"polyscope/internal/api"
	"polyscope/internal/domain"
	"polyscope/internal/ui/logic"
	"polyscope/internal/ui/state"
	"polyscope/internal/ui/toasts"
)

// Logical query keys for the request coordinator. The prediction key
// includes the market id so each selection is its own logical query.
const (
	keyMarkets   = "markets"
	keyBookmarks = "bookmarks"
	keyPredict   = "predict:"
)

// Timeframe requested for every forecast.
const predictTimeframe = "daily"

// loadMarketsCmd issues a listing fetch for the current query under a
// fresh ticket and flips the list view to Loading.
func (m *Model) loadMarketsCmd() tea.Cmd {
	t := m.coord.Begin(keyMarkets)
	q := m.pager.Query()
	params := api.ListParams{
		Limit:    m.pageSize,
		Offset:   (q.Page - 1) * m.pageSize,
		Search:   q.Term,
		Category: q.Category,
	}

	m.state.ListState = state.LoadLoading
	m.state.ListError = ""

	return func() tea.Msg {
		markets, err := m.backend.ListMarkets(context.Background(), params)
		return marketsLoadedMsg{ticket: t, markets: markets, err: err}
	}
}

// loadCategoriesCmd derives the category filter list from the trending
// sample. Runs once per mount; failure leaves categories absent.
func (m *Model) loadCategoriesCmd() tea.Cmd {
	limit := m.cfg.UISettings.TrendingLimit
	max := m.cfg.UISettings.MaxCategories
	return func() tea.Msg {
		markets, err := m.backend.Trending(context.Background(), limit)
		if err != nil {
			return categoriesLoadedMsg{err: err}
		}
		return categoriesLoadedMsg{categories: logic.DeriveCategories(markets, max)}
	}
}

// loadPredictionCmd fetches the forecast for the currently selected
// market and flips the modal to Loading.
func (m *Model) loadPredictionCmd(marketID string) tea.Cmd {
	t := m.coord.Begin(keyPredict + marketID)

	m.state.ModalState = state.LoadLoading
	m.state.ModalError = ""
	m.state.Prediction = nil

	return func() tea.Msg {
		result, err := m.backend.PredictAll(context.Background(), marketID, predictTimeframe)
		return predictionLoadedMsg{ticket: t, marketID: marketID, result: result, err: err}
	}
}

// resolveBookmarksCmd expands the bookmarked ids into market records
// with independent concurrent lookups. A failed lookup drops that id
// from the resolved list without touching the store. An empty list
// short-circuits without a request.
func (m *Model) resolveBookmarksCmd() tea.Cmd {
	ids := m.bookmarks.List()
	if len(ids) == 0 {
		m.coord.Supersede(keyBookmarks)
		m.state.BookmarkList = nil
		m.clampPanelCursor()
		return nil
	}

	t := m.coord.Begin(keyBookmarks)
	backend := m.backend
	return func() tea.Msg {
		results := make([]*domain.Market, len(ids))
		var g errgroup.Group
		for i, id := range ids {
			g.Go(func() error {
				market, err := backend.GetMarket(context.Background(), id)
				if err != nil {
					// Treated as removed upstream; keep the bookmark.
					return nil
				}
				results[i] = &market
				return nil
			})
		}
		_ = g.Wait()

		// Store order, minus whatever failed to resolve.
		resolved := make([]domain.Market, 0, len(ids))
		for _, market := range results {
			if market != nil {
				resolved = append(resolved, *market)
			}
		}
		return bookmarksResolvedMsg{ticket: t, markets: resolved}
	}
}

// subscribeCmd submits the email subscription. Validation has already
// happened; this only runs for a syntactically valid address.
func (m *Model) subscribeCmd(email string, prefs domain.SubscriptionPreferences) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.SubscribeEmail(context.Background(), email, prefs)
		return subscribeResultMsg{err: err}
	}
}

// debounceCmd schedules the quiet-period timer for one search edit.
func debounceCmd(seq uint64) tea.Cmd {
	return tea.Tick(logic.QuietPeriod, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq}
	})
}

// toastCmd schedules the expiry of one toast.
func toastCmd(t toasts.Toast) tea.Cmd {
	return tea.Tick(toasts.TTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: t.ID}
	})
}

// tickCmd keeps the spinner animating while something is loading.
func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
