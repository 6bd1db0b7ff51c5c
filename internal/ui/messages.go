package ui

import (
	"polyscope/internal/domain"
	"polyscope/internal/ui/requests"
)

// marketsLoadedMsg carries a market listing result. The ticket decides
// whether the result is still current when it arrives.
type marketsLoadedMsg struct {
	ticket  requests.Ticket
	markets []domain.Market
	err     error
}

// categoriesLoadedMsg carries the trending sample used for category
// derivation. Failures are non-fatal.
type categoriesLoadedMsg struct {
	categories []string
	err        error
}

// predictionLoadedMsg carries a forecast for one market.
type predictionLoadedMsg struct {
	ticket   requests.Ticket
	marketID string
	result   domain.PredictionResult
	err      error
}

// bookmarksResolvedMsg carries the bookmark id list expanded to full
// market records. Unresolvable ids are already omitted.
type bookmarksResolvedMsg struct {
	ticket  requests.Ticket
	markets []domain.Market
}

// subscribeResultMsg carries the outcome of an email subscription.
type subscribeResultMsg struct {
	err error
}

// searchSettledMsg fires when the debounce quiet period elapses. Only
// the message whose seq is still current applies its value.
type searchSettledMsg struct {
	seq uint64
}

// toastExpiredMsg removes one toast after its TTL.
type toastExpiredMsg struct {
	id string
}

// tickMsg drives the loading spinner animation.
type tickMsg struct{}
