package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyscope/internal/domain"
	"polyscope/internal/ui/state"
	"polyscope/internal/ui/toasts"
)

func TestRenderFailureFallsBackToErrorScreen(t *testing.T) {
	r := NewRenderer()

	// An inconsistent modal state: Success without a result makes the
	// modal renderer dereference a nil forecast.
	vs := ViewState{
		Width:      100,
		Height:     40,
		Selected:   &domain.Market{ID: "m1", Title: "Broken"},
		ModalState: state.LoadSuccess,
		Prediction: nil,
	}

	var out string
	require.NotPanics(t, func() { out = r.Render(vs) })
	assert.Contains(t, out, "Something went wrong")
}

func TestRenderMarketsListStates(t *testing.T) {
	r := NewRenderer()
	base := ViewState{Width: 100, Height: 40, Page: 1}

	loading := base
	loading.ListState = state.LoadLoading
	assert.Contains(t, r.Render(loading), "░")

	failed := base
	failed.ListState = state.LoadError
	failed.ListError = "backend down"
	out := r.Render(failed)
	assert.Contains(t, out, "backend down")
	assert.Contains(t, out, "Press r to retry")

	empty := base
	empty.ListState = state.LoadSuccess
	assert.Contains(t, r.Render(empty), "No markets found")
}

func TestPaginationFooterShownOnEmptyDeepPage(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:     100,
		Height:    40,
		ListState: state.LoadSuccess,
		Page:      7,
	})

	assert.Contains(t, out, "No markets found")
	assert.Contains(t, out, "Pg 7")
	assert.Contains(t, out, "Prev")
}

func TestBookmarkPanelHighlightsFocusedRow(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:     120,
		Height:    40,
		ListState: state.LoadSuccess,
		Markets:   []domain.Market{{ID: "m1", Title: "On page"}},
		BookmarkList: []domain.Market{
			{ID: "b1", Title: "First saved"},
			{ID: "b2", Title: "Second saved"},
		},
		PanelFocused: true,
		PanelCursor:  1,
	})

	assert.Contains(t, out, "Bookmarks (2)")
	assert.Contains(t, out, "> ★ Second saved")
}

func TestToastsOverlayContent(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:     100,
		Height:    40,
		ListState: state.LoadSuccess,
		Markets:   []domain.Market{{ID: "m1", Title: "A"}},
		Toasts: []toasts.Toast{
			{ID: "1", Text: "Added to bookmarks", Kind: toasts.KindSuccess},
		},
	})

	assert.Contains(t, out, "Added to bookmarks")
}
