package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"polyscope/internal/domain"
	"polyscope/internal/ui/state"
	"polyscope/internal/ui/toasts"
)

// Tab identifies one of the top-level screens.
type Tab int

const (
	TabMarkets Tab = iota
	TabStats
	TabAbout
	TabFAQ
)

var tabNames = []string{"Markets", "Stats", "About", "FAQ"}

// ViewState contains all the state needed for rendering.
type ViewState struct {
	Width  int
	Height int
	Tab    Tab

	// Markets list
	Markets        []domain.Market
	ListState      state.LoadState
	ListError      string
	Categories     []string
	ActiveCategory string
	Cursor         int
	Page           int
	Searching      bool
	SearchValue    string
	SearchInput    string // rendered text input while searching

	// Bookmarks
	BookmarkedIDs map[string]bool
	BookmarkList  []domain.Market
	PanelFocused  bool
	PanelCursor   int

	// Prediction modal
	Selected   *domain.Market
	Prediction *domain.PredictionResult
	ModalState state.LoadState
	ModalError string

	// Subscription form
	Subscribing     bool
	EmailInput      string // rendered text input
	EmailValue      string
	Immediate       bool
	DailyDigest     bool
	FormFocus       int
	SubscribeStatus string
	SubscribeError  string
	SubscribeBusy   bool
	EmailInvalid    bool

	Toasts []toasts.Toast
}

// Renderer handles all view rendering.
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view. A panic anywhere below is caught
// here and replaced with a minimal fallback screen so a render failure
// never takes the whole application down.
func (r *Renderer) Render(vs ViewState) (out string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("render failure")
			out = r.styles.ErrorBox.Render(
				r.styles.ErrorText.Render("Something went wrong") + "\n" +
					r.styles.Dim.Render(fmt.Sprintf("%v", rec)))
		}
	}()
	return r.render(vs)
}

func (r *Renderer) render(vs ViewState) string {
	if vs.Width == 0 {
		return "Loading..."
	}

	// The prediction modal takes over the screen while open.
	if vs.Selected != nil {
		return r.overlayToasts(vs, r.renderModal(vs))
	}
	if vs.Subscribing {
		return r.overlayToasts(vs, r.renderSubscribeScreen(vs))
	}

	content := &strings.Builder{}
	content.WriteString(r.renderHeader(vs))
	content.WriteString("\n")

	switch vs.Tab {
	case TabMarkets:
		content.WriteString(r.renderMarkets(vs))
	case TabStats:
		content.WriteString(r.renderStats())
	case TabAbout:
		content.WriteString(r.renderAbout())
	case TabFAQ:
		content.WriteString(r.renderFAQ())
	}

	content.WriteString("\n")
	content.WriteString(r.renderHelp(vs))

	return r.overlayToasts(vs, r.styles.Main.Render(content.String()))
}

func (r *Renderer) renderHeader(vs ViewState) string {
	logo := r.styles.Title.Render("POLYSCOPE")

	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == vs.Tab {
			tabs = append(tabs, r.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(name))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Bottom, logo, "  ", strings.Join(tabs, " "))

	if vs.ListState == state.LoadLoading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		line = lipgloss.JoinHorizontal(lipgloss.Bottom, line, "  ",
			r.styles.Dim.Render(spinner[frame]+" Loading"))
	}
	return line
}

func (r *Renderer) renderMarkets(vs ViewState) string {
	b := &strings.Builder{}

	// Search bar
	if vs.Searching {
		b.WriteString("Search: " + vs.SearchInput)
	} else if vs.SearchValue != "" {
		b.WriteString("Search: " + vs.SearchValue + r.styles.Dim.Render("  (/ to edit)"))
	} else {
		b.WriteString(r.styles.Dim.Render("Press / to search markets"))
	}
	b.WriteString("\n")

	// Category chips
	if len(vs.Categories) > 0 {
		chips := make([]string, 0, len(vs.Categories))
		for i, c := range vs.Categories {
			label := fmt.Sprintf("%d:%s", i+1, c)
			if c == vs.ActiveCategory {
				chips = append(chips, r.styles.ChipActive.Render(label))
			} else {
				chips = append(chips, r.styles.Chip.Render(label))
			}
		}
		b.WriteString(strings.Join(chips, " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	list := r.renderMarketList(vs)

	// Bookmarks panel sits beside the list when anything is bookmarked.
	if len(vs.BookmarkList) > 0 {
		panel := r.renderBookmarkPanel(vs)
		list = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", panel)
	}
	b.WriteString(list)

	// Pagination footer. Shown on empty pages too, so a deep page past
	// the end of the results still offers the way back.
	if vs.ListState == state.LoadSuccess {
		b.WriteString("\n")
		b.WriteString(r.styles.Status.Render(fmt.Sprintf("← Prev | Pg %d | Next →", vs.Page)))
	}

	return b.String()
}

func (r *Renderer) renderMarketList(vs ViewState) string {
	switch vs.ListState {
	case state.LoadIdle, state.LoadLoading:
		skeleton := &strings.Builder{}
		for i := 0; i < 6; i++ {
			skeleton.WriteString(r.styles.Dim.Render("░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░"))
			skeleton.WriteString("\n")
		}
		return skeleton.String()

	case state.LoadError:
		return r.styles.ErrorBox.Render(
			r.styles.ErrorText.Render("Error loading markets") + "\n" +
				vs.ListError + "\n" +
				r.styles.Dim.Render("Press r to retry"))
	}

	if len(vs.Markets) == 0 {
		return r.styles.Empty.Render("No markets found\nTry adjusting your search or filters")
	}

	b := &strings.Builder{}
	for i, m := range vs.Markets {
		b.WriteString(r.renderMarketRow(vs, i, m))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderMarketRow(vs ViewState, index int, m domain.Market) string {
	star := " "
	if vs.BookmarkedIDs[m.ID] {
		star = r.styles.Bookmark.Render("★")
	}

	title := truncate(m.Title, 48)
	meta := []string{}
	if m.Category != "" {
		meta = append(meta, m.Category)
	}
	if m.Sentiment != "" {
		meta = append(meta, m.Sentiment)
	}
	metaStr := ""
	if len(meta) > 0 {
		metaStr = r.styles.Dim.Render(" [" + strings.Join(meta, " · ") + "]")
	}

	probs := fmt.Sprintf("%s %s",
		r.styles.YesProb.Render(fmt.Sprintf("YES %.0f%%", m.YesProbability)),
		r.styles.NoProb.Render(fmt.Sprintf("NO %.0f%%", m.NoProbability)))

	figures := r.styles.Dim.Render(fmt.Sprintf("  $%.0f liq · $%.0f 24h · %s",
		m.Liquidity, m.Volume24h, orNA(m.Expiry)))

	line := fmt.Sprintf("%s %-48s%s  %s%s", star, title, metaStr, probs, figures)
	if index == vs.Cursor {
		return r.styles.Cursor.Render("> " + line)
	}
	return "  " + line
}

func (r *Renderer) renderBookmarkPanel(vs ViewState) string {
	b := &strings.Builder{}
	b.WriteString(fmt.Sprintf("Bookmarks (%d)\n", len(vs.BookmarkList)))
	for i, m := range vs.BookmarkList {
		if vs.PanelFocused && i == vs.PanelCursor {
			b.WriteString(r.styles.Cursor.Render("> ★ " + truncate(m.Title, 26)))
		} else {
			b.WriteString("  " + r.styles.Bookmark.Render("★ ") + truncate(m.Title, 26))
		}
		b.WriteString("\n")
	}

	box := r.styles.PanelBox
	if vs.PanelFocused {
		box = box.BorderForeground(lipgloss.Color("99"))
	}
	return box.Render(strings.TrimRight(b.String(), "\n"))
}

func (r *Renderer) renderModal(vs ViewState) string {
	m := vs.Selected
	b := &strings.Builder{}

	star := "☆"
	if vs.BookmarkedIDs[m.ID] {
		star = r.styles.Bookmark.Render("★")
	}
	b.WriteString(fmt.Sprintf("%s %s\n\n", star, truncate(m.Title, 60)))

	switch vs.ModalState {
	case state.LoadLoading:
		b.WriteString(r.styles.Dim.Render("Computing forecast..."))

	case state.LoadError:
		b.WriteString(r.styles.ErrorText.Render(vs.ModalError))
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("Press r to retry"))

	case state.LoadSuccess:
		p := vs.Prediction
		call := r.styles.YesProb.Render(string(p.Prediction))
		if p.Prediction == domain.OutcomeNo {
			call = r.styles.ErrorText.Render(string(p.Prediction))
		}
		b.WriteString(fmt.Sprintf("Prediction:  %s\n", call))
		b.WriteString(fmt.Sprintf("Confidence:  %s %d%%\n", bar(p.Confidence, 20), p.Confidence))
		b.WriteString(fmt.Sprintf("YES:         %s %.0f%%\n", bar(int(p.YesProbability), 20), p.YesProbability))
		b.WriteString(fmt.Sprintf("NO:          %s %.0f%%\n", bar(int(p.NoProbability), 20), p.NoProbability))
		if p.Reason != "" {
			b.WriteString("\nReason: " + wrap(p.Reason, 56) + "\n")
		}
		if p.Notes != "" {
			b.WriteString(r.styles.Dim.Render("Notes: "+wrap(p.Notes, 56)) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render("b bookmark · esc close"))

	box := r.styles.ModalBox.Render(b.String())
	return lipgloss.Place(vs.Width, vs.Height, lipgloss.Center, lipgloss.Center, box)
}

func (r *Renderer) renderSubscribeScreen(vs ViewState) string {
	b := &strings.Builder{}
	b.WriteString(r.styles.Title.Render("Get Prediction Updates"))
	b.WriteString("\n")

	focusMark := func(i int) string {
		if vs.FormFocus == i {
			return "> "
		}
		return "  "
	}
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	b.WriteString(focusMark(0) + "Email: " + vs.EmailInput + "\n")
	if vs.EmailInvalid && vs.EmailValue != "" {
		b.WriteString(r.styles.ErrorText.Render("   Invalid email address") + "\n")
	}
	b.WriteString(fmt.Sprintf("%s%s Email alerts for high-confidence predictions\n", focusMark(1), check(vs.Immediate)))
	b.WriteString(fmt.Sprintf("%s%s Daily digest of top 5 predictions\n", focusMark(2), check(vs.DailyDigest)))

	submit := "Subscribe"
	if vs.SubscribeBusy {
		submit = "Subscribing..."
	}
	b.WriteString(focusMark(3) + "[ " + submit + " ]\n")

	if vs.SubscribeError != "" {
		b.WriteString("\n" + r.styles.ErrorText.Render(vs.SubscribeError))
	}
	if vs.SubscribeStatus != "" {
		b.WriteString("\n" + r.styles.Success.Render(vs.SubscribeStatus))
	}

	b.WriteString("\n\n")
	b.WriteString(r.styles.Help.Render("tab/↑↓ move · space toggle · enter submit · esc back"))

	box := r.styles.FormBox.Render(b.String())
	return lipgloss.Place(vs.Width, vs.Height, lipgloss.Center, lipgloss.Center, box)
}

func (r *Renderer) renderStats() string {
	rows := []struct {
		label string
		value string
	}{
		{"Bullish Win Rate", "62%"},
		{"Bearish Win Rate", "58%"},
		{"Overall Win Rate", "60%"},
		{"Total Markets Analyzed", "284"},
	}
	b := &strings.Builder{}
	b.WriteString("Analytics Dashboard\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-24s %s\n", row.label, r.styles.Highlight.Render(row.value)))
	}
	return b.String()
}

func (r *Renderer) renderAbout() string {
	return wrap("Polyscope is an AI-powered prediction engine for Polymarket outcomes. "+
		"It analyzes 40+ market features including liquidity, sentiment, trading activity, "+
		"and whale behavior to generate high-confidence predictions.", 72) + "\n\n" +
		"How it works:\n" +
		"  1. Browse or search live prediction markets\n" +
		"  2. Open a market to run the AI analysis\n" +
		"  3. Get a prediction with confidence score and breakdown\n" +
		"  4. Subscribe to email alerts for updates\n"
}

func (r *Renderer) renderFAQ() string {
	faqs := []struct {
		q string
		a string
	}{
		{"How accurate are the predictions?",
			"The models achieve ~60% accuracy across diverse market conditions."},
		{"What is the confidence score?",
			"Confidence (0-100) reflects model certainty across 40+ features."},
		{"Can I get email notifications?",
			"Yes, press s on the Markets screen. Choose immediate alerts or a daily digest."},
		{"Is there a delay in predictions?",
			"Predictions update in real time; most analyses complete within seconds."},
	}
	b := &strings.Builder{}
	b.WriteString("Frequently Asked Questions\n\n")
	for _, faq := range faqs {
		b.WriteString(r.styles.Highlight.Render("Q: "+faq.q) + "\n")
		b.WriteString("   " + wrap(faq.a, 68) + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (r *Renderer) renderHelp(vs ViewState) string {
	if vs.Searching {
		return r.styles.Help.Render("enter apply · esc cancel")
	}
	if vs.PanelFocused {
		return r.styles.Help.Render("↑↓ move · enter forecast · b remove · esc back · q quit")
	}
	return r.styles.Help.Render("↑↓ move · enter forecast · b bookmark · ←→ page · 1-5 category · p bookmarks · / search · s subscribe · tab screens · q quit")
}

// overlayToasts stacks the visible toasts above the content.
func (r *Renderer) overlayToasts(vs ViewState, content string) string {
	if len(vs.Toasts) == 0 {
		return content
	}
	lines := make([]string, 0, len(vs.Toasts))
	for _, t := range vs.Toasts {
		var style lipgloss.Style
		switch t.Kind {
		case toasts.KindSuccess:
			style = r.styles.ToastSuccess
		case toasts.KindError:
			style = r.styles.ToastError
		default:
			style = r.styles.ToastInfo
		}
		lines = append(lines, style.Render(t.Text))
	}
	return strings.Join(lines, "\n") + "\n" + content
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	b := &strings.Builder{}
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
