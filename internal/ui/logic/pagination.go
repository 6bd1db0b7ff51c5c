package logic

// Query is the current listing query: settled search term, active
// category filter, and page number (1-based).
type Query struct {
	Term     string
	Category string
	Page     int
}

// Pagination tracks the listing query. Changing the term or category
// resets the page to 1; changing the page preserves both.
type Pagination struct {
	query Query
}

// NewPagination starts at page 1 with no filters.
func NewPagination() *Pagination {
	return &Pagination{query: Query{Page: 1}}
}

// Query returns the current query.
func (p *Pagination) Query() Query {
	return p.query
}

// SetTerm applies a settled search term. It reports whether the term
// changed; a change resets the page to 1.
func (p *Pagination) SetTerm(term string) bool {
	if term == p.query.Term {
		return false
	}
	p.query.Term = term
	p.query.Page = 1
	return true
}

// SetCategory sets or clears ("") the category filter and resets the
// page to 1.
func (p *Pagination) SetCategory(category string) {
	p.query.Category = category
	p.query.Page = 1
}

// ToggleCategory activates category, or clears the filter when it is
// already active.
func (p *Pagination) ToggleCategory(category string) {
	if p.query.Category == category {
		p.SetCategory("")
		return
	}
	p.SetCategory(category)
}

// NextPage advances one page. There is no upper bound; an empty page is
// surfaced by the result set, not prevented here.
func (p *Pagination) NextPage() {
	p.query.Page++
}

// ResetPage returns to page 1, keeping term and category.
func (p *Pagination) ResetPage() {
	p.query.Page = 1
}

// PrevPage goes back one page, flooring at 1.
func (p *Pagination) PrevPage() {
	if p.query.Page > 1 {
		p.query.Page--
	}
}
