package odds

import "context"

// PageQuery addresses one page of the odds feed.
type PageQuery struct {
	Date    string
	Profile Profile
	Page    int
}

// Feed exposes the paginated upstream odds source. An empty page marks the end.
type Feed interface {
	FetchOddsPage(ctx context.Context, query PageQuery) ([]Row, error)
}
