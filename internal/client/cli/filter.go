package cli

import (
	"context"
	"fmt"

	"github.com/zerotask/zerotask/internal/client/view"
)

// Search sets the session's text filter; an empty query clears it.
func (a *App) Search(ctx context.Context, query string) error {
	a.query = query
	if query == "" {
		printlnFn("Search cleared.")
	} else {
		printlnFn(fmt.Sprintf("Showing tasks matching %q.", query))
	}
	return a.List(ctx)
}

// Filter sets the session's status filter.
func (a *App) Filter(ctx context.Context, which string) error {
	switch which {
	case "all":
		a.filter = view.FilterAll
	case "active":
		a.filter = view.FilterActive
	case "completed":
		a.filter = view.FilterCompleted
	default:
		printlnFn("Usage: filter <all|active|completed>")
		return nil
	}
	return a.List(ctx)
}
