package nav

import (
	"context"

	"github.com/vango-dev/toolbox/pkg/view"
)

// ErrorContent is rendered by the built-in error view, mounted only when
// the fallback view itself cannot be shown.
type ErrorContent struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func lastResortView() view.View {
	return view.Func(func(ctx context.Context, slot view.Slot) error {
		return slot.Render(ErrorContent{
			Title:   "Something went wrong",
			Message: "This page could not be displayed.",
			Path:    slot.Path(),
		})
	})
}
