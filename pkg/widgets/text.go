package widgets

import "github.com/go-drift/mapstream/pkg/core"

// Text is a leaf widget carrying a string. The framework is headless, so
// Text does not paint; it exists to give trees inspectable content.
type Text struct {
	core.StatelessBase

	Content string
}

func (t Text) Build(ctx core.BuildContext) core.Widget {
	return nil
}
