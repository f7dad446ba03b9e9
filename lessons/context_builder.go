package lessons

import (
	"io"
	"io/fs"

	"github.com/muesli/termenv"
)

// ContextBuilderOption is a functional option for configuring a Context.
type ContextBuilderOption func(*Context)

// WithAssets sets the file system textures are loaded from.
//
// Parameters:
//   - assets: the asset root
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithAssets(assets fs.FS) ContextBuilderOption {
	return func(c *Context) {
		c.assets = assets
	}
}

// WithDispatcher sets the function texture loads are completed through.
// Pass the engine's Post so textures change on the frame loop.
//
// Parameters:
//   - dispatch: runs fn on the frame loop
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithDispatcher(dispatch func(fn func())) ContextBuilderOption {
	return func(c *Context) {
		c.dispatch = dispatch
	}
}

// WithOutput sets where mode and GUI announcements are printed.
//
// Parameters:
//   - w: the destination
//   - profile: the termenv color profile, termenv.Ascii for plain text
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithOutput(w io.Writer, profile termenv.Profile) ContextBuilderOption {
	return func(c *Context) {
		c.profile = profile
		c.out = termenv.NewOutput(w, termenv.WithProfile(profile))
	}
}

// WithViewport sets the initial viewport size.
//
// Parameters:
//   - width, height: size in pixels
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithViewport(width, height int) ContextBuilderOption {
	return func(c *Context) {
		c.Width = width
		c.Height = height
	}
}

// WithStartMode sets the exercise mode selected after setup.
//
// Parameters:
//   - mode: the mode index; out of range values keep the first mode
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithStartMode(mode int) ContextBuilderOption {
	return func(c *Context) {
		c.StartMode = mode
	}
}

// WithTitleSetter makes mode announcements update a window title.
//
// Parameters:
//   - title: the base title
//   - setTitle: applies the full title, usually Window.SetTitle
//
// Returns:
//   - ContextBuilderOption: option function to apply
func WithTitleSetter(title string, setTitle func(title string)) ContextBuilderOption {
	return func(c *Context) {
		c.title = title
		c.setTitle = setTitle
	}
}
