package texture

import (
	"io/fs"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// LoaderBuilderOption is a functional option for configuring a Loader or CubeLoader.
type LoaderBuilderOption func(*loader)

// WithFS sets the file system assets are read from.
//
// Parameters:
//   - fsys: the asset root
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithManager attaches a LoadingManager that receives every item's lifecycle.
//
// Parameters:
//   - manager: the loading manager
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithManager(manager LoadingManager) LoaderBuilderOption {
	return func(l *loader) {
		l.manager = manager
	}
}

// WithDispatcher sets the function completed loads are delivered through.
// Pass the engine's Post to apply textures and fire manager callbacks on the frame loop.
// By default completions run on the worker goroutine.
//
// Parameters:
//   - dispatch: runs fn on the caller's preferred goroutine
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithDispatcher(dispatch func(fn func())) LoaderBuilderOption {
	return func(l *loader) {
		l.dispatch = dispatch
	}
}

// WithWorkers sets the decode worker count.
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithPool shares an existing worker pool between loaders.
func WithPool(pool worker.DynamicWorkerPool) LoaderBuilderOption {
	return func(l *loader) {
		l.pool = pool
	}
}
