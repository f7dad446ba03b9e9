package texture

import "sync"

// loadingManager is the implementation of the LoadingManager interface.
type loadingManager struct {
	mu         *sync.Mutex
	loading    bool
	loaded     int
	total      int
	onStart    func(url string, loaded, total int)
	onProgress func(url string, loaded, total int)
	onLoad     func()
	onError    func(url string, err error)
}

// LoadingManager tracks a group of asset loads and reports their lifecycle.
// OnStart fires when the first item of a batch starts, OnProgress after every finished item,
// OnLoad once every started item has finished and OnError for each failed item.
type LoadingManager interface {
	// ItemStart records that url began loading.
	//
	// Parameters:
	//   - url: the asset being loaded
	ItemStart(url string)

	// ItemEnd records that url finished loading, successfully or not.
	//
	// Parameters:
	//   - url: the asset that finished
	ItemEnd(url string)

	// ItemError reports a failed load. ItemEnd must still be called for the item.
	//
	// Parameters:
	//   - url: the asset that failed
	//   - err: the failure
	ItemError(url string, err error)

	// IsLoading reports whether any started item is still outstanding.
	//
	// Returns:
	//   - bool: true while loading
	IsLoading() bool

	// Progress returns the finished and started item counts.
	//
	// Returns:
	//   - int: items finished
	//   - int: items started
	Progress() (int, int)
}

var _ LoadingManager = &loadingManager{}

// NewLoadingManager creates a LoadingManager.
//
// Parameters:
//   - options: callbacks to register
//
// Returns:
//   - LoadingManager: the manager
func NewLoadingManager(options ...LoadingManagerBuilderOption) LoadingManager {
	m := &loadingManager{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *loadingManager) ItemStart(url string) {
	m.mu.Lock()
	m.total++
	first := !m.loading
	m.loading = true
	loaded, total := m.loaded, m.total
	m.mu.Unlock()

	if first && m.onStart != nil {
		m.onStart(url, loaded, total)
	}
}

func (m *loadingManager) ItemEnd(url string) {
	m.mu.Lock()
	m.loaded++
	loaded, total := m.loaded, m.total
	done := loaded == total
	if done {
		m.loading = false
	}
	m.mu.Unlock()

	if m.onProgress != nil {
		m.onProgress(url, loaded, total)
	}
	if done && m.onLoad != nil {
		m.onLoad()
	}
}

func (m *loadingManager) ItemError(url string, err error) {
	if m.onError != nil {
		m.onError(url, err)
	}
}

func (m *loadingManager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *loadingManager) Progress() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded, m.total
}

// LoadingManagerBuilderOption is a functional option for configuring a LoadingManager.
type LoadingManagerBuilderOption func(*loadingManager)

// WithOnStart registers the callback fired when a batch begins.
func WithOnStart(fn func(url string, loaded, total int)) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onStart = fn
	}
}

// WithOnProgress registers the callback fired after every finished item.
func WithOnProgress(fn func(url string, loaded, total int)) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onProgress = fn
	}
}

// WithOnLoad registers the callback fired when every started item has finished.
func WithOnLoad(fn func()) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onLoad = fn
	}
}

// WithOnError registers the callback fired for each failed item.
func WithOnError(fn func(url string, err error)) LoadingManagerBuilderOption {
	return func(m *loadingManager) {
		m.onError = fn
	}
}
