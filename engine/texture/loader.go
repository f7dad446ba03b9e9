package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/h2non/filetype"
)

// ErrNotImage is returned when an asset's bytes are not a recognized image format.
var ErrNotImage = errors.New("texture: not an image")

// ErrLoaderClosed is reported for loads submitted after Close.
var ErrLoaderClosed = errors.New("texture: loader closed")

// loader is the implementation of the Loader and CubeLoader interfaces.
type loader struct {
	mu       *sync.Mutex
	fsys     fs.FS
	manager  LoadingManager
	dispatch func(fn func())
	pool     worker.DynamicWorkerPool
	workers  int
	wg       *sync.WaitGroup
	taskID   int
	// pending holds the ids of tasks that still count towards wg.
	pending map[int]struct{}
	closed  bool
}

// Loader loads 2D textures from an asset file system in the background.
type Loader interface {
	// Load returns a texture immediately and decodes path on the worker pool.
	// The texture becomes Ready once decoding finishes; failures are reported to the LoadingManager.
	// A leading "/" in path is ignored.
	//
	// Parameters:
	//   - path: the asset path inside the loader's file system
	//
	// Returns:
	//   - Texture: the pending texture
	Load(path string) Texture

	// Wait blocks until every submitted image has been decoded or abandoned by Close.
	// Completions go through the dispatcher, so they may still be queued there when Wait returns.
	Wait()

	// Close stops the worker pool. Queued loads are abandoned and never complete.
	Close()
}

// CubeLoader loads six-face cube textures from an asset file system in the background.
type CubeLoader interface {
	// Load returns a cube texture immediately and decodes the six faces on the worker pool.
	//
	// Parameters:
	//   - paths: face paths in +X, -X, +Y, -Y, +Z, -Z order
	//
	// Returns:
	//   - Texture: the pending cube texture
	Load(paths [6]string) Texture

	// Wait blocks until every submitted image has been decoded or abandoned by Close.
	// Completions go through the dispatcher, so they may still be queued there when Wait returns.
	Wait()

	// Close stops the worker pool. Queued loads are abandoned and never complete.
	Close()
}

type cubeLoader struct {
	*loader
}

var _ Loader = &loader{}
var _ CubeLoader = &cubeLoader{}

// NewLoader creates a texture Loader.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	return newLoader(options...)
}

// NewCubeLoader creates a CubeLoader.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - CubeLoader: the loader
func NewCubeLoader(options ...LoaderBuilderOption) CubeLoader {
	return &cubeLoader{loader: newLoader(options...)}
}

func newLoader(options ...LoaderBuilderOption) *loader {
	l := &loader{
		mu:      &sync.Mutex{},
		fsys:    os.DirFS("."),
		workers: runtime.NumCPU(),
		wg:      &sync.WaitGroup{},
		pending: make(map[int]struct{}),
	}
	for _, opt := range options {
		opt(l)
	}
	if l.manager == nil {
		l.manager = NewLoadingManager()
	}
	if l.dispatch == nil {
		l.dispatch = func(fn func()) { fn() }
	}
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	}
	return l
}

func (l *loader) Load(path string) Texture {
	tex := NewTexture(path)
	l.submit(path, func(img image.Image) {
		tex.SetImage(img)
	})
	return tex
}

func (c *cubeLoader) Load(paths [6]string) Texture {
	tex := NewCubeTexture(strings.Join(paths[:], ","))
	for i, path := range paths {
		face := i
		c.submit(path, func(img image.Image) {
			tex.SetFace(face, img)
		})
	}
	return tex
}

func (l *loader) Wait() {
	l.wg.Wait()
}

func (l *loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	abandoned := len(l.pending)
	clear(l.pending)
	l.mu.Unlock()

	l.pool.ClearTaskQueue()
	l.pool.Stop()
	for range abandoned {
		l.wg.Done()
	}
}

// submit registers path with the manager and decodes it on the pool, delivering the
// result through the dispatcher.
func (l *loader) submit(path string, onDecoded func(img image.Image)) {
	l.manager.ItemStart(path)

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		log.Printf("[Texture] failed to load %s: %v", path, ErrLoaderClosed)
		l.manager.ItemError(path, ErrLoaderClosed)
		l.manager.ItemEnd(path)
		return
	}
	id := l.taskID
	l.taskID++
	l.pending[id] = struct{}{}
	l.wg.Add(1)
	l.mu.Unlock()

	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: path,
		Do: func() (any, error) {
			defer l.finish(id)
			img, err := l.decode(path)
			if l.isClosed() {
				return nil, ErrLoaderClosed
			}
			l.dispatch(func() {
				if err != nil {
					log.Printf("[Texture] failed to load %s: %v", path, err)
					l.manager.ItemError(path, err)
				} else {
					onDecoded(img)
				}
				l.manager.ItemEnd(path)
			})
			return img, err
		},
	})
}

// finish releases the task's hold on Wait unless Close already released it.
func (l *loader) finish(id int) {
	l.mu.Lock()
	_, ok := l.pending[id]
	delete(l.pending, id)
	l.mu.Unlock()
	if ok {
		l.wg.Done()
	}
}

func (l *loader) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *loader) decode(path string) (image.Image, error) {
	data, err := fs.ReadFile(l.fsys, strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !filetype.IsImage(data) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
