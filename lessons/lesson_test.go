package lessons

import (
	"bytes"
	"go/parser"
	"go/token"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testAssets returns an asset root holding a tiny PNG at every path the lessons load.
func testAssets(t *testing.T) fstest.MapFS {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		img.Set(i%2, i/2, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	paths := []string{
		doorColorPath, doorAlphaPath, doorHeightPath, doorNormalPath,
		doorAmbientOcclusionPath, doorMetalnessPath, doorRoughnessPath,
		matcapPath(matcapNumber), gradientPath(gradientNumber),
	}
	env := environmentMapPaths(environmentMapNumber)
	paths = append(paths, env[:]...)

	fsys := fstest.MapFS{}
	for _, p := range paths {
		fsys[strings.TrimPrefix(p, "/")] = &fstest.MapFile{Data: buf.Bytes()}
	}
	return fsys
}

// newTestContext creates a context writing plain text to out.
func newTestContext(t *testing.T, out *bytes.Buffer, options ...ContextBuilderOption) *Context {
	t.Helper()
	opts := append([]ContextBuilderOption{
		WithAssets(testAssets(t)),
		WithOutput(out, termenv.Ascii),
	}, options...)
	ctx := NewContext(opts...)
	t.Cleanup(ctx.Close)
	return ctx
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"animations", "materials", "textures"}, Names())
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		l, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.Name())
	}

	_, err := Lookup("shadows")
	assert.ErrorIs(t, err, ErrUnknownLesson)
}

func TestLookupReturnsFreshInstances(t *testing.T) {
	a, err := Lookup("materials")
	require.NoError(t, err)
	b, err := Lookup("materials")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestContextAspect(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestContext(t, &out, WithViewport(1600, 900))
	assert.InDelta(t, 16.0/9.0, ctx.Aspect(), 1e-6)

	ctx.Width = 0
	assert.Equal(t, float32(1), ctx.Aspect())
}

func TestContextAnnounceMode(t *testing.T) {
	var out bytes.Buffer
	var title string
	ctx := newTestContext(t, &out, WithTitleSetter("oxy", func(s string) { title = s }))

	ctx.AnnounceMode(1, 11, "Alpha Texture")
	assert.Equal(t, "[2/11] Alpha Texture\n", out.String())
	assert.Equal(t, "oxy [2/11] Alpha Texture", title)
}

func TestAssetPaths(t *testing.T) {
	assert.Equal(t, "/textures/matcaps/1.png", matcapPath(1))
	assert.Equal(t, "/textures/gradients/3.jpg", gradientPath(3))

	env := environmentMapPaths(2)
	assert.Equal(t, "/textures/environmentMaps/2/px.jpg", env[0])
	assert.Equal(t, "/textures/environmentMaps/2/nz.jpg", env[5])
}

// moduleImports returns the module packages imported by the non-test files of dir.
func moduleImports(t *testing.T, dir string) (local []string, all []string) {
	t.Helper()
	const module = "github.com/Carmen-Shannon/oxy-lessons/"
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			all = append(all, path)
			if rest, ok := strings.CutPrefix(path, module); ok {
				local = append(local, rest)
			}
		}
	}
	return local, all
}

func TestLessonsBuildWithoutAWindow(t *testing.T) {
	seen := map[string]bool{}
	queue := []string{"lessons"}
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		local, all := moduleImports(t, filepath.Join("..", pkg))
		assert.NotContains(t, all, "github.com/go-gl/glfw/v3.3/glfw", pkg)
		queue = append(queue, local...)
	}
	assert.False(t, seen["engine/window"])
	assert.False(t, seen["engine"])
	assert.True(t, seen["engine/texture"])
}
