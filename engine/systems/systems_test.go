package systems

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spaghettifunk/wood/engine/assets"
	"github.com/spaghettifunk/wood/engine/containers"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	gate  chan struct{}
	loads atomic.Int32
	fail  map[string]error
}

func (l *fakeLoader) Load(name string) (*assets.Resource, error) {
	l.loads.Add(1)
	if l.gate != nil {
		<-l.gate
	}
	if err, ok := l.fail[name]; ok {
		return nil, err
	}
	return &assets.Resource{
		Name:     name,
		FullPath: "/assets/" + name,
		Type:     assets.AssetTypeImage,
		Data:     &assets.Texture{Name: "tex-" + name, Width: 32, Height: 16},
	}, nil
}

func newTextureSystem(t *testing.T, loader ResourceLoader, max uint32) *TextureSystem {
	t.Helper()
	js, err := NewJobSystem(2, 8)
	require.NoError(t, err)
	t.Cleanup(func() { _ = js.Shutdown() })

	ts, err := NewTextureSystem(&TextureSystemConfig{MaxTextureCount: max}, js, loader)
	require.NoError(t, err)
	return ts
}

func wait(t *testing.T, f *containers.Future[*assets.Texture]) (*assets.Texture, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return f.Wait(ctx)
}

func TestJobSystem(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)

	js, err := NewJobSystem(3, 0)
	require.NoError(t, err)

	var completed, failed atomic.Int32
	boom := errors.New("boom")
	for i := 0; i < 10; i++ {
		i := i
		require.NoError(t, js.Submit(JobTask{
			Run: func() error {
				if i%2 == 0 {
					return boom
				}
				return nil
			},
			OnComplete: func() { completed.Add(1) },
			OnFailure: func(err error) {
				assert.ErrorIs(t, err, boom)
				failed.Add(1)
			},
		}))
	}
	require.NoError(t, js.Shutdown())
	assert.Equal(t, int32(5), completed.Load())
	assert.Equal(t, int32(5), failed.Load())

	assert.ErrorIs(t, js.Submit(JobTask{}), ErrJobSystemClosed)
	assert.NoError(t, js.Shutdown())
}

func TestAcquireDeduplicatesConcurrentLoads(t *testing.T) {
	loader := &fakeLoader{gate: make(chan struct{})}
	ts := newTextureSystem(t, loader, 16)

	futures := make([]*containers.Future[*assets.Texture], 2)
	var wg sync.WaitGroup
	for i := range futures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			futures[i] = ts.Acquire("hero.png")
		}(i)
	}
	wg.Wait()

	assert.Same(t, futures[0], futures[1])
	_, ok := futures[0].TryGet()
	assert.False(t, ok, "still loading")

	close(loader.gate)
	for _, f := range futures {
		tex, err := wait(t, f)
		require.NoError(t, err)
		assert.Equal(t, "hero.png", tex.URL)
		assert.Equal(t, 32, tex.Width)
	}
	assert.Equal(t, int32(1), loader.loads.Load())

	// served from the cache afterwards
	tex, ok := ts.Acquire("hero.png").TryGet()
	require.True(t, ok)
	assert.Equal(t, "tex-hero.png", tex.Name)
	assert.Equal(t, int32(1), loader.loads.Load())
}

func TestAcquireFailureIsNotCached(t *testing.T) {
	loader := &fakeLoader{fail: map[string]error{"missing.png": os.ErrNotExist}}
	ts := newTextureSystem(t, loader, 16)

	_, err := wait(t, ts.Acquire("missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = wait(t, ts.Acquire("missing.png"))
	assert.Error(t, err)
	assert.Equal(t, int32(2), loader.loads.Load())

	_, ok := ts.Get("missing.png")
	assert.False(t, ok)
}

func TestAcquireLimit(t *testing.T) {
	ts := newTextureSystem(t, &fakeLoader{}, 1)

	_, err := wait(t, ts.Acquire("a.png"))
	require.NoError(t, err)

	_, err = wait(t, ts.Acquire("b.png"))
	assert.ErrorIs(t, err, core.ErrOutOfRange)
}

func TestEvict(t *testing.T) {
	loader := &fakeLoader{}
	ts := newTextureSystem(t, loader, 16)

	require.NoError(t, ts.Preload(context.Background(), "a.png", "b.png"))
	_, ok := ts.Get("a.png")
	require.True(t, ok)

	ts.Evict("/assets/a.png")
	_, ok = ts.Get("a.png")
	assert.False(t, ok)
	_, ok = ts.Get("b.png")
	assert.True(t, ok)

	ts.Evict("b.png")
	_, ok = ts.Get("b.png")
	assert.False(t, ok)

	_, err := wait(t, ts.Acquire("a.png"))
	require.NoError(t, err)
	assert.Equal(t, int32(3), loader.loads.Load())
}

func TestEvictDuringLoad(t *testing.T) {
	loader := &fakeLoader{gate: make(chan struct{})}
	ts := newTextureSystem(t, loader, 16)

	f := ts.Acquire("a.png")
	ts.Evict("/assets/a.png")
	close(loader.gate)

	tex, err := wait(t, f)
	require.NoError(t, err)
	assert.Equal(t, "a.png", tex.URL)
	_, ok := ts.Get("a.png")
	assert.False(t, ok)

	_, err = wait(t, ts.Acquire("a.png"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.loads.Load())
	_, ok = ts.Get("a.png")
	assert.True(t, ok)
}

func TestSystemManagerBadAssetsDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	done := make(chan error, 1)
	go func() {
		_, err := NewSystemManager(SystemManagerConfig{
			AssetsDir:       filepath.Join(file, "assets"),
			Workers:         1,
			JobQueueSize:    1,
			MaxTextureCount: 1,
		})
		done <- err
	}()
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("NewSystemManager did not return")
	}
}

func TestPreloadFails(t *testing.T) {
	loader := &fakeLoader{fail: map[string]error{"bad.png": errors.New("corrupt")}}
	ts := newTextureSystem(t, loader, 16)

	err := ts.Preload(context.Background(), "good.png", "bad.png")
	assert.ErrorContains(t, err, "corrupt")
}

func TestShaderSystem(t *testing.T) {
	ss := NewShaderSystem()

	s, err := ss.Get(BUILTIN_SHADER_NAME_SPRITE)
	require.NoError(t, err)
	loc, err := s.UniformLocation("u_matrix")
	require.NoError(t, err)
	assert.Equal(t, 0, loc)

	_, err = s.UniformLocation("u_time")
	assert.ErrorIs(t, err, core.ErrLookup)

	_, err = ss.Get("wood/unknown")
	assert.ErrorIs(t, err, core.ErrLookup)

	ss.Register(&Shader{Name: "wood/custom"})
	_, err = ss.Get("wood/custom")
	assert.NoError(t, err)

	require.NoError(t, ss.Shutdown())
	_, err = ss.Get(BUILTIN_SHADER_NAME_MESH)
	assert.ErrorIs(t, err, core.ErrLookup)
}

func TestSystemManagerHotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	writePNG(t, path, 4, 4)

	sm, err := NewSystemManager(SystemManagerConfig{
		AssetsDir:       dir,
		Workers:         2,
		JobQueueSize:    4,
		MaxTextureCount: 8,
	})
	require.NoError(t, err)
	defer sm.Shutdown()

	tex, err := wait(t, sm.TextureSystem.Acquire("hero.png"))
	require.NoError(t, err)
	assert.Equal(t, 4, tex.Width)

	writePNG(t, path, 8, 8)
	assert.Eventually(t, func() bool {
		_, ok := sm.TextureSystem.Get("hero.png")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)

	tex, err = wait(t, sm.TextureSystem.Acquire("hero.png"))
	require.NoError(t, err)
	assert.Equal(t, 8, tex.Width)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}
