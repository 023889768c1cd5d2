package systems

import (
	"context"
	"fmt"
	"sync"

	"github.com/spaghettifunk/wood/engine/assets"
	"github.com/spaghettifunk/wood/engine/containers"
	"github.com/spaghettifunk/wood/engine/core"
	"golang.org/x/sync/errgroup"
)

// ResourceLoader loads a named asset from disk. *assets.AssetManager implements it.
type ResourceLoader interface {
	Load(name string) (*assets.Resource, error)
}

type TextureSystemConfig struct {
	// The maximum number of textures that can be loaded at once.
	MaxTextureCount uint32
}

// TextureSystem loads textures on the job system and caches them by URL.
// Acquiring a URL that is already loading returns the in-flight future, so
// every texture is read from disk at most once until it gets evicted.
type TextureSystem struct {
	Config *TextureSystemConfig

	mu      sync.Mutex
	pending map[string]*containers.Future[*assets.Texture]
	loaded  map[string]*assets.Texture
	// full path on disk -> url, to evict on file changes
	paths map[string]string
	// urls or paths evicted while a load was in flight
	stale map[string]struct{}

	jobSystem *JobSystem
	loader    ResourceLoader
}

func NewTextureSystem(config *TextureSystemConfig, js *JobSystem, loader ResourceLoader) (*TextureSystem, error) {
	if config.MaxTextureCount == 0 {
		err := fmt.Errorf("func NewTextureSystem - config.MaxTextureCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	return &TextureSystem{
		Config:    config,
		pending:   make(map[string]*containers.Future[*assets.Texture]),
		loaded:    make(map[string]*assets.Texture),
		paths:     make(map[string]string),
		stale:     make(map[string]struct{}),
		jobSystem: js,
		loader:    loader,
	}, nil
}

// Acquire returns a future resolving to the texture at url. It never blocks.
func (ts *TextureSystem) Acquire(url string) *containers.Future[*assets.Texture] {
	ts.mu.Lock()
	if t, ok := ts.loaded[url]; ok {
		ts.mu.Unlock()
		return containers.Resolved(t, nil)
	}
	if f, ok := ts.pending[url]; ok {
		ts.mu.Unlock()
		return f
	}
	if uint32(len(ts.loaded)+len(ts.pending)) >= ts.Config.MaxTextureCount {
		ts.mu.Unlock()
		err := fmt.Errorf("cannot load '%s': texture limit of %d reached: %w", url, ts.Config.MaxTextureCount, core.ErrOutOfRange)
		core.LogError(err.Error())
		return containers.Resolved[*assets.Texture](nil, err)
	}
	f := containers.NewFuture[*assets.Texture]()
	ts.pending[url] = f
	ts.mu.Unlock()

	var res *assets.Resource
	err := ts.jobSystem.Submit(JobTask{
		Name: "texture " + url,
		Run: func() error {
			r, err := ts.loader.Load(url)
			if err != nil {
				return err
			}
			if _, ok := r.Data.(*assets.Texture); !ok {
				return fmt.Errorf("resource '%s' is not a texture", url)
			}
			res = r
			return nil
		},
		OnComplete: func() {
			t := res.Data.(*assets.Texture)
			t.URL = url
			ts.mu.Lock()
			delete(ts.pending, url)
			_, staleURL := ts.stale[url]
			_, stalePath := ts.stale[res.FullPath]
			if !staleURL && !stalePath {
				ts.loaded[url] = t
				ts.paths[res.FullPath] = url
			}
			ts.clearStale()
			ts.mu.Unlock()
			if staleURL || stalePath {
				core.LogDebug("texture '%s' changed while loading, not cached", url)
			} else {
				core.LogDebug("texture '%s' loaded as '%s' (%dx%d)", url, t.Name, t.Width, t.Height)
			}
			f.Complete(t, nil)
		},
		OnFailure: func(err error) {
			ts.fail(url, f, err)
		},
	})
	if err != nil {
		ts.fail(url, f, err)
	}
	return f
}

// failed loads are not cached, the next Acquire tries again
func (ts *TextureSystem) fail(url string, f *containers.Future[*assets.Texture], err error) {
	ts.mu.Lock()
	delete(ts.pending, url)
	ts.clearStale()
	ts.mu.Unlock()
	f.Complete(nil, fmt.Errorf("loading texture '%s': %w", url, err))
}

// stale marks only matter while something is loading. Called with mu held.
func (ts *TextureSystem) clearStale() {
	if len(ts.pending) == 0 && len(ts.stale) > 0 {
		ts.stale = make(map[string]struct{})
	}
}

// Preload acquires every url and waits until all of them are loaded.
func (ts *TextureSystem) Preload(ctx context.Context, urls ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, url := range urls {
		f := ts.Acquire(url)
		g.Go(func() error {
			_, err := f.Wait(ctx)
			return err
		})
	}
	return g.Wait()
}

// Get returns a loaded texture without triggering a load.
func (ts *TextureSystem) Get(url string) (*assets.Texture, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	t, ok := ts.loaded[url]
	return t, ok
}

// Evict drops the cached texture loaded from path (or requested as path), so
// the next Acquire reads it again. A load still in flight for path completes
// its future but is not cached.
func (ts *TextureSystem) Evict(path string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if len(ts.pending) > 0 {
		ts.stale[path] = struct{}{}
	}
	url, ok := ts.paths[path]
	if !ok {
		url = path
	}
	if _, ok := ts.loaded[url]; !ok {
		return
	}
	delete(ts.loaded, url)
	for p, u := range ts.paths {
		if u == url {
			delete(ts.paths, p)
		}
	}
	core.LogInfo("texture '%s' evicted", url)
}

func (ts *TextureSystem) Shutdown() error {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.loaded = make(map[string]*assets.Texture)
	ts.paths = make(map[string]string)
	ts.stale = make(map[string]struct{})
	return nil
}
