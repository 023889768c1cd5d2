package testbed

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/wood/engine"
	"github.com/spaghettifunk/wood/engine/components"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))))
}

func TestTestbedRunsHeadless(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, PlayerTexture), 32, 48)
	writePNG(t, filepath.Join(dir, TilesTexture), 64, 64)

	config := engine.DefaultConfig()
	config.AssetsDir = dir
	config.TargetFPS = 200
	config.StartWidth, config.StartHeight = 800, 600

	game := NewTestGame(config)
	update := game.FnUpdate
	frames := 0
	var eng *engine.Engine
	game.FnUpdate = func(ctx *engine.Context, deltaTime float64) error {
		frames++
		if frames == 1 {
			ctx.Input.ProcessKey(core.KEY_D, true)
		}
		if frames == 10 {
			eng.Stop()
		}
		return update(ctx, deltaTime)
	}

	rec := renderer.NewRecorder()
	eng, err := engine.New(game.Game, engine.WithBackend(rec))
	require.NoError(t, err)
	require.NoError(t, eng.Initialize())
	require.NoError(t, eng.Run(context.Background()))

	// both textures were preloaded, so every sprite draws from the first frame
	assert.Len(t, rec.Sprites(), 2)
	assert.Len(t, rec.Meshes(), 1)

	player, ok := eng.Context().Scene.Get("player")
	require.True(t, ok)
	assert.Greater(t, player.Transform.Position.X, float32(0))

	sprite, ok := components.Get[*components.Sprite](player)
	require.True(t, ok)
	assert.True(t, sprite.Loaded())

	spinner, ok := eng.Context().Scene.Get("letter-f")
	require.True(t, ok)
	assert.Greater(t, spinner.Transform.Rotation.Y, float32(0))

	require.NoError(t, eng.Shutdown())
	assert.Nil(t, sprite.Entity())
}
