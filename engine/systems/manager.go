package systems

import (
	"github.com/spaghettifunk/wood/engine/assets"
)

type SystemManagerConfig struct {
	AssetsDir       string
	Workers         int
	JobQueueSize    int
	MaxTextureCount uint32
}

// SystemManager owns the long lived engine systems and tears them down in
// reverse creation order.
type SystemManager struct {
	JobSystem     *JobSystem
	AssetManager  *assets.AssetManager
	TextureSystem *TextureSystem
	ShaderSystem  *ShaderSystem
}

func NewSystemManager(config SystemManagerConfig) (*SystemManager, error) {
	js, err := NewJobSystem(config.Workers, config.JobQueueSize)
	if err != nil {
		return nil, err
	}
	am, err := assets.NewAssetManager()
	if err != nil {
		_ = js.Shutdown()
		return nil, err
	}
	if err := am.Initialize(config.AssetsDir); err != nil {
		_ = am.Shutdown()
		_ = js.Shutdown()
		return nil, err
	}
	ts, err := NewTextureSystem(&TextureSystemConfig{
		MaxTextureCount: config.MaxTextureCount,
	}, js, am)
	if err != nil {
		_ = am.Shutdown()
		_ = js.Shutdown()
		return nil, err
	}
	// hot reload: changed files are read again on the next Acquire
	am.OnChange(ts.Evict)

	return &SystemManager{
		JobSystem:     js,
		AssetManager:  am,
		TextureSystem: ts,
		ShaderSystem:  NewShaderSystem(),
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.ShaderSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.AssetManager.Shutdown(); err != nil {
		return err
	}
	// let in-flight loads finish before the cache is dropped
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.TextureSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
