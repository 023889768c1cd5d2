package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/wood/engine/components"
	"github.com/spaghettifunk/wood/engine/core"
	"github.com/spaghettifunk/wood/engine/input"
	"github.com/spaghettifunk/wood/engine/math"
	"github.com/spaghettifunk/wood/engine/platform"
	"github.com/spaghettifunk/wood/engine/renderer"
	"github.com/spaghettifunk/wood/engine/scene"
	"github.com/spaghettifunk/wood/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// HostFactory creates the window host once the input state and the event
// bus exist, so the host can feed them.
type HostFactory func(in *input.State, events *core.EventBus) (platform.Host, error)

type Option func(*Engine)

// WithHost replaces the default headless host.
func WithHost(factory HostFactory) Option {
	return func(e *Engine) {
		e.hostFactory = factory
	}
}

// WithBackend replaces the default in-memory recorder backend.
func WithBackend(backend renderer.Backend) Option {
	return func(e *Engine) {
		e.backend = backend
	}
}

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *ApplicationConfig

	stopped   atomic.Bool
	suspended atomic.Bool

	hostFactory   HostFactory
	host          platform.Host
	backend       renderer.Backend
	systemManager *systems.SystemManager
	events        *core.EventBus
	input         *input.State
	clock         *core.Clock
	metrics       *core.Metrics
	gameCtx       *Context

	width    uint32
	height   uint32
	lastTime float64
}

func New(g *Game, opts ...Option) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("game without configuration: %w", ErrInvalidConfig)
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       g.ApplicationConfig,
		events:       core.NewEventBus(),
		clock:        core.NewClock(),
		metrics:      core.NewMetrics(),
		width:        g.ApplicationConfig.StartWidth,
		height:       g.ApplicationConfig.StartHeight,
	}
	e.input = input.NewState(e.events)
	e.hostFactory = func(in *input.State, events *core.EventBus) (platform.Host, error) {
		return platform.NewHeadless(events), nil
	}
	e.backend = renderer.NewRecorder()
	for _, opt := range opts {
		opt(e)
	}

	if err := core.SetLogLevel(e.config.LogLevel); err != nil {
		return nil, err
	}

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Context returns the context passed to the game hooks, nil before Initialize.
func (e *Engine) Context() *Context {
	return e.gameCtx
}

func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageBootComplete {
		return fmt.Errorf("engine cannot be initialized in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageInitializing

	// register some events
	e.events.Register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.events.Register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.events.Register(core.EVENT_CODE_RESIZED, e.onResized)

	host, err := e.hostFactory(e.input, e.events)
	if err != nil {
		return err
	}
	e.host = host
	if err := e.host.Startup(e.config.Name, e.config.StartPosX, e.config.StartPosY, e.config.StartWidth, e.config.StartHeight); err != nil {
		return err
	}

	// initialize subsystems
	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		AssetsDir:       e.config.AssetsDir,
		Workers:         e.config.Workers,
		JobQueueSize:    int(e.config.MaxTextures),
		MaxTextureCount: e.config.MaxTextures,
	})
	if err != nil {
		return err
	}
	e.systemManager = sm

	r := renderer.New(e.backend, sm.ShaderSystem)
	if err := r.Initialize(e.config.Name, e.config.StartWidth, e.config.StartHeight); err != nil {
		return err
	}

	e.gameCtx = &Context{
		Config:   e.config,
		Scene:    scene.New(e.newCamera()),
		Textures: sm.TextureSystem,
		Shaders:  sm.ShaderSystem,
		Renderer: r,
		Input:    e.input,
		Viewport: e.host,
		Events:   e.events,
		Metrics:  e.metrics,
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e.gameCtx); err != nil {
			return err
		}
	}

	w, h := e.host.Size()
	if w > 0 && h > 0 {
		e.width, e.height = uint32(w), uint32(h)
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.gameCtx, e.width, e.height); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) newCamera() *components.Camera {
	c := e.config.Camera
	position := math.NewVec3(c.Position[0], c.Position[1], c.Position[2])
	target := math.NewVec3(c.Target[0], c.Target[1], c.Target[2])
	switch c.Kind {
	case CameraOrthographic:
		return components.NewOrthographicCamera(position, target, float32(e.config.StartWidth), float32(e.config.StartHeight))
	case CameraPerspective:
		aspect := float32(e.config.StartWidth) / float32(e.config.StartHeight)
		return components.NewPerspectiveCamera(position, target, math.DegToRad(c.FieldOfView), aspect, c.Near, c.Far)
	default:
		return components.NewViewportCamera(e.host)
	}
}

// Run drives the frame loop until Stop is called, a quit event arrives or
// ctx is cancelled. Only failures of the game hooks or of the renderer end
// the loop with an error; component failures are logged per frame.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning

	if err := e.gameCtx.Scene.Start(); err != nil {
		core.LogError("scene start: %s", err)
	}

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	var targetFrameMS float64
	if e.config.TargetFPS > 0 {
		targetFrameMS = 1000.0 / float64(e.config.TargetFPS)
	}
	var sinceReport float64

	for !e.stopped.Load() {
		if ctx.Err() != nil {
			core.LogInfo("context done, shutting down.")
			e.Stop()
			break
		}

		e.host.PumpMessages()

		if e.suspended.Load() {
			time.Sleep(10 * time.Millisecond)
			// the time spent minimized is not part of the next frame
			e.clock.Update()
			e.lastTime = e.clock.Elapsed()
			continue
		}

		// Update clock and get delta time.
		e.clock.Update()
		currentTime := e.clock.Elapsed()
		delta := currentTime - e.lastTime
		frameStartTime := time.Now()

		if err := e.frame(delta); err != nil {
			core.LogError("frame failed, shutting down: %s", err)
			return err
		}

		e.metrics.Update(delta)
		sinceReport += delta
		if sinceReport >= 1000 {
			sinceReport = 0
			fps, frameTime := e.metrics.Frame()
			core.LogDebug("fps: %.1f, frame time: %.2fms", fps, frameTime)
		}

		// Figure out how long the frame took and give the rest back to the OS.
		frameElapsedMS := float64(time.Since(frameStartTime).Microseconds()) / 1000
		if remaining := targetFrameMS - frameElapsedMS; remaining > 0 {
			time.Sleep(time.Duration(remaining * float64(time.Millisecond)))
		}

		// NOTE: Input update/state copying should always be handled
		// after any input should be recorded; I.E. before this line.
		e.input.Update()

		e.lastTime = currentTime
	}

	return nil
}

func (e *Engine) frame(delta float64) error {
	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(e.gameCtx, delta); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}
	r := e.gameCtx.Renderer
	if err := r.BeginFrame(delta); err != nil {
		return err
	}
	// already logged by the entities, the frame goes on
	_ = e.gameCtx.Scene.Update(delta)
	return r.EndFrame(delta)
}

// Stop ends the loop after the current frame.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.Stop()

	var errs []error
	if e.gameInstance.FnShutdown != nil && e.gameCtx != nil {
		errs = append(errs, e.gameInstance.FnShutdown(e.gameCtx))
	}
	if e.gameCtx != nil {
		errs = append(errs, e.gameCtx.Renderer.Shutdown())
	}
	if e.systemManager != nil {
		errs = append(errs, e.systemManager.Shutdown())
	}
	errs = append(errs, e.events.Shutdown())
	if e.host != nil {
		errs = append(errs, e.host.Shutdown())
	}
	return errors.Join(errs...)
}

// GetFramebufferSize returns the width and height (in this order)
// of the application framebuffer
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(ec core.EventContext) bool {
	switch ec.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.Stop()
		return true
	}
	return false
}

func (e *Engine) onKey(ec core.EventContext) bool {
	ke, ok := ec.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ec.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.events.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		// Block anything else from processing this.
		return true
	}
	return false
}

func (e *Engine) onResized(ec core.EventContext) bool {
	se, ok := ec.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ec.Type)
		return false
	}

	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("Window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("Window minimized, suspending application.")
		e.suspended.Store(true)
		return true
	}
	if e.suspended.Load() {
		core.LogInfo("Window restored, resuming application.")
		e.suspended.Store(false)
	}
	if e.gameCtx == nil {
		return true
	}
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(e.gameCtx, width, height); err != nil {
			core.LogError(err.Error())
		}
	}
	if err := e.gameCtx.Renderer.OnResize(uint16(width), uint16(height)); err != nil {
		core.LogError(err.Error())
	}
	return true
}
