package platform

// Host is the window system the engine runs in. It owns the drawable
// surface and feeds input and window events into the engine.
type Host interface {
	Startup(applicationName string, x, y, width, height uint32) error
	Shutdown() error
	// PumpMessages processes the pending window system events. Called once per frame.
	PumpMessages()
	// Size returns the drawable size in pixels.
	Size() (width, height int)
}
