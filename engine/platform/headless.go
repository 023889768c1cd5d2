package platform

import (
	"sync"

	"github.com/spaghettifunk/wood/engine/core"
)

// Headless is a Host without a window, used by tests and the headless mode
// of the demo. The size only changes through SetSize.
type Headless struct {
	mu            sync.RWMutex
	width, height int
	events        *core.EventBus
}

// NewHeadless creates the host. Resize events are fired on events, which may be nil.
func NewHeadless(events *core.EventBus) *Headless {
	return &Headless{events: events}
}

func (h *Headless) Startup(applicationName string, x, y, width, height uint32) error {
	h.mu.Lock()
	h.width, h.height = int(width), int(height)
	h.mu.Unlock()
	core.LogInfo("headless host '%s' started (%dx%d)", applicationName, width, height)
	return nil
}

func (h *Headless) Shutdown() error {
	return nil
}

func (h *Headless) PumpMessages() {}

func (h *Headless) Size() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.width, h.height
}

// SetSize simulates the window being resized.
func (h *Headless) SetSize(width, height int) {
	h.mu.Lock()
	changed := h.width != width || h.height != height
	h.width, h.height = width, height
	h.mu.Unlock()

	if changed && h.events != nil {
		h.events.Fire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.SystemEvent{WindowWidth: uint32(width), WindowHeight: uint32(height)},
		})
	}
}
