package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/wood/engine/core"
)

const (
	BUILTIN_SHADER_NAME_SPRITE = "wood/sprite"
	BUILTIN_SHADER_NAME_MESH   = "wood/mesh"
)

// Shader describes a program known to the rendering backend and the
// uniforms it exposes.
type Shader struct {
	Name string
	// uniform name -> location
	Uniforms map[string]int
}

// UniformLocation returns the location of a uniform, or a core.ErrLookup.
func (s *Shader) UniformLocation(name string) (int, error) {
	loc, ok := s.Uniforms[name]
	if !ok {
		return -1, fmt.Errorf("shader '%s' has no uniform '%s': %w", s.Name, name, core.ErrLookup)
	}
	return loc, nil
}

type ShaderSystem struct {
	mu      sync.RWMutex
	shaders map[string]*Shader
}

// NewShaderSystem creates the registry with the built-in sprite and mesh shaders.
func NewShaderSystem() *ShaderSystem {
	ss := &ShaderSystem{shaders: make(map[string]*Shader)}
	ss.Register(&Shader{
		Name:     BUILTIN_SHADER_NAME_SPRITE,
		Uniforms: map[string]int{"u_matrix": 0, "u_texture_matrix": 1, "u_texture": 2},
	})
	ss.Register(&Shader{
		Name:     BUILTIN_SHADER_NAME_MESH,
		Uniforms: map[string]int{"u_matrix": 0, "u_color": 1},
	})
	return ss
}

// Register adds the shader, replacing any previous one with the same name.
func (ss *ShaderSystem) Register(s *Shader) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, exists := ss.shaders[s.Name]; exists {
		core.LogWarn("shader '%s' already registered, replacing it", s.Name)
	}
	ss.shaders[s.Name] = s
}

// Get looks a shader up by name. Unknown names are a core.ErrLookup.
func (ss *ShaderSystem) Get(name string) (*Shader, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	s, ok := ss.shaders[name]
	if !ok {
		return nil, fmt.Errorf("shader '%s' is not registered: %w", name, core.ErrLookup)
	}
	return s, nil
}

func (ss *ShaderSystem) Shutdown() error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.shaders = make(map[string]*Shader)
	return nil
}
