package program

import (
	"fmt"
	"log"
	"maps"

	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/shader"
)

// Translator converts rendered source into the dialect the device compiles,
// returning the uniform name mapping of the output.
type Translator interface {
	Translate(stage graphics.ShaderStage, source string) (string, map[string]string, error)
}

// Manager owns every shader program of a render context. It is not safe for
// concurrent use; all calls belong on the GL thread.
type Manager struct {
	device     graphics.Device
	translator Translator
	defaults   map[string]string
	programs   map[string]*Program
	active     *Program
	warnedIdle bool
}

// NewManager creates a manager compiling through device. translator may be nil,
// in which case rendered sources are compiled as desktop GLSL 4.10.
func NewManager(device graphics.Device, translator Translator) *Manager {
	return &Manager{
		device:     device,
		translator: translator,
		defaults: map[string]string{
			"glslVersion": shader.GLSLVersion(translator != nil),
		},
		programs: make(map[string]*Program),
	}
}

// SetDefault sets a template variable for programs defined afterwards.
func (m *Manager) SetDefault(key, value string) {
	m.defaults[key] = value
}

// Define registers a program in the Uncompiled state. vars supply values for
// the stage templates' tokens, on top of the manager defaults.
func (m *Manager) Define(name string, vars map[string]string, stages ...Stage) (*Program, error) {
	if _, exists := m.programs[name]; exists {
		return nil, fmt.Errorf("shader program %s already defined", name)
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("shader program %s has no stages", name)
	}
	p := &Program{
		name:   name,
		stages: stages,
		vars:   maps.Clone(m.defaults),
		state:  Uncompiled,
	}
	maps.Copy(p.vars, vars)
	m.programs[name] = p
	return p, nil
}

// Program returns a defined program.
func (m *Manager) Program(name string) (*Program, error) {
	p, ok := m.programs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProgram, name)
	}
	return p, nil
}

// State returns the lifecycle state of a defined program.
func (m *Manager) State(name string) (State, error) {
	p, err := m.Program(name)
	if err != nil {
		return Uncompiled, err
	}
	return p.state, nil
}

// Active returns the bound program, or nil.
func (m *Manager) Active() *Program { return m.active }

// Compile renders and compiles every stage: Uncompiled -> Compiled.
func (m *Manager) Compile(name string) error {
	p, err := m.Program(name)
	if err != nil {
		return err
	}
	m.release(p)

	shaderIDs, sources, names, err := m.compileStages(p, p.vars)
	if err != nil {
		return err
	}
	p.shaderIDs, p.sources, p.names = shaderIDs, sources, names
	p.state = Compiled
	return nil
}

// Link links the compiled stages: Compiled -> Linked.
func (m *Manager) Link(name string) error {
	p, err := m.Program(name)
	if err != nil {
		return err
	}
	if p.state != Compiled {
		return fmt.Errorf("%w: %s is %s", ErrNotCompiled, name, p.state)
	}
	id, err := m.link(p.name, p.shaderIDs)
	if err != nil {
		return err
	}
	m.deleteShaders(p.shaderIDs)
	p.shaderIDs = nil
	p.id = id
	p.state = Linked
	p.locations = make(map[string]int32)
	p.warned = make(map[string]bool)
	log.Printf("Linked shader program %s", p.name)
	return nil
}

// Build takes a program from any state to Linked.
func (m *Manager) Build(name string) error {
	if err := m.Compile(name); err != nil {
		return err
	}
	return m.Link(name)
}

// Use binds a linked program, demoting the previously active one to Linked.
func (m *Manager) Use(name string) error {
	p, err := m.Program(name)
	if err != nil {
		return err
	}
	if p.state != Linked && p.state != Active {
		return fmt.Errorf("%w: %s is %s", ErrNotLinked, name, p.state)
	}
	if m.active != nil && m.active != p {
		m.active.state = Linked
	}
	m.device.UseProgram(p.id)
	p.state = Active
	m.active = p
	return nil
}

// SetVar changes a template variable. The program's GL objects are released
// and it returns to Uncompiled; it must be built again before use.
func (m *Manager) SetVar(name, key, value string) error {
	p, err := m.Program(name)
	if err != nil {
		return err
	}
	p.vars[key] = value
	m.release(p)
	return nil
}

// Reconfigure substitutes a template variable and rebuilds the program,
// re-binding it if it was active. The replacement is built before the current
// objects are released, so on failure the program keeps its previous value,
// objects and state.
func (m *Manager) Reconfigure(name, key, value string) error {
	p, err := m.Program(name)
	if err != nil {
		return err
	}
	wasActive := m.active == p

	vars := maps.Clone(p.vars)
	vars[key] = value
	shaderIDs, sources, names, err := m.compileStages(p, vars)
	if err != nil {
		return err
	}
	id, err := m.link(p.name, shaderIDs)
	m.deleteShaders(shaderIDs)
	if err != nil {
		return err
	}

	m.release(p)
	p.vars = vars
	p.id, p.sources, p.names = id, sources, names
	p.state = Linked
	p.locations = make(map[string]int32)
	p.warned = make(map[string]bool)
	log.Printf("Rebuilt shader program %s with @%s=%s", p.name, key, value)

	if wasActive {
		return m.Use(name)
	}
	return nil
}

// Shutdown deletes every program's GL objects.
func (m *Manager) Shutdown() {
	for _, p := range m.programs {
		m.release(p)
	}
	m.active = nil
}

func (m *Manager) compileStages(p *Program, vars map[string]string) ([]uint32, []string, map[string]string, error) {
	shaderIDs := make([]uint32, 0, len(p.stages))
	sources := make([]string, 0, len(p.stages))
	var names map[string]string

	for _, st := range p.stages {
		src, err := st.Template.Render(vars)
		if err != nil {
			m.deleteShaders(shaderIDs)
			return nil, nil, nil, fmt.Errorf("program %s: %w", p.name, err)
		}
		code := src
		if m.translator != nil {
			var stageNames map[string]string
			code, stageNames, err = m.translator.Translate(st.Kind, src)
			if err != nil {
				m.deleteShaders(shaderIDs)
				return nil, nil, nil, fmt.Errorf("program %s: %w", p.name, err)
			}
			if names == nil {
				names = make(map[string]string)
			}
			maps.Copy(names, stageNames)
		}
		id, err := m.device.CompileShader(st.Kind, code)
		if err != nil {
			m.deleteShaders(shaderIDs)
			return nil, nil, nil, &CompileError{Program: p.name, Stage: st.Kind, Source: st.Template.Name, Log: err.Error()}
		}
		shaderIDs = append(shaderIDs, id)
		sources = append(sources, src)
	}
	return shaderIDs, sources, names, nil
}

func (m *Manager) link(name string, shaderIDs []uint32) (uint32, error) {
	id, err := m.device.LinkProgram(shaderIDs...)
	if err != nil {
		return 0, &LinkError{Program: name, Log: err.Error()}
	}
	return id, nil
}

func (m *Manager) deleteShaders(ids []uint32) {
	for _, id := range ids {
		m.device.DeleteShader(id)
	}
}

// release drops GL objects and returns the program to Uncompiled.
func (m *Manager) release(p *Program) {
	m.deleteShaders(p.shaderIDs)
	p.shaderIDs = nil
	if p.id != 0 {
		m.device.DeleteProgram(p.id)
		p.id = 0
	}
	if m.active == p {
		m.active = nil
	}
	p.state = Uncompiled
	p.locations = nil
	p.warned = nil
}
