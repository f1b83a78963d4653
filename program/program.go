package program

import (
	"errors"
	"fmt"

	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/shader"
)

// State is the lifecycle position of a shader program.
type State int

const (
	Uncompiled State = iota
	Compiled
	Linked
	Active
)

func (s State) String() string {
	switch s {
	case Uncompiled:
		return "uncompiled"
	case Compiled:
		return "compiled"
	case Linked:
		return "linked"
	case Active:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrUnknownProgram = errors.New("unknown shader program")
	ErrNotLinked      = errors.New("shader program is not linked")
	ErrNotCompiled    = errors.New("shader program is not compiled")
)

// CompileError carries the driver diagnostic for a failed stage compile.
type CompileError struct {
	Program string
	Stage   graphics.ShaderStage
	Source  string
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader %s for program %s: %s", e.Stage, e.Source, e.Program, e.Log)
}

// LinkError carries the driver diagnostic for a failed link.
type LinkError struct {
	Program string
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program %s: %s", e.Program, e.Log)
}

// Stage attaches a source template to a pipeline stage.
type Stage struct {
	Kind     graphics.ShaderStage
	Template *shader.Template
}

// Program is a named shader program and the GL objects built from it.
type Program struct {
	name   string
	stages []Stage
	vars   map[string]string
	state  State

	id        uint32
	shaderIDs []uint32
	sources   []string
	names     map[string]string
	locations map[string]int32
	warned    map[string]bool
}

func (p *Program) Name() string { return p.name }
func (p *Program) State() State { return p.state }
func (p *Program) ID() uint32   { return p.id }
func (p *Program) Stages() int  { return len(p.stages) }

// Var returns the current value of a template variable.
func (p *Program) Var(key string) (string, bool) {
	v, ok := p.vars[key]
	return v, ok
}

// Source returns the rendered source of stage i as it was last compiled.
func (p *Program) Source(i int) string {
	if i < 0 || i >= len(p.sources) {
		return ""
	}
	return p.sources[i]
}

// mappedName resolves a source-level uniform name through the translator's
// name table. Array and member suffixes are carried over from the root name.
func (p *Program) mappedName(name string) string {
	if p.names == nil {
		return name
	}
	if m, ok := p.names[name]; ok {
		return m
	}
	root, rest := splitUniformName(name)
	if m, ok := p.names[root]; ok {
		return m + rest
	}
	if m, ok := p.names[root+"[0]"]; ok {
		return trimArraySuffix(m) + rest
	}
	return name
}

func splitUniformName(name string) (string, string) {
	for i := 0; i < len(name); i++ {
		if name[i] == '[' || name[i] == '.' {
			return name[:i], name[i:]
		}
	}
	return name, ""
}

func trimArraySuffix(name string) string {
	if n := len(name); n > 3 && name[n-3:] == "[0]" {
		return name[:n-3]
	}
	return name
}
