package program

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
)

// location resolves a uniform of the active program, caching lookups.
// Unknown names are reported once per program and then skipped.
func (m *Manager) location(name string) int32 {
	p := m.active
	if p == nil {
		if !m.warnedIdle {
			log.Printf("Warning: uniform %s set with no active shader program", name)
			m.warnedIdle = true
		}
		return -1
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := m.device.UniformLocation(p.id, p.mappedName(name))
	p.locations[name] = loc
	if loc < 0 && !p.warned[name] {
		p.warned[name] = true
		log.Printf("Warning: uniform %s not found in shader program %s", name, p.name)
	}
	return loc
}

func (m *Manager) SetInt(name string, v int32) {
	if loc := m.location(name); loc >= 0 {
		m.device.Uniform1i(loc, v)
	}
}

func (m *Manager) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	m.SetInt(name, i)
}

func (m *Manager) SetFloat(name string, v float32) {
	if loc := m.location(name); loc >= 0 {
		m.device.Uniform1f(loc, v)
	}
}

func (m *Manager) SetVec3(name string, v mgl32.Vec3) {
	if loc := m.location(name); loc >= 0 {
		m.device.Uniform3f(loc, v)
	}
}

func (m *Manager) SetVec4(name string, v mgl32.Vec4) {
	if loc := m.location(name); loc >= 0 {
		m.device.Uniform4f(loc, v)
	}
}

func (m *Manager) SetMat3(name string, v mgl32.Mat3) {
	if loc := m.location(name); loc >= 0 {
		m.device.UniformMatrix3(loc, v)
	}
}

func (m *Manager) SetMat4(name string, v mgl32.Mat4) {
	if loc := m.location(name); loc >= 0 {
		m.device.UniformMatrix4(loc, v)
	}
}
