package shader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
)

// Store resolves shader templates by name. Files in the optional directory
// override the built-in sources of the same name.
type Store struct {
	dir fs.FS
}

// NewStore returns a store backed by dir, or by the built-ins alone when dir is nil.
func NewStore(dir fs.FS) *Store {
	return &Store{dir: dir}
}

func (s *Store) Template(name string) (*Template, error) {
	if s.dir != nil {
		data, err := fs.ReadFile(s.dir, name)
		switch {
		case err == nil:
			log.Printf("Loaded shader source %s from shader directory", name)
			return NewTemplate(name, string(data)), nil
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read shader %s: %w", name, err)
		}
	}
	src, ok := Builtin(name)
	if !ok {
		return nil, fmt.Errorf("no shader source named %s", name)
	}
	return NewTemplate(name, src), nil
}
