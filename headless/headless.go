// Package headless provides a display-less OpenGL ES context for recording.
package headless

import "github.com/richinsley/goteapot/graphics"

// New returns an EGL pbuffer context of the given size.
func New(width, height int) (graphics.Context, error) {
	h, err := NewHeadless(width, height)
	if err != nil {
		return nil, err
	}
	return h, nil
}
