package graphics

// Context defines the interface for an OpenGL context and the window that owns it.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// SetFullscreen switches between the primary monitor and windowed mode.
	SetFullscreen(fullscreen bool)
}
