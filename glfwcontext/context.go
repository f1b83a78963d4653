package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	options "github.com/richinsley/goteapot/options"
)

// Context owns a GLFW window and its OpenGL context.
type Context struct {
	window *glfw.Window
	// Windowed geometry restored when leaving fullscreen.
	windowedX, windowedY int
	windowedW, windowedH int

	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()

	onButton func(button glfw.MouseButton, pressed bool, x, y float64)
	onMove   func(x, y float64)
	onScroll func(dy float64)
}

// New creates a GLFW window with an OpenGL 4.1 core context. A hidden window
// still provides a context for offscreen rendering.
func New(opts *options.SceneOptions, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	const title = "Using point lights"
	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetScrollCallback(c.glfwScrollCallback)

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// RegisterPointerCallbacks forwards mouse buttons, cursor motion and wheel
// movement. Any callback may be nil.
func (c *Context) RegisterPointerCallbacks(
	onButton func(button glfw.MouseButton, pressed bool, x, y float64),
	onMove func(x, y float64),
	onScroll func(dy float64),
) {
	c.onButton, c.onMove, c.onScroll = onButton, onMove, onScroll
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	// Held keys repeat, so holding ] keeps adding lights.
	if action == glfw.Press || action == glfw.Repeat {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if c.onButton == nil {
		return
	}
	x, y := w.GetCursorPos()
	c.onButton(button, action == glfw.Press, x, y)
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, x, y float64) {
	if c.onMove != nil {
		c.onMove(x, y)
	}
}

func (c *Context) glfwScrollCallback(w *glfw.Window, dx, dy float64) {
	if c.onScroll != nil {
		c.onScroll(dy)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// SetFullscreen moves the window onto the primary monitor at its current video
// mode, or back to the geometry it had before.
func (c *Context) SetFullscreen(fullscreen bool) {
	current := c.window.GetMonitor()
	if fullscreen == (current != nil) {
		return
	}
	if fullscreen {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			log.Println("Warning: no primary monitor, staying windowed")
			return
		}
		c.windowedX, c.windowedY = c.window.GetPos()
		c.windowedW, c.windowedH = c.window.GetSize()
		mode := monitor.GetVideoMode()
		c.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	c.window.SetMonitor(nil, c.windowedX, c.windowedY, c.windowedW, c.windowedH, glfw.DontCare)
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
