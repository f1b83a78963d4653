package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goteapot/camera"
	"github.com/richinsley/goteapot/encoder"
	"github.com/richinsley/goteapot/gldevice"
	"github.com/richinsley/goteapot/glfwcontext"
	"github.com/richinsley/goteapot/graphics"
	"github.com/richinsley/goteapot/headless"
	"github.com/richinsley/goteapot/lights"
	"github.com/richinsley/goteapot/options"
	"github.com/richinsley/goteapot/primitives"
	"github.com/richinsley/goteapot/program"
	"github.com/richinsley/goteapot/renderer"
	"github.com/richinsley/goteapot/scene"
	"github.com/richinsley/goteapot/shader"
	"github.com/richinsley/goteapot/translator"
)

func init() {
	runtime.LockOSThread()
}

func parseFlags() *options.SceneOptions {
	opts := &options.SceneOptions{
		Help:       flag.Bool("help", false, "Show help message"),
		Variant:    flag.String("variant", "phong", "Shading variant: "+strings.Join(scene.VariantNames(), ", ")),
		NumLights:  flag.Int("lights", lights.DefaultLights, fmt.Sprintf("Number of point lights (%d-%d)", lights.MinLights, lights.MaxLights)),
		Scale:      flag.Float64("scale", scene.DefaultScale, "Initial teapot scale"),
		Material:   flag.String("material", "", "Material preset (defaults to the variant's)"),
		ShowLights: flag.Bool("show-lights", true, "Draw a marker cube at each light"),
		Seed:       flag.Uint64("seed", 1, "Seed for light placement and colours"),
		ShaderDir:  flag.String("shaders", "", "Directory whose files override the built-in shader sources"),
		ModelFile:  flag.String("model", "", "Wavefront OBJ file to use as the teapot"),
		Translate:  flag.Bool("translate", false, "Translate shaders from WebGL2 GLSL ES before compiling"),
		Width:      flag.Int("width", 720, "Width of the window or output"),
		Height:     flag.Int("height", 576, "Height of the window or output"),
		Record:     flag.Bool("record", false, "Render offscreen and encode to a video file"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 50, "Frames per second for recording"),
		OutputFile: flag.String("output", "teapot.mp4", "Output file name for recording"),
		Codec:      flag.String("codec", "h264", "Video codec: "+strings.Join(options.Codecs, ", ")),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		HWAccel:    flag.Bool("hwaccel", false, "Use the platform's hardware video encoder"),
		Headless:   flag.Bool("headless", false, "Record through an EGL context without a display (Linux)"),
	}
	flag.Parse()
	return opts
}

func bindKeys(win *glfwcontext.Context, s *scene.Scene) {
	handle := func(a scene.Action) func() {
		return func() {
			if err := s.Handle(a); err != nil {
				log.Printf("Warning: %v: %v", a, err)
			}
		}
	}
	win.RegisterKeyCallback(glfw.KeyW, handle(scene.WireframeOn))
	win.RegisterKeyCallback(glfw.KeyS, handle(scene.WireframeOff))
	win.RegisterKeyCallback(glfw.KeySpace, handle(scene.ToggleWireframe))
	win.RegisterKeyCallback(glfw.KeyEqual, handle(scene.ScaleUp))
	win.RegisterKeyCallback(glfw.KeyKPAdd, handle(scene.ScaleUp))
	win.RegisterKeyCallback(glfw.KeyMinus, handle(scene.ScaleDown))
	win.RegisterKeyCallback(glfw.KeyKPSubtract, handle(scene.ScaleDown))
	win.RegisterKeyCallback(glfw.KeyRightBracket, handle(scene.MoreLights))
	win.RegisterKeyCallback(glfw.KeyLeftBracket, handle(scene.FewerLights))
	win.RegisterKeyCallback(glfw.KeyL, handle(scene.ToggleLights))
	win.RegisterKeyCallback(glfw.KeyF, func() { win.SetFullscreen(true) })
	win.RegisterKeyCallback(glfw.KeyN, func() { win.SetFullscreen(false) })
}

func bindPointer(win *glfwcontext.Context, s *scene.Scene) {
	buttons := map[glfw.MouseButton]scene.PointerButton{
		glfw.MouseButtonLeft:   scene.ButtonLeft,
		glfw.MouseButtonRight:  scene.ButtonRight,
		glfw.MouseButtonMiddle: scene.ButtonMiddle,
	}
	win.RegisterPointerCallbacks(
		func(button glfw.MouseButton, pressed bool, x, y float64) {
			b, ok := buttons[button]
			if !ok {
				return
			}
			if pressed {
				s.Pointer.Press(b, x, y)
			} else {
				s.Pointer.Release(b)
			}
		},
		s.Pointer.Move,
		s.Pointer.Scroll,
	)
}

func run(ctx context.Context, opts *options.SceneOptions) error {
	gles := *opts.Headless
	var (
		glctx graphics.Context
		win   *glfwcontext.Context
		err   error
	)
	if gles {
		glctx, err = headless.New(*opts.Width, *opts.Height)
		if err != nil {
			return fmt.Errorf("failed to create headless context: %w", err)
		}
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			return fmt.Errorf("failed to initialize GLFW: %w", err)
		}
		defer glfwcontext.TerminateGraphics()

		// Recording without -headless uses a hidden window for its context.
		win, err = glfwcontext.New(opts, !*opts.Record)
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		glctx = win
	}
	defer glctx.Shutdown()

	device, err := gldevice.New(glctx)
	if err != nil {
		return err
	}

	var xlate program.Translator
	if *opts.Translate {
		t, err := translator.New(ctx, gles)
		if err != nil {
			return err
		}
		xlate = t
	}
	shaders := program.NewManager(device, xlate)
	if gles && xlate == nil {
		shaders.SetDefault("glslVersion", shader.GLSLVersion(true))
	}
	defer shaders.Shutdown()

	prims := primitives.NewLibrary(device)
	defer prims.Destroy()
	if err := prims.LoadDefaults(*opts.ModelFile); err != nil {
		return err
	}

	var dir fs.FS
	if *opts.ShaderDir != "" {
		dir = os.DirFS(*opts.ShaderDir)
	}

	rc := &scene.RenderContext{
		Device:     device,
		Shaders:    shaders,
		Camera:     camera.New(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}),
		Primitives: prims,
	}
	s, err := scene.New(rc, shader.NewStore(dir), scene.Options{
		Variant:    *opts.Variant,
		NumLights:  *opts.NumLights,
		Scale:      float32(*opts.Scale),
		ShowLights: *opts.ShowLights,
		Material:   *opts.Material,
		Seed:       *opts.Seed,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize scene: %w", err)
	}

	r := renderer.NewRenderer(glctx, device, s)

	if *opts.Record {
		enc, err := encoder.NewFFmpegEncoder(encoder.ConfigFromOptions(opts))
		if err != nil {
			return err
		}
		err = r.Record(ctx, renderer.RecordOptions{
			Width:    *opts.Width,
			Height:   *opts.Height,
			FPS:      *opts.FPS,
			Duration: *opts.Duration,
		}, enc)
		if err != nil {
			return fmt.Errorf("recording failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	bindKeys(win, s)
	bindPointer(win, s)
	log.Println("Starting interactive render loop...")
	return r.Run(ctx)
}

func main() {
	opts := parseFlags()
	if *opts.Help {
		fmt.Println("Point-lit teapot viewer/recorder")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("%v", err)
	}
}
