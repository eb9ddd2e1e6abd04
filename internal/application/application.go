// package application is the entry point to NoiseWave. It owns the window, the
// frame scheduler, the current page and the event loop.
package application

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/google/uuid"
	"github.com/veandco/go-sdl2/sdl"
	"radiantwavetech.com/noisewave/internal/animation"
	"radiantwavetech.com/noisewave/internal/config"
	"radiantwavetech.com/noisewave/internal/db"
	"radiantwavetech.com/noisewave/internal/keybinds"
	"radiantwavetech.com/noisewave/internal/logger"
	"radiantwavetech.com/noisewave/internal/noise"
	"radiantwavetech.com/noisewave/internal/options"
	"radiantwavetech.com/noisewave/internal/page"
	"radiantwavetech.com/noisewave/internal/shaderManager"
	"radiantwavetech.com/noisewave/internal/telemetry"
)

// Application configuration constants
const (
	targetFPS          = 60.0
	openGLMajorVersion = 3
	openGLMinorVersion = 3
)

// Application holds the core state and dependencies for the application.
type Application struct {
	Window        *sdl.Window
	RunID         string
	glContext     sdl.GLContext
	scheduler     *frameScheduler
	recorder      *telemetry.Recorder
	currentPage   page.Page
	noisePage     *page.NoisePage
	pendingAction func()
	running       bool
	shadersReady  bool
}

// ----------------------------------------------------------------------------
// Main Entry Point
// ----------------------------------------------------------------------------

// Run is the core application entry point.
func Run() error {
	cfg := config.Get()

	if err := db.InitDatabase(cfg.DatabasePath()); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &Application{
		RunID:     uuid.NewString(),
		scheduler: newFrameScheduler(),
	}

	if err := logger.InitLogger(db.DB, app.RunID); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	logger.InfoF("Starting run %s", app.RunID)
	if err := db.SetConfigValue(db.KeyLastRunID, app.RunID); err != nil {
		logger.WarningF("Could not record run id: %v", err)
	}

	recorder, err := telemetry.NewFileRecorder(cfg.TelemetryDir, app.RunID)
	if err != nil {
		logger.WarningF("Frame telemetry disabled: %v", err)
	}
	app.recorder = recorder

	if err := app.initializeSDLAndOpenGL(cfg); err != nil {
		return err
	}
	defer app.cleanup()

	if err := shaderManager.InitShaderManager(); err != nil {
		return fmt.Errorf("ShaderManager initialization failed: %w", err)
	}
	app.shadersReady = true

	first, err := app.newNoisePage(cfg, true)
	if err != nil {
		return err
	}
	if err := first.Init(app); err != nil {
		return fmt.Errorf("failed to initialize noise page: %w", err)
	}
	app.currentPage = first
	app.noisePage = first

	app.initKeybinds()

	if err := app.runEventLoop(); err != nil {
		logger.ErrorF("Event loop exited with error: %v", err)
		return err
	}
	return nil
}

// ----------------------------------------------------------------------------
// Initialization Functions
// ----------------------------------------------------------------------------

// newNoisePage builds the animation page from the configuration. A zero seed
// is replaced with one derived from the clock.
func (app *Application) newNoisePage(cfg *config.Config, restore bool) (*page.NoisePage, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src, err := noise.Get(cfg.NoiseSource, seed)
	if err != nil {
		return nil, fmt.Errorf("noise source: %w", err)
	}
	logger.InfoF("Noise source %s, seed %d", src.Name(), seed)

	return &page.NoisePage{
		Presets:  options.BuiltinPresets(),
		Preset:   cfg.Preset,
		Source:   src,
		Seed:     seed,
		RunID:    app.RunID,
		Restore:  restore,
		Observer: app.recorder.Observe,
	}, nil
}

// initializeSDLAndOpenGL sets up SDL, the window and the OpenGL context
func (app *Application) initializeSDLAndOpenGL(cfg *config.Config) error {
	logger.Info("Initializing SDL systems")

	if err := initializeSDL(); err != nil {
		return fmt.Errorf("SDL initialization failed: %w", err)
	}

	window, err := createWindow(cfg)
	if err != nil {
		return err
	}
	app.Window = window

	return app.initializeOpenGL()
}

// initializeSDL initializes SDL subsystems
func initializeSDL() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		logger.ErrorF("Failed to initialize SDL subsystems: %v", err)
		return err
	}
	logger.Info("Successfully initialized VIDEO subsystem")

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, openGLMajorVersion)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, openGLMinorVersion)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	return nil
}

// createWindow creates the SDL window from the configured size
func createWindow(cfg *config.Config) (*sdl.Window, error) {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	window, err := sdl.CreateWindow(
		"NoiseWave",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		cfg.WindowWidth,
		cfg.WindowHeight,
		flags,
	)
	if err != nil {
		return nil, fmt.Errorf("window creation failed: %w", err)
	}
	logger.InfoF("Window created: %dx%d (fullscreen %t)", cfg.WindowWidth, cfg.WindowHeight, cfg.Fullscreen)
	return window, nil
}

// initializeOpenGL sets up OpenGL context and logs version info
func (app *Application) initializeOpenGL() error {
	glContext, err := app.Window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("OpenGL context creation failed: %w", err)
	}
	app.glContext = glContext

	if err := sdl.GLSetSwapInterval(1); err != nil {
		logger.WarningF("Failed to enable vsync: %v", err)
	}

	if err := gl.InitWithProcAddrFunc(sdl.GLGetProcAddress); err != nil {
		return fmt.Errorf("go-gl initialization failed: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.InfoF("OpenGL version: %s", version)
	logger.InfoF("OpenGL renderer: %s", renderer)
	logger.Info("SDL & OpenGL successfully initialized")
	return nil
}

// cleanup handles proper resource cleanup
func (app *Application) cleanup() {
	if app.currentPage != nil {
		app.currentPage.Destroy()
		app.currentPage = nil
	}

	if err := app.recorder.Close(); err != nil {
		logger.WarningF("Closing frame telemetry: %v", err)
	}
	if summary := app.recorder.Summary(); summary.Frames > 0 {
		logger.InfoF("Frame timings: %s", summary)
	}

	if app.shadersReady {
		shaderManager.Get().Close()
	}
	if app.glContext != nil {
		sdl.GLDeleteContext(app.glContext)
	}
	if app.Window != nil {
		app.Window.Destroy()
	}
	sdl.Quit()
}

// ----------------------------------------------------------------------------
// Event Loop
// ----------------------------------------------------------------------------

// runEventLoop contains the main loop for the application.
func (app *Application) runEventLoop() error {
	if app.currentPage == nil {
		return fmt.Errorf("no initial page loaded")
	}

	const frameDelay = time.Second / targetFPS
	app.running = true
	lastTime := time.Now()

	for app.running {
		frameStart := time.Now()

		app.handleEvents()
		if !app.running {
			break
		}

		deltaTime := float32(time.Since(lastTime).Seconds())
		lastTime = time.Now()

		if err := app.currentPage.Update(deltaTime); err != nil {
			logger.WarningF("Page update: %v", err)
		}
		app.scheduler.run(frameStart)
		app.renderFrame()
		app.applyPendingAction()

		frameTime := time.Since(frameStart)
		if frameTime < frameDelay {
			time.Sleep(frameDelay - frameTime)
		}
	}
	return nil
}

// handleEvents processes all pending SDL events
func (app *Application) handleEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			app.running = false
			return

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				keybinds.PerformAction(e)
			}
		}

		if app.currentPage != nil {
			if err := app.currentPage.HandleEvent(event); err != nil {
				logger.WarningF("Error handling event in page: %v", err)
			}
		}
	}
}

// renderFrame clears and renders the current frame
func (app *Application) renderFrame() {
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if app.currentPage != nil {
		if err := app.currentPage.Render(); err != nil {
			logger.WarningF("Render: %v", err)
		}
	}

	app.Window.GLSwap()
}

// ----------------------------------------------------------------------------
// Keybind Registration
// ----------------------------------------------------------------------------

// initKeybinds registers all application-level keyboard shortcuts
func (app *Application) initKeybinds() {
	binds := []struct {
		key    sdl.Keycode
		mod    sdl.Keymod
		desc   string
		action func()
	}{
		{sdl.K_F1, sdl.KMOD_NONE, "start animation", func() { app.noisePage.Start() }},
		{sdl.K_F2, sdl.KMOD_NONE, "stop animation", func() { app.noisePage.Stop() }},
		{sdl.K_F3, sdl.KMOD_NONE, "clear animation", func() { app.noisePage.Clear() }},
		{sdl.K_F4, sdl.KMOD_NONE, "next preset", report("next preset", func() error { return app.noisePage.NextPreset() })},
		{sdl.K_F5, sdl.KMOD_NONE, "reseed", app.reseed},
		{sdl.K_r, sdl.KMOD_NONE, "toggle ripples", app.toggle("ripples")},
		{sdl.K_s, sdl.KMOD_NONE, "toggle stipple", app.toggle("stipple")},
		{sdl.K_d, sdl.KMOD_NONE, "toggle displacement", app.toggle("displacement")},
		{sdl.K_i, sdl.KMOD_NONE, "toggle invert", app.toggle("invert")},
		{sdl.K_SPACE, sdl.KMOD_NONE, "toggle time", app.toggle("animation")},
		{sdl.K_q, sdl.KMOD_CTRL, "quit", app.Stop},
	}
	for _, b := range binds {
		if err := keybinds.Register(b.key, b.mod, b.desc, b.action); err != nil {
			logger.WarningF("%v", err)
		}
	}
	for _, b := range keybinds.List() {
		logger.DebugF("Keybind %s: %s", b.Combo, b.Description)
	}
}

func (app *Application) toggle(name string) func() {
	return report("toggle "+name, func() error { return app.noisePage.Toggle(name) })
}

// report adapts a fallible action to a key binding, logging its error.
func report(desc string, action func() error) func() {
	return func() {
		if err := action(); err != nil {
			logger.WarningF("%s: %v", desc, err)
		}
	}
}

// reseed replaces the noise page with a fresh one carrying the current preset
// and a new clock-derived seed.
func (app *Application) reseed() {
	cfg := *config.Get()
	cfg.Seed = 0
	cfg.Preset = app.noisePage.Preset
	next, err := app.newNoisePage(&cfg, false)
	if err != nil {
		logger.ErrorF("Reseeding: %v", err)
		return
	}
	app.SwitchPage(next)
}

// Stop sets the running flag to false, triggering application shutdown
func (app *Application) Stop() {
	app.running = false
}

// ----------------------------------------------------------------------------
// Page Management
// ----------------------------------------------------------------------------

// applyPendingAction executes the scheduled page transition
func (app *Application) applyPendingAction() {
	if app.pendingAction != nil {
		app.pendingAction()
		app.pendingAction = nil
	}
}

// SwitchPage replaces the current page with a new one after the current frame.
func (app *Application) SwitchPage(p page.Page) {
	app.pendingAction = func() {
		if app.currentPage != nil {
			app.currentPage.Destroy()
			app.currentPage = nil
		}
		if err := p.Init(app); err != nil {
			logger.ErrorF("Failed to initialize page: %v", err)
			app.running = false
			return
		}
		app.currentPage = p
		if np, ok := p.(*page.NoisePage); ok {
			app.noisePage = np
		}
		logger.InfoF("Switched to new page: %T", p)
	}
}

// GetDrawableSize returns the current OpenGL drawable size in pixels
func (app *Application) GetDrawableSize() (w, h int32) {
	return app.Window.GLGetDrawableSize()
}

// GetWindowSize returns the window size in screen coordinates
func (app *Application) GetWindowSize() (w, h int32) {
	return app.Window.GetSize()
}

// Scheduler is the repaint registry animations attach to.
func (app *Application) Scheduler() animation.Scheduler {
	return app.scheduler
}
