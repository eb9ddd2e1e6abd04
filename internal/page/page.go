// Package page provides the interface for pages
package page

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"radiantwavetech.com/noisewave/internal/animation"
	"radiantwavetech.com/noisewave/internal/graphics"
	"radiantwavetech.com/noisewave/internal/logger"
	"radiantwavetech.com/noisewave/internal/shaderManager"
)

// Page defines the contract for all application screens.
type Page interface {
	Init(app ApplicationInterface) error
	HandleEvent(event sdl.Event) error
	Update(dt float32) error
	Render() error
	// Destroy cleans up the page's resources. The Application's page manager
	// is responsible for calling this method
	Destroy() error
}

// ApplicationInterface defines the set of methods that a page can use to
// interact with the main application.
type ApplicationInterface interface {
	SwitchPage(p Page)
	Stop()
	GetDrawableSize() (int32, int32)
	GetWindowSize() (int32, int32)
	Scheduler() animation.Scheduler
}

// Base is a helper struct that pages can embed to get common functionality.
type Base struct {
	App          ApplicationInterface
	Quad         graphics.Quad
	Projection   mgl32.Mat4
	ScreenWidth  int32
	ScreenHeight int32
}

// Init stores the application context and sets up common resources.
func (p *Base) Init(app ApplicationInterface) error {
	p.App = app

	quad, err := graphics.NewQuad()
	if err != nil {
		return fmt.Errorf("base page quad: %w", err)
	}
	p.Quad = quad
	p.UpdateProjection()

	gl.Disable(gl.BLEND)
	gl.UseProgram(0)
	return nil
}

// UpdateProjection re-reads the drawable size and resets the viewport and
// the orthographic projection to match.
func (p *Base) UpdateProjection() {
	screenWidth, screenHeight := p.App.GetDrawableSize()
	p.Projection = mgl32.Ortho(0, float32(screenWidth), 0, float32(screenHeight), -1, 1)
	p.ScreenWidth = screenWidth
	p.ScreenHeight = screenHeight
	gl.Viewport(0, 0, screenWidth, screenHeight)
}

// Destroy cleans up the common OpenGL resources.
func (p *Base) Destroy() error {
	logger.InfoF("Destroying base resources: (VAO: %d, VBO: %d)", p.Quad.VAO, p.Quad.VBO)
	p.Quad.Delete()
	return nil
}

// RenderTexture draws a texture at position with the given size, in drawable
// pixels with the origin at the bottom left.
func (p *Base) RenderTexture(shader *shaderManager.Shader, textureID uint32, position, size mgl32.Vec2) error {
	shaderProgram := shader.ProgramID
	gl.UseProgram(shaderProgram)

	gl.Uniform1i(gl.GetUniformLocation(shaderProgram, gl.Str("u_texture\x00")), 0)

	model := mgl32.Translate3D(position.X(), position.Y(), 0).Mul4(mgl32.Scale3D(size.X(), size.Y(), 1))
	mvp := p.Projection.Mul4(model)
	mvpUniform := gl.GetUniformLocation(shaderProgram, gl.Str("u_mvpMatrix\x00"))
	if mvpUniform == -1 {
		return fmt.Errorf("could not find 'u_mvpMatrix' uniform in shader program %d", shaderProgram)
	}
	gl.UniformMatrix4fv(mvpUniform, 1, false, &mvp[0])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	p.Quad.Draw()

	gl.Disable(gl.BLEND)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	if err := graphics.CheckGLError(); err != nil {
		return fmt.Errorf("RenderTexture: %w", err)
	}
	return nil
}

// Provide default implementations for the Page interface.
func (p *Base) HandleEvent(event sdl.Event) error { return nil }
func (p *Base) Update(dt float32) error           { return nil }
func (p *Base) Render() error                     { return nil }
