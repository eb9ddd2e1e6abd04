package compositor

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"radiantwavetech.com/noisewave/internal/graphics"
	"radiantwavetech.com/noisewave/internal/logger"
	"radiantwavetech.com/noisewave/internal/shaderManager"
)

// GL runs the refraction shader into an offscreen framebuffer and reads the
// pixels back for the stipple pass. It must be used on the thread that owns
// the GL context.
type GL struct {
	program uint32
	quad    graphics.Quad

	fbo      uint32
	target   uint32
	noiseTex uint32
	dispTex  uint32
	w, h     int32

	uNoise, uDisp, uAmount int32

	out *image.RGBA
}

// NewGL builds a refractor from the "refract" program of sm.
func NewGL(sm *shaderManager.ShaderManager) (*GL, error) {
	shader, ok := sm.Get("refract")
	if !ok {
		return nil, ErrShaderUnavailable
	}

	r := &GL{program: shader.ProgramID}
	r.uNoise = gl.GetUniformLocation(r.program, gl.Str("u_noise\x00"))
	r.uDisp = gl.GetUniformLocation(r.program, gl.Str("u_displacement\x00"))
	r.uAmount = gl.GetUniformLocation(r.program, gl.Str("u_amount\x00"))
	if r.uNoise == -1 || r.uDisp == -1 || r.uAmount == -1 {
		return nil, fmt.Errorf("%w: missing uniforms in program %d", ErrShaderUnavailable, r.program)
	}

	quad, err := graphics.NewQuad()
	if err != nil {
		return nil, fmt.Errorf("creating refraction quad: %w", err)
	}
	r.quad = quad
	gl.GenFramebuffers(1, &r.fbo)
	if err := graphics.CheckGLError(); err != nil {
		r.Close()
		return nil, fmt.Errorf("creating refraction framebuffer: %w", err)
	}
	return r, nil
}

// resize reallocates the three textures when the buffer dimensions change.
func (r *GL) resize(w, h int32) error {
	if w == r.w && h == r.h && r.target != 0 {
		return nil
	}
	r.deleteTextures()

	var err error
	if r.noiseTex, err = graphics.CreateTexture(w, h, nil); err != nil {
		return fmt.Errorf("noise texture: %w", err)
	}
	if r.dispTex, err = graphics.CreateTexture(w, h, nil); err != nil {
		return fmt.Errorf("displacement texture: %w", err)
	}
	if r.target, err = graphics.CreateTexture(w, h, nil); err != nil {
		return fmt.Errorf("target texture: %w", err)
	}

	saved := graphics.SaveFramebuffer()
	defer saved.Restore()
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.target, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("refraction framebuffer incomplete: 0x%X", status)
	}

	r.w, r.h = w, h
	r.out = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	logger.DebugF("Refraction targets resized to %dx%d", w, h)
	return nil
}

func (r *GL) Refract(noise *image.RGBA, disp *image.NRGBA, amount float64) (*image.RGBA, error) {
	w, h := int32(noise.Bounds().Dx()), int32(noise.Bounds().Dy())
	if err := r.resize(w, h); err != nil {
		return nil, err
	}
	if disp.Bounds().Dx() != int(w) || disp.Bounds().Dy() != int(h) {
		return nil, fmt.Errorf("displacement map is %v, noise field is %dx%d", disp.Bounds().Size(), w, h)
	}

	if err := graphics.UpdateTexture(r.noiseTex, w, h, noise.Pix); err != nil {
		return nil, fmt.Errorf("uploading noise field: %w", err)
	}
	if err := graphics.UpdateTexture(r.dispTex, w, h, disp.Pix); err != nil {
		return nil, fmt.Errorf("uploading displacement map: %w", err)
	}

	saved := graphics.SaveFramebuffer()
	defer saved.Restore()

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, w, h)
	gl.Disable(gl.BLEND)

	gl.UseProgram(r.program)
	gl.Uniform1i(r.uNoise, 0)
	gl.Uniform1i(r.uDisp, 1)
	gl.Uniform1f(r.uAmount, float32(amount))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.noiseTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.dispTex)

	r.quad.Draw()

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	graphics.ReadPixels(w, h, r.out.Pix)
	if err := graphics.CheckGLError(); err != nil {
		return nil, fmt.Errorf("refraction pass: %w", err)
	}
	return r.out, nil
}

func (r *GL) deleteTextures() {
	for _, tex := range []*uint32{&r.noiseTex, &r.dispTex, &r.target} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
	r.w, r.h = 0, 0
}

// Close releases the GL objects. The program belongs to the shader manager.
func (r *GL) Close() error {
	r.deleteTextures()
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	r.quad.Delete()
	r.out = nil
	return nil
}
