package graphics

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"radiantwavetech.com/noisewave/internal/logger"
)

// CreateTexture allocates an RGBA8 texture of w×h and optionally fills it with
// pix (tightly packed RGBA rows, row 0 first). Sampling is nearest with edges
// clamped so shader lookups match the CPU pipeline.
func CreateTexture(w, h int32, pix []byte) (uint32, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("CreateTexture: invalid size %dx%d", w, h)
	}
	if pix != nil && len(pix) < int(w*h*4) {
		return 0, fmt.Errorf("CreateTexture: %d bytes for %dx%d", len(pix), w, h)
	}

	for errCode := gl.GetError(); errCode != gl.NO_ERROR; errCode = gl.GetError() {
		logger.WarningF("OpenGL error pending before CreateTexture: 0x%X", errCode)
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return 0, fmt.Errorf("OpenGL error 0x%X after GenTextures", errCode)
	}
	if textureID == 0 {
		return 0, errors.New("gl.GenTextures returned textureID 0")
	}

	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	var data unsafe.Pointer
	if pix != nil {
		data = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, data)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	if glErr := gl.GetError(); glErr != gl.NO_ERROR {
		gl.DeleteTextures(1, &textureID)
		return 0, fmt.Errorf("OpenGL error 0x%X after TexImage2D", glErr)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID, nil
}

// UpdateTexture replaces the full contents of a w×h RGBA8 texture.
func UpdateTexture(textureID uint32, w, h int32, pix []byte) error {
	if len(pix) < int(w*h*4) {
		return fmt.Errorf("UpdateTexture: %d bytes for %dx%d", len(pix), w, h)
	}
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return CheckGLError()
}

// ReadPixels copies the bound framebuffer's w×h RGBA contents into dst.
func ReadPixels(w, h int32, dst []byte) {
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
}

// FramebufferState is the framebuffer binding and viewport at the time of
// SaveFramebuffer.
type FramebufferState struct {
	fbo      int32
	viewport [4]int32
}

func SaveFramebuffer() FramebufferState {
	var s FramebufferState
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &s.fbo)
	gl.GetIntegerv(gl.VIEWPORT, &s.viewport[0])
	return s
}

func (s FramebufferState) Restore() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(s.fbo))
	gl.Viewport(s.viewport[0], s.viewport[1], s.viewport[2], s.viewport[3])
}

// CheckGLError queries OpenGL for errors and returns the first one.
// Call this after a block of GL calls you want to debug.
func CheckGLError() error {
	errCode := gl.GetError()
	if errCode == gl.NO_ERROR {
		return nil
	}
	// drain the rest so the next check starts clean
	for gl.GetError() != gl.NO_ERROR {
	}
	return errors.New(GLErrorString(errCode))
}

// GLErrorString names a glGetError code.
func GLErrorString(errCode uint32) string {
	switch errCode {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.STACK_OVERFLOW:
		return "STACK_OVERFLOW"
	case gl.STACK_UNDERFLOW:
		return "STACK_UNDERFLOW"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("Unknown error code: %d", errCode)
	}
}
