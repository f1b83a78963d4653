package gldevice

import (
	"fmt"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goteapot/graphics"
)

// offscreenTarget renders into an RGBA8 texture with a depth renderbuffer.
type offscreenTarget struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
}

func (d *Device) NewRenderTarget(width, height int) (graphics.RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render target size %dx%d", width, height)
	}
	t := &offscreenTarget{
		width:  width,
		height: height,
	}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.textureID, 0)
	gl.GenRenderbuffers(1, &t.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRenderbuffer)
	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		t.Destroy()
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	log.Printf("Offscreen target created: %dx%d", width, height)
	return t, nil
}

func (t *offscreenTarget) frameSize() int { return t.width * t.height * 4 }

func (t *offscreenTarget) Size() (int, int) { return t.width, t.height }

func (t *offscreenTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

func (t *offscreenTarget) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// ReadPixels reads the colour attachment synchronously as bottom-up RGBA rows.
func (t *offscreenTarget) ReadPixels() ([]byte, error) {
	pixels := make([]byte, t.frameSize())

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	defer gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return nil, fmt.Errorf("glReadPixels failed: 0x%x", errCode)
	}
	return pixels, nil
}

func (t *offscreenTarget) Destroy() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.textureID)
	gl.DeleteRenderbuffers(1, &t.depthRenderbuffer)
}
