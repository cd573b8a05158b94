// Package opengl presents frames through an OpenGL 4.1 core texture blit.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxel-space/internal/engine/framebuffer"
	"github.com/Faultbox/voxel-space/internal/engine/present"
	"github.com/Faultbox/voxel-space/internal/engine/shader"
	"github.com/Faultbox/voxel-space/internal/logger"
)

const blitVertexShader = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec2 aTexCoord;

	out vec2 vTexCoord;

	void main() {
		gl_Position = vec4(aPos, 1.0);
		vTexCoord = aTexCoord;
	}
`

const blitFragmentShader = `
	#version 410 core

	uniform sampler2D uFrame;
	uniform vec3 uClear;

	in vec2 vTexCoord;
	out vec4 FragColor;

	void main() {
		vec4 c = texture(uFrame, vTexCoord);
		// Rows the terrain never reached stay transparent; show the sky colour.
		FragColor = vec4(mix(uClear, c.rgb, c.a), 1.0);
	}
`

// fullscreen quad in NDC: pos(3) + uv(2). V runs top to bottom so row 0 of
// the frame buffer lands at the top of the window.
var quadVertices = []float32{
	-1, 1, 0, 0, 0,
	1, 1, 0, 1, 0,
	1, -1, 0, 1, 1,
	-1, 1, 0, 0, 0,
	1, -1, 0, 1, 1,
	-1, -1, 0, 0, 1,
}

var _ present.Presenter = (*Presenter)(nil)

// Config configures the OpenGL presenter.
type Config struct {
	// Viewport returns the drawable size of the window in pixels.
	Viewport func() (width, height int)
	// KeepAspect letterboxes instead of stretching.
	KeepAspect bool
	// Smooth selects linear filtering; the default keeps hard pixel edges.
	Smooth bool
	// Sky is drawn behind transparent pixels.
	Sky [3]float32
}

// Presenter uploads frames into a texture and draws it over the window. It needs a
// current OpenGL 4.1 core context.
type Presenter struct {
	cfg     Config
	program *shader.Program
	vao     uint32
	vbo     uint32
	tex     uint32
	texW    int
	texH    int
	log     *zap.Logger
}

// New creates the blit program, quad and frame texture.
func New(cfg Config) (*Presenter, error) {
	if cfg.Viewport == nil {
		return nil, fmt.Errorf("opengl presenter: viewport func is required")
	}

	program, err := shader.New(blitVertexShader, blitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("opengl presenter shader: %w", err)
	}

	p := &Presenter{cfg: cfg, program: program, log: logger.Named("present")}

	gl.GenVertexArrays(1, &p.vao)
	gl.BindVertexArray(p.vao)

	gl.GenBuffers(1, &p.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, unsafe.Pointer(&quadVertices[0]), gl.STATIC_DRAW)

	// Vertex format: pos(3) + texcoord(2) = 5 floats, 20 bytes
	stride := int32(5 * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	filter := int32(gl.NEAREST)
	if cfg.Smooth {
		filter = gl.LINEAR
	}
	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return p, nil
}

// Present uploads buf and draws it scaled to the viewport. The caller swaps
// the window buffers.
func (p *Presenter) Present(buf *framebuffer.Buffer) error {
	w, h := buf.Size()
	pix := buf.Pix()
	if len(pix) == 0 {
		return fmt.Errorf("opengl presenter: empty frame")
	}

	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if w != p.texW || h != p.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		p.texW, p.texH = w, h
		p.log.Debug("frame texture allocated", zap.Int("width", w), zap.Int("height", h))
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}

	vw, vh := p.cfg.Viewport()
	dst := present.Fit(w, h, vw, vh, p.cfg.KeepAspect)

	sky := p.cfg.Sky
	gl.Viewport(0, 0, int32(vw), int32(vh))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	// GL viewports are bottom-left based.
	gl.Viewport(int32(dst.X), int32(vh-dst.Y-dst.H), int32(dst.W), int32(dst.H))

	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)

	p.program.Use()
	gl.Uniform1i(p.program.Uniform("uFrame"), 0)
	gl.Uniform3f(p.program.Uniform("uClear"), sky[0], sky[1], sky[2])

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl presenter: error 0x%x", code)
	}
	return nil
}

// Close releases GPU resources.
func (p *Presenter) Close() {
	if p.tex != 0 {
		gl.DeleteTextures(1, &p.tex)
		p.tex = 0
	}
	if p.vbo != 0 {
		gl.DeleteBuffers(1, &p.vbo)
		p.vbo = 0
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
	p.program.Delete()
}
