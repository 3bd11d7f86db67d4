// This file is part of Glimmer.
//
// Glimmer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Glimmer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Glimmer.  If not, see <https://www.gnu.org/licenses/>.

package blur

import (
	"fmt"
	"strconv"
	"strings"
)

// ShaderOptions change the form of the generated shaders to suit the
// capabilities of the GPU.
type ShaderOptions struct {
	// sample from a rectangle texture rather than a 2D texture. Required
	// when non-power-of-two textures are not supported
	Rectangle bool

	// use textureOffset() from GL_EXT_gpu_shader4 rather than the offset_x
	// and offset_y uniforms
	GPUShader4 bool
}

func (opts ShaderOptions) sampler() (string, string) {
	if opts.Rectangle {
		return "sampler2DRect", "texture2DRect"
	}
	return "sampler2D", "texture2D"
}

func (opts ShaderOptions) extensions(allowGPUShader4 bool) string {
	s := strings.Builder{}
	if opts.Rectangle {
		s.WriteString("#extension GL_ARB_texture_rectangle : require\n")
	}
	if allowGPUShader4 && opts.GPUShader4 {
		s.WriteString("#extension GL_EXT_gpu_shader4 : require\n")
	}
	return s.String()
}

// format a float as a GLSL literal. strconv always uses a full stop as the
// decimal separator
func literal(v float64) string {
	s := strconv.FormatFloat(v, 'g', 7, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Uniforms used by the convolution shader.
const (
	UniformOffsetX      = "offset_x"
	UniformOffsetY      = "offset_y"
	UniformFactorCenter = "factor_center"
	UniformTexture      = "tex_scr"
)

// ConvolutionSource returns the fragment shader for one convolution pass.
//
// The shader adds together the weighted samples of every non-centre cell
// with a non-zero weight. The centre sample is weighted by the
// factor_center uniform and the total is normalised by factor_center plus
// the sum of the weights.
func ConvolutionSource(k Kernel, opts ShaderOptions) string {
	samplerType, sampler := opts.sampler()

	s := strings.Builder{}
	s.WriteString("#version 110\n")
	s.WriteString(opts.extensions(true))
	s.WriteString(fmt.Sprintf("uniform float %s;\n", UniformOffsetX))
	s.WriteString(fmt.Sprintf("uniform float %s;\n", UniformOffsetY))
	s.WriteString(fmt.Sprintf("uniform float %s;\n", UniformFactorCenter))
	s.WriteString(fmt.Sprintf("uniform %s %s;\n", samplerType, UniformTexture))
	s.WriteString("\n")
	s.WriteString("void main() {\n")
	s.WriteString("  vec4 sum = vec4(0.0, 0.0, 0.0, 0.0);\n")

	cx, cy := k.Center()
	var sum float64
	for y := 0; y < k.Height; y++ {
		for x := 0; x < k.Width; x++ {
			if x == cx && y == cy {
				continue
			}
			w := k.At(x, y)
			if w == 0 {
				continue
			}
			sum += w
			if opts.GPUShader4 {
				s.WriteString(fmt.Sprintf("  sum += float(%s) * %sOffset(%s, vec2(gl_TexCoord[0].x, gl_TexCoord[0].y), ivec2(%d, %d));\n",
					literal(w), sampler, UniformTexture, x-cx, y-cy))
			} else {
				s.WriteString(fmt.Sprintf("  sum += float(%s) * %s(%s, vec2(gl_TexCoord[0].x + %s * float(%d), gl_TexCoord[0].y + %s * float(%d)));\n",
					literal(w), sampler, UniformTexture, UniformOffsetX, x-cx, UniformOffsetY, y-cy))
			}
		}
	}

	s.WriteString(fmt.Sprintf("  sum += %s(%s, vec2(gl_TexCoord[0].x, gl_TexCoord[0].y)) * %s;\n",
		sampler, UniformTexture, UniformFactorCenter))
	s.WriteString(fmt.Sprintf("  gl_FragColor = sum / (%s + float(%s));\n", UniformFactorCenter, literal(sum)))
	s.WriteString("}\n")

	return s.String()
}

// Uniforms used by the kawase shaders.
const (
	UniformOffset    = "offset"
	UniformHalfPixel = "halfpixel"
	UniformFullTex   = "fulltex"
)

func kawasePrefix(opts ShaderOptions) string {
	samplerType, sampler := opts.sampler()

	s := strings.Builder{}
	s.WriteString("#version 110\n")
	s.WriteString(opts.extensions(false))
	s.WriteString(fmt.Sprintf("uniform float %s;\n", UniformOffset))
	s.WriteString(fmt.Sprintf("uniform vec2 %s;\n", UniformHalfPixel))
	s.WriteString(fmt.Sprintf("uniform vec2 %s;\n", UniformFullTex))
	s.WriteString(fmt.Sprintf("uniform %s %s;\n", samplerType, UniformTexture))
	s.WriteString("vec4 clamp_tex(vec2 uv)\n")
	s.WriteString("{\n")
	s.WriteString(fmt.Sprintf("  return %s(%s, clamp(uv, vec2(0), %s));\n", sampler, UniformTexture, UniformFullTex))
	s.WriteString("}\n")
	s.WriteString("\n")
	s.WriteString("void main()\n")
	s.WriteString("{\n")
	s.WriteString(fmt.Sprintf("  vec2 uv = (gl_TexCoord[0].xy / %s);\n", UniformFullTex))
	s.WriteString("\n")
	return s.String()
}

const kawaseDown = `  vec4 sum = clamp_tex(uv) * 4.0;
  sum += clamp_tex(uv - halfpixel.xy * offset);
  sum += clamp_tex(uv + halfpixel.xy * offset);
  sum += clamp_tex(uv + vec2(halfpixel.x, -halfpixel.y) * offset);
  sum += clamp_tex(uv - vec2(halfpixel.x, -halfpixel.y) * offset);

  gl_FragColor = sum / 8.0;
}
`

const kawaseUp = `  vec4 sum = clamp_tex(uv + vec2(-halfpixel.x * 2.0, 0.0) * offset);
  sum += clamp_tex(uv + vec2(-halfpixel.x, halfpixel.y) * offset) * 2.0;
  sum += clamp_tex(uv + vec2(0.0, halfpixel.y * 2.0) * offset);
  sum += clamp_tex(uv + vec2(halfpixel.x, halfpixel.y) * offset) * 2.0;
  sum += clamp_tex(uv + vec2(halfpixel.x * 2.0, 0.0) * offset);
  sum += clamp_tex(uv + vec2(halfpixel.x, -halfpixel.y) * offset) * 2.0;
  sum += clamp_tex(uv + vec2(0.0, -halfpixel.y * 2.0) * offset);
  sum += clamp_tex(uv + vec2(-halfpixel.x, -halfpixel.y) * offset) * 2.0;

  gl_FragColor = sum / 12.0;
}
`

// KawaseSources returns the fragment shaders for the down-sample and
// up-sample stages of the kawase method. The GPUShader4 option is ignored.
func KawaseSources(opts ShaderOptions) (down string, up string) {
	prefix := kawasePrefix(opts)
	return prefix + kawaseDown, prefix + kawaseUp
}
