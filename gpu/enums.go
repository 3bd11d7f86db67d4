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

package gpu

// OpenGL enumerations used by the renderer.
const (
	FALSE = 0
	TRUE  = 1

	QUADS = 0x0007

	EXTENSIONS = 0x1F03

	DEPTH_TEST          = 0x0B71
	STENCIL_TEST        = 0x0B90
	SCISSOR_TEST        = 0x0C11
	BLEND               = 0x0BE2
	COLOR_LOGIC_OP      = 0x0BF2
	STENCIL_BITS        = 0x0D57
	STENCIL_BUFFER_BIT  = 0x0400
	COLOR_BUFFER_BIT    = 0x4000
	EQUAL               = 0x0202
	COPY_INVERTED       = 0x150C
	ONE                 = 1
	SRC_COLOR           = 0x0300
	ONE_MINUS_SRC_COLOR = 0x0301
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303

	MODELVIEW  = 0x1700
	PROJECTION = 0x1701

	TEXTURE_2D        = 0x0DE1
	TEXTURE_RECTANGLE = 0x84F5
	TEXTURE0          = 0x84C0
	TEXTURE1          = 0x84C1
	NEAREST           = 0x2600
	LINEAR            = 0x2601
	CLAMP_TO_EDGE     = 0x812F
	MAG_FILTER        = 0x2800
	MIN_FILTER        = 0x2801
	WRAP_S            = 0x2802
	WRAP_T            = 0x2803
	RGB               = 0x1907
	RGBA              = 0x1908
	UNSIGNED_BYTE     = 0x1401
	UNPACK_ALIGNMENT  = 0x0CF5
	PACK_ALIGNMENT    = 0x0D05

	TEXTURE_ENV      = 0x2300
	TEXTURE_ENV_MODE = 0x2200
	REPLACE          = 0x1E01
	MODULATE         = 0x2100
	COMBINE          = 0x8570
	COMBINE_RGB      = 0x8571
	COMBINE_ALPHA    = 0x8572
	SUBTRACT         = 0x84E7
	SOURCE0_RGB      = 0x8580
	SOURCE1_RGB      = 0x8581
	SOURCE0_ALPHA    = 0x8588
	SOURCE1_ALPHA    = 0x8589
	OPERAND0_RGB     = 0x8590
	OPERAND1_RGB     = 0x8591
	OPERAND0_ALPHA   = 0x8598
	OPERAND1_ALPHA   = 0x8599
	TEXTURE          = 0x1702
	PRIMARY_COLOR    = 0x8577
	PREVIOUS         = 0x8578

	FRAMEBUFFER          = 0x8D40
	COLOR_ATTACHMENT0    = 0x8CE0
	FRAMEBUFFER_COMPLETE = 0x8CD5
	FRONT                = 0x0404
	BACK                 = 0x0405

	FRAGMENT_SHADER = 0x8B30
	VERTEX_SHADER   = 0x8B31
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84

	NO_ERROR = 0
)

// GLX attributes and values used by the renderer.
const (
	GLX_BUFFER_SIZE  = 2
	GLX_DOUBLEBUFFER = 5
	GLX_RED_SIZE     = 8
	GLX_ALPHA_SIZE   = 11
	GLX_DEPTH_SIZE   = 12
	GLX_STENCIL_SIZE = 13
	GLX_SAMPLES      = 100001

	GLX_BIND_TO_TEXTURE_RGB_EXT     = 0x20D0
	GLX_BIND_TO_TEXTURE_RGBA_EXT    = 0x20D1
	GLX_BIND_TO_MIPMAP_TEXTURE_EXT  = 0x20D2
	GLX_BIND_TO_TEXTURE_TARGETS_EXT = 0x20D3
	GLX_Y_INVERTED_EXT              = 0x20D4
	GLX_TEXTURE_FORMAT_EXT          = 0x20D5
	GLX_TEXTURE_TARGET_EXT          = 0x20D6
	GLX_TEXTURE_FORMAT_RGB_EXT      = 0x20D9
	GLX_TEXTURE_FORMAT_RGBA_EXT     = 0x20DA
	GLX_TEXTURE_2D_EXT              = 0x20DC
	GLX_TEXTURE_RECTANGLE_EXT       = 0x20DD
	GLX_FRONT_LEFT_EXT              = 0x20DE

	GLX_TEXTURE_2D_BIT_EXT        = 0x00000002
	GLX_TEXTURE_RECTANGLE_BIT_EXT = 0x00000004

	GLX_BACK_BUFFER_AGE_EXT = 0x20F4
)

// MaxDepth is the greatest colour depth for which a framebuffer
// configuration is negotiated.
const MaxDepth = 32
