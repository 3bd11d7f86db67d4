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

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/glx"
)

// SwapMethodList is the list of named swap methods accepted by
// ParseSwapMethod(). A positive integer is also accepted.
var SwapMethodList = []string{"undefined", "copy", "exchange", "buffer-age"}

// ParseSwapMethod converts a swap method name, or a fixed buffer age, to one
// of the glx.Swap* values.
func ParseSwapMethod(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "undefined":
		return glx.SwapUndefined, nil
	case "copy":
		return glx.SwapCopy, nil
	case "exchange":
		return glx.SwapExchange, nil
	case "buffer-age":
		return glx.SwapBufferAge, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, curated.Errorf("config: unrecognised swap method (%s)", s)
	}
	return n, nil
}

// SwapMethodString is the inverse of ParseSwapMethod().
func SwapMethodString(m int) string {
	switch m {
	case glx.SwapUndefined:
		return "undefined"
	case glx.SwapCopy:
		return "copy"
	case glx.SwapExchange:
		return "exchange"
	case glx.SwapBufferAge:
		return "buffer-age"
	}
	return fmt.Sprintf("%d", m)
}
