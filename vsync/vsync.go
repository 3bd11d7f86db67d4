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

// Package vsync synchronises buffer swaps with the vertical refresh of the
// display.
//
// Only the swap interval method is supported. It is implemented with the
// GLX_MESA_swap_control or GLX_SGI_swap_control extensions, whichever the
// driver provides.
package vsync

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/glimmer/curated"
	"github.com/jetsetilly/glimmer/gpu"
	"github.com/jetsetilly/glimmer/logger"
)

// Method of synchronisation.
type Method int

// List of valid Method values.
const (
	None Method = iota
	SwapInterval
)

// MethodList is the list of method names accepted by ParseMethod().
var MethodList = []string{"none", "swap-interval"}

func (m Method) String() string {
	switch m {
	case None:
		return "none"
	case SwapInterval:
		return "swap-interval"
	}
	return fmt.Sprintf("unknown (%d)", int(m))
}

// ParseMethod returns the Method for the name. Names are not case
// sensitive.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return None, nil
	case "swap-interval":
		return SwapInterval, nil
	}
	return None, curated.Errorf("vsync: unknown method (%s)", s)
}

// Syncer applies a Method to a display.
type Syncer struct {
	dpy    gpu.Display
	method Method
	ctl    gpu.SwapControl
	active bool
}

// NewSyncer is the preferred method of initialisation for the Syncer type.
func NewSyncer(dpy gpu.Display, method Method) *Syncer {
	return &Syncer{
		dpy:    dpy,
		method: method,
	}
}

// Method returns the synchronisation method.
func (s *Syncer) Method() Method {
	return s.method
}

// SetMethod changes the method. The change takes effect on the next call to
// Init().
func (s *Syncer) SetMethod(method Method) {
	s.method = method
}

// Active returns true if synchronisation has been initialised and is in
// effect.
func (s *Syncer) Active() bool {
	return s.active
}

// Init starts synchronisation. The GL context must be current. Calling Init
// when synchronisation is already active has no effect.
func (s *Syncer) Init() error {
	if s.active {
		return nil
	}

	switch s.method {
	case None:
		return nil
	case SwapInterval:
		if s.ctl == nil {
			ctl, err := s.dpy.ResolveSwapControl()
			if err != nil {
				return curated.Errorf("vsync: %v", err)
			}
			s.ctl = ctl
		}
		if err := s.ctl.SwapInterval(1); err != nil {
			return curated.Errorf("vsync: %v", err)
		}
	default:
		return curated.Errorf("vsync: unknown method (%d)", int(s.method))
	}

	s.active = true
	logger.Logf(logger.Allow, "vsync", "using %s", s.method)

	return nil
}

// Deinit stops synchronisation. It is safe to call Deinit when
// synchronisation is not active.
func (s *Syncer) Deinit() {
	if !s.active {
		return
	}
	s.active = false

	if s.ctl != nil {
		if err := s.ctl.SwapInterval(0); err != nil {
			logger.Warnf(logger.Allow, "vsync", "%v", err)
		}
	}

	// the entry point belongs to the context and must be resolved again
	s.ctl = nil
}
