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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. The Has() function checks if the pattern occurs somewhere
// in the error chain:
//
//	const NoConfig = "fbconfig: no configuration for depth %d"
//
//	e := curated.Errorf(NoConfig, 24)
//	f := curated.Errorf("glx: %v", e)
//
//	curated.Is(e, NoConfig)  // true
//	curated.Is(f, NoConfig)  // false
//	curated.Has(f, NoConfig) // true
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For example:
//
//	e := curated.Errorf("glx: %v", curated.Errorf("glx: context lost"))
//
// will print as:
//
//	glx: context lost
//
// and not:
//
//	glx: glx: context lost
//
// For the purposes of this package we think of chains as being composed of
// parts separted by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// Sentinel values group patterns into classes. A curated error created with
// Sentinel.Errorf() can be classified with In(), regardless of the pattern
// used to create it:
//
//	var ResourceExhausted = curated.Sentinel("resource exhausted")
//
//	e := ResourceExhausted.Errorf("blur: cannot allocate texture")
//	curated.In(e, ResourceExhausted) // true
package curated
