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

package curated

// Sentinel names a class of errors. Errors created with the Errorf() function
// of a Sentinel can be tested for membership with In() even after they have
// been wrapped by other curated errors.
type Sentinel string

// Errorf creates a new curated error that is a member of the sentinel class.
func (s Sentinel) Errorf(pattern string, values ...interface{}) error {
	return curated{
		pattern:  pattern,
		values:   values,
		sentinel: s,
	}
}

func (s Sentinel) String() string {
	return string(s)
}

// In checks whether the error, or any curated error wrapped by it, was created
// by the sentinel's Errorf() function.
func In(err error, s Sentinel) bool {
	if err == nil {
		return false
	}

	er, ok := err.(curated)
	if !ok {
		return false
	}

	if er.sentinel == s {
		return true
	}

	for i := range er.values {
		if e, ok := er.values[i].(error); ok {
			if In(e, s) {
				return true
			}
		}
	}

	return false
}
