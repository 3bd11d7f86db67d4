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

// Package prefs facilitates the storage of preferential values. The Bool,
// Int, Float and String types hold a single value that can be read and
// written safely from any goroutine. A pre-hook and post-hook can be attached
// to each value. The pre-hook is useful for validation: if it returns an
// error the value is not changed.
//
// The Disk type associates values with keys and saves/loads them to a TOML
// file. Keys are dot separated and are written as nested TOML tables:
//
//	dsk, _ := prefs.NewDisk("glimmer.toml")
//	var method prefs.String
//	dsk.Add("blur.method", &method)
//	dsk.Load()
//
// Values specified on the command line, with PushCommandLineStack(), take
// precedence over values loaded from disk.
package prefs
