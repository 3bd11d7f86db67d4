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

// Package statsview runs an optional local HTTP server charting the runtime
// statistics of the process, such as heap use and GC pauses. The server is
// only compiled in with the statsview build tag. Without the tag Launch()
// prints a notice and Available() returns false.
//
// The WATCH mode of the glimmer command launches the server with the
// -statsview flag. Rebuilding blur programs and caches on every change to the
// configuration file shows up as allocation bursts in the heap charts.
//
// After launch the statistics are viewable at:
//
//	localhost:12601/debug/statsview
package statsview
