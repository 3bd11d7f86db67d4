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

// Package logger is the central log for the application. There is only one
// log and entries are added to it with the package level functions.
//
// Every function takes a Permission argument. The Allow value should be used
// when a log entry should always be made. Other implementations of Permission
// can be used to silence sub-systems that produce a lot of output.
//
// Entries have a level. The level doesn't affect whether an entry is added to
// the log but it does affect whether the entry is echoed (see SetEcho()).
//
// Identical entries added one after the other are collapsed into a single
// entry with a repeat count.
package logger
