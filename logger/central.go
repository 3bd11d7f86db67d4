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

package logger

import (
	"io"
)

// only allowing one central log for the entire application. there's no need to
// allow more than one log.
var central *Logger

// maximum number of entries in the central logger.
const maxCentral = 256

func init() {
	central = NewLogger(maxCentral)
}

// Log adds an entry to the central logger
func Log(perm Permission, tag, detail string) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger
func Logf(perm Permission, tag, detail string, args ...interface{}) {
	central.Logf(perm, tag, detail, args...)
}

// Errorf adds a formatted Error level entry to the central logger. Note that
// this does not create an error value.
func Errorf(perm Permission, tag, detail string, args ...interface{}) {
	central.Levelf(perm, Error, tag, detail, args...)
}

// Warnf adds a formatted Warning level entry to the central logger.
func Warnf(perm Permission, tag, detail string, args ...interface{}) {
	central.Levelf(perm, Warning, tag, detail, args...)
}

// Debugf adds a formatted Debug level entry to the central logger.
func Debugf(perm Permission, tag, detail string, args ...interface{}) {
	central.Levelf(perm, Debug, tag, detail, args...)
}

// Tracef adds a formatted Trace level entry to the central logger.
func Tracef(perm Permission, tag, detail string, args ...interface{}) {
	central.Levelf(perm, Trace, tag, detail, args...)
}

// Clear all entries from central logger.
func Clear() {
	central.Clear()
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the last N entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho prints new entries of at least the specified level to io.Writer.
func SetEcho(output io.Writer, level Level) {
	central.SetEcho(output, level)
}

// BorrowLog gives the provided function the critial section and access to the
// list of log entries.
func BorrowLog(f func([]Entry)) {
	central.BorrowLog(f)
}
