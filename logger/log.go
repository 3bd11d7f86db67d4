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
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log
type Entry struct {
	Timestamp time.Time
	Level     Level
	tag       string
	detail    string
	repeated  int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	if e.Level == Info {
		s.WriteString(fmt.Sprintf("%s: %s", e.tag, e.detail))
	} else {
		s.WriteString(fmt.Sprintf("%s: %s: %s", e.tag, e.Level, e.detail))
	}
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

// Tag returns the tag of the entry.
func (e *Entry) Tag() string {
	return e.tag
}

// Detail returns the detail of the entry.
func (e *Entry) Detail() string {
	return e.detail
}

// Logger is a bounded list of log entries. The package level functions use a
// central instance of Logger but tests and other specialist code can create
// their own with NewLogger().
type Logger struct {
	crit sync.Mutex

	maxEntries int
	entries    []Entry

	echo      io.Writer
	echoLevel Level
}

// NewLogger is the preferred method of initialisation for the Logger type.
func NewLogger(maxEntries int) *Logger {
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

// Log adds an Info level entry.
func (l *Logger) Log(perm Permission, tag, detail string) {
	l.add(perm, Info, tag, detail)
}

// Logf adds a formatted Info level entry.
func (l *Logger) Logf(perm Permission, tag, detail string, args ...interface{}) {
	l.add(perm, Info, tag, fmt.Sprintf(detail, args...))
}

// Levelf adds a formatted entry with the specified level.
func (l *Logger) Levelf(perm Permission, level Level, tag, detail string, args ...interface{}) {
	l.add(perm, level, tag, fmt.Sprintf(detail, args...))
}

func (l *Logger) add(perm Permission, level Level, tag, detail string) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}

	l.crit.Lock()
	defer l.crit.Unlock()

	// remove all newline characters from tag and detail string. shader
	// compiler diagnostics in particular are multi-line
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.TrimSpace(strings.ReplaceAll(detail, "\n", " "))

	var e *Entry
	if len(l.entries) > 0 {
		e = &l.entries[len(l.entries)-1]
	}

	if e == nil || detail != e.detail || tag != e.tag || level != e.Level {
		l.entries = append(l.entries, Entry{Timestamp: time.Now(), Level: level, tag: tag, detail: detail})
		e = &l.entries[len(l.entries)-1]
	} else {
		e.repeated++
		e.Timestamp = time.Now()
	}

	// maintain maximum length
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
		e = &l.entries[len(l.entries)-1]
	}

	if l.echo != nil && level >= l.echoLevel {
		io.WriteString(l.echo, e.String())
	}
}

// Clear all entries.
func (l *Logger) Clear() {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.entries = l.entries[:0]
}

// Write contents of log to io.Writer.
func (l *Logger) Write(output io.Writer) bool {
	l.crit.Lock()
	defer l.crit.Unlock()

	if len(l.entries) == 0 {
		return false
	}
	for _, e := range l.entries {
		io.WriteString(output, e.String())
	}
	return true
}

// Tail writes the last N entries to io.Writer.
func (l *Logger) Tail(output io.Writer, number int) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// cap number to the number of entries
	if number > len(l.entries) {
		number = len(l.entries)
	}

	for _, e := range l.entries[len(l.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// SetEcho prints new log entries of at least the specified level to
// io.Writer. A nil io.Writer turns echoing off.
func (l *Logger) SetEcho(output io.Writer, level Level) {
	l.crit.Lock()
	defer l.crit.Unlock()
	l.echo = output
	l.echoLevel = level
}

// BorrowLog gives the provided function the critial section and access to the
// list of log entries.
func (l *Logger) BorrowLog(f func([]Entry)) {
	l.crit.Lock()
	defer l.crit.Unlock()
	f(l.entries)
}
