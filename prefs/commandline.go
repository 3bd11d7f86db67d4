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

package prefs

import (
	"sort"
	"strings"
)

// a group of values added to the stack by a single call to
// PushCommandLineStack(). entries that could not be parsed as a key/value
// pair are kept so that they can be reported as unused
type commandLineGroup struct {
	values    map[string]Value
	malformed []string
}

func (grp commandLineGroup) unused() string {
	keys := make([]string, 0, len(grp.values))
	for k := range grp.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+len(grp.malformed))
	for _, k := range keys {
		parts = append(parts, k+"::"+grp.values[k].(string))
	}
	parts = append(parts, grp.malformed...)

	return strings.Join(parts, "; ")
}

var commandLineStack []commandLineGroup

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	return len(commandLineStack)
}

// PushCommandLineStack parses a command line and adds it as a new group. The
// command line is a list of key/value pairs separated by semi-colons:
//
//	blur.method::kawase; blur.iterations::4
//
// Only the most recently pushed group is consulted by GetCommandLinePref().
func PushCommandLineStack(prefs string) {
	grp := commandLineGroup{values: make(map[string]Value)}

	for _, p := range strings.Split(prefs, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, v, ok := strings.Cut(p, "::")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			grp.malformed = append(grp.malformed, p)
			continue
		}
		grp.values[k] = strings.TrimSpace(v)
	}

	commandLineStack = append(commandLineStack, grp)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the entries of the group that were never
// retrieved with GetCommandLinePref(), in the same form as the command line.
func PopCommandLineStack() string {
	if len(commandLineStack) == 0 {
		return ""
	}
	top := commandLineStack[len(commandLineStack)-1]
	commandLineStack = commandLineStack[:len(commandLineStack)-1]
	return top.unused()
}

// GetCommandLinePref returns the value for the key from the most recent
// group. A value can be retrieved only once.
func GetCommandLinePref(key string) (bool, Value) {
	if len(commandLineStack) == 0 {
		return false, nil
	}

	grp := commandLineStack[len(commandLineStack)-1]
	v, ok := grp.values[key]
	if !ok {
		return false, nil
	}
	delete(grp.values, key)

	return true, v
}
