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
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jetsetilly/glimmer/curated"
)

// DefaultPrefsFile is the name of the preferences file in the resource
// directory.
const DefaultPrefsFile = "preferences.toml"

// Disk associates preference values with keys and saves/loads them to a TOML
// file on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, key := range dsk.Keys() {
		s.WriteString(fmt.Sprintf("%s :: %s\n", key, dsk.entries[key]))
	}
	return s.String()
}

// Path returns the path of the TOML file.
func (dsk *Disk) Path() string {
	return dsk.path
}

// Add preference value to the disk using the specified key. Keys are dot
// separated, each part of the key must be a non-empty string.
func (dsk *Disk) Add(key string, p pref) error {
	for _, part := range strings.Split(key, ".") {
		if part == "" {
			return curated.Errorf("prefs: illegal key (%s)", key)
		}
	}
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf("prefs: key already added (%s)", key)
	}
	dsk.entries[key] = p
	return nil
}

// Keys returns a sorted list of keys added to the disk.
func (dsk *Disk) Keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save current preference values to disk. Entries in the existing file that
// have not been added to the Disk instance are preserved.
func (dsk *Disk) Save() error {
	data := make(map[string]interface{})

	// read existing file so that we don't lose values that belong to other
	// parts of the program. a missing file is not an error
	if _, err := toml.DecodeFile(dsk.path, &data); err != nil && !os.IsNotExist(err) {
		return curated.Errorf("prefs: %v", err)
	}

	for key, p := range dsk.entries {
		insert(data, strings.Split(key, "."), p.Get())
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	err = toml.NewEncoder(f).Encode(data)
	if err != nil {
		_ = f.Close()
		return curated.Errorf("prefs: %v", err)
	}

	if err := f.Close(); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}

// Load preference values from disk. A missing file is not an error. Values
// in the file with keys that have not been added to the Disk instance are
// ignored.
//
// Values on the command line stack (see PushCommandLineStack()) are applied
// after the file has been read. Keys are applied in sorted order.
func (dsk *Disk) Load() error {
	data := make(map[string]interface{})

	if _, err := toml.DecodeFile(dsk.path, &data); err != nil && !os.IsNotExist(err) {
		return curated.Errorf("prefs: %v", err)
	}

	flat := make(map[string]interface{})
	flatten(flat, "", data)

	// keys are applied in sorted order so that hooks which depend on other
	// values see a predictable state
	for _, key := range dsk.Keys() {
		p := dsk.entries[key]
		if v, ok := flat[key]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", key, err)
			}
		}
		if ok, v := GetCommandLinePref(key); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf("prefs: %s: %v", key, err)
			}
		}
	}

	return nil
}

// insert value into a tree of maps using the key parts as the path.
func insert(data map[string]interface{}, key []string, value interface{}) {
	if len(key) == 1 {
		data[key[0]] = value
		return
	}

	sub, ok := data[key[0]].(map[string]interface{})
	if !ok {
		sub = make(map[string]interface{})
		data[key[0]] = sub
	}
	insert(sub, key[1:], value)
}

// flatten a tree of maps into dot separated keys.
func flatten(flat map[string]interface{}, prefix string, data map[string]interface{}) {
	for k, v := range data {
		key := k
		if prefix != "" {
			key = fmt.Sprintf("%s.%s", prefix, k)
		}
		if sub, ok := v.(map[string]interface{}); ok {
			flatten(flat, key, sub)
		} else {
			flat[key] = v
		}
	}
}
