// internal/app/factory/settings.go
package factory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Setting names every App carries.
const (
	KeySecret   = "SECRET_KEY"
	KeyDatabase = "DATABASE"
)

// Defaults applied when the corresponding Options field is empty.
const (
	DefaultSecret       = "dev"
	DefaultDatabase     = "default"
	DefaultConfigFile   = "config.yaml"
	DefaultInstancePath = "instance"
)

// Settings maps option names to values.
type Settings map[string]any

// String returns the value stored under key if it is a string.
func (s Settings) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Clone returns a deep copy of s. Nested maps and slices are copied so
// the clone shares no mutable state with s.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

// merge copies the uppercase keys of other into s. Other keys are
// dropped, so helper values in a config file never become settings.
func (s Settings) merge(other Settings) {
	for k, v := range other {
		if !isSettingName(k) {
			continue
		}
		s[k] = cloneValue(v)
	}
}

// isSettingName reports whether k has at least one letter and no
// lowercase letters.
func isSettingName(k string) bool {
	cased := false
	for _, r := range k {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// requireString checks that key holds a string.
func (s Settings) requireString(key string) error {
	if _, ok := s[key].(string); !ok {
		return fmt.Errorf("setting %s must be a string, got %T", key, s[key])
	}
	return nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Settings:
		return t.Clone()
	case map[string]any:
		return map[string]any(Settings(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}

// Source is where an App's supplemental settings come from. It is either
// a FileSource or an OverrideSource; no other implementations exist.
type Source interface {
	apply(s Settings, instancePath string) (loaded bool, err error)
	kind() string
}

// FileSource loads a YAML mapping from a file inside the instance
// directory. A missing file is not an error.
type FileSource struct {
	// Name is the file to read. Relative names are resolved against the
	// instance directory. Empty means DefaultConfigFile.
	Name string
}

// OverrideSource replaces the file source with an in-memory mapping.
// Used by tests; the instance config file is never consulted.
type OverrideSource struct {
	Values Settings
}

// FromFile returns a FileSource for name.
func FromFile(name string) Source { return FileSource{Name: name} }

// FromOverride returns an OverrideSource holding values.
func FromOverride(values Settings) Source { return OverrideSource{Values: values} }

func (f FileSource) kind() string     { return "file" }
func (o OverrideSource) kind() string { return "override" }

func (f FileSource) path(instancePath string) string {
	name := f.Name
	if name == "" {
		name = DefaultConfigFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(instancePath, name)
}

func (f FileSource) apply(s Settings, instancePath string) (bool, error) {
	path := f.path(instancePath)
	data, err := os.ReadFile(path) // #nosec G304 - path is the operator's instance directory
	if err != nil {
		if isAbsent(err) {
			return false, nil
		}
		return false, fmt.Errorf("read instance config %s: %w", path, err)
	}

	var values Settings
	if err := yaml.Unmarshal(data, &values); err != nil {
		return false, fmt.Errorf("parse instance config %s: %w", path, err)
	}
	s.merge(values)
	return true, nil
}

func (o OverrideSource) apply(s Settings, _ string) (bool, error) {
	s.merge(o.Values)
	return true, nil
}

// isAbsent reports whether a read error means "there is no file here".
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.EISDIR)
}
