package scenario

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// ErrUnknown is returned for a built-in scenario name that does not exist.
var ErrUnknown = errors.New("unknown scenario")

// Parse decodes and validates a scenario document. Unknown fields are
// rejected.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("decode scenario: empty document")
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scenario file.
func Load(file string) (*Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = file
			return nil, verr
		}
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return s, nil
}

// Builtins returns the names of the embedded scenarios, sorted.
func Builtins() []string {
	entries, err := fs.ReadDir(defaults, "defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// BuiltinSource returns the YAML of an embedded scenario.
func BuiltinSource(name string) ([]byte, error) {
	data, err := defaults.ReadFile(path.Join("defaults", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknown, name, strings.Join(Builtins(), ", "))
	}
	return data, nil
}

// Builtin parses an embedded scenario.
func Builtin(name string) (*Scenario, error) {
	data, err := BuiltinSource(name)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	return s, nil
}

// Resolve loads ref as a file when it names an existing path or ends in
// .yaml/.yml, and as a built-in scenario otherwise.
func Resolve(ref string) (*Scenario, error) {
	if strings.HasSuffix(ref, ".yaml") || strings.HasSuffix(ref, ".yml") {
		return Load(ref)
	}
	if _, err := os.Stat(ref); err == nil {
		return Load(ref)
	}
	return Builtin(ref)
}
