// Package config resolves Chadsembly's three-tier configuration: a TOML
// defaults file on disk, `KEY=VALUE` command-line arguments, and `!KEY=VALUE`
// directives embedded in the source file itself. Each tier feeds the same
// configuration mapping, later tiers overriding earlier ones.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Keys accepted in the configuration mapping.
const (
	Memory    = "MEMORY"
	Registers = "REGISTERS"
	Clock     = "CLOCK"
)

// Minimums gives the lowest accepted value for each configuration key.
var Minimums = map[string]int{
	Memory:    100,
	Registers: 3,
	Clock:     0,
}

// orderedKeys fixes an iteration order so generated messages and dumps are
// deterministic.
var orderedKeys = []string{Memory, Registers, Clock}

// Table is the configuration mapping threaded through every phase: memory
// size, register count, and clock period, keyed by name so directive and
// argument parsing can address them uniformly.
type Table map[string]int

// DefaultTable returns a table seeded with the built-in minimums.
func DefaultTable() Table {
	t := make(Table, len(orderedKeys))
	for _, k := range orderedKeys {
		t[k] = Minimums[k]
	}
	return t
}

// FileDefaults is the optional on-disk TOML layer. It supplies starting
// values that CLI arguments and in-source directives may still override; it
// never lowers a value below a key's minimum.
type FileDefaults struct {
	Memory    int `toml:"memory"`
	Registers int `toml:"registers"`
	Clock     int `toml:"clock"`
}

// ApplyTo merges the file defaults into t, clamping each value to its
// minimum.
func (f FileDefaults) ApplyTo(t Table) {
	if f.Memory > Minimums[Memory] {
		t[Memory] = f.Memory
	}
	if f.Registers > Minimums[Registers] {
		t[Registers] = f.Registers
	}
	if f.Clock > Minimums[Clock] {
		t[Clock] = f.Clock
	}
}

// ConfigPath returns the platform-specific path of the defaults file.
func ConfigPath() string {
	var dir string

	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "chadsembler")

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "chadsembler.toml"
		}
		dir = filepath.Join(home, ".config", "chadsembler")
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "chadsembler.toml"
	}

	return filepath.Join(dir, "config.toml")
}

// LoadFileDefaults reads the TOML defaults file at path. A missing file is
// not an error: it simply yields the zero value, which ApplyTo leaves
// untouched since it never beats a key's minimum.
func LoadFileDefaults(path string) (FileDefaults, error) {
	var fd FileDefaults

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fd, nil
	}

	if _, err := toml.DecodeFile(path, &fd); err != nil {
		return fd, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return fd, nil
}
