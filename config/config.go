// Package config loads loop settings from a small TOML subset:
// key = value pairs of numbers, booleans, and quoted strings, with
// # comments. Enough for a settings file without an external dependency
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/marquee/core"
)

// File is the parsed settings file
type File struct {
	Settings core.Settings
	Rows     int
	Sound    bool
}

// Load reads and parses path into normalized settings
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}
	return Parse(string(data))
}

// Parse decodes the TOML subset from data
// Unknown keys are rejected so typos surface immediately
func Parse(data string) (File, error) {
	f := File{Rows: 2}

	for lineNo, raw := range strings.Split(data, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "#"); i >= 0 && !strings.Contains(line[:i], "\"") {
			line = strings.TrimSpace(line[:i])
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return File{}, fmt.Errorf("config: line %d: expected key = value", lineNo+1)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if err := f.assign(key, value); err != nil {
			return File{}, fmt.Errorf("config: line %d: %w", lineNo+1, err)
		}
	}

	f.Settings = f.Settings.Normalize()
	return f, nil
}

func (f *File) assign(key, value string) error {
	switch key {
	case "speed_mobile":
		return parseFloat(value, &f.Settings.SpeedMobile)
	case "speed_desktop":
		return parseFloat(value, &f.Settings.SpeedDesktop)
	case "reverse":
		return parseBool(value, &f.Settings.Reverse)
	case "stop_on_hover":
		return parseBool(value, &f.Settings.StopOnHover)
	case "clickthrough":
		return parseBool(value, &f.Settings.AllowClickthrough)
	case "new_window":
		return parseBool(value, &f.Settings.NewWindowDefault)
	case "rows":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("rows: invalid count %q", value)
		}
		f.Rows = n
		return nil
	case "sound":
		return parseBool(value, &f.Sound)
	}
	return fmt.Errorf("unknown key %q", key)
}

func parseFloat(value string, dst *float64) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", value)
	}
	*dst = v
	return nil
}

func parseBool(value string, dst *bool) error {
	switch value {
	case "true":
		*dst = true
	case "false":
		*dst = false
	default:
		return fmt.Errorf("invalid boolean %q", value)
	}
	return nil
}
