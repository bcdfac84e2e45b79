// Package settings implements the per-category settings nodes. A settings
// node owns no fixed schema: at schema-query time it synthesizes its input
// sockets by scanning the category's setting folder - an ordered parameter
// list plus an optional config.json per parameter - and at execution time it
// simply packages the resolved values into a tagged record.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	// SettingDirName is the scan root inside a category folder.
	SettingDirName = "setting"

	// OrderFileName lists parameter names, one per line, in UI order.
	OrderFileName = "order_list.txt"

	// ConfigFileName optionally describes one parameter's widget.
	ConfigFileName = "config.json"

	// ErrorOption is the single choice offered for a parameter whose
	// config.json could not be parsed. The schema stays usable; only the
	// broken parameter is degraded.
	ErrorOption = "config_error"
)

// ParamKind classifies how a scanned parameter resolved.
type ParamKind string

const (
	ParamFloat  ParamKind = "float"
	ParamInt    ParamKind = "int"
	ParamString ParamKind = "string"
	ParamCombo  ParamKind = "combo"
	ParamError  ParamKind = "error" // malformed config, degraded to ErrorOption
)

// Param is one entry of a synthesized category schema.
type Param struct {
	Name    string
	Kind    ParamKind
	Default any
	Min     float64
	Max     float64
	Step    float64
	Options []string
}

// paramConfig is the config.json shape for one parameter. The file nests it
// under the parameter's own name: {"<param>": {...}}.
type paramConfig struct {
	Type    string   `json:"type"`
	Value   any      `json:"value"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Scan synthesizes the parameter schema for one category directory. It is a
// pure function of the directory's contents: no side effects beyond the
// read itself. A missing setting folder or order list yields an empty
// schema, and a malformed config.json degrades only that parameter.
func Scan(categoryDir string) ([]Param, error) {
	settingDir := filepath.Join(categoryDir, SettingDirName)

	names, err := readOrderList(filepath.Join(settingDir, OrderFileName))
	if err != nil {
		return nil, err
	}

	params := make([]Param, 0, len(names))
	for _, name := range names {
		params = append(params, resolveParam(settingDir, name))
	}
	return params, nil
}

// readOrderList reads parameter names, one per line, NFC-normalized. A
// missing file is an empty schema, not an error.
func readOrderList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read order list: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		name := norm.NFC.String(strings.TrimSpace(line))
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// resolveParam applies the per-parameter resolution policy: an explicit
// primitive type from config.json wins; otherwise explicit or discovered
// options make a combo; otherwise the parameter falls back to free text.
func resolveParam(settingDir, name string) Param {
	paramDir := filepath.Join(settingDir, name)
	subItems := scanOptions(paramDir)

	configPath := filepath.Join(paramDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		if len(subItems) > 0 {
			return Param{Name: name, Kind: ParamCombo, Options: subItems}
		}
		return Param{Name: name, Kind: ParamString, Default: "none"}
	}
	if err != nil {
		return errorParam(name)
	}

	var wrapper map[string]paramConfig
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return errorParam(name)
	}
	cfg := wrapper[name]

	value := cfg.Value
	if value == nil {
		value = "none"
	}

	switch cfg.Type {
	case "float":
		return Param{
			Name:    name,
			Kind:    ParamFloat,
			Default: value,
			Min:     floatOr(cfg.Min, 0.0),
			Max:     floatOr(cfg.Max, 1.0),
			Step:    floatOr(cfg.Step, 0.01),
		}
	case "int":
		return Param{
			Name:    name,
			Kind:    ParamInt,
			Default: value,
			Min:     floatOr(cfg.Min, 0),
			Max:     floatOr(cfg.Max, 100),
			Step:    floatOr(cfg.Step, 1),
		}
	case "string":
		return Param{Name: name, Kind: ParamString, Default: fmt.Sprintf("%v", value)}
	default:
		// Combo, or unspecified: explicit options win, then whatever the
		// parameter folder physically contains.
		options := cfg.Options
		if len(options) == 0 {
			options = subItems
		}
		if len(options) > 0 {
			return Param{Name: name, Kind: ParamCombo, Default: value, Options: options}
		}
		return Param{Name: name, Kind: ParamString, Default: fmt.Sprintf("%v", value)}
	}
}

// scanOptions lists a parameter folder's entries usable as implicit combo
// choices: everything except the JSON/text plumbing files.
func scanOptions(paramDir string) []string {
	entries, err := os.ReadDir(paramDir)
	if err != nil {
		return nil
	}
	var options []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".txt") {
			continue
		}
		options = append(options, name)
	}
	return options
}

func errorParam(name string) Param {
	return Param{Name: name, Kind: ParamError, Options: []string{ErrorOption}}
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
