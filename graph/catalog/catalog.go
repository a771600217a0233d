// Package catalog loads the static course list of a curriculum from JSON,
// YAML or HCL files.
//
// All three formats describe the same thing: an ordered list of courses,
// each with an id and the ids of its direct prerequisites. Prerequisites may
// be written as a list or as a single comma-separated string.
//
// JSON:
//
//	[{"id": "PSI101"}, {"id": "PSI201", "prerequisites": ["PSI101"]}]
//
// YAML:
//
//	courses:
//	  - id: PSI101
//	  - id: PSI201
//	    prerequisites: PSI101, PSI102
//
// HCL:
//
//	course "PSI101" {}
//	course "PSI201" {
//	  prerequisites = ["PSI101"]
//	}
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v2"

	"github.com/dshills/curriculum-go/graph"
)

// Format identifies a catalog encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// ErrUnsupportedFormat is returned for file extensions with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the catalog at path.
func Load(path string) ([]graph.CourseSpec, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	specs, err := Parse(data, filepath.Base(path), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return specs, nil
}

// Parse decodes catalog data. filename is used only in HCL diagnostics.
func Parse(data []byte, filename string, format Format) ([]graph.CourseSpec, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatHCL:
		return parseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ParsePrerequisites splits a comma-separated prerequisite list. Blanks
// around ids are trimmed and empty entries dropped, so "" and " , " both
// yield no prerequisites.
func ParsePrerequisites(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// prerequisites decodes either a list of ids or a comma-separated string.
type prerequisites []string

func (p *prerequisites) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = normalize(list)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("prerequisites must be a list or a comma-separated string")
	}
	*p = ParsePrerequisites(s)
	return nil
}

func (p *prerequisites) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*p = normalize(list)
		return nil
	}

	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("prerequisites must be a list or a comma-separated string")
	}
	*p = ParsePrerequisites(s)
	return nil
}

// normalize trims list entries and drops empty ones.
func normalize(list []string) []string {
	var out []string
	for _, id := range list {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

type courseEntry struct {
	ID            string        `json:"id" yaml:"id"`
	Prerequisites prerequisites `json:"prerequisites" yaml:"prerequisites"`
}

func toSpecs(entries []courseEntry) []graph.CourseSpec {
	specs := make([]graph.CourseSpec, 0, len(entries))
	for _, e := range entries {
		specs = append(specs, graph.CourseSpec{
			ID:            strings.TrimSpace(e.ID),
			Prerequisites: []string(e.Prerequisites),
		})
	}
	return specs
}

func parseJSON(data []byte) ([]graph.CourseSpec, error) {
	var entries []courseEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid JSON catalog: %w", err)
	}
	return toSpecs(entries), nil
}

type yamlCatalog struct {
	Courses []courseEntry `yaml:"courses"`
}

func parseYAML(data []byte) ([]graph.CourseSpec, error) {
	var doc yamlCatalog
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML catalog: %w", err)
	}
	return toSpecs(doc.Courses), nil
}
