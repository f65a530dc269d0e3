// Package mapping loads the versioned heading and weather type tables applied
// to forecast data.
package mapping

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"datapoint-forecast/internal/table"

	"github.com/BurntSushi/toml"
)

//go:embed mappings.toml
var defaultMappings string

// Category set names
const (
	Grouped  = "grouped"
	Detailed = "detailed"
)

var ErrUnknownCategorySet = errors.New("unknown category set")

// Set is one version of the heading and category tables
type Set struct {
	Version        string                       `toml:"version"`
	CategoryColumn string                       `toml:"category_column"`
	DropColumns    []string                     `toml:"drop_columns"`
	Headings       table.HeadingMap             `toml:"headings"`
	Categories     map[string]table.CategoryMap `toml:"categories"`
}

// CodeInfo describes a single DataPoint weather type code
type CodeInfo struct {
	Code        string `json:"code" example:"7"`
	Description string `json:"description" example:"Cloudy"`
	Group       string `json:"group" example:"Cloudy"`
}

// KnownCodes returns every weather type code DataPoint can report, in order
func KnownCodes() []string {
	codes := []string{"NA"}
	for i := -1; i <= 30; i++ {
		codes = append(codes, strconv.Itoa(i))
	}
	return codes
}

// Default returns the embedded mapping set
func Default() (*Set, error) {
	var s Set
	if _, err := toml.Decode(defaultMappings, &s); err != nil {
		return nil, fmt.Errorf("failed to decode embedded mappings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("embedded mappings: %w", err)
	}
	return &s, nil
}

// Load returns the mapping set at path, or the embedded set when path is empty
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}

	var s Set
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mappings file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("mappings file %s has unknown keys: %v", path, undecoded)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("mappings file %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks that every category map covers exactly the known codes
func (s *Set) Validate() error {
	if s.Version == "" {
		return errors.New("version is required")
	}
	if s.CategoryColumn == "" {
		return errors.New("category_column is required")
	}
	if len(s.Headings) == 0 {
		return errors.New("headings must not be empty")
	}
	if len(s.Categories) == 0 {
		return errors.New("at least one category set is required")
	}

	known := KnownCodes()
	for name, categories := range s.Categories {
		for _, code := range known {
			if _, ok := categories[code]; !ok {
				return fmt.Errorf("category set %q is missing code %q", name, code)
			}
		}
		for code := range categories {
			if !slices.Contains(known, code) {
				return fmt.Errorf("category set %q has unknown code %q", name, code)
			}
		}
	}
	return nil
}

// CategoryMap returns the named category set
func (s *Set) CategoryMap(name string) (table.CategoryMap, error) {
	categories, ok := s.Categories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategorySet, name)
	}
	return categories, nil
}

// Describe returns the detailed description of a weather type code
func (s *Set) Describe(code string) string {
	if desc, ok := s.Categories[Detailed][code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown (%s)", code)
}

// Codes lists every known code with its description and group
func (s *Set) Codes() []CodeInfo {
	known := KnownCodes()
	infos := make([]CodeInfo, 0, len(known))
	for _, code := range known {
		infos = append(infos, CodeInfo{
			Code:        code,
			Description: s.Describe(code),
			Group:       s.Categories[Grouped][code],
		})
	}
	return infos
}
