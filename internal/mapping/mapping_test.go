package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if s.CategoryColumn != "Weather Type" {
		t.Errorf("CategoryColumn = %q, want %q", s.CategoryColumn, "Weather Type")
	}
	if s.Headings["W"] != s.CategoryColumn {
		t.Errorf("Headings[W] = %q, want it to match CategoryColumn %q", s.Headings["W"], s.CategoryColumn)
	}
	if len(s.DropColumns) != 1 || s.DropColumns[0] != "$" {
		t.Errorf("DropColumns = %v, want [$]", s.DropColumns)
	}

	for _, name := range []string{Grouped, Detailed} {
		categories, err := s.CategoryMap(name)
		if err != nil {
			t.Fatalf("CategoryMap(%q) error = %v", name, err)
		}
		if len(categories) != 32 {
			t.Errorf("CategoryMap(%q) has %d codes, want 32", name, len(categories))
		}
	}
}

func TestDefault_Labels(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		set  string
		code string
		want string
	}{
		{set: Grouped, code: "0", want: "Clear"},
		{set: Grouped, code: "1", want: "Clear"},
		{set: Grouped, code: "6", want: "Low visibility"},
		{set: Grouped, code: "12", want: "Light rain"},
		{set: Grouped, code: "NA", want: "Not available"},
		{set: Detailed, code: "0", want: "Clear night"},
		{set: Detailed, code: "-1", want: "Trace rain"},
		{set: Detailed, code: "30", want: "Thunder"},
	}

	for _, tt := range tests {
		t.Run(tt.set+"/"+tt.code, func(t *testing.T) {
			categories, err := s.CategoryMap(tt.set)
			if err != nil {
				t.Fatalf("CategoryMap(%q) error = %v", tt.set, err)
			}
			if got := categories[tt.code]; got != tt.want {
				t.Errorf("CategoryMap(%q)[%q] = %q, want %q", tt.set, tt.code, got, tt.want)
			}
		})
	}
}

func TestSet_CategoryMap_Unknown(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	_, err = s.CategoryMap("coarse")
	if !errors.Is(err, ErrUnknownCategorySet) {
		t.Errorf("CategoryMap(coarse) error = %v, want ErrUnknownCategorySet", err)
	}
}

func TestSet_Codes(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	codes := s.Codes()
	if len(codes) != 32 {
		t.Fatalf("Codes() returned %d entries, want 32", len(codes))
	}
	if codes[0].Code != "NA" || codes[1].Code != "-1" || codes[31].Code != "30" {
		t.Errorf("Codes() order = %s,%s..%s, want NA,-1..30", codes[0].Code, codes[1].Code, codes[31].Code)
	}
	if got := s.Describe("99"); got != "Unknown (99)" {
		t.Errorf("Describe(99) = %q, want %q", got, "Unknown (99)")
	}
}

func TestLoad(t *testing.T) {
	var full strings.Builder
	full.WriteString("version = \"test\"\ncategory_column = \"Weather Type\"\n")
	full.WriteString("[headings]\nW = \"Weather Type\"\n[categories.grouped]\n")
	for _, code := range KnownCodes() {
		full.WriteString("\"" + code + "\" = \"Any\"\n")
	}

	tests := []struct {
		name        string
		content     string
		wantErr     bool
		errContains string
	}{
		{
			name:    "valid override",
			content: full.String(),
		},
		{
			name:        "missing code",
			content:     strings.Replace(full.String(), "\"30\" = \"Any\"\n", "", 1),
			wantErr:     true,
			errContains: `missing code "30"`,
		},
		{
			name:        "extra code",
			content:     full.String() + "\"31\" = \"Any\"\n",
			wantErr:     true,
			errContains: `unknown code "31"`,
		},
		{
			name:        "unknown key",
			content:     "colour = \"red\"\n" + full.String(),
			wantErr:     true,
			errContains: "unknown keys",
		},
		{
			name:        "malformed toml",
			content:     "version = ",
			wantErr:     true,
			errContains: "failed to decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mappings.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write mappings file: %v", err)
			}

			s, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Load() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if s.Version != "test" {
				t.Errorf("Version = %q, want %q", s.Version, "test")
			}
		})
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if s.Version == "" {
		t.Error("Load(\"\") returned a set without a version")
	}
}
