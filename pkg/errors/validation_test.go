package errors

import (
	"strings"
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "serde", false},
		{"valid with dash", "serde-json", false},
		{"valid with underscore", "serde_json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"path traversal", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) code = %q, want %q", tt.input, GetCode(err), ErrCodeInvalidPackage)
			}
		})
	}
}

func TestValidateCratesPackageName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"tokio", false},
		{"serde_json", false},
		{"wasm-bindgen", false},
		{"Inflector", false},
		{"1password", true},
		{"-leading", true},
		{"has space", true},
		{"dot.name", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateCratesPackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCratesPackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLevels(t *testing.T) {
	if err := ValidateLevels(0); err != nil {
		t.Errorf("ValidateLevels(0) = %v", err)
	}
	if err := ValidateLevels(3); err != nil {
		t.Errorf("ValidateLevels(3) = %v", err)
	}
	err := ValidateLevels(-1)
	if !Is(err, ErrCodeInvalidInput) {
		t.Errorf("ValidateLevels(-1) = %v, want %s", err, ErrCodeInvalidInput)
	}
}
