package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Debug {
		t.Error("debug should default to off")
	}
	if cfg.ResultTag != "noreply" {
		t.Errorf("result tag = %q, want noreply", cfg.ResultTag)
	}
	if cfg.AliasMinUses != 2 {
		t.Errorf("alias min uses = %d, want 2", cfg.AliasMinUses)
	}
	if got := cfg.PreferredNames["ok"]; got != "result" {
		t.Errorf("preferred name for ok = %q, want result", got)
	}
	if got := cfg.PreferredNames["error"]; got != "reason" {
		t.Errorf("preferred name for error = %q, want reason", got)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exform.yaml")
	src := `
debug: true
result_tag: reply
alias_min_uses: 3
disabled_passes:
  - bin-fold
preferred_names:
  ok: value
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug not picked up")
	}
	if cfg.ResultTag != "reply" {
		t.Errorf("result tag = %q, want reply", cfg.ResultTag)
	}
	if cfg.AliasMinUses != 3 {
		t.Errorf("alias min uses = %d, want 3", cfg.AliasMinUses)
	}
	if !cfg.PassDisabled("bin-fold") {
		t.Error("bin-fold should be disabled")
	}
	if cfg.PassDisabled("underscore") {
		t.Error("underscore should not be disabled")
	}
	if got := cfg.PreferredNames["ok"]; got != "value" {
		t.Errorf("preferred name for ok = %q, want value", got)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ResultTag != "noreply" {
		t.Errorf("result tag = %q, want the default", cfg.ResultTag)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("result_tag: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty result tag", `result_tag: ""`, "result_tag"},
		{"zero alias uses", "alias_min_uses: 0", "alias_min_uses"},
		{"negative alias uses", "alias_min_uses: -1", "alias_min_uses"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "exform.yaml")
			if err := os.WriteFile(path, []byte(tt.src), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %s", err, tt.want)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EXFORM_DEBUG", "1")
	t.Setenv("EXFORM_RESULT_TAG", "reply")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("EXFORM_DEBUG not applied")
	}
	if cfg.ResultTag != "reply" {
		t.Errorf("result tag = %q, want reply from EXFORM_RESULT_TAG", cfg.ResultTag)
	}
}
