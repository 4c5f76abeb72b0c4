package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromArgs(t *testing.T) {
	var c Config
	if err := c.FromArgs([]string{"format.csv", "sub.csv"}); err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if c.FormatPath != "format.csv" || c.SubmissionPath != "sub.csv" || c.OptionsPath != "" {
		t.Errorf("unexpected config: %+v", c)
	}

	if err := c.FromArgs([]string{"format.csv", "sub.csv", "opts.json"}); err != nil {
		t.Fatalf("FromArgs: %v", err)
	}
	if c.OptionsPath != "opts.json" {
		t.Errorf("OptionsPath = %q, want opts.json", c.OptionsPath)
	}

	for _, args := range [][]string{nil, {"one"}, {"a", "b", "c", "d"}} {
		if err := (&Config{}).FromArgs(args); err == nil {
			t.Errorf("FromArgs(%v): expected error", args)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := Config{FormatPath: "f.csv", SubmissionPath: "s.csv", LogFormat: "json"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := []Config{
		{SubmissionPath: "s.csv"},
		{FormatPath: "f.csv"},
		{FormatPath: "f.csv", SubmissionPath: "s.csv", LogFormat: "xml"},
		{FormatPath: "pg:format", SubmissionPath: "s.csv"},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%+v): expected error", c)
		}
	}

	withDSN := Config{FormatPath: "pg:format", SubmissionPath: "s.csv", DSN: "postgres://localhost/x"}
	if err := withDSN.Validate(); err != nil {
		t.Errorf("Validate with DSN: %v", err)
	}
}

func TestLoadOptionsFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.json")
	os.WriteFile(path, []byte(`{"index_col": "row_id", "skipinitialspace": true, "na_values": ["-"]}`), 0644)

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile: %v", err)
	}
	if !opts.IndexCol.ByName() || opts.IndexCol.Name != "row_id" {
		t.Errorf("index_col = %v, want row_id", opts.IndexCol)
	}
	if !opts.SkipInitialSpace || len(opts.NAValues) != 1 {
		t.Errorf("unexpected options: %+v", opts)
	}
}

func TestLoadOptionsFile_EmptyDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.json")
	os.WriteFile(path, []byte("{}\n"), 0644)

	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile: %v", err)
	}
	if !opts.IndexCol.IsSet() || opts.IndexCol.Position != 0 || !opts.SkipInitialSpace {
		t.Errorf("expected default options, got %+v", opts)
	}
}

func TestLoadOptionsFile_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	os.WriteFile(path, []byte("index_col: 0\nbogus: 1\n"), 0644)

	if _, err := LoadOptionsFile(path); err == nil {
		t.Fatal("expected error for unknown option")
	}
}

func TestLoadOptionsFile_MissingFile(t *testing.T) {
	if _, err := LoadOptionsFile("/nonexistent/opts.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOptions_NoFileMeansDefaults(t *testing.T) {
	c := Config{FormatPath: "f.csv", SubmissionPath: "s.csv"}
	opts, err := c.LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts != nil {
		t.Errorf("opts = %+v, want nil", opts)
	}
}
