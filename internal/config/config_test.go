package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Storage.Key != "editorContent" {
		t.Fatalf("key=%q, want editorContent", cfg.Storage.Key)
	}
	if cfg.Storage.Timeout.Std() != 2*time.Second {
		t.Fatalf("timeout=%v, want 2s", cfg.Storage.Timeout)
	}
	if !cfg.Editor.Debug {
		t.Fatalf("debug readout must be on by default")
	}
}

func TestMerge_TOML(t *testing.T) {
	path := writeFile(t, "draftmark.toml", `
[storage]
backend = "redis"
timeout = "750ms"
strict = true

[storage.redis]
addr = "cache:6380"
db = 2

[editor]
history_limit = 50
pretty_debug = true
`)
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		t.Fatalf("mergeFile: %v", err)
	}
	if cfg.Storage.Backend != BackendRedis || !cfg.Storage.Strict {
		t.Fatalf("storage=%+v", cfg.Storage)
	}
	if cfg.Storage.Timeout.Std() != 750*time.Millisecond {
		t.Fatalf("timeout=%v, want 750ms", cfg.Storage.Timeout)
	}
	if cfg.Storage.Redis.Addr != "cache:6380" || cfg.Storage.Redis.DB != 2 {
		t.Fatalf("redis=%+v", cfg.Storage.Redis)
	}
	if cfg.Storage.Redis.Prefix != "draftmark:" {
		t.Fatalf("prefix=%q, want default kept", cfg.Storage.Redis.Prefix)
	}
	if cfg.Editor.HistoryLimit != 50 || !cfg.Editor.PrettyDebug {
		t.Fatalf("editor=%+v", cfg.Editor)
	}
	if cfg.Storage.Key != "editorContent" {
		t.Fatalf("key=%q, want default kept", cfg.Storage.Key)
	}
}

func TestMerge_YAML(t *testing.T) {
	path := writeFile(t, "draftmark.yaml", `
storage:
  backend: memory
  key: notes
  timeout: 5s
log:
  file: /tmp/draftmark.log
`)
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		t.Fatalf("mergeFile: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory || cfg.Storage.Key != "notes" {
		t.Fatalf("storage=%+v", cfg.Storage)
	}
	if cfg.Storage.Timeout.Std() != 5*time.Second {
		t.Fatalf("timeout=%v, want 5s", cfg.Storage.Timeout)
	}
	if cfg.Log.File != "/tmp/draftmark.log" {
		t.Fatalf("log file=%q", cfg.Log.File)
	}
}

func TestMerge_Errors(t *testing.T) {
	cfg := Default()

	err := cfg.merge("bad.toml", []byte("[storage\nbackend = 1"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err=%v, want *ParseError", err)
	}
	if pe.Path != "bad.toml" {
		t.Fatalf("path=%q, want bad.toml", pe.Path)
	}

	if err := cfg.merge("bad.yaml", []byte("storage: [1, 2")); !errors.As(err, &pe) {
		t.Fatalf("yaml err=%v, want *ParseError", err)
	}

	if err := cfg.merge("conf.json", []byte("{}")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err=%v, want ErrUnsupportedFormat", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"DRAFTMARK_STORE":         "redis",
		"DRAFTMARK_REDIS_ADDR":    "r:1",
		"DRAFTMARK_REDIS_DB":      "3",
		"DRAFTMARK_HISTORY_LIMIT": "-1",
		"DRAFTMARK_STRICT":        "true",
		"DRAFTMARK_KEY":           "",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Storage.Backend != BackendRedis || cfg.Storage.Redis.Addr != "r:1" || cfg.Storage.Redis.DB != 3 {
		t.Fatalf("storage=%+v", cfg.Storage)
	}
	if cfg.Editor.HistoryLimit != -1 || !cfg.Storage.Strict {
		t.Fatalf("editor=%+v strict=%v", cfg.Editor, cfg.Storage.Strict)
	}
	if cfg.Storage.Key != "" {
		t.Fatalf("empty env value must count as set, key=%q", cfg.Storage.Key)
	}

	bad := Default()
	if err := bad.ApplyEnv(envMap(map[string]string{"DRAFTMARK_REDIS_DB": "x"})); err == nil {
		t.Fatalf("expected an error for a non-numeric db")
	}
}

func TestLayering(t *testing.T) {
	path := writeFile(t, "draftmark.toml", `
[storage]
backend = "memory"
key = "from-file"
path = "/from/file.json"
`)
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		t.Fatalf("mergeFile: %v", err)
	}
	if err := cfg.ApplyEnv(envMap(map[string]string{"DRAFTMARK_KEY": "from-env"})); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	cfg = cfg.WithFlags(Flags{Store: "file"})

	if cfg.Storage.Backend != BackendFile {
		t.Fatalf("backend=%q, want flag value", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "from-env" {
		t.Fatalf("key=%q, want env value", cfg.Storage.Key)
	}
	if cfg.Storage.Path != "/from/file.json" {
		t.Fatalf("path=%q, want file value", cfg.Storage.Path)
	}
}

func TestLoad_FlagsOverrideInvalidEnv(t *testing.T) {
	t.Setenv("DRAFTMARK_STORE", "sqlite")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err=%v, want ErrUnknownBackend before flags", err)
	}

	cfg = cfg.WithFlags(Flags{Store: BackendMemory})
	if err := cfg.Validate(); err != nil {
		t.Fatalf("flag must override the env backend: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Fatalf("backend=%q, want %q", cfg.Storage.Backend, BackendMemory)
	}
}

func TestWithFlags_Debug(t *testing.T) {
	off, on := false, true
	cfg := Default().WithFlags(Flags{Debug: &off})
	if cfg.Editor.Debug {
		t.Fatalf("-debug=false must switch the readout off")
	}
	if cfg = cfg.WithFlags(Flags{}); cfg.Editor.Debug {
		t.Fatalf("unset flag must leave debug alone")
	}
	if cfg = cfg.WithFlags(Flags{Debug: &on}); !cfg.Editor.Debug {
		t.Fatalf("-debug must switch the readout on")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("err=%v, want ErrUnknownBackend", err)
	}

	cfg = Default()
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("file backend without path must fail")
	}
	cfg.Storage.Backend = BackendMemory
	if err := cfg.Validate(); err != nil {
		t.Fatalf("memory backend needs no path: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("expected an error for an explicit missing file")
	}
}
