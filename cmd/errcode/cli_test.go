package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"errcode/internal/errcode"
	"errcode/internal/project"
)

const (
	testCommit = "0000000000"
	boomSrc    = "throw new Error(\"boom\");\n"
	boomCode   = "E000000000045c46d49f4b579e6"
	boomHash   = "45c46d49f4b579e6"
)

// execute runs a fresh command tree in dir.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(dir)
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--ui=off", "--color=off"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := project.WriteDefault(dir, false); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestGenerateCheckLookup(t *testing.T) {
	t.Setenv(commitEnv, "")
	dir := newProject(t, map[string]string{"src/a.js": boomSrc})

	// check до generate падает с подсказкой
	_, _, err := execute(t, dir, "check", "--commit", testCommit)
	if !errors.Is(err, errcode.ErrRegistryMissing) {
		t.Fatalf("check before generate: %v", err)
	}
	if !strings.Contains(err.Error(), "Run 'errcode generate'") {
		t.Fatalf("message = %q", err.Error())
	}

	out, _, err := execute(t, dir, "generate", "--commit", testCommit, "--write")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "generate: 1 codes in 1 units (1 changed, 0 cached)") {
		t.Fatalf("generate output = %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "src", "a.js"))
	if err != nil || !strings.Contains(string(data), boomCode) {
		t.Fatalf("rewritten source = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "error_codes", boomHash+".json")); err != nil {
		t.Fatal(err)
	}

	t.Setenv(commitEnv, testCommit)
	if _, _, err := execute(t, dir, "check"); err != nil {
		t.Fatalf("check after generate: %v", err)
	}

	out, _, err = execute(t, dir, "lookup", "--format", "json", "digest123;"+boomCode)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	var entries []entryJSON
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("lookup json %q: %v", out, err)
	}
	if len(entries) != 1 || entries[0].ErrorMessage != "boom" || entries[0].FilePath != "src/a.js" {
		t.Fatalf("entries = %+v", entries)
	}

	out, _, err = execute(t, dir, "list")
	if err != nil || !strings.Contains(out, boomHash+"  src/a.js #1  \"boom\"") {
		t.Fatalf("list = %q, %v", out, err)
	}
	if _, _, err := execute(t, dir, "list", "--verify"); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestLookupWithoutCommit(t *testing.T) {
	t.Setenv(commitEnv, "")
	dir := newProject(t, map[string]string{"src/a.js": boomSrc})
	if _, _, err := execute(t, dir, "generate", "--commit", testCommit); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, dir, "lookup", boomCode)
	if err != nil || !strings.HasPrefix(out, boomCode+"  src/a.js #1") {
		t.Fatalf("lookup = %q, %v", out, err)
	}
	_, stderr, err := execute(t, dir, "lookup", "E0000000000deadbeef")
	if err == nil || !strings.Contains(stderr, "no registry entry") {
		t.Fatalf("unknown code: %q, %v", stderr, err)
	}
}

func TestLookupCodesFromEarlierCommit(t *testing.T) {
	t.Setenv(commitEnv, "")
	dir := newProject(t, map[string]string{"src/a.js": boomSrc})
	if _, _, err := execute(t, dir, "generate", "--commit", testCommit); err != nil {
		t.Fatal(err)
	}
	// текущий коммит из окружения не мешает найти старый код
	t.Setenv(commitEnv, "1111111111")
	out, _, err := execute(t, dir, "lookup", boomCode)
	if err != nil || !strings.HasPrefix(out, boomCode+"  src/a.js #1") {
		t.Fatalf("lookup with env commit = %q, %v", out, err)
	}
	// явный --commit другого коммита: код всё равно находится по хешу
	out, _, err = execute(t, dir, "lookup", "--commit", "1111111111", boomCode)
	if err != nil || !strings.HasPrefix(out, boomCode+"  src/a.js #1") {
		t.Fatalf("lookup with other --commit = %q, %v", out, err)
	}
	out, _, err = execute(t, dir, "lookup", "--commit", testCommit, boomCode)
	if err != nil || !strings.HasPrefix(out, boomCode+"  src/a.js #1") {
		t.Fatalf("lookup with matching --commit = %q, %v", out, err)
	}
}

func TestGenerateRequiresCommit(t *testing.T) {
	t.Setenv(commitEnv, "")
	dir := newProject(t, map[string]string{"src/a.js": boomSrc})
	_, _, err := execute(t, dir, "generate")
	if !errors.Is(err, errcode.ErrConfiguration) {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateSyntaxError(t *testing.T) {
	dir := newProject(t, map[string]string{"src/bad.js": "throw new Error(\"x\";\n"})
	_, stderr, err := execute(t, dir, "generate", "--commit", testCommit)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if !strings.Contains(stderr, "src/bad.js:1:") {
		t.Fatalf("diagnostics = %q", stderr)
	}
}

const fetchSrc = "async function load(userId) {\n" +
	"  const response = await fetch(userId);\n" +
	"  if (!response.ok) {\n" +
	"    throw new Error(`Failed to fetch user ${userId}: ${response.statusText}`);\n" +
	"  }\n" +
	"  throw new Error(`Request failed: ${response.status}`);\n" +
	"}\n"

func TestTransform(t *testing.T) {
	t.Setenv(commitEnv, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "file.js"), []byte(fetchSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	registryDir := filepath.Join(dir, "codes")
	cfg := filepath.Join(dir, "config.json")
	// лишние ключи хоста игнорируются
	body := `{"commitHash":"` + testCommit + `","filePath":"/test/file.js","mode":"generate","extra":true}`
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, dir, "transform", "--config", cfg, "--registry", registryDir, "file.js")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	for _, want := range []string{
		`__NEXT_ERROR_CODE: "E000000000026c63d53d605f848"`,
		`__NEXT_ERROR_CODE: "E0000000000a5151f4ce82c5c79"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %s:\n%s", want, out)
		}
	}
	for _, hash := range []string{"26c63d53d605f848", "a5151f4ce82c5c79"} {
		data, err := os.ReadFile(filepath.Join(registryDir, hash+".json"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `"file_path":"/test/file.js"`) {
			t.Fatalf("entry %s = %s", hash, data)
		}
	}

	// флаг перекрывает файл: check по тому же реестру проходит
	if _, _, err := execute(t, dir, "transform", "--config", cfg, "--registry", registryDir, "--mode", "check", "file.js"); err != nil {
		t.Fatalf("check transform: %v", err)
	}
	// другой filePath даёт другие коды, которых в реестре нет
	_, _, err = execute(t, dir, "transform", "--config", cfg, "--registry", registryDir, "--mode", "check", "--file-path", "/test/other.js", "file.js")
	if !errors.Is(err, errcode.ErrRegistryMissing) {
		t.Fatalf("check with other file path: %v", err)
	}
}

func TestTransformRegistryDefaults(t *testing.T) {
	t.Setenv(commitEnv, "")
	// без манифеста: ./error_codes
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte(boomSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, dir, "transform", "--commit", testCommit, "--mode", "generate", "--file-path", "src/a.js", "a.js"); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, project.DefaultRegistryDir, boomHash+".json")); err != nil {
		t.Fatal(err)
	}

	// с манифестом: [registry].dir
	proj := t.TempDir()
	if err := os.WriteFile(filepath.Join(proj, project.ManifestName), []byte("[registry]\ndir = \"codes\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(proj, "a.js"), []byte(boomSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, proj, "transform", "--commit", testCommit, "--mode", "generate", "--file-path", "src/a.js", "a.js"); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if _, err := os.Stat(filepath.Join(proj, "codes", boomHash+".json")); err != nil {
		t.Fatal(err)
	}
}

func TestTransformConfigErrors(t *testing.T) {
	t.Setenv(commitEnv, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte(boomSrc), 0o644); err != nil {
		t.Fatal(err)
	}
	noPath := filepath.Join(dir, "nopath.json")
	if err := os.WriteFile(noPath, []byte(`{"commitHash":"abc","mode":"generate"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no commit", []string{"--mode", "generate"}, `"commitHash"`},
		{"no file path in config", []string{"--config", noPath}, `"filePath"`},
		{"no mode", []string{"--commit", "abc"}, `"mode"`},
		{"bad mode", []string{"--commit", "abc", "--mode", "fix"}, "got 'fix'"},
		{"dry run without commit", []string{"--dry-run"}, `"commitHash"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, dir, append(append([]string{"transform", "--registry", "codes"}, tt.args...), "a.js")...)
			if !errors.Is(err, errcode.ErrConfiguration) || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %s", err, tt.want)
			}
		})
	}

	out, _, err := execute(t, dir, "transform", "--dry-run", "--commit", testCommit, "--file-path", "src/a.js", "a.js")
	if err != nil || !strings.Contains(out, boomCode) {
		t.Fatalf("dry run = %q, %v", out, err)
	}
	for _, name := range []string{"codes", project.DefaultRegistryDir} {
		if _, err := os.Stat(filepath.Join(dir, name)); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("dry run touched %s", name)
		}
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := execute(t, dir, "init"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, dir, "init"); err == nil {
		t.Fatal("second init must fail")
	}
	if _, _, err := execute(t, dir, "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.js"), []byte("throw new Error(`x ${y}`);\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, dir, "--quiet", "parse", "a.js")
	if err != nil || out != "1:7  \"x %s\"\n" {
		t.Fatalf("parse = %q, %v", out, err)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil || !strings.Contains(err.Error(), `"maybe"`) {
		t.Errorf("readUIMode(maybe) = %v", err)
	}
}

func TestUseProgressUI(t *testing.T) {
	tests := []struct {
		args  []string
		units int
		want  bool
	}{
		{[]string{"--ui=on"}, 1, true},
		{[]string{"--ui=on", "--quiet"}, 5, false},
		{[]string{"--ui=off"}, 5, false},
		// в тестах stdout не терминал
		{[]string{"--ui=auto"}, 5, false},
	}
	for _, tt := range tests {
		root := newRootCmd()
		if err := root.PersistentFlags().Parse(tt.args); err != nil {
			t.Fatal(err)
		}
		got, err := useProgressUI(root, tt.units)
		if err != nil || got != tt.want {
			t.Errorf("useProgressUI(%v, %d) = %v, %v; want %v", tt.args, tt.units, got, err, tt.want)
		}
	}
	root := newRootCmd()
	if err := root.PersistentFlags().Parse([]string{"--ui=maybe"}); err != nil {
		t.Fatal(err)
	}
	if _, err := useProgressUI(root, 2); err == nil {
		t.Error("expected an error for --ui=maybe")
	}
}

func TestResolveCommit(t *testing.T) {
	m := &project.Manifest{Config: project.Config{Build: project.BuildConfig{Commit: "fromtoml"}}}
	t.Setenv(commitEnv, "fromenv")
	if c, _ := resolveCommit("fromflag", m); c != "fromflag" {
		t.Errorf("flag: %q", c)
	}
	if c, _ := resolveCommit("", m); c != "fromenv" {
		t.Errorf("env: %q", c)
	}
	t.Setenv(commitEnv, "")
	if c, _ := resolveCommit("", m); c != "fromtoml" {
		t.Errorf("manifest: %q", c)
	}
	if _, err := resolveCommit("", nil); !errors.Is(err, errcode.ErrConfiguration) {
		t.Errorf("missing: %v", err)
	}
}
