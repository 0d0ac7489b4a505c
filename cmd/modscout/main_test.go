package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"modscout/internal/match"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	catalogPath string
	modsDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "config.toml"),
		catalogPath: filepath.Join(base, "catalog.json"),
		modsDir:     filepath.Join(base, "mods"),
	}

	catalogJSON := `[
  {
    "name": "Kamisato Ayaka",
    "type": "character",
    "variants": [{"name": "Ayaka", "aliases": ["kamisato"]}],
    "hashes": {"default": ["abcdef12", "12345678"]}
  },
  {
    "name": "Ganyu",
    "type": "character",
    "variants": [{"name": "Ganyu"}],
    "hashes": {"default": ["feedc0de"]}
  }
]`
	if err := os.WriteFile(env.catalogPath, []byte(catalogJSON), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	content := fmt.Sprintf(`
[paths]
mods_dir = %q
catalog_path = %q
data_dir = %q
log_dir = %q
`, env.modsDir, env.catalogPath, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := os.MkdirAll(env.modsDir, 0o755); err != nil {
		t.Fatalf("create mods dir: %v", err)
	}
	return env
}

func (env *cliTestEnv) addModFolder(t *testing.T, name, iniContent string) string {
	t.Helper()
	folder := filepath.Join(env.modsDir, name)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("create mod folder: %v", err)
	}
	if iniContent != "" {
		if err := os.WriteFile(filepath.Join(folder, "merged.ini"), []byte(iniContent), 0o644); err != nil {
			t.Fatalf("write ini: %v", err)
		}
	}
	return folder
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output missing %q:\n%s", want, output)
	}
}

func TestCLIMatchCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := env.addModFolder(t, "Ayaka Dress", "[TextureOverrideAyakaBody]\nhash = 0xabcdef12\n")

	out, _, err := runCLI(t, env.configPath, "match", folder)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "Auto Matched")
	requireContains(t, out, "Kamisato Ayaka")
	requireContains(t, out, "abcdef12")
}

func TestCLIMatchCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := env.addModFolder(t, "Ayaka Dress", "hash = abcdef12\n")

	out, _, err := runCLI(t, env.configPath, "--json", "match", folder)
	if err != nil {
		t.Fatalf("match --json: %v", err)
	}

	var result match.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if result.Status != match.StatusAutoMatched {
		t.Fatalf("unexpected status: %q", result.Status)
	}
	if result.Best == nil || result.Best.Name != "Kamisato Ayaka" {
		t.Fatalf("unexpected best candidate: %+v", result.Best)
	}
}

func TestCLIScanCommandWithSave(t *testing.T) {
	env := setupCLITestEnv(t)
	env.addModFolder(t, "Ayaka Dress", "hash = abcdef12\n")
	env.addModFolder(t, "Mystery Folder", "")

	out, _, err := runCLI(t, env.configPath, "scan", "--save")
	if err != nil {
		t.Fatalf("scan --save: %v", err)
	}
	requireContains(t, out, "Kamisato Ayaka")
	requireContains(t, out, "Mystery Folder")

	out, _, err = runCLI(t, env.configPath, "results", "list")
	if err != nil {
		t.Fatalf("results list: %v", err)
	}
	requireContains(t, out, "Ayaka Dress")
	requireContains(t, out, "Auto Matched")

	out, _, err = runCLI(t, env.configPath, "results", "clear")
	if err != nil {
		t.Fatalf("results clear: %v", err)
	}
	requireContains(t, out, "Deleted 2 stored results")
}

func TestCLICatalogCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "catalog", "show")
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, "Kamisato Ayaka")
	requireContains(t, out, "Ganyu")

	out, _, err = runCLI(t, env.configPath, "catalog", "validate")
	if err != nil {
		t.Fatalf("catalog validate: %v", err)
	}
	requireContains(t, out, "Entities: 2")
	requireContains(t, out, "Catalog valid")
}

func TestCLIConfigInit(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(env.baseDir, "fresh", "config.toml")
	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected second init without --overwrite to fail")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestCLIUnknownFolderNoMatch(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := env.addModFolder(t, "Totally Unrelated", "")

	out, _, err := runCLI(t, env.configPath, "match", folder)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "No Match")
}
