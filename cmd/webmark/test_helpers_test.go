package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fakePNG = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, []byte("fake image data")...)

// fakeCompletion is what the stub generation endpoint answers for every
// request. The url inside is deliberately wrong for most test items so the
// pipeline's submitted-url-wins rule is visible in the written notes.
const fakeCompletion = "```yaml\n" +
	"title: Example Article\n" +
	"url: https://example.com/article\n" +
	"description: A fetched article worth keeping.\n" +
	"tags:\n" +
	"  - go\n" +
	"  - reference\n" +
	"```"

type cliTestEnv struct {
	baseDir        string
	configPath     string
	notesDir       string
	attachmentsDir string
	stateDir       string
	logDir         string
	serverURL      string
}

// setupCLITestEnv stands up one HTTP stub that plays every remote role the
// pipeline talks to: reader extraction, related search, screenshot
// rendering, and chat completion. URLs containing "broken.invalid" fail
// with a 500 so tests can inject per-item failures.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/chat/completions"):
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, fakeCompletion)
		case strings.Contains(r.URL.String(), "broken.invalid"):
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "boom")
		case r.Header.Get("X-Return-Format") == "screenshot":
			w.Header().Set("Content-Type", "image/png")
			w.Write(fakePNG)
		default:
			fmt.Fprint(w, "Example article content.")
		}
	}))
	t.Cleanup(server.Close)

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:        base,
		configPath:     filepath.Join(base, "config.toml"),
		notesDir:       filepath.Join(base, "notes"),
		attachmentsDir: filepath.Join(base, "attachments"),
		stateDir:       filepath.Join(base, "state"),
		logDir:         filepath.Join(base, "logs"),
		serverURL:      server.URL,
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
notes_dir = %q
attachments_dir = %q
state_dir = %q
log_dir = %q

[reader]
backend = "remote"
api_key = "test-key"
base_url = %q
search_url = %q
timeout_seconds = 5

[llm]
api_key = "test-key"
base_url = %q
model = "test-model"
timeout_seconds = 5

[screenshot]
backend = "remote"
optional = false
timeout_seconds = 5

[logging]
format = "console"
level = "info"
`,
		env.notesDir,
		env.attachmentsDir,
		env.stateDir,
		env.logDir,
		env.serverURL,
		env.serverURL,
		env.serverURL,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, configPath, "", args...)
}

func runCLIWithInput(t *testing.T, configPath, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	flags := []string{}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func listFilesWithExt(t *testing.T, dir, ext string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read dir %s: %v", dir, err)
	}
	var matched []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ext {
			matched = append(matched, filepath.Join(dir, entry.Name()))
		}
	}
	return matched
}

func readFileString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
