package cli

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.lsp.dev/jsonrpc2"

	"github.com/matzehuels/crates-lsp/pkg/buildinfo"
	errs "github.com/matzehuels/crates-lsp/pkg/errors"
)

// fakeRegistry serves /crates/{name}/versions and counts lookups.
type fakeRegistry struct {
	mu       sync.Mutex
	versions map[string]string
	calls    map[string]int
}

func newFakeRegistry(t *testing.T, versions map[string]string) (*fakeRegistry, *httptest.Server) {
	t.Helper()
	reg := &fakeRegistry{versions: versions, calls: make(map[string]int)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/crates/"), "/versions")
		reg.mu.Lock()
		reg.calls[name]++
		v, ok := reg.versions[name]
		reg.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"versions":[{"num":%q,"yanked":false}]}`, v)
	}))
	t.Cleanup(server.Close)
	return reg, server
}

func (r *fakeRegistry) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var logs bytes.Buffer
	return New(&logs, LogInfo), &logs
}

func execute(c *CLI, args ...string) (string, error) {
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const checkManifest = `[package]
name = "demo"

[dependencies]
anyhow = "1.0.0"
tokio = { version = "1.41.0", features = ["full"] }
missing = "0.1"
`

func TestRootCommandSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	want := map[string]bool{"serve": false, "check": false, "completion": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	for _, flag := range []string{"config", "registry", "freshness", "metrics-addr"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	c, _ := newTestCLI(t)
	out, err := execute(c, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, buildinfo.Name+" version "+buildinfo.Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestCheck(t *testing.T) {
	_, server := newFakeRegistry(t, map[string]string{"anyhow": "1.0.0", "tokio": "1.42.0"})
	c, logs := newTestCLI(t)
	path := writeManifest(t, t.TempDir(), checkManifest)

	out, err := execute(c, "check", "--registry", server.URL, path)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, logs)
	}

	for _, want := range []string{
		path,
		"3 dependencies",
		`anyhow = "1.0.0"`,
		"latest: 1.0.0",
		`tokio = { version = "1.41.0", features = ["full"] }`,
		"available: 1.42.0",
		"error",
		"1 manifest",
		"1 latest",
		"1 outdated",
		"1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(logs.String(), "fetch failed") {
		t.Errorf("expected the 404 to be logged, got:\n%s", logs)
	}
}

func TestCheckSharesCacheAcrossManifests(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		want  int
	}{
		{"cached", nil, 1},
		{"no cache", []string{"--no-cache"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, server := newFakeRegistry(t, map[string]string{"serde": "1.0.210"})
			c, _ := newTestCLI(t)
			root := t.TempDir()
			a := writeManifest(t, filepath.Join(root, "a"), "[dependencies]\nserde = \"1\"\n")
			b := writeManifest(t, filepath.Join(root, "b"), "[dependencies]\nserde = \"*\"\n")

			args := append([]string{"check", "--registry", server.URL}, tt.flags...)
			out, err := execute(c, append(args, a, b)...)
			if err != nil {
				t.Fatal(err)
			}
			if n := reg.count("serde"); n != tt.want {
				t.Errorf("fetched serde %d times, want %d", n, tt.want)
			}
			if !strings.Contains(out, "2 manifests") {
				t.Errorf("summary missing manifest count:\n%s", out)
			}
		})
	}
}

func TestCheckRejectsOtherFiles(t *testing.T) {
	c, _ := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "package.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(c, "check", path)
	if !errs.Is(err, errs.ErrCodeInvalidManifest) {
		t.Errorf("err = %v, want INVALID_MANIFEST", err)
	}
}

func TestCheckMissingFile(t *testing.T) {
	c, _ := newTestCLI(t)
	_, err := execute(c, "check", filepath.Join(t.TempDir(), "Cargo.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	reg, server := newFakeRegistry(t, map[string]string{"anyhow": "1.0.0"})
	c, _ := newTestCLI(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := fmt.Sprintf("registry:\n  url: %s\nlog:\n  level: debug\n", server.URL)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	path := writeManifest(t, t.TempDir(), "[dependencies]\nanyhow = \"1.0.0\"\n")

	if _, err := execute(c, "check", "--config", cfgPath, path); err != nil {
		t.Fatal(err)
	}
	if reg.count("anyhow") != 1 {
		t.Error("config registry url was not used")
	}
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("log level = %v, want debug from config", c.Logger.GetLevel())
	}
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero freshness", []string{"--freshness", "0s"}},
		{"bad registry", []string{"--registry", "ftp://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCLI(t)
			path := writeManifest(t, t.TempDir(), "[dependencies]\n")
			args := append([]string{"check"}, tt.args...)
			_, err := execute(c, append(args, path)...)
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			c, _ := newTestCLI(t)
			out, err := execute(c, "completion", shell)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
}

func TestServeOverPipe(t *testing.T) {
	c, logs := newTestCLI(t)
	serverSide, clientSide := net.Pipe()
	c.stdin, c.stdout = serverSide, serverSide

	done := make(chan error, 1)
	go func() {
		_, err := execute(c)
		done <- err
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := jsonrpc2.NewConn(jsonrpc2.NewStream(clientSide))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	defer client.Close()

	var result map[string]any
	if _, err := client.Call(ctx, "initialize", map[string]any{"processId": 1}, &result); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, ok := result["capabilities"]; !ok {
		t.Errorf("initialize result missing capabilities: %v", result)
	}
	if _, err := client.Call(ctx, "shutdown", nil, nil); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := client.Notify(ctx, "exit", nil); err != nil {
		t.Fatalf("exit: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-ctx.Done():
		t.Fatal("server did not exit")
	}
	if !strings.Contains(logs.String(), "starting language server") {
		t.Errorf("expected startup log, got:\n%s", logs)
	}
}
