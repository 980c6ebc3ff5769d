package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
}

// run executes the command tree with a config path that does not exist
// unless the caller passes its own --config.
func run(t *testing.T, stdin string, args ...string) (result, error) {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	hasConfig := false
	for _, arg := range args {
		if strings.HasPrefix(arg, "--config") {
			hasConfig = true
		}
	}
	if !hasConfig {
		args = append([]string{"--config=" + filepath.Join(t.TempDir(), "missing.yaml")}, args...)
	}
	root.SetArgs(args)

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String()}, err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

const sample = `; settings
[server]
host = localhost
port = 8080

[paths.unix]
home = /home/me
`

func TestGet(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	res, err := run(t, "", "get", file, "server.port")
	require.NoError(t, err)
	assert.Equal(t, "8080\n", res.stdout)

	res, err = run(t, "", "get", file, `["paths.unix","home"]`)
	require.NoError(t, err)
	assert.Equal(t, "/home/me\n", res.stdout)
}

func TestGet_NotFound(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	_, err := run(t, "", "get", file, "server.missing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = run(t, "", "get", filepath.Join(t.TempDir(), "none.ini"), "a.b")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGet_BadSelector(t *testing.T) {
	file := writeFile(t, "s.ini", sample)
	_, err := run(t, "", "get", file, "nodot")
	assert.ErrorContains(t, err, "invalid selector")
}

func TestSet_CreatesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "new.ini")

	_, err := run(t, "", "set", file, "server.host", "localhost")
	require.NoError(t, err)
	_, err = run(t, "", "set", file, "server.port", "80")
	require.NoError(t, err)
	_, err = run(t, "", "set", file, "server.host", "example.com")
	require.NoError(t, err)

	assert.Equal(t, "[server]\nhost=example.com\nport=80\n", readFile(t, file))
}

func TestSet_ReplacesComments(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	_, err := run(t, "", "set", file, "server.debug", "true")
	require.NoError(t, err)

	want := "[server]\nhost=localhost\nport=8080\ndebug=true\n\n[paths.unix]\nhome=/home/me\n"
	assert.Equal(t, want, readFile(t, file))
}

func TestSet_Rejected(t *testing.T) {
	file := filepath.Join(t.TempDir(), "new.ini")

	tests := []struct {
		name     string
		selector string
		value    string
	}{
		{name: "key with separator", selector: "a.k=x", value: "v"},
		{name: "padded value", selector: "a.k", value: " v "},
		{name: "multi-line value", selector: "a.k", value: "one\ntwo"},
		{name: "comment key", selector: "a.;k", value: "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", "set", file, tt.selector, tt.value)
			assert.ErrorContains(t, err, "cannot set")
		})
	}
	assert.NoFileExists(t, file)
}

func TestSet_LineEnding(t *testing.T) {
	file := filepath.Join(t.TempDir(), "new.ini")

	_, err := run(t, "", "--line_ending=crlf", "set", file, "a.k", "v")
	require.NoError(t, err)
	assert.Equal(t, "[a]\r\nk=v\r\n", readFile(t, file))

	_, err = run(t, "", "--line_ending=cr", "set", file, "a.k", "v")
	assert.ErrorContains(t, err, "unknown line ending")
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "line_ending: crlf\nformat: yaml\n")
	file := writeFile(t, "s.ini", "[a]\nk=v\n")

	_, err := run(t, "", "--config="+cfg, "fmt", "-w", file)
	require.NoError(t, err)
	assert.Equal(t, "[a]\r\nk=v\r\n", readFile(t, file))

	// Flags win over the file.
	_, err = run(t, "", "--config="+cfg, "--line_ending=lf", "fmt", "-w", file)
	require.NoError(t, err)
	assert.Equal(t, "[a]\nk=v\n", readFile(t, file))

	res, err := run(t, "", "--config="+cfg, "export", file)
	require.NoError(t, err)
	assert.Equal(t, "a:\n  k: v\n", res.stdout)
}

func TestConfigFile_Invalid(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "line_ending: [\n")
	_, err := run(t, "", "--config="+cfg, "list", "x.ini")
	assert.ErrorContains(t, err, "failed to load config")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log_level=loud", "list", "x.ini")
	assert.ErrorContains(t, err, "failed creating log handler")
}

func TestDebugLogging(t *testing.T) {
	file := writeFile(t, "s.ini", "[a]\njunk\nk=v\n")

	res, err := run(t, "", "--log_level=debug", "get", file, "a.k")
	require.NoError(t, err)
	assert.Equal(t, "v\n", res.stdout)
	assert.Contains(t, res.stderr, "skipping unrecognized line")
	assert.Contains(t, res.stderr, "msg=loaded")
}

func TestUnset(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	_, err := run(t, "", "unset", file, "server.port")
	require.NoError(t, err)
	assert.Equal(t, "[server]\nhost=localhost\n\n[paths.unix]\nhome=/home/me\n", readFile(t, file))

	res, err := run(t, "", "unset", file, "server.port")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "not found")
}

func TestRemoveSection(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	_, err := run(t, "", "remove-section", file, "server")
	require.NoError(t, err)
	assert.Equal(t, "[paths.unix]\nhome=/home/me\n", readFile(t, file))

	res, err := run(t, "", "remove-section", file, "server")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "not found")
}

func TestList(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	res, err := run(t, "", "list", file)
	require.NoError(t, err)
	assert.Equal(t, "server\npaths.unix\n", res.stdout)

	res, err = run(t, "", "list", file, "server")
	require.NoError(t, err)
	assert.Equal(t, "host=localhost\nport=8080\n", res.stdout)

	_, err = run(t, "", "list", file, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFmt(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	res, err := run(t, "", "fmt", file)
	require.NoError(t, err)
	want := "[server]\nhost=localhost\nport=8080\n\n[paths.unix]\nhome=/home/me\n"
	assert.Equal(t, want, res.stdout)
	assert.Equal(t, sample, readFile(t, file), "fmt without -w must not touch the file")

	_, err = run(t, "", "fmt", "-w", file)
	require.NoError(t, err)
	assert.Equal(t, want, readFile(t, file))
}

func TestFmt_Stdin(t *testing.T) {
	res, err := run(t, "[a]\n  k  =  v  \n", "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "[a]\nk=v\n", res.stdout)

	_, err = run(t, "[a]\n", "fmt", "-w", "-")
	assert.Error(t, err)
}

func TestFmt_Errors(t *testing.T) {
	_, err := run(t, "", "fmt", filepath.Join(t.TempDir(), "none.ini"))
	assert.ErrorContains(t, err, "failed to read")

	file := writeFile(t, "s.ini", "k=v\n[a]\n")
	_, err = run(t, "", "fmt", file)
	assert.ErrorContains(t, err, "line 1")
}

func TestLint(t *testing.T) {
	clean := writeFile(t, "clean.ini", sample)
	res, err := run(t, "", "lint", clean)
	require.NoError(t, err)
	assert.Empty(t, res.stdout)

	dirty := writeFile(t, "dirty.ini", "[a]\nk=v\nnot a pair\n[b\n")
	res, err = run(t, "", "lint", dirty)
	assert.ErrorContains(t, err, "2 problem(s)")
	assert.Contains(t, res.stdout, `line 3: unrecognized line "not a pair"`)
	assert.Contains(t, res.stdout, `line 4: unrecognized line "[b"`)
}

func TestExport(t *testing.T) {
	file := writeFile(t, "s.ini", "[server]\nhost=localhost\nport=8080\n")

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{format: "json", check: func(t *testing.T, out string) {
			assert.JSONEq(t, `{"server":{"host":"localhost","port":"8080"}}`, out)
		}},
		{format: "yaml", check: func(t *testing.T, out string) {
			assert.Equal(t, "server:\n  host: localhost\n  port: \"8080\"\n", out)
		}},
		{format: "toml", check: func(t *testing.T, out string) {
			assert.Contains(t, out, "[server]")
			assert.Contains(t, out, `port = "8080"`)
		}},
		{format: "ini", check: func(t *testing.T, out string) {
			assert.Contains(t, out, "host = localhost")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			res, err := run(t, "", "export", file, "--format", tt.format)
			require.NoError(t, err)
			tt.check(t, res.stdout)
		})
	}

	_, err := run(t, "", "export", file, "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestImport(t *testing.T) {
	src := writeFile(t, "s.yaml", "server:\n  host: localhost\n  port: 8080\n")

	res, err := run(t, "", "import", src)
	require.NoError(t, err)
	assert.Equal(t, "[server]\nhost=localhost\nport=8080\n", res.stdout)

	out := filepath.Join(t.TempDir(), "out.ini")
	_, err = run(t, "", "import", src, "--out", out)
	require.NoError(t, err)
	assert.Equal(t, "[server]\nhost=localhost\nport=8080\n", readFile(t, out))
}

func TestImport_Stdin(t *testing.T) {
	in := "{\n  // managed\n  \"a\": {\"k\": \"v\"}\n}\n"

	_, err := run(t, in, "import", "-", "--format", "json")
	assert.Error(t, err)

	res, err := run(t, in, "import", "-", "--format", "json", "--strip_comments")
	require.NoError(t, err)
	assert.Equal(t, "[a]\nk=v\n", res.stdout)
}

func TestImport_Rejected(t *testing.T) {
	src := writeFile(t, "s.json", `{"a": {"k": " padded "}}`)
	_, err := run(t, "", "import", src)
	assert.ErrorContains(t, err, "cannot be written as INI")

	nested := writeFile(t, "n.json", `{"a": {"b": {"c": "d"}}}`)
	_, err = run(t, "", "import", nested)
	assert.ErrorContains(t, err, "failed to decode")
}

func TestFormatFromExt(t *testing.T) {
	assert.Equal(t, "json", formatFromExt("a.JSONC"))
	assert.Equal(t, "yaml", formatFromExt("a.yml"))
	assert.Equal(t, "ini", formatFromExt("dir/a.ini"))
	assert.Equal(t, "", formatFromExt("a.conf"))
}

func TestSet_Unchanged(t *testing.T) {
	file := writeFile(t, "s.ini", sample)

	_, err := run(t, "", "set", file, "server.port", "8080")
	require.NoError(t, err)
	assert.Equal(t, sample, readFile(t, file), "file holding the value must not be rewritten")

	_, err = run(t, "", "set", file, "server.port", "9090")
	require.NoError(t, err)
	assert.NotContains(t, readFile(t, file), "; settings")
	assert.Contains(t, readFile(t, file), "port=9090\n")
}

func TestConfigShow(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "format: toml\n")

	res, err := run(t, "", "--config="+cfg, "--line_ending=crlf", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "line_ending: crlf\n")
	assert.Contains(t, res.stdout, "format: toml\n")
	assert.Contains(t, res.stdout, "log_level: warn\n")
}

func TestConfigInit(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "inistore", "config.yaml")

	res, err := run(t, "", "--config="+cfg, "--line_ending=crlf", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Wrote "+cfg)
	assert.Contains(t, readFile(t, cfg), "line_ending: crlf\n")

	_, err = run(t, "", "--config="+cfg, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "", "--config="+cfg, "--line_ending=lf", "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, cfg), "line_ending: lf\n")

	// The written file is picked up by later runs.
	file := filepath.Join(t.TempDir(), "new.ini")
	_, err = run(t, "", "--config="+cfg, "set", file, "a.k", "v")
	require.NoError(t, err)
	assert.Equal(t, "[a]\nk=v\n", readFile(t, file))
}
