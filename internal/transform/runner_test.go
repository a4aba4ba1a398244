package transform

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filter.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFilterTransformsBytes(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	path := writeScript(t, `
function filter(input)
    return input:upper()
end
`)
	out, err := r.Filter(path, []byte("hello"))
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !bytes.Equal(out, []byte("HELLO")) {
		t.Errorf("out = %q, want HELLO", out)
	}
}

func TestFilterHandlesBinaryData(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	path := writeScript(t, `
function filter(input)
    local out = {}
    for i = 1, #input do
        out[i] = string.char((input:byte(i) + 1) % 256)
    end
    return table.concat(out)
end
`)
	out, err := r.Filter(path, []byte{0x00, 0x41, 0xff})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if !bytes.Equal(out, []byte{0x01, 0x42, 0x00}) {
		t.Errorf("out = %v, want [1 66 0]", out)
	}
}

func TestFilterCanChangeLength(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	path := writeScript(t, `
function filter(input)
    return input .. input
end
`)
	out, err := r.Filter(path, []byte("ab"))
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if string(out) != "abab" {
		t.Errorf("out = %q, want abab", out)
	}
}

func TestFilterMissingFunction(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	path := writeScript(t, `local x = 1`)
	if _, err := r.Filter(path, []byte("x")); err == nil {
		t.Error("expected error for script without filter function")
	}
}

func TestFilterScriptError(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	path := writeScript(t, `
function filter(input)
    error("boom")
end
`)
	_, err := r.Filter(path, []byte("x"))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want script error mentioning boom", err)
	}
}

func TestFilterMissingFile(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	if _, err := r.Filter(filepath.Join(t.TempDir(), "nope.lua"), []byte("x")); err == nil {
		t.Error("expected error for missing script")
	}
}

func TestFilterSandboxBlocksIO(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	path := writeScript(t, `
function filter(input)
    return io.open("/etc/passwd"):read("a")
end
`)
	if _, err := r.Filter(path, []byte("x")); err == nil {
		t.Error("expected error: io library must not be available")
	}
}

func TestFilterAfterClose(t *testing.T) {
	r := NewRunner()
	r.Close()

	if _, err := r.Filter("whatever.lua", nil); err != ErrRunnerClosed {
		t.Errorf("err = %v, want ErrRunnerClosed", err)
	}
}

func TestDefinitionDoesNotLeakBetweenRuns(t *testing.T) {
	r := NewRunner()
	defer r.Close()

	good := writeScript(t, `
function filter(input)
    return input
end
`)
	if _, err := r.Filter(good, []byte("x")); err != nil {
		t.Fatalf("Filter: %v", err)
	}

	bad := writeScript(t, `local nothing = true`)
	if _, err := r.Filter(bad, []byte("x")); err == nil {
		t.Error("stale filter definition from a previous script was reused")
	}
}
