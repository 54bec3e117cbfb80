package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleRecord = `{
  "quote_number": "Q-100",
  "status": "draft",
  "created_at": "2025-03-14T09:30:00Z",
  "client_name": "Ada Client",
  "client_company": "Acme",
  "items": [{"name": "Audit", "quantity": 2, "price": 150}],
  "tax_rate": 15
}`

func testDeps() (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Dependencies{Stdout: stdout, Stderr: stderr}, stdout, stderr
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quote.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Exit codes and messages
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	t.Run("success for both templates", func(t *testing.T) {
		t.Parallel()

		for _, tmpl := range []string{"branded", "plain"} {
			in := writeInput(t, sampleRecord)
			out := filepath.Join(t.TempDir(), "quote.pdf")
			deps, stdout, stderr := testDeps()

			code := runMain([]string{"--template", tmpl, in, out}, deps)
			if code != ExitSuccess {
				t.Fatalf("%s: exit = %d, stderr = %q", tmpl, code, stderr.String())
			}
			if got, want := stdout.String(), "PDF generated successfully: "+out+"\n"; got != want {
				t.Errorf("%s: stdout = %q, want %q", tmpl, got, want)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("%s: output missing: %v", tmpl, err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Errorf("%s: output is not a PDF", tmpl)
			}
		}
	})

	t.Run("missing arguments", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps()
		if code := runMain([]string{"only-one.json"}, deps); code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
		if stdout.Len() != 0 {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
		if !strings.Contains(stderr.String(), "Usage:") {
			t.Errorf("stderr = %q, want usage", stderr.String())
		}
	})

	t.Run("unreadable input", func(t *testing.T) {
		t.Parallel()

		out := filepath.Join(t.TempDir(), "quote.pdf")
		deps, _, stderr := testDeps()
		code := runMain([]string{filepath.Join(t.TempDir(), "nope.json"), out}, deps)
		if code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "invalid input") {
			t.Errorf("stderr = %q", stderr.String())
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Error("output file should not exist")
		}
	})

	t.Run("malformed record", func(t *testing.T) {
		t.Parallel()

		in := writeInput(t, `{"quote_number": `)
		out := filepath.Join(t.TempDir(), "quote.pdf")
		deps, _, stderr := testDeps()
		if code := runMain([]string{in, out}, deps); code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want a hint", stderr.String())
		}
		if _, err := os.Stat(out); !os.IsNotExist(err) {
			t.Error("output file should not exist")
		}
	})

	t.Run("output directory missing", func(t *testing.T) {
		t.Parallel()

		in := writeInput(t, sampleRecord)
		out := filepath.Join(t.TempDir(), "missing", "quote.pdf")
		deps, _, stderr := testDeps()
		if code := runMain([]string{in, out}, deps); code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "does not exist") {
			t.Errorf("stderr = %q, want directory hint", stderr.String())
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		code := runMain([]string{"-t", "fancy", writeInput(t, sampleRecord), filepath.Join(t.TempDir(), "q.pdf")}, deps)
		if code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "unknown template") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("missing config gets hint", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps()
		code := runMain([]string{"-c", "surely-not-a-config-xyz", writeInput(t, sampleRecord), filepath.Join(t.TempDir(), "q.pdf")}, deps)
		if code != ExitFailure {
			t.Errorf("exit = %d, want %d", code, ExitFailure)
		}
		if !strings.Contains(stderr.String(), "--config") {
			t.Errorf("stderr = %q, want config hint", stderr.String())
		}
	})

	t.Run("verbose prints warnings", func(t *testing.T) {
		t.Parallel()

		in := writeInput(t, sampleRecord)
		out := filepath.Join(t.TempDir(), "quote.pdf")
		deps, _, stderr := testDeps()
		code := runMain([]string{"-v", "--asset-dir", t.TempDir(), in, out}, deps)
		if code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
		}
		// No fonts are installed in the test asset dir.
		if !strings.Contains(stderr.String(), "warning: asset missing") {
			t.Errorf("stderr = %q, want font warning", stderr.String())
		}
		if !strings.Contains(stderr.String(), "page(s)") {
			t.Errorf("stderr = %q, want summary", stderr.String())
		}
	})

	t.Run("quiet without verbose", func(t *testing.T) {
		t.Parallel()

		in := writeInput(t, sampleRecord)
		out := filepath.Join(t.TempDir(), "quote.pdf")
		deps, _, stderr := testDeps()
		if code := runMain([]string{in, out}, deps); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Info - Version and help
// ---------------------------------------------------------------------------

func TestRunMain_Info(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps()
	if code := runMain([]string{"--version"}, deps); code != ExitSuccess {
		t.Errorf("--version exit = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "go-quote2pdf ") {
		t.Errorf("--version stdout = %q", stdout.String())
	}

	deps, stdout, _ = testDeps()
	if code := runMain([]string{"--help"}, deps); code != ExitSuccess {
		t.Errorf("--help exit = %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage: quote2pdf") {
		t.Errorf("--help stdout = %q", stdout.String())
	}

	deps, _, _ = testDeps()
	if code := runMain([]string{"--bogus"}, deps); code != ExitFailure {
		t.Errorf("--bogus exit = %d, want %d", code, ExitFailure)
	}
}

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"in.json", "out.pdf"}, false},
		{[]string{"-v", "in.json", "out.pdf"}, true},
		{[]string{"in.json", "--verbose", "out.pdf"}, true},
		{[]string{"--", "-v", "out.pdf"}, false},
	}
	for _, tt := range tests {
		if got := wantsVerbose(tt.args); got != tt.want {
			t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	if exitCodeFor(nil) != ExitSuccess {
		t.Error("nil error should exit 0")
	}
	if exitCodeFor(ErrUsage) != ExitFailure {
		t.Error("any error should exit 1")
	}
}
