package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := RunContext(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const sample = `
unit: sample
entries:
  - name: all_true
    expr: {call: all, args: [{const: logical, values: [true, true]}]}
  - name: bit
    expr: {call: btest, args: [5, 0]}
  - name: open
    expr: {op: .and., left: {var: x, type: logical}, right: true}
  - name: range
    expr: {call: out_of_range, args: [300, {const: integer(1), value: 0}]}
`

func TestRunFoldsDocuments(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sample.yaml", sample)
	code, stdout, stderr := run(t, path)
	if code != ExitOK {
		t.Fatalf("exit %d, stderr:\n%s", code, stderr)
	}
	for _, want := range []string{
		path + " [sample]",
		"all_true: all([.TRUE., .TRUE.]) => .TRUE.",
		"bit: btest(5, 0) => .TRUE.",
		"open: x .AND. .TRUE. => x .AND. .TRUE.",
		"range: out_of_range(300, 0_1) => .TRUE.",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output lacks %q:\n%s", want, stdout)
		}
	}
}

func TestRunKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.yaml", "a.yaml", "b.yaml"} {
		paths = append(paths, writeFile(t, dir, name, "entries: [{name: e, expr: true}]\n"))
	}
	_, stdout, _ := run(t, paths...)
	ia := strings.Index(stdout, paths[1])
	ib := strings.Index(stdout, paths[2])
	ic := strings.Index(stdout, paths[0])
	if !(ic < ia && ia < ib) {
		t.Errorf("files reported out of order:\n%s", stdout)
	}
}

func TestRunParseErrorFails(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "entries:\n  - {expr: {const: logical, value: maybe}}\n")
	code, _, stderr := run(t, path)
	if code != ExitError {
		t.Errorf("exit %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr, "bad.yaml:2: error[P004]") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunFoldDiagnosticsDoNotFail(t *testing.T) {
	path := writeFile(t, t.TempDir(), "btest.yaml", "entries: [{name: b, expr: {call: btest, args: [1, 40]}}]\n")
	code, stdout, stderr := run(t, path)
	if code != ExitOK {
		t.Errorf("exit %d", code)
	}
	if !strings.Contains(stderr, "error[F001]") || !strings.Contains(stdout, "b: btest(1, 40) => .FALSE.") {
		t.Errorf("stdout %q stderr %q", stdout, stderr)
	}
}

func TestRunReportsReadableFilesWhenOneFails(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.yaml", "entries: [{name: e, expr: {op: .or., left: false, right: true}}]\n")
	// a directory matched by the glob cannot be read as a document
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	code, stdout, stderr := run(t, filepath.Join(dir, "*"))
	if code != ExitError {
		t.Errorf("exit %d, want %d", code, ExitError)
	}
	if !strings.Contains(stdout, good+" [unit1]") || !strings.Contains(stdout, "e: .FALSE. .OR. .TRUE. => .TRUE.") {
		t.Errorf("readable file not reported:\n%s", stdout)
	}
	if !strings.Contains(stderr, filepath.Join(dir, "sub")+": error[I001]") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRunWithConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "custom.yaml", "version: 1.2.0\niostat_end: -4\n")
	path := writeFile(t, dir, "io.yaml", "entries: [{name: eof, expr: {call: is_iostat_end, args: [-4]}}]\n")
	code, stdout, stderr := run(t, "-config", cfg, path)
	if code != ExitOK || !strings.Contains(stdout, "eof: is_iostat_end(-4) => .TRUE.") {
		t.Errorf("exit %d stdout %q stderr %q", code, stdout, stderr)
	}

	bad := writeFile(t, dir, "old.yaml", "version: 2.0.0\n")
	code, _, stderr = run(t, "-config", bad, path)
	if code != ExitError || !strings.Contains(stderr, "C002") {
		t.Errorf("exit %d stderr %q", code, stderr)
	}
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := run(t)
	if code != ExitUsage || !strings.Contains(stderr, "Usage: logifold") {
		t.Errorf("exit %d stderr %q", code, stderr)
	}
	code, _, _ = run(t, "-bogus", "x.yaml")
	if code != ExitUsage {
		t.Errorf("unknown flag: exit %d", code)
	}
	code, _, stderr = run(t, filepath.Join(t.TempDir(), "missing.yaml"))
	if code != ExitError || !strings.Contains(stderr, "missing.yaml") {
		t.Errorf("missing file: exit %d stderr %q", code, stderr)
	}
}

func TestRunTrace(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.yaml", "entries: [{name: e, expr: {not: true}}]\n")
	code, _, stderr := run(t, "-trace", path)
	if code != ExitOK {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr, "level=DEBUG") || !strings.Contains(stderr, "entry=e") {
		t.Errorf("trace output missing:\n%s", stderr)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "")
	b := writeFile(t, dir, "b.yml", "")
	writeFile(t, dir, "logifold.yaml", "")
	writeFile(t, dir, "notes.txt", "")

	files, err := expandInputs([]string{dir, a})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Errorf("directory expansion = %v", files)
	}

	files, err = expandInputs([]string{filepath.Join(dir, "*.yml")})
	if err != nil || len(files) != 1 || files[0] != b {
		t.Errorf("glob expansion = %v, %v", files, err)
	}
	if _, err := expandInputs([]string{filepath.Join(dir, "*.none")}); err == nil {
		t.Error("empty glob should fail")
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	if useColor(&buf, "auto", false) {
		t.Error("a buffer is not a terminal")
	}
	if !useColor(&buf, "always", false) {
		t.Error("always should force color")
	}
	if useColor(&buf, "always", true) {
		t.Error("-no-color wins")
	}
	t.Setenv("NO_COLOR", "1")
	if useColor(&buf, "always", false) {
		t.Error("NO_COLOR wins")
	}
}

// syncBuffer lets the test read output while watch mode writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRefolds(t *testing.T) {
	path := writeFile(t, t.TempDir(), "w.yaml", "entries: [{name: e, expr: true}]\n")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() { done <- RunContext(ctx, []string{"-watch", path}, &stdout, &stderr) }()

	waitFor := func(want string, poke func()) {
		t.Helper()
		deadline := time.Now().Add(10 * time.Second)
		for !strings.Contains(stdout.String(), want) {
			if time.Now().After(deadline) {
				t.Fatalf("never saw %q; stdout:\n%s\nstderr:\n%s", want, stdout.String(), stderr.String())
			}
			if poke != nil {
				poke()
			}
			time.Sleep(200 * time.Millisecond)
		}
	}
	waitFor("e: .TRUE. => .TRUE.", nil)
	// rewrite until the watcher, which starts after the first fold, sees it
	waitFor("e: .FALSE. => .FALSE.", func() {
		writeFile(t, filepath.Dir(path), "w.yaml", "entries: [{name: e, expr: false}]\n")
	})
	if !strings.Contains(stdout.String(), "--- changed") {
		t.Errorf("change banner missing:\n%s", stdout.String())
	}
	cancel()
	if code := <-done; code != ExitOK {
		t.Errorf("exit %d", code)
	}
}
