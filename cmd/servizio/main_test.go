package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anfive/servizio-cli/internal/batch"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func exitCode(err error) int {
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestDecodeText(t *testing.T) {
	out, err := execute(t, "decode", "a0")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Input code: a0", "Score: 5.5", "BAS  : 0", "SAPD : 0", "PEN  : 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"raw", "5.8\n0\n0\n0\n1\n0\n0\n0\n1\n0\n"},
		{"md", "| COM | 1 |"},
		{"json", `"format": "2-letter"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "decode", "--format", tt.format, "a1e1")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("decode --format %s = %q, want it to contain %q", tt.format, out, tt.want)
			}
		})
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"score", "6.3"},
		{"SCORE", "6.3"},
		{"bas", "3"},
		{"Mov", "1"},
		{"pen", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			out, err := execute(t, "decode", "--value", tt.field, "J4")
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("value=%s: got %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"invalid code", []string{"decode", "a123"}, exitInvalid, invalidCodeMsg},
		{"unknown field", []string{"decode", "--value", "points", "a0"}, exitUsage, "unknown field: points"},
		{"unknown format", []string{"decode", "--format", "xml", "a0"}, exitUsage, "unknown format: xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if got := exitCode(err); got != tt.code {
				t.Fatalf("exit code = %d, want %d (err: %v)", got, tt.code, err)
			}
			if err.Error() != tt.msg {
				t.Errorf("message = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	out, err := execute(t, "encode", "--bas", "3", "--mov", "3", "--din", "3", "--com", "3",
		"--sapd", "3", "--gcc", "3", "--dif", "3", "--sog", "3", "--pen", "20")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out); got != "g21vn3l" {
		t.Errorf("encode = %q, want %q", got, "g21vn3l")
	}
}

func TestEncodeJSON(t *testing.T) {
	out, err := execute(t, "encode", "--mov", "1", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Code  string  `json:"code"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Code != "j1" || got.Score != 5.7 {
		t.Errorf("got %+v", got)
	}
}

func TestEncodeInvalid(t *testing.T) {
	_, err := execute(t, "encode", "--mov", "4", "--pen", "25")
	if exitCode(err) != exitInvalid {
		t.Fatalf("expected exit code %d, got %v", exitInvalid, err)
	}
	for _, want := range []string{"mov: 4 out of range 0-3", "pen: 25 out of range 0-20"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}

func TestScoreAndValid(t *testing.T) {
	out, err := execute(t, "score", "g21vn")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "9.7" {
		t.Errorf("score = %q, want 9.7", out)
	}

	out, err = execute(t, "valid", "a0z25")
	if err != nil || strings.TrimSpace(out) != "true" {
		t.Errorf("valid a0z25 = %q, %v", out, err)
	}

	out, err = execute(t, "valid", "a0i")
	if exitCode(err) != exitInvalid || strings.TrimSpace(out) != "false" {
		t.Errorf("valid a0i = %q, %v", out, err)
	}

	_, err = execute(t, "score", "nope")
	if exitCode(err) != exitInvalid {
		t.Errorf("score nope: expected exit %d, got %v", exitInvalid, err)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestProcessPreset(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.csv")
	writeFile(t, in, "Athlete;Code\nAlice;a0\nBob;??\n")

	out, err := execute(t, "process", "--preset", "excel-eu", in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1 file(s), 2 row(s): 1 decoded, 1 invalid") {
		t.Errorf("unexpected summary: %q", out)
	}

	got := readFile(t, filepath.Join(dir, "results.scored.csv"))
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), got)
	}
	if lines[0] != "Athlete;Code;Score;BAS;MOV;DIN;COM;SAPD;GCC;DIF;SOG;PEN" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Alice;a0;5.5;0;0;0;0;0;0;0;0;0" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if n := strings.Count(lines[2], batch.DefaultPlaceholder); n != 10 {
		t.Errorf("row 2 has %d placeholders, want 10: %q", n, lines[2])
	}
}

func TestProcessFlagsOverridePreset(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "results.tsv")
	out := filepath.Join(dir, "out.tsv")
	writeFile(t, in, "j4\tAlice\n")

	_, err := execute(t, "process", "--preset", "tsv", "--headers=false", "--column", "1",
		"--placeholder", "x", "--out", out, in)
	if err != nil {
		t.Fatal(err)
	}
	want := "j4\tAlice\t6.3\t3\t1\t0\t0\t0\t0\t0\t0\t0\n"
	if got := readFile(t, out); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestProcessConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "club.yaml")
	writeFile(t, cfg, "name: club\ndelimiter: \"|\"\ncolumn: 1\nplaceholder: \"?\"\n")
	writeFile(t, filepath.Join(dir, "day1", "a.txt"), "bad|x\n")
	writeFile(t, filepath.Join(dir, "day2", "b.txt"), "a0|y\n")

	out, err := execute(t, "process", "--config", cfg, filepath.Join(dir, "**", "*.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2 file(s), 2 row(s): 1 decoded, 1 invalid") {
		t.Errorf("unexpected summary: %q", out)
	}
	if got := readFile(t, filepath.Join(dir, "day1", "a.scored.txt")); got != "bad|x"+strings.Repeat("|?", 10)+"\n" {
		t.Errorf("day1 output = %q", got)
	}
}

func TestProcessErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.csv")
	writeFile(t, in, "a0\n")
	writeFile(t, filepath.Join(dir, "b.csv"), "a0\n")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing input", []string{"process", filepath.Join(dir, "missing.csv")}, exitIO},
		{"unknown preset", []string{"process", "--preset", "nope", in}, exitIO},
		{"bad delimiter", []string{"process", "--delimiter", ";;", in}, exitUsage},
		{"same file", []string{"process", "--out", in, in}, exitUsage},
		{"out with many inputs", []string{"process", "--out", filepath.Join(dir, "x.csv"), filepath.Join(dir, "*.csv")}, exitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if got := exitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"default", "excel-eu", "tsv"} {
		if !strings.Contains(out, want) {
			t.Errorf("presets output missing %q", want)
		}
	}
}

func TestExitErr(t *testing.T) {
	err := exitError(3, "failed: %s", "boom")
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatal("expected exitErr")
	}
	if ee.code != 3 || ee.msg != "failed: boom" {
		t.Errorf("got code=%d msg=%q", ee.code, ee.msg)
	}
}
