// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"varbin/internal/app"
	"varbin/internal/version"
	"varbin/pkg/api"
)

const sample = `chromosome,position
chr1,100
chr1,1500
chr2,200
chr1,2500
`

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

// run isolates the process from any user config file.
func run(t *testing.T, argv ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("VARBIN_CONFIG", write(t, "config.yaml", ""))
	var out, errBuf bytes.Buffer
	code = app.Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestEndToEndText(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, out, errOut := run(t, "-c", "chr1", "-b", "1000", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	want := "chromosome\tbin\tstart\tend\tcount\n" +
		"chr1\t0\t0\t1000\t1\n" +
		"chr1\t1\t1000\t2000\t1\n" +
		"chr1\t2\t2000\t3000\t1\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestEndToEndNonZeroNoHeader(t *testing.T) {
	fn := write(t, "v.csv", "chr1,0\nchr1,0\nchr1,3000\n")
	code, out, errOut := run(t, "-c", "chr1", "-b", "1000", "--nonzero", "--no-header", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	want := "chr1\t0\t0\t1000\t2\nchr1\t3\t3000\t4000\t1\n"
	if out != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestDefaultChromosomeIsFirstLabel(t *testing.T) {
	fn := write(t, "v.csv", "chromosome,position\nchr2,5\nchr1,7\n")
	code, out, errOut := run(t, "-b", "10", "-o", "json", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	var h api.HistogramV1
	if err := json.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if h.Chromosome != "chr2" || h.Total != 1 {
		t.Fatalf("got %+v", h)
	}
}

func TestJSONOutput(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, out, errOut := run(t, "-c", "chr1", "-b", "1000", "-o", "json", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	var h api.HistogramV1
	if err := json.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if h.Chromosome != "chr1" || h.BinSize != 1000 || h.Bins != 3 || h.Total != 3 {
		t.Fatalf("unexpected header fields: %+v", h)
	}
	if fmt.Sprint(h.Counts) != "[1 1 1]" {
		t.Fatalf("counts = %v", h.Counts)
	}
}

func TestJSONLOutput(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, out, errOut := run(t, "-c", "chr1", "-b", "1000", "-o", "jsonl", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), out)
	}
	var b api.BinV1
	if err := json.Unmarshal([]byte(lines[2]), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Bin != 2 || b.Start != 2000 || b.End != 3000 || b.Count != 1 {
		t.Fatalf("last row = %+v", b)
	}
}

func TestMsgpackOutput(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, out, errOut := run(t, "-c", "chr1", "-b", "1000", "-o", "msgpack", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	var h api.HistogramV1
	if err := msgpack.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.Chromosome != "chr1" || len(h.Counts) != 3 || h.Total != 3 {
		t.Fatalf("got %+v", h)
	}
}

func TestPrettyAppendsBars(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, out, errOut := run(t, "-c", "chr1", "-b", "1000", "--pretty", fn)
	if code != 0 {
		t.Fatalf("exit %d, stderr=%s", code, errOut)
	}
	if !strings.Contains(out, "# chr1") {
		t.Fatalf("missing bar block:\n%s", out)
	}
}

func TestNoMatchExitCode(t *testing.T) {
	fn := write(t, "v.csv", sample)

	code, out, errOut := run(t, "-c", "chr3", "-b", "1000", fn)
	if code != 1 {
		t.Fatalf("exit %d, want 1; stderr=%s", code, errOut)
	}
	if out != "chromosome\tbin\tstart\tend\tcount\n" {
		t.Fatalf("want header only, got %q", out)
	}
	if !strings.Contains(errOut, "no variants matched") {
		t.Fatalf("missing warning: %s", errOut)
	}

	code, _, errOut = run(t, "-c", "chr3", "-b", "1000", "--no-match-exit-code", "0", fn)
	if code != 0 {
		t.Fatalf("exit %d, want 0; stderr=%s", code, errOut)
	}
}

func TestNoMatchJSONHasEmptyCounts(t *testing.T) {
	fn := write(t, "v.csv", sample)
	_, out, _ := run(t, "-c", "CHR1", "-b", "1000", "-o", "json", fn)
	if !strings.Contains(out, `"counts": []`) {
		t.Fatalf("want empty counts array, got:\n%s", out)
	}
}

func TestExitCodes(t *testing.T) {
	csv := write(t, "v.csv", sample)
	huge := write(t, "huge.csv", "chr1,4294967295\n")
	bad := write(t, "bad.csv", "chromosome,position\nchr1,12x\n")

	cases := []struct {
		name string
		argv []string
		want int
		msg  string
	}{
		{"zero bin size", []string{"-c", "chr1", "-b", "0", csv}, 2, "bin-size"},
		{"overflow", []string{"-c", "chr1", "-b", "1", huge}, 2, "bin count"},
		{"max bins", []string{"-c", "chr1", "-b", "100", "--max-bins", "2", csv}, 2, "bin count"},
		{"missing file", []string{"-c", "chr1", filepath.Join(t.TempDir(), "nope.csv")}, 2, "nope.csv"},
		{"bad position", []string{"-c", "chr1", bad}, 2, "bad.csv:2"},
		{"no files", []string{"-c", "chr1"}, 2, "input file"},
		{"bad output", []string{"-c", "chr1", "-o", "xml", csv}, 2, "xml"},
		{"unknown flag", []string{"--frobnicate", csv}, 2, "frobnicate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := run(t, tc.argv...)
			if code != tc.want {
				t.Fatalf("exit %d, want %d; stderr=%s", code, tc.want, errOut)
			}
			if !strings.Contains(errOut, tc.msg) {
				t.Fatalf("stderr %q does not mention %q", errOut, tc.msg)
			}
		})
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := run(t, "--version")
	if code != 0 || !strings.Contains(out, version.Version) {
		t.Fatalf("version: exit %d out %q", code, out)
	}
	code, out, _ = run(t)
	if code != 0 || !strings.Contains(out, "Usage:") {
		t.Fatalf("help: exit %d out %q", code, out)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("chromosome,position\n")
	for i := 0; i < 300_000; i++ {
		fmt.Fprintf(&sb, "chr%d,%d\n", i%3+1, (i*7919)%5_000_000)
	}
	fn := write(t, "big.csv", sb.String())

	bin := func(threads int) string {
		code, out, errOut := run(t, "-c", "chr2", "-b", "10000", "-o", "json", "-t", fmt.Sprint(threads), fn)
		if code != 0 {
			t.Fatalf("threads=%d exit %d stderr %s", threads, code, errOut)
		}
		return out
	}
	if serial, parallel := bin(1), bin(4); serial != parallel {
		t.Fatalf("parallel output differs from serial")
	}
}

func TestGlobInputs(t *testing.T) {
	dir := t.TempDir()
	for i, data := range []string{"chr1,10\n", "chr1,20\nchr1,30\n"} {
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("part%d.csv", i)), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	code, out, errOut := run(t, "-c", "chr1", "-b", "100", "-o", "json", filepath.Join(dir, "*.csv"))
	if code != 0 {
		t.Fatalf("exit %d stderr %s", code, errOut)
	}
	if !strings.Contains(out, `"total": 3`) {
		t.Fatalf("got:\n%s", out)
	}
}

func TestChromosomesCommand(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, out, errOut := run(t, "chromosomes", fn)
	if code != 0 {
		t.Fatalf("exit %d stderr %s", code, errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "chr1") || !strings.HasPrefix(lines[2], "chr2") {
		t.Fatalf("got:\n%s", out)
	}

	code, out, errOut = run(t, "chromosomes", "-o", "json", fn)
	if code != 0 {
		t.Fatalf("exit %d stderr %s", code, errOut)
	}
	var rows []api.ChromosomeCountV1
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []api.ChromosomeCountV1{{Chromosome: "chr1", Variants: 3}, {Chromosome: "chr2", Variants: 1}}
	if fmt.Sprint(rows) != fmt.Sprint(want) {
		t.Fatalf("got %v want %v", rows, want)
	}
}

func TestGenerateThenBin(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "synthetic.csv")
	code, _, errOut := run(t, "generate", "--rows", "500", "--seed", "7", "--out", fn)
	if code != 0 {
		t.Fatalf("generate exit %d stderr %s", code, errOut)
	}

	code, out, errOut := run(t, "chromosomes", "-o", "json", fn)
	if code != 0 {
		t.Fatalf("chromosomes exit %d stderr %s", code, errOut)
	}
	var rows []api.ChromosomeCountV1
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	total := 0
	for _, r := range rows {
		total += r.Variants
	}
	if total != 500 || len(rows) != 3 {
		t.Fatalf("rows=%v total=%d", rows, total)
	}

	code, out, errOut = run(t, "-c", "chr1", "-o", "json", fn)
	if code != 0 {
		t.Fatalf("bin exit %d stderr %s", code, errOut)
	}
	var h api.HistogramV1
	if err := json.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, r := range rows {
		if r.Chromosome == "chr1" && int(h.Total) != r.Variants {
			t.Fatalf("chr1 histogram total %d, chromosomes says %d", h.Total, r.Variants)
		}
	}
}

func TestConfigFileDefaults(t *testing.T) {
	cfg := write(t, "varbin.yaml", "bin_size: 500\noutput: json\n")
	fn := write(t, "v.csv", sample)

	code, out, errOut := run(t, "config", "--config", cfg)
	if code != 0 {
		t.Fatalf("config exit %d stderr %s", code, errOut)
	}
	if !strings.Contains(out, "bin_size: 500") || !strings.Contains(out, "output: json") {
		t.Fatalf("got:\n%s", out)
	}

	code, out, errOut = run(t, "--config", cfg, "-c", "chr1", fn)
	if code != 0 {
		t.Fatalf("exit %d stderr %s", code, errOut)
	}
	var h api.HistogramV1
	if err := json.Unmarshal([]byte(out), &h); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if h.BinSize != 500 || h.Bins != 6 {
		t.Fatalf("got %+v", h)
	}

	// explicit flags win
	code, out, _ = run(t, "--config", cfg, "-c", "chr1", "-b", "1000", "-o", "text", fn)
	if code != 0 || !strings.HasPrefix(out, "chromosome\tbin") {
		t.Fatalf("exit %d out %q", code, out)
	}
}

func TestBadConfig(t *testing.T) {
	cfg := write(t, "varbin.yaml", "bin_sise: 500\n")
	fn := write(t, "v.csv", sample)
	code, _, errOut := run(t, "--config", cfg, "-c", "chr1", fn)
	if code != 2 || !strings.Contains(errOut, "bin_sise") {
		t.Fatalf("exit %d stderr %s", code, errOut)
	}
}

func TestCanceledExit130(t *testing.T) {
	t.Setenv("VARBIN_CONFIG", write(t, "config.yaml", ""))
	fn := write(t, "v.csv", sample)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errBuf bytes.Buffer
	if code := app.RunContext(ctx, []string{"-c", "chr1", fn}, &out, &errBuf); code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d (stderr %s)", code, errBuf.String())
	}
}

func TestHistogramLogCarriesElapsed(t *testing.T) {
	fn := write(t, "v.csv", sample)
	code, _, errOut := run(t, "-c", "chr1", "-b", "1000", fn)
	if code != 0 {
		t.Fatalf("exit %d stderr %s", code, errOut)
	}
	if !strings.Contains(errOut, "histogram computed") || !strings.Contains(errOut, "elapsed=") {
		t.Fatalf("log line missing elapsed: %s", errOut)
	}
}

func TestGenerateExitCodes(t *testing.T) {
	code, _, errOut := run(t, "generate", "--chromosomes", "0")
	if code != 2 {
		t.Fatalf("invalid options: exit %d, want 2; stderr=%s", code, errOut)
	}

	code, _, errOut = run(t, "generate", "--out", filepath.Join(t.TempDir(), "missing", "x.csv"))
	if code != 3 {
		t.Fatalf("create failure: exit %d, want 3; stderr=%s", code, errOut)
	}

	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("no /dev/full")
	}
	code, _, errOut = run(t, "generate", "--out", "/dev/full")
	if code != 3 {
		t.Fatalf("write failure: exit %d, want 3; stderr=%s", code, errOut)
	}
}
