package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	fio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/observability"
	"github.com/matzehuels/flametower/pkg/pipeline"
	"github.com/matzehuels/flametower/pkg/tree"
)

const sampleTree = `{
  "nodes": [
    {"id": 0, "label": "root", "weight": 100},
    {"id": 1, "label": "A", "weight": 40},
    {"id": 2, "label": "AA", "weight": 4},
    {"id": 3, "label": "B", "weight": 4},
    {"id": 4, "label": "BA", "weight": 3},
    {"id": 5, "label": "BAA", "weight": 2}
  ],
  "edges": [[0, 1], [1, 2], [0, 3], [3, 4], [4, 5]]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"view", "render", "stats", "generate", "convert", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,json,dot", []string{"svg", "json", "dot"}},
		{"svg, png,", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		input   string
		format  string
		formats int
		want    string
	}{
		{"derived from input", "", "traces/app.folded", "svg", 1, "traces/app.svg"},
		{"generated", "", "", "png", 1, "flametower.png"},
		{"single explicit", "out/chart.svg", "app.json", "svg", 1, "out/chart.svg"},
		{"base with known ext", "out/chart.svg", "app.json", "png", 2, "out/chart.png"},
		{"base without ext", "out/chart", "app.json", "json", 2, "out/chart.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.formats); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyConfig_FlagsWin(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "opts.toml", "width = 800\nrenderer = \"spring\"\ndecay = 4.0\n")

	var opts pipeline.Options
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Float64Var(&opts.Width, "width", 0, "")
	addAnimFlags(fs, &opts)
	if err := fs.Parse([]string{"--renderer", "declarative"}); err != nil {
		t.Fatal(err)
	}

	if err := applyConfig(fs, path, &opts); err != nil {
		t.Fatalf("applyConfig() error = %v", err)
	}
	if opts.Renderer != "declarative" {
		t.Errorf("Renderer = %q, want flag value declarative", opts.Renderer)
	}
	if opts.Width != 800 || opts.Decay != 4 {
		t.Errorf("Width, Decay = %v, %v, want file values 800, 4", opts.Width, opts.Decay)
	}
}

func TestApplyConfig_Missing(t *testing.T) {
	var opts pipeline.Options
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := applyConfig(fs, filepath.Join(t.TempDir(), "nope.toml"), &opts); err == nil {
		t.Error("expected error for missing config file")
	}
	if err := applyConfig(fs, "", &opts); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "sample.json", sampleTree)
	base := filepath.Join(dir, "chart")

	out, err := execute(t, "render", input, "-f", "svg,json,dot", "-o", base, "--width", "600")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	for _, ext := range []string{"svg", "json", "dot"} {
		path := base + "." + ext
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing %s: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", path)
		}
		if !strings.Contains(out, path) {
			t.Errorf("output should list %s, got %q", path, out)
		}
	}

	svg, _ := os.ReadFile(base + ".svg")
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), `id="frame-1"`) {
		t.Errorf("svg output missing frame A:\n%s", svg)
	}
	if !strings.Contains(out, "6 nodes") {
		t.Errorf("output should report the node count, got %q", out)
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "sample.json", sampleTree)

	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"render"}},
		{"bad format", []string{"render", input, "-f", "pdf"}},
		{"bad renderer", []string{"render", input, "--renderer", "canvas"}},
		{"missing file", []string{"render", filepath.Join(dir, "nope.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateCommand_Deterministic(t *testing.T) {
	first, err := execute(t, "generate", "--max-depth", "2", "--seed", "7")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	second, err := execute(t, "generate", "--max-depth", "2", "--seed", "7")
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if first != second {
		t.Error("same seed should generate the same tree")
	}

	root, err := fio.ReadJSON(strings.NewReader(first))
	if err != nil {
		t.Fatalf("generated JSON does not read back: %v", err)
	}
	if got := tree.Depth(root); got != 4 {
		t.Errorf("Depth = %d, want 4", got)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "app.folded", "main;parse 3\nmain;eval 2\n")
	output := filepath.Join(dir, "app.json")

	if _, err := execute(t, "convert", input, "-o", output); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	root, err := fio.ImportFile(output)
	if err != nil {
		t.Fatalf("converted file does not import: %v", err)
	}
	if got := tree.Count(root); got != 4 {
		t.Errorf("Count = %d, want 4 (root, main, parse, eval)", got)
	}
	if got := tree.Propagate(root); got != 5 {
		t.Errorf("total weight = %v, want 5", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(out, "flametower") {
		t.Error("bash completion should mention the program name")
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}
