package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/observability"
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

func quietLogger() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Invalid format error = %v, want INVALID_CONFIG", err)
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"flame", false},
		{"nodelink", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Input: "x.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.VizType != VizTypeFlame || opts.Renderer != "incremental" {
		t.Errorf("viz/renderer = %q/%q", opts.VizType, opts.Renderer)
	}
	if opts.RowHeight != 20 || opts.WidthScale != 2 || opts.ColorExponent != 0.4 {
		t.Errorf("layout defaults = %v/%v/%v", opts.RowHeight, opts.WidthScale, opts.ColorExponent)
	}
	if opts.Decay != 16 || opts.MinRectWidth != 2 || opts.MinTextWidth != 8 || opts.Gap != 2 {
		t.Errorf("render defaults = %v/%v/%v/%v", opts.Decay, opts.MinRectWidth, opts.MinTextWidth, opts.Gap)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
	if opts.FrameInterval() != time.Second/60 {
		t.Errorf("FrameInterval() = %v", opts.FrameInterval())
	}

	// Idempotent
	opts.Decay = 99
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error = %v", err)
	}
}

func TestValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"decay too high", Options{Input: "x", Decay: 30}, errors.ErrCodeInvalidConfig},
		{"negative decay", Options{Input: "x", Decay: -1}, errors.ErrCodeInvalidConfig},
		{"renderer", Options{Input: "x", Renderer: "webgl"}, errors.ErrCodeUnsupportedRenderer},
		{"format", Options{Input: "x", Formats: []string{"pdf"}}, errors.ErrCodeInvalidConfig},
		{"base color", Options{Input: "x", BaseColor: "red"}, errors.ErrCodeInvalidConfig},
		{"viz type", Options{Input: "x", VizType: "tower"}, errors.ErrCodeInvalidConfig},
		{"input format", Options{Input: "x", Format: "xml"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestGenerateDefaults(t *testing.T) {
	opts := Options{Generate: true}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.MaxDepth != 16 || opts.Fanout != 3 {
		t.Errorf("generator defaults = %d/%d, want 16/3", opts.MaxDepth, opts.Fanout)
	}
	if opts.Source() != "generated" {
		t.Errorf("Source() = %q", opts.Source())
	}
}

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"flame.toml", "input = \"p.folded\"\nrenderer = \"spring\"\ndecay = 8.5\nformats = [\"svg\", \"png\"]\n"},
		{"flame.yaml", "input: p.folded\nrenderer: spring\ndecay: 8.5\nformats: [svg, png]\n"},
		{"flame.json", `{"input": "p.folded", "renderer": "spring", "decay": 8.5, "formats": ["svg", "png"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadOptions(writeFile(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("LoadOptions() error = %v", err)
			}
			if opts.Input != "p.folded" || opts.Renderer != "spring" || opts.Decay != 8.5 {
				t.Errorf("opts = %+v", opts)
			}
			if strings.Join(opts.Formats, ",") != "svg,png" {
				t.Errorf("Formats = %v", opts.Formats)
			}
		})
	}
}

func TestLoadOptions_UnknownRenderer(t *testing.T) {
	opts, err := LoadOptions(writeFile(t, "flame.toml", "input = \"p.folded\"\nrenderer = \"canvas\"\n"))
	if err != nil {
		t.Fatalf("LoadOptions() error = %v", err)
	}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeUnsupportedRenderer) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnsupportedRenderer)
	}
}

func TestLoadOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, errors.ErrCodeFileNotFound},
		{"extension", func(t *testing.T) string { return writeFile(t, "flame.ini", "x=1") }, errors.ErrCodeInvalidConfig},
		{"syntax", func(t *testing.T) string { return writeFile(t, "flame.toml", "input = ") }, errors.ErrCodeInvalidConfig},
		{"empty path", func(*testing.T) string { return "" }, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOptions(tt.path(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("LoadOptions() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunner_Execute(t *testing.T) {
	runner := NewRunner(quietLogger())
	opts := Options{
		Input:   writeFile(t, "sample.json", sampleTree),
		Width:   612,
		Formats: []string{FormatSVG, FormatJSON, FormatDOT},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.NodeCount != 6 || result.Stats.Depth != 4 || result.Stats.TotalWeight != 153 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.Stats.RectCount != 6 || len(result.Rects) != 6 {
		t.Errorf("rect count = %d", result.Stats.RectCount)
	}
	for _, f := range opts.Formats {
		if len(result.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<title>root</title>") {
		t.Error("svg missing document title")
	}

	var doc struct {
		Width     float64 `json:"width"`
		Height    float64 `json:"height"`
		Transform struct {
			ScaleX float64 `json:"scale_x"`
		} `json:"transform"`
		Rects []struct {
			ID    string  `json:"id"`
			Width float64 `json:"width"`
		} `json:"rects"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatal(err)
	}
	// Root is 306 units wide; fitted to 612 pixels with a 2px gap.
	if doc.Transform.ScaleX != 2 || doc.Height != 80 {
		t.Errorf("transform/height = %v/%v", doc.Transform.ScaleX, doc.Height)
	}
	if len(doc.Rects) == 0 || doc.Rects[0].ID != "0" || doc.Rects[0].Width != 610 {
		t.Errorf("first rect = %+v", doc.Rects)
	}
}

func TestRunner_ExecuteFocus(t *testing.T) {
	runner := NewRunner(quietLogger())
	opts := Options{
		Input:    writeFile(t, "sample.json", sampleTree),
		Width:    400,
		Height:   200,
		Focus:    "3",
		Renderer: "spring",
		Formats:  []string{FormatJSON},
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var doc struct {
		Selected string `json:"selected"`
		Renderer string `json:"renderer"`
		Rects    []struct {
			ID    string  `json:"id"`
			X     float64 `json:"x"`
			Width float64 `json:"width"`
		} `json:"rects"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Selected != "3" || doc.Renderer != "spring" {
		t.Errorf("selected/renderer = %q/%q", doc.Selected, doc.Renderer)
	}
	for _, r := range doc.Rects {
		if r.ID == "3" && (r.X != 0 || r.Width != 398) {
			t.Errorf("focused rect = %+v, want x 0 width 398", r)
		}
	}
}

func TestRunner_ExecuteNodelink(t *testing.T) {
	runner := NewRunner(quietLogger())
	opts := Options{
		Input:   writeFile(t, "sample.json", sampleTree),
		VizType: VizTypeNodelink,
		Formats: []string{FormatDOT, FormatJSON},
	}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), `"3" -> "4";`) {
		t.Error("dot artifact missing edge")
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"edges"`) {
		t.Error("json artifact is not a tree export")
	}
}

func TestRunner_ExecuteGenerate(t *testing.T) {
	runner := NewRunner(quietLogger())
	opts := Options{Generate: true, MaxDepth: 4, Fanout: 3, Seed: 7, Formats: []string{FormatJSON}}
	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Stats.NodeCount < 6 || result.Stats.Depth != 6 {
		t.Errorf("Stats = %+v", result.Stats)
	}
}

func TestRunner_ExecuteErrors(t *testing.T) {
	runner := NewRunner(quietLogger())

	_, err := runner.Execute(context.Background(), Options{Input: writeFile(t, "bad.json", `{"nodes":[{"id":1},{"id":1}],"edges":[]}`)})
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("duplicate ids: error = %v, want INVALID_GRAPH", err)
	}

	_, err = runner.Execute(context.Background(), Options{Input: filepath.Join(t.TempDir(), "missing.json")})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: error = %v, want FILE_NOT_FOUND", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.add("load") }
func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, n int, _ time.Duration, err error) {
	if err == nil && n == 6 {
		h.add("loaded")
	}
}
func (h *recordingHooks) OnLayoutStart(context.Context, int) { h.add("layout") }
func (h *recordingHooks) OnLayoutComplete(_ context.Context, n int, _ time.Duration, err error) {
	if err == nil && n == 6 {
		h.add("laid out")
	}
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.add("render") }
func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err == nil {
		h.add("rendered")
	}
}

func TestRunner_Hooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	t.Cleanup(observability.Reset)

	runner := NewRunner(quietLogger())
	_, err := runner.Execute(context.Background(), Options{Input: writeFile(t, "sample.json", sampleTree)})
	if err != nil {
		t.Fatal(err)
	}

	want := "load,loaded,layout,laid out,render,rendered"
	if got := strings.Join(h.events, ","); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
}
