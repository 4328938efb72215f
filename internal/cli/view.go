package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/pipeline"
	"github.com/matzehuels/flametower/pkg/render/flame/anim"
	"github.com/matzehuels/flametower/pkg/render/flame/layout"
	"github.com/matzehuels/flametower/pkg/render/flame/selection"
	"github.com/matzehuels/flametower/pkg/render/flame/sink"
	"github.com/matzehuels/flametower/pkg/tree"
)

const (
	headerRows  = 1
	footerRows  = 1
	panFraction = 0.1
	zoomStep    = 1.25
	decayStep   = 1.0
)

const helpLine = "click zoom · ←↓↑→/hjkl pan · +/- zoom · [/] decay · r renderer · esc reset · q quit"

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var config, logFile string
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Explore a call tree as an animated flamechart in the terminal",
		Long: `Explore a call tree as an animated flamechart in the terminal.

Click a frame to zoom to it and click the background (or press esc) to zoom
back out. Each change of view is animated by the selected renderer; press r to
cycle between the incremental, declarative and spring renderers, and [ or ]
to change how quickly the incremental renderer converges.

The viewer owns the terminal, so logs go to --log-file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), config, &opts); err != nil {
				return err
			}
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return c.runView(cmd.Context(), opts, logFile)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&config, "config", "", "options file (.toml, .yaml or .json); flags override it")
	fs.StringVar(&logFile, "log-file", "", "append logs to this file")
	fs.StringVar(&opts.Focus, "focus", "", "start zoomed to the frame with this id")
	fs.IntVar(&opts.FPS, "fps", 0, "frame rate (default 60)")
	addLoadFlags(fs, &opts)
	addLayoutFlags(fs, &opts)
	addAnimFlags(fs, &opts)

	return cmd
}

func (c *CLI) runView(ctx context.Context, opts pipeline.Options, logFile string) error {
	logger, closeLog, err := c.viewLogger(logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	c.registerHooks(logger)
	defer c.registerHooks(c.Logger)

	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(logger)
	root, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	rects, err := runner.ComputeLayout(ctx, root, opts)
	if err != nil {
		return err
	}

	v, err := newViewer(root, rects, opts, logger)
	if err != nil {
		return err
	}
	defer v.close()

	p := tea.NewProgram(v, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	if fv, ok := final.(*viewer); ok && fv.err != nil {
		return fv.err
	}
	return nil
}

// viewLogger opens the viewer's log destination. Without a file, logs are
// discarded.
func (c *CLI) viewLogger(path string) (*log.Logger, func(), error) {
	level := c.Logger.GetLevel()
	if path == "" {
		return newLogger(io.Discard, level), func() {}, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", path)
	}
	return newLogger(f, level), func() { f.Close() }, nil
}

// frameMsg carries the tick time of one animation frame.
type frameMsg time.Time

// viewer is the bubbletea model of the interactive flamechart. Input goes
// through the selection controller; every change of view becomes a
// renderer transition, and frames are ticked while the renderer runs.
type viewer struct {
	logger   *log.Logger
	title    string
	rects    []layout.DrawRect
	opts     pipeline.Options
	interval time.Duration

	scene    *sink.Scene
	term     *sink.Terminal
	ctrl     *selection.Controller
	renderer anim.Renderer
	kind     anim.Kind
	decay    float64

	focus   tree.ID // applied on the first resize, once the width is known
	ticking bool
	cols    int
	rows    int
	err     error
}

func newViewer(root *tree.Node, rects []layout.DrawRect, opts pipeline.Options, logger *log.Logger) (*viewer, error) {
	kind, err := opts.Kind()
	if err != nil {
		return nil, err
	}
	scene := sink.NewScene()
	r, err := anim.New(kind, scene, opts.AnimOptions()...)
	if err != nil {
		return nil, err
	}
	return &viewer{
		logger:   logger,
		title:    root.DisplayLabel(),
		rects:    rects,
		opts:     opts,
		interval: opts.FrameInterval(),
		scene:    scene,
		term:     sink.NewTerminal(0, 0),
		ctrl:     selection.New(rects, 0),
		renderer: r,
		kind:     kind,
		decay:    anim.ClampDecay(opts.Decay),
		focus:    tree.ID(opts.Focus),
	}, nil
}

func (v *viewer) close() {
	v.renderer.Close()
}

func (v *viewer) Init() tea.Cmd {
	return nil
}

func (v *viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return v, v.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case tea.MouseMsg:
		return v, v.handleMouse(msg)
	case frameMsg:
		return v, v.frame(time.Time(msg))
	}
	return v, nil
}

func (v *viewer) resize(width, height int) tea.Cmd {
	v.cols = max(width, 0)
	v.rows = max(height-headerRows-footerRows, 0)
	v.term.Resize(v.cols, v.rows)
	v.ctrl.Resize(v.term.Viewport().Width)
	if v.focus != "" {
		v.ctrl.Click(v.focus)
		if v.ctrl.Selection() == nil {
			v.logger.Warn("focus node not found", "focus", v.focus)
		}
		v.focus = ""
	}
	return v.transition()
}

func (v *viewer) handleKey(msg tea.KeyMsg) tea.Cmd {
	pan := v.term.Viewport().Width * panFraction
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "esc":
		v.ctrl.Clear()
	case "left", "h":
		v.ctrl.Pan(pan, 0)
	case "right", "l":
		v.ctrl.Pan(-pan, 0)
	case "up", "k":
		v.ctrl.Pan(0, sink.DefaultCellHeight)
	case "down", "j":
		v.ctrl.Pan(0, -sink.DefaultCellHeight)
	case "+", "=":
		v.ctrl.Zoom(zoomStep)
	case "-", "_":
		v.ctrl.Zoom(1 / zoomStep)
	case "[":
		return v.setDecay(v.decay - decayStep)
	case "]":
		return v.setDecay(v.decay + decayStep)
	case "r":
		return v.switchRenderer(v.kind.Next())
	default:
		return nil
	}
	return v.transition()
}

func (v *viewer) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.ctrl.Zoom(zoomStep)
	case tea.MouseButtonWheelDown:
		v.ctrl.Zoom(1 / zoomStep)
	case tea.MouseButtonLeft:
		row := msg.Y - headerRows
		if row < 0 || row >= v.rows {
			return nil
		}
		id, _ := v.scene.HitTest(v.term.PointAt(msg.X, row))
		v.ctrl.Click(id)
	default:
		return nil
	}
	return v.transition()
}

// switchRenderer replaces the strategy. The old renderer detaches its
// elements and the new one starts from an empty scene.
func (v *viewer) switchRenderer(kind anim.Kind) tea.Cmd {
	r, err := anim.New(kind, v.scene, v.opts.AnimOptions()...)
	if err != nil {
		return v.fail(err)
	}
	v.renderer.Close()
	v.renderer, v.kind = r, kind
	v.logger.Info("switched renderer", "renderer", kind)
	return v.transition()
}

// setDecay applies a new speed to the running renderer. Strategies that
// ignore decay pick it up on their next transition.
func (v *viewer) setDecay(decay float64) tea.Cmd {
	v.decay = anim.ClampDecay(decay)
	if ds, ok := v.renderer.(anim.DecaySetter); ok {
		if err := ds.SetDecay(v.decay); err != nil {
			return v.fail(err)
		}
	}
	return nil
}

func (v *viewer) transition() tea.Cmd {
	if err := v.renderer.Transition(v.rects, v.ctrl.Transform(), v.term.Viewport(), v.decay); err != nil {
		return v.fail(err)
	}
	return v.schedule()
}

// schedule asks for the next frame unless one is already pending.
func (v *viewer) schedule() tea.Cmd {
	if v.ticking || !v.renderer.Running() {
		return nil
	}
	v.ticking = true
	return tea.Tick(v.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (v *viewer) frame(now time.Time) tea.Cmd {
	v.ticking = false
	more, err := v.renderer.Frame(now)
	if err != nil {
		return v.fail(err)
	}
	if !more {
		return nil
	}
	return v.schedule()
}

// fail records err and quits. Inconsistent renderer state is a defect,
// not something the user can fix by interacting further.
func (v *viewer) fail(err error) tea.Cmd {
	v.err = err
	if errors.IsFatalDefect(err) {
		v.logger.Error("renderer state is inconsistent", "renderer", v.kind, "err", err)
	} else {
		v.logger.Error("transition failed", "renderer", v.kind, "err", err)
	}
	return tea.Quit
}

func (v *viewer) View() string {
	if v.cols == 0 {
		return ""
	}
	line := lipgloss.NewStyle().MaxWidth(v.cols)

	var b strings.Builder
	b.WriteString(line.Render(v.header()))
	b.WriteByte('\n')
	b.WriteString(v.term.Paint(v.scene.Elements(), v.selectedID()))
	b.WriteByte('\n')
	b.WriteString(line.Render(StyleDim.Render(helpLine)))
	return b.String()
}

func (v *viewer) header() string {
	sep := StyleDim.Render(" · ")
	h := StyleTitle.Render(appName) + " " + StyleValue.Render(v.title) +
		sep + StyleDim.Render(v.kind.String()) +
		sep + StyleDim.Render(fmt.Sprintf("decay %.0f", v.decay))
	if sel := v.ctrl.Selection(); sel != nil {
		h += sep + StyleNumber.Render(sel.Label)
		if n := sel.Node; n != nil {
			h += StyleDim.Render(fmt.Sprintf(" self %s total %s", formatWeight(n.WeightExcl), formatWeight(n.WeightIncl)))
		}
	}
	return h
}

func (v *viewer) selectedID() tree.ID {
	if sel := v.ctrl.Selection(); sel != nil {
		return sel.ID
	}
	return ""
}
