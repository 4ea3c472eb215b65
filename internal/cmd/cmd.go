// Package cmd is the kong command-line front end.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"meshview/app"
	"meshview/hal"
	"meshview/internal/buildinfo"
	"meshview/internal/config"
	"meshview/internal/snapshot"
	"meshview/internal/ui"
	"meshview/mesh"
	"meshview/raster"
)

type CLI struct {
	View    *ViewCmd    `cmd:"" default:"withargs" help:"Open a window and view a mesh"`
	Render  *RenderCmd  `cmd:"" help:"Render frames to image files without a window"`
	Info    *InfoCmd    `cmd:"" help:"Show the groups and objects of a mesh"`
	Version *VersionCmd `cmd:"" help:"Show version information"`
}

// Source is shared by every command that loads a mesh.
type Source struct {
	Config string `help:"YAML configuration file" short:"c" type:"path"`
	Mesh   string `help:"Mesh file (.obj or .stl), overrides the configuration" short:"m" type:"path"`
}

// load returns the configuration and the mesh it points at.
func (s Source) load() (*config.Config, *mesh.Mesh, error) {
	loader := config.NewLoader()
	cfg := config.Default()
	if s.Config != "" {
		var err error
		cfg, err = loader.Load(s.Config)
		if err != nil {
			return nil, nil, err
		}
	}
	if s.Mesh != "" {
		cfg.Mesh = s.Mesh
	}
	if err := loader.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	m, err := mesh.Load(cfg.Mesh)
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func viewerConfig(cfg *config.Config) app.Config {
	return app.Config{
		Camera:     cfg.SceneCamera(),
		Rules:      cfg.Rules(),
		Step:       cfg.Step,
		Background: cfg.BackgroundColor(),
		HUD:        cfg.HUD,
		MeshPath:   cfg.Mesh,
	}
}

type ViewCmd struct {
	Source `embed:""`
	Watch bool `help:"Reload the mesh when the file changes"`
	Scale int  `help:"Window scale factor" default:"1"`
}

func (c *ViewCmd) Help() string {
	return renderViewHelp()
}

func (c *ViewCmd) Run() error {
	cfg, m, err := c.load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := hal.Options{Width: cfg.Window.Width, Height: cfg.Window.Height, Log: os.Stderr}
	win := hal.WindowConfig{Title: cfg.Window.Title, Scale: c.Scale}
	return hal.RunWindow(opts, win, func(h hal.HAL) func() error {
		v := app.New(h, viewerConfig(cfg), m)
		if c.Watch {
			go func() {
				if err := v.Watch(ctx); err != nil {
					hal.Logf(h.Logger(), "watch: %v", err)
				}
			}()
		}
		return v.StepFunc()
	})
}

type RenderCmd struct {
	Source `embed:""`
	Out     string  `help:"Output path; the extension picks the format (png, bmp, tif). A %d verb numbers the frames" short:"o" default:"frame.png"`
	Angle   float64 `help:"Rotation of the first frame in degrees"`
	Frames  int     `help:"Number of frames to render" default:"1"`
	Step    float64 `help:"Degrees between frames (default: the configured step)"`
	Verbose bool    `help:"Log every frame" short:"v"`
}

func (c *RenderCmd) Help() string {
	return renderRenderHelp()
}

func (c *RenderCmd) Run() error {
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	cfg, m, err := c.load()
	if err != nil {
		return err
	}
	step := c.Step
	if step == 0 {
		step = cfg.Step
	}

	var log io.Writer = io.Discard
	if c.Verbose {
		log = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ui.PrintStep(fmt.Sprintf("Rendering %d frame(s) at %dx%d", c.Frames, cfg.Window.Width, cfg.Window.Height))

	type frame struct {
		path  string
		stats raster.Stats
	}
	var written []frame
	opts := hal.Options{Width: cfg.Window.Width, Height: cfg.Window.Height, Log: log}
	err = hal.RunHeadless(ctx, opts, func(h hal.HAL) func() error {
		v := app.New(h, viewerConfig(cfg), m)
		return func() error {
			i := len(written)
			v.SetAngle(c.Angle + float64(i)*step)
			st := v.Render()
			path := snapshot.FramePath(c.Out, i, c.Frames)
			if err := snapshot.Save(path, v.Snapshot()); err != nil {
				return err
			}
			written = append(written, frame{path: path, stats: st})
			return nil
		}
	}, hal.HeadlessConfig{Hz: 1000, Ticks: uint64(c.Frames)})
	if err != nil {
		return err
	}

	for _, f := range written {
		ui.PrintItem(f.path)
		ui.PrintInfo(f.stats.String())
		if f.stats.Fragments == 0 {
			ui.PrintWarning(f.path + ": nothing visible; check camera offset and scale")
		}
	}
	ui.PrintSuccess(fmt.Sprintf("Rendered %d frame(s)", len(written)))
	return nil
}

type InfoCmd struct {
	Source `embed:""`
}

func (c *InfoCmd) Run() error {
	cfg, m, err := c.load()
	if err != nil {
		return err
	}

	ui.PrintTitle(cfg.Mesh)
	if c.Config == "" {
		ui.PrintInfo("built-in configuration")
	}
	ui.PrintKeyValue("Triangles", fmt.Sprint(m.TriangleCount()))
	b := m.Bounds
	ui.PrintKeyValue("Bounds X", fmt.Sprintf("%g .. %g", b.MinX, b.MaxX))
	ui.PrintKeyValue("Bounds Y", fmt.Sprintf("%g .. %g", b.MinY, b.MaxY))
	ui.PrintKeyValue("Bounds Z", fmt.Sprintf("%g .. %g", b.MinZ, b.MaxZ))

	ui.PrintHeader("Groups")
	ui.PrintTableHeader("Name", "Triangles")
	for _, g := range m.Groups {
		ui.PrintTableRow(g.Name, fmt.Sprint(len(g.Triangles)))
	}

	ui.PrintHeader("Objects")
	ui.PrintTableHeader("Name", "Triangles", "Color")
	for _, o := range m.Scene(cfg.Rules()).Objects {
		ui.PrintTableRow(o.Name, fmt.Sprint(o.Len()), fmt.Sprintf("#%02x%02x%02x", o.Color.R, o.Color.G, o.Color.B))
	}
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Fprintln(ui.Out, "meshview "+buildinfo.Long())
	return nil
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("meshview"),
		kong.Description("Software renderer and viewer for OBJ and STL meshes"),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
