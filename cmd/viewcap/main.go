// main.go — Entry point for the viewcap CLI.
// Drives a running content-creation application's playblast over the
// hostbridge command socket.
//
// Usage: viewcap <command> [--flags]
//
// Commands: capture, snap, view, apply, scene, presets
//
// Exit codes:
//
//	0 = success
//	1 = error (host call failed)
//	2 = usage error (missing args, invalid flags)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viewcap/viewcap"
	"github.com/viewcap/viewcap/cmd/viewcap/config"
	"github.com/viewcap/viewcap/hostbridge"
	"github.com/viewcap/viewcap/internal/state"
	"github.com/viewcap/viewcap/options"
)

// version is set at build time via -ldflags.
var version = "2.1.0"

const usageText = `viewcap — scripted viewport capture for a running host application

Usage:
  viewcap <command> [--flags]

Commands:
  capture      Playblast a frame range to image sequence or movie
  snap         Capture a single frame to an image
  view         Print the active panel's option state as a preset
  apply        Apply a preset's options to the active panel, permanently
  scene        Print the scene-level capture settings
  presets      List stored presets

Global Flags:
  --host <url>        Plugin command socket (default: ws://127.0.0.1:4794/cmd)
  --timeout <ms>      Bridge dial timeout in ms (default: 5000)
  --output-dir <dir>  Directory for relative output filenames
  --version           Show version
  --help              Show this help

Examples:
  viewcap capture --camera shotCam --width 1280 --height 720 --out shot_010
  viewcap capture --preset dailies --start 100 --end 150 --out shot_010
  viewcap snap --frame 42 --out thumbnail
  viewcap view > current-look.yaml
  viewcap apply current-look.yaml
`

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the main entry point, separated for testability.
// Returns the exit code.
func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("viewcap %s\n", version)
			return 0
		}
		if arg == "--help" || arg == "-h" {
			fmt.Print(usageText)
			return 0
		}
	}

	command := args[0]
	if command == "help" {
		fmt.Print(usageText)
		return 0
	}

	switch command {
	case "capture", "snap":
		return runCapture(command, args[1:])
	case "view":
		return runView(args[1:])
	case "apply":
		return runApply(args[1:])
	case "scene":
		return runScene(args[1:])
	case "presets":
		return runPresets()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}
}

// globalFlags registers the cascade-overriding flags on a flag set and
// returns the overrides struct the parsed values land in.
func globalFlags(fs *flag.FlagSet) *config.FlagOverrides {
	overrides := &config.FlagOverrides{
		HostURL:   fs.String("host", "", "plugin command socket URL"),
		TimeoutMS: fs.Int("timeout", 0, "bridge dial timeout in ms"),
		OutputDir: fs.String("output-dir", "", "directory for relative output filenames"),
	}
	return overrides
}

// loadConfig resolves the cascade, treating unset flag values as absent.
func loadConfig(overrides *config.FlagOverrides) (config.Config, error) {
	if overrides.HostURL != nil && *overrides.HostURL == "" {
		overrides.HostURL = nil
	}
	if overrides.TimeoutMS != nil && *overrides.TimeoutMS == 0 {
		overrides.TimeoutMS = nil
	}
	if overrides.OutputDir != nil && *overrides.OutputDir == "" {
		overrides.OutputDir = nil
	}
	return config.Load(overrides)
}

func connect(cfg config.Config) (*hostbridge.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.TimeoutMS)*time.Millisecond)
	defer cancel()
	client, err := hostbridge.Dial(ctx, cfg.HostURL)
	if err != nil {
		if hostbridge.IsConnectionError(err) {
			return nil, fmt.Errorf("no host application listening on %s (is the viewcap plugin loaded?)", cfg.HostURL)
		}
		return nil, err
	}
	return client, nil
}

func runCapture(command string, args []string) int {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	overrides := globalFlags(fs)

	camera := fs.String("camera", "", "camera to look through (default persp)")
	width := fs.Int("width", 0, "output width in pixels")
	height := fs.Int("height", 0, "output height in pixels")
	out := fs.String("out", "", "output filename stem")
	start := fs.Float64("start", 0, "start frame")
	end := fs.Float64("end", 0, "end frame")
	frame := fs.Float64("frame", 0, "single frame (snap)")
	format := fs.String("format", "", "output format")
	compression := fs.String("compression", "", "output compression")
	quality := fs.Int("quality", 0, "compression quality 0-100")
	offScreen := fs.Bool("off-screen", false, "render off screen")
	noViewer := fs.Bool("no-viewer", false, "do not open the result in the host player")
	overwrite := fs.Bool("overwrite", false, "replace an existing output file")
	isolate := fs.String("isolate", "", "comma-separated nodes to isolate")
	presetName := fs.String("preset", "", "stored preset to apply")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		return 2
	}

	req := viewcap.NewRequest()
	if *presetName != "" {
		path, err := state.PresetFile(*presetName)
		if err == nil {
			var preset *options.Preset
			preset, err = options.LoadPreset(path)
			if err == nil {
				req = viewcap.ApplyPreset(req, preset)
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: preset %q: %v\n", *presetName, err)
			return 2
		}
	}

	if *camera != "" {
		req.Camera = *camera
	}
	if *width > 0 {
		req.Width = *width
	}
	if *height > 0 {
		req.Height = *height
		req.MaintainAspectRatio = false
	}
	if *out != "" {
		req.Filename = *out
		if cfg.OutputDir != "" && !filepath.IsAbs(*out) {
			req.Filename = filepath.Join(cfg.OutputDir, *out)
		}
	}
	frameFlags(fs, &req, start, end, frame)
	if *format != "" {
		req.Format = *format
	}
	if *compression != "" {
		req.Compression = *compression
	}
	if *quality > 0 {
		req.Quality = *quality
	}
	req.OffScreen = *offScreen
	req.Overwrite = *overwrite
	if *noViewer {
		req.Viewer = false
	}
	if *isolate != "" {
		req.Isolate = strings.Split(*isolate, ",")
	}

	client, err := connect(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	var path string
	if command == "snap" {
		path, err = viewcap.Snap(context.Background(), client, req)
	} else {
		path, err = viewcap.Capture(context.Background(), client, req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", command, err)
		return 1
	}
	if path != "" {
		fmt.Println(path)
	}
	return 0
}

// frameFlags applies the frame-range flags that were explicitly passed.
// Presence is tracked through fs.Visit rather than zero values, so frame 0
// is selectable from the command line.
func frameFlags(fs *flag.FlagSet, req *viewcap.Request, start, end, frame *float64) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "start":
			req.StartFrame = start
		case "end":
			req.EndFrame = end
		case "frame":
			req.Frames = []float64{*frame}
		}
	})
}

// runView prints the active panel's parsed option state as preset YAML, so
// `viewcap view > look.yaml` round-trips into --preset.
func runView(args []string) int {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	overrides := globalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := loadConfig(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		return 2
	}

	client, err := connect(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	view, err := viewcap.ParseActiveView(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse view: %v\n", err)
		return 1
	}

	preset := options.NewPreset()
	preset.Camera = &view.Camera
	preset.ViewportOptions = view.ViewportOptions
	preset.Viewport2Options = view.Viewport2Options
	preset.CameraOptions = view.CameraOptions
	preset.DisplayOptions = view.DisplayOptions
	return printYAML(preset)
}

// runApply writes a preset's option sets onto the active panel for good.
// The preset comes from a YAML file argument, or --preset for a stored one.
func runApply(args []string) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	overrides := globalFlags(fs)
	presetName := fs.String("preset", "", "stored preset to apply")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path := fs.Arg(0)
	if path == "" && *presetName == "" {
		fmt.Fprintln(os.Stderr, "Error: apply needs a preset file argument or --preset")
		return 2
	}
	if path == "" {
		var err error
		path, err = state.PresetFile(*presetName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: preset %q: %v\n", *presetName, err)
			return 2
		}
	}
	preset, err := options.LoadPreset(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load preset: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		return 2
	}
	client, err := connect(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	panel, err := client.ActivePanel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: active panel: %v\n", err)
		return 1
	}
	view := viewcap.View{
		ViewportOptions:  preset.ViewportOptions,
		Viewport2Options: preset.Viewport2Options,
		CameraOptions:    preset.CameraOptions,
		DisplayOptions:   preset.DisplayOptions,
	}
	if err := viewcap.ApplyView(client, panel, view); err != nil {
		fmt.Fprintf(os.Stderr, "Error: apply: %v\n", err)
		return 1
	}
	return 0
}

func runScene(args []string) int {
	fs := flag.NewFlagSet("scene", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	overrides := globalFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, err := loadConfig(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration: %v\n", err)
		return 2
	}

	client, err := connect(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = client.Close() }()

	scene, err := viewcap.ParseActiveScene(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: parse scene: %v\n", err)
		return 1
	}
	return printYAML(scene)
}

func runPresets() int {
	dir, err := state.PresetsDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	names, err := options.ListPresets(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return 0
}

func printYAML(v any) int {
	data, err := yaml.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode: %v\n", err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}
