// viewcap.go — Request defaults and the scoped capture session.
package viewcap

import (
	"context"
	"errors"
	"fmt"

	"github.com/viewcap/viewcap/host"
	"github.com/viewcap/viewcap/options"
	"github.com/viewcap/viewcap/scope"
)

const (
	// DefaultCamera is used when a request names no camera.
	DefaultCamera = "persp"

	// panelPadding extends the capture panel past the output size so window
	// manager decoration cannot clip the rendered region.
	panelPadding = 10
)

// Request holds the parameters of one capture. The zero value is not the
// documented baseline; start from NewRequest and override fields.
type Request struct {
	// Camera is the camera to look through. Empty means DefaultCamera.
	Camera string

	// Width and Height of the output in pixels. Zero falls back to the
	// host's default render resolution.
	Width  int
	Height int

	// MaintainAspectRatio recomputes Height from Width and the host's
	// device aspect ratio.
	MaintainAspectRatio bool

	// Filename is the output stem. Empty means the host saves no file.
	Filename string

	// CompleteFilename overrides Filename with an exact output name,
	// excluding frame padding.
	CompleteFilename string

	// StartFrame and EndFrame bound the captured range. Nil falls back to
	// the host's playback range.
	StartFrame *float64
	EndFrame   *float64

	// Frames selects explicit frames instead of the start..end range.
	Frames []float64

	// RawFrameNumbers keeps scene frame numbers in the output sequence
	// instead of renumbering from zero. Forces Viewer off.
	RawFrameNumbers bool

	Format      string
	Compression string
	Quality     int

	// OffScreen renders without bringing the panel forward; Viewer opens
	// the produced media in the host's player afterwards.
	OffScreen bool
	Viewer    bool

	ShowOrnaments bool

	// Overwrite allows replacing an existing output file.
	Overwrite bool

	// Isolate restricts the capture panel to these nodes. Nil means no
	// isolation; an empty non-nil list hides everything.
	Isolate []string

	// Option overrides per namespace, merged over the documented defaults.
	ViewportOptions  options.Set
	Viewport2Options options.Set
	CameraOptions    options.Set
	DisplayOptions   options.Set
}

// NewRequest returns a request with the documented baseline parameters:
// qt/h264 at quality 100, aspect ratio maintained, viewer on.
func NewRequest() Request {
	return Request{
		Format:              "qt",
		Compression:         "h264",
		Quality:             100,
		MaintainAspectRatio: true,
		Viewer:              true,
		ShowOrnaments:       true,
	}
}

// Capture runs the host's playblast inside a temporary panel configured per
// the request, and returns the path of the produced media.
//
// Host state the session touches — panel existence, panel camera, viewport
// options, camera attributes, global display preferences, renderable flags,
// isolate state, current time — is restored before Capture returns,
// whether the export succeeds or fails.
func Capture(ctx context.Context, h host.Host, req Request) (out string, err error) {
	camera := req.Camera
	if camera == "" {
		camera = DefaultCamera
	}
	if !h.NodeExists(camera) {
		return "", fmt.Errorf("camera %q: %w", camera, host.ErrNodeNotFound)
	}

	width, height, err := resolveResolution(h, req)
	if err != nil {
		return "", err
	}
	start, end, err := resolveRange(h, req)
	if err != nil {
		return "", err
	}

	viewer := req.Viewer
	if req.RawFrameNumbers {
		// The host cannot hand a raw-numbered sequence to its player.
		viewer = false
	}

	var scopes scope.Stack
	defer func() { err = errors.Join(err, scopes.Unwind()) }()

	panel, err := openPanel(h, &scopes, width, height)
	if err != nil {
		return "", err
	}
	if err := h.SetFocus(panel); err != nil {
		return "", fmt.Errorf("focus panel: %w", err)
	}

	if err := scopes.Enter("camera", func() (scope.RestoreFunc, error) {
		return maintainedCamera(h, panel, camera)
	}); err != nil {
		return "", err
	}

	if err := applyOptionScopes(h, &scopes, panel, camera, req); err != nil {
		return "", err
	}

	if req.Isolate != nil {
		if err := scopes.Enter("isolate", func() (scope.RestoreFunc, error) {
			return isolatedNodes(h, panel, req.Isolate)
		}); err != nil {
			return "", err
		}
	}

	if err := scopes.Enter("time", func() (scope.RestoreFunc, error) {
		return maintainedTime(h)
	}); err != nil {
		return "", err
	}

	out, err = h.Playblast(ctx, host.PlayblastSpec{
		Panel:            panel,
		Filename:         req.Filename,
		CompleteFilename: req.CompleteFilename,
		Format:           req.Format,
		Compression:      req.Compression,
		Quality:          req.Quality,
		Percent:          100,
		Width:            width,
		Height:           height,
		StartFrame:       start,
		EndFrame:         end,
		Frames:           req.Frames,
		Viewer:           viewer,
		OffScreen:        req.OffScreen,
		ShowOrnaments:    req.ShowOrnaments,
		ForceOverwrite:   req.Overwrite,
		RawFrameNumbers:  req.RawFrameNumbers,
	})
	if err != nil {
		return "", fmt.Errorf("playblast: %w", err)
	}
	return out, nil
}

// resolveResolution fills unset dimensions from the host's render globals
// and applies the aspect-ratio policy.
func resolveResolution(h host.Host, req Request) (width, height int, err error) {
	defWidth, defHeight, aspect, err := h.DefaultResolution()
	if err != nil {
		return 0, 0, fmt.Errorf("default resolution: %w", err)
	}
	width, height = req.Width, req.Height
	if width == 0 {
		width = defWidth
	}
	if height == 0 {
		height = defHeight
	}
	if req.MaintainAspectRatio && aspect > 0 {
		height = int(float64(width)/aspect + 0.5)
	}
	return width, height, nil
}

// resolveRange fills unset frame bounds from the host's playback range.
func resolveRange(h host.Host, req Request) (start, end float64, err error) {
	if req.StartFrame != nil && req.EndFrame != nil {
		return *req.StartFrame, *req.EndFrame, nil
	}
	playStart, playEnd, err := h.PlaybackRange()
	if err != nil {
		return 0, 0, fmt.Errorf("playback range: %w", err)
	}
	start, end = playStart, playEnd
	if req.StartFrame != nil {
		start = *req.StartFrame
	}
	if req.EndFrame != nil {
		end = *req.EndFrame
	}
	return start, end, nil
}

// openPanel creates the temporary undecorated panel, centered on screen and
// padded past the output size, and registers its teardown.
func openPanel(h host.Host, scopes *scope.Stack, width, height int) (string, error) {
	screenWidth, screenHeight := h.ScreenSize()
	spec := host.PanelSpec{
		Width:  width + panelPadding,
		Height: height + panelPadding,
		Left:   (screenWidth - width) / 2,
		Top:    (screenHeight - height) / 2,
		Label:  "viewcap",
	}
	if spec.Left < 0 {
		spec.Left = 0
	}
	if spec.Top < 0 {
		spec.Top = 0
	}
	panel, err := h.CreatePanel(spec)
	if err != nil {
		return "", fmt.Errorf("panel scope: %w", err)
	}
	scopes.Push("panel", func() error {
		return h.DeletePanel(panel)
	})
	return panel, nil
}

// maintainedCamera binds the capture camera to the panel. With a UI the
// binding dies with the temporary panel and needs no restore. In batch mode
// there is no look-through, so camera selection happens through renderable
// flags, which are snapshotted across all cameras and restored.
func maintainedCamera(h host.Host, panel, camera string) (scope.RestoreFunc, error) {
	if !h.Batch() {
		if err := h.LookThrough(panel, camera); err != nil {
			return nil, err
		}
		return nil, nil
	}

	cameras, err := h.ListNodes("camera")
	if err != nil {
		return nil, err
	}
	renderable := make(map[string]host.Value, len(cameras))
	for _, name := range cameras {
		v, err := h.GetAttr(name, "rnd")
		if err != nil {
			return nil, err
		}
		renderable[name] = v
	}
	if err := h.SetAttr(camera, "rnd", true); err != nil {
		return nil, err
	}
	return func() error {
		var restoreErr error
		for _, name := range cameras {
			if err := h.SetAttr(name, "rnd", renderable[name]); err != nil {
				restoreErr = errors.Join(restoreErr, err)
			}
		}
		return restoreErr
	}, nil
}

// applyOptionScopes merges each namespace's overrides with its defaults and
// applies them as one scope per namespace, display state first.
func applyOptionScopes(h host.Host, scopes *scope.Stack, panel, camera string, req Request) error {
	for _, ns := range options.Namespaces {
		desired := options.Merge(options.Defaults(ns), req.optionsFor(ns))
		target := accessorFor(h, ns, panel, camera)

		err := scopes.Enter(string(ns), func() (scope.RestoreFunc, error) {
			return scope.Applied(target, desired)
		})
		if err == nil {
			continue
		}
		// Hosts without the extended renderer reject the whole namespace;
		// skip it unless the caller asked for it explicitly.
		if ns == options.Viewport2 && errors.Is(err, host.ErrNotSupported) && len(req.Viewport2Options) == 0 {
			continue
		}
		return err
	}
	return nil
}

func (r Request) optionsFor(ns options.Namespace) options.Set {
	switch ns {
	case options.Viewport:
		return r.ViewportOptions
	case options.Viewport2:
		return r.Viewport2Options
	case options.Camera:
		return r.CameraOptions
	case options.Display:
		return r.DisplayOptions
	}
	return nil
}

// isolatedNodes restricts the panel to the given nodes for the scope's
// duration.
func isolatedNodes(h host.Host, panel string, nodes []string) (scope.RestoreFunc, error) {
	if err := h.IsolateSelect(panel, true); err != nil {
		return nil, err
	}
	for _, node := range nodes {
		if err := h.IsolateNode(panel, node); err != nil {
			err = fmt.Errorf("isolate %s: %w", node, err)
			if rerr := h.IsolateSelect(panel, false); rerr != nil {
				err = errors.Join(err, rerr)
			}
			return nil, err
		}
	}
	return func() error { return h.IsolateSelect(panel, false) }, nil
}

// maintainedTime snapshots the playback cursor; the export scrubs through
// the frame range and must not move it permanently.
func maintainedTime(h host.Host) (scope.RestoreFunc, error) {
	current, err := h.CurrentTime()
	if err != nil {
		return nil, err
	}
	return func() error { return h.SetCurrentTime(current) }, nil
}
