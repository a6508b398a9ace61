// Package hosttest provides an in-memory host.Host for tests.
//
// The fake seeds a small scene (a "persp" camera plus whatever the test
// adds), tracks every mutation in an op log, and can be scripted to fail the
// playblast call mid-flight. Its whole state can be dumped deterministically,
// which is how the restore invariant is asserted: dump, capture, dump again,
// compare.
package hosttest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/viewcap/viewcap/host"
	"github.com/viewcap/viewcap/options"
)

// Host is an in-memory implementation of host.Host.
type Host struct {
	mu sync.Mutex

	// BatchMode makes Batch() report true and ScreenSize report 0,0.
	BatchMode bool

	// FailPlayblast, when non-nil, is returned by Playblast after all
	// option scopes have been applied. Simulates a mid-flight host failure.
	FailPlayblast error

	// NoViewport2 simulates a host without the extended renderer: every
	// viewport2 option access returns host.ErrNotSupported.
	NoViewport2 bool

	// ExistingFiles marks output paths that already exist on disk, for
	// overwrite-policy tests.
	ExistingFiles map[string]bool

	// LastPlayblast records the spec of the most recent Playblast call.
	LastPlayblast *host.PlayblastSpec

	nodes     map[string]map[string]host.Value
	nodeTypes map[string]string

	panels      map[string]*panelState
	panelSerial int
	focused     string

	displayPrefs  map[string]host.Value
	displayColors map[string]host.RGB
	userPrefs     map[string]host.Value

	currentTime   float64
	playbackStart float64
	playbackEnd   float64

	resWidth  int
	resHeight int
	resAspect float64

	ops []string
}

type panelState struct {
	camera       string
	viewport     map[string]host.Value
	viewport2    map[string]host.Value
	isolate      bool
	isolateNodes []string
}

// New returns a fake host with a "persp" camera, default option state per
// namespace, a 10-frame playback range, and 1920x1080 render globals.
func New() *Host {
	h := &Host{
		ExistingFiles: make(map[string]bool),
		nodes:         make(map[string]map[string]host.Value),
		nodeTypes:     make(map[string]string),
		panels:        make(map[string]*panelState),
		displayPrefs:  make(map[string]host.Value),
		displayColors: make(map[string]host.RGB),
		userPrefs:     make(map[string]host.Value),
		currentTime:   1,
		playbackStart: 1,
		playbackEnd:   10,
		resWidth:      1920,
		resHeight:     1080,
		resAspect:     1920.0 / 1080.0,
	}
	h.AddCamera("persp")
	for name, value := range options.Defaults(options.Display) {
		if c, ok := host.AsRGB(value); ok && options.DisplayColorKeys[name] {
			h.displayColors[name] = c
			continue
		}
		h.displayPrefs[name] = value
	}
	h.userPrefs["playblastFormat"] = "qt"
	h.userPrefs["playblastCompression"] = "h264"
	h.userPrefs["playblastQuality"] = 70
	h.userPrefs["playblastOffscreen"] = false
	h.userPrefs["playblastShowOrnaments"] = true
	h.userPrefs["playblastSaveToFile"] = false
	h.userPrefs["playblastFile"] = ""
	return h
}

// AddCamera adds a camera node carrying the default camera attributes plus a
// renderable flag.
func (h *Host) AddCamera(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	attrs := make(map[string]host.Value)
	for k, v := range options.Defaults(options.Camera) {
		attrs[k] = v
	}
	attrs["rnd"] = name == "persp"
	h.nodes[name] = attrs
	h.nodeTypes[name] = "camera"
}

// AddNode adds a plain scene node with no attributes.
func (h *Host) AddNode(name, nodeType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nodes[name] = make(map[string]host.Value)
	h.nodeTypes[name] = nodeType
}

// Ops returns the mutation log accumulated so far.
func (h *Host) Ops() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.ops...)
}

// StateDump renders all mutable host state deterministically. Two dumps are
// equal exactly when the host state is identical.
func (h *Host) StateDump() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var b strings.Builder
	for _, node := range sortedKeys(h.nodes) {
		attrs := h.nodes[node]
		for _, attr := range sortedKeys(attrs) {
			fmt.Fprintf(&b, "attr %s.%s=%s\n", node, attr, host.FormatValue(attrs[attr]))
		}
	}
	for _, name := range sortedKeys(h.panels) {
		p := h.panels[name]
		fmt.Fprintf(&b, "panel %s camera=%s isolate=%v nodes=%v\n",
			name, p.camera, p.isolate, p.isolateNodes)
		for _, opt := range sortedKeys(p.viewport) {
			fmt.Fprintf(&b, "panel %s vp.%s=%s\n", name, opt, host.FormatValue(p.viewport[opt]))
		}
		for _, opt := range sortedKeys(p.viewport2) {
			fmt.Fprintf(&b, "panel %s vp2.%s=%s\n", name, opt, host.FormatValue(p.viewport2[opt]))
		}
	}
	for _, name := range sortedKeys(h.displayPrefs) {
		fmt.Fprintf(&b, "pref %s=%s\n", name, host.FormatValue(h.displayPrefs[name]))
	}
	for _, name := range sortedKeys(h.displayColors) {
		fmt.Fprintf(&b, "color %s=%s\n", name, host.FormatValue(h.displayColors[name]))
	}
	for _, name := range sortedKeys(h.userPrefs) {
		fmt.Fprintf(&b, "uservar %s=%s\n", name, host.FormatValue(h.userPrefs[name]))
	}
	fmt.Fprintf(&b, "time=%g range=%g..%g\n", h.currentTime, h.playbackStart, h.playbackEnd)
	return b.String()
}

func (h *Host) log(format string, args ...any) {
	h.ops = append(h.ops, fmt.Sprintf(format, args...))
}

// --- host.Host implementation ---

func (h *Host) NodeExists(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.nodes[name]
	return ok
}

func (h *Host) ListNodes(nodeType string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for name, t := range h.nodeTypes {
		if t == nodeType {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (h *Host) GetAttr(node, attr string) (host.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	attrs, ok := h.nodes[node]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrNodeNotFound, node)
	}
	v, ok := attrs[attr]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", host.ErrUnknownOption, node, attr)
	}
	return v, nil
}

func (h *Host) SetAttr(node, attr string, value host.Value) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	attrs, ok := h.nodes[node]
	if !ok {
		return fmt.Errorf("%w: %s", host.ErrNodeNotFound, node)
	}
	if _, ok := attrs[attr]; !ok {
		return fmt.Errorf("%w: %s.%s", host.ErrUnknownOption, node, attr)
	}
	attrs[attr] = value
	h.log("setAttr %s.%s=%s", node, attr, host.FormatValue(value))
	return nil
}

func (h *Host) CreatePanel(spec host.PanelSpec) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panelSerial++
	name := fmt.Sprintf("viewcapPanel%d", h.panelSerial)
	p := &panelState{
		camera:    "persp",
		viewport:  make(map[string]host.Value),
		viewport2: make(map[string]host.Value),
	}
	for k, v := range options.Defaults(options.Viewport) {
		p.viewport[k] = v
	}
	for k, v := range options.Defaults(options.Viewport2) {
		p.viewport2[k] = v
	}
	h.panels[name] = p
	h.log("createPanel %s %dx%d", name, spec.Width, spec.Height)
	return name, nil
}

func (h *Host) DeletePanel(panel string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.panels[panel]; !ok {
		return fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	delete(h.panels, panel)
	if h.focused == panel {
		h.focused = ""
	}
	h.log("deletePanel %s", panel)
	return nil
}

func (h *Host) SetFocus(panel string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.panels[panel]; !ok {
		return fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	h.focused = panel
	return nil
}

func (h *Host) ActivePanel() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.focused == "" {
		return "", fmt.Errorf("%w: no panel has focus", host.ErrPanelNotFound)
	}
	return h.focused, nil
}

func (h *Host) PanelCamera(panel string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.panels[panel]
	if !ok {
		return "", fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	return p.camera, nil
}

func (h *Host) LookThrough(panel, camera string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.panels[panel]
	if !ok {
		return fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	if _, ok := h.nodes[camera]; !ok {
		return fmt.Errorf("%w: %s", host.ErrNodeNotFound, camera)
	}
	p.camera = camera
	h.log("lookThrough %s %s", panel, camera)
	return nil
}

func (h *Host) ViewportOption(panel, name string) (host.Value, error) {
	return h.panelOption(panel, name, false)
}

func (h *Host) SetViewportOption(panel, name string, value host.Value) error {
	return h.setPanelOption(panel, name, value, false)
}

func (h *Host) Viewport2Option(panel, name string) (host.Value, error) {
	return h.panelOption(panel, name, true)
}

func (h *Host) SetViewport2Option(panel, name string, value host.Value) error {
	return h.setPanelOption(panel, name, value, true)
}

func (h *Host) panelOption(panel, name string, extended bool) (host.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if extended && h.NoViewport2 {
		return nil, fmt.Errorf("%w: extended renderer", host.ErrNotSupported)
	}
	p, ok := h.panels[panel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	opts := p.viewport
	if extended {
		opts = p.viewport2
	}
	v, ok := opts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	return v, nil
}

func (h *Host) setPanelOption(panel, name string, value host.Value, extended bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if extended && h.NoViewport2 {
		return fmt.Errorf("%w: extended renderer", host.ErrNotSupported)
	}
	p, ok := h.panels[panel]
	if !ok {
		return fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	opts := p.viewport
	kind := "vp"
	if extended {
		opts = p.viewport2
		kind = "vp2"
	}
	if _, ok := opts[name]; !ok {
		return fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	opts[name] = value
	h.log("%s %s.%s=%s", kind, panel, name, host.FormatValue(value))
	return nil
}

func (h *Host) DisplayPref(name string) (host.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.displayPrefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	return v, nil
}

func (h *Host) SetDisplayPref(name string, value host.Value) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.displayPrefs[name]; !ok {
		return fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	h.displayPrefs[name] = value
	h.log("displayPref %s=%s", name, host.FormatValue(value))
	return nil
}

func (h *Host) DisplayColor(name string) (host.RGB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.displayColors[name]
	if !ok {
		return host.RGB{}, fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	return c, nil
}

func (h *Host) SetDisplayColor(name string, color host.RGB) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.displayColors[name]; !ok {
		return fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	h.displayColors[name] = color
	h.log("displayColor %s=%s", name, host.FormatValue(color))
	return nil
}

func (h *Host) UserPref(name string) (host.Value, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.userPrefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	return v, nil
}

func (h *Host) SetUserPref(name string, value host.Value) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.userPrefs[name] = value
	h.log("uservar %s=%s", name, host.FormatValue(value))
	return nil
}

func (h *Host) CurrentTime() (float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentTime, nil
}

func (h *Host) SetCurrentTime(frame float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentTime = frame
	h.log("currentTime %g", frame)
	return nil
}

func (h *Host) PlaybackRange() (float64, float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.playbackStart, h.playbackEnd, nil
}

func (h *Host) SetPlaybackRange(start, end float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.playbackStart, h.playbackEnd = start, end
	h.log("playbackRange %g..%g", start, end)
	return nil
}

func (h *Host) DefaultResolution() (int, int, float64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.resWidth, h.resHeight, h.resAspect, nil
}

func (h *Host) SetDefaultResolution(width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resWidth, h.resHeight = width, height
	h.log("defaultResolution %dx%d", width, height)
	return nil
}

// SeedResolution adjusts the render globals seeded by New, including the
// device aspect ratio.
func (h *Host) SeedResolution(width, height int, aspect float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resWidth, h.resHeight, h.resAspect = width, height, aspect
}

func (h *Host) IsolateSelect(panel string, on bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.panels[panel]
	if !ok {
		return fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	p.isolate = on
	if !on {
		p.isolateNodes = nil
	}
	h.log("isolate %s=%v", panel, on)
	return nil
}

func (h *Host) IsolateNode(panel, node string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.panels[panel]
	if !ok {
		return fmt.Errorf("%w: %s", host.ErrPanelNotFound, panel)
	}
	if _, ok := h.nodes[node]; !ok {
		return fmt.Errorf("%w: %s", host.ErrNodeNotFound, node)
	}
	p.isolateNodes = append(p.isolateNodes, node)
	h.log("isolateNode %s %s", panel, node)
	return nil
}

func (h *Host) ScreenSize() (int, int) {
	if h.Batch() {
		return 0, 0
	}
	return 2560, 1440
}

func (h *Host) Batch() bool { return h.BatchMode }

func (h *Host) Playblast(ctx context.Context, spec host.PlayblastSpec) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.panels[spec.Panel]; !ok {
		return "", fmt.Errorf("%w: %s", host.ErrPanelNotFound, spec.Panel)
	}
	specCopy := spec
	h.LastPlayblast = &specCopy
	h.log("playblast %s %dx%d", spec.Panel, spec.Width, spec.Height)
	if h.FailPlayblast != nil {
		return "", h.FailPlayblast
	}
	path := h.outputPath(spec)
	if path != "" && h.ExistingFiles[path] && !spec.ForceOverwrite {
		return "", fmt.Errorf("output already exists: %s", path)
	}
	return path, nil
}

// outputPath mirrors how the real host names its output: movie formats get
// one container file, image formats get a frame-padded sequence pattern.
func (h *Host) outputPath(spec host.PlayblastSpec) string {
	if spec.CompleteFilename != "" {
		return spec.CompleteFilename
	}
	if spec.Filename == "" {
		return ""
	}
	if spec.Format == "image" {
		return fmt.Sprintf("%s.####.%s", spec.Filename, spec.Compression)
	}
	return spec.Filename + ".mov"
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
