// host.go — Host interface and the request structs for its two compound calls.
package host

import "context"

// Host is the narrow scripting surface viewcap needs from the application.
// All methods are synchronous; Playblast blocks for the duration of the
// export. Implementations are not required to be safe for concurrent use —
// viewcap never issues overlapping calls.
type Host interface {
	// NodeExists reports whether a scene node with the given name exists.
	NodeExists(name string) bool

	// ListNodes returns the names of all nodes of the given type,
	// e.g. ListNodes("camera").
	ListNodes(nodeType string) ([]string, error)

	// GetAttr reads a node attribute such as "persp.displayGateMask".
	GetAttr(node, attr string) (Value, error)

	// SetAttr writes a node attribute.
	SetAttr(node, attr string, value Value) error

	// CreatePanel creates an undecorated model panel in its own window and
	// returns the panel name. The panel does not survive the session; it is
	// the caller's job to delete it.
	CreatePanel(spec PanelSpec) (string, error)

	// DeletePanel destroys a panel and its containing window.
	DeletePanel(panel string) error

	// SetFocus gives a panel playback focus.
	SetFocus(panel string) error

	// ActivePanel returns the panel that currently has focus.
	ActivePanel() (string, error)

	// PanelCamera returns the camera a panel is looking through.
	PanelCamera(panel string) (string, error)

	// LookThrough binds a panel to a camera.
	LookThrough(panel, camera string) error

	// ViewportOption and SetViewportOption access a panel's model-editor
	// options ("grid", "displayAppearance", ...).
	ViewportOption(panel, name string) (Value, error)
	SetViewportOption(panel, name string, value Value) error

	// Viewport2Option and SetViewport2Option access the extended renderer
	// option set ("ssaoEnable", "multiSampleEnable", ...). Hosts without the
	// extended renderer return ErrNotSupported.
	Viewport2Option(panel, name string) (Value, error)
	SetViewport2Option(panel, name string, value Value) error

	// DisplayPref and SetDisplayPref access scalar global display
	// preferences ("displayGradient").
	DisplayPref(name string) (Value, error)
	SetDisplayPref(name string, value Value) error

	// DisplayColor and SetDisplayColor access RGB display preferences
	// ("background", "backgroundTop", "backgroundBottom").
	DisplayColor(name string) (RGB, error)
	SetDisplayColor(name string, color RGB) error

	// UserPref and SetUserPref access persistent user option variables
	// ("playblastFormat", "playblastQuality", ...).
	UserPref(name string) (Value, error)
	SetUserPref(name string, value Value) error

	// CurrentTime and SetCurrentTime access the playback cursor in frames.
	CurrentTime() (float64, error)
	SetCurrentTime(frame float64) error

	// PlaybackRange and SetPlaybackRange access the playback start and end
	// frames.
	PlaybackRange() (start, end float64, err error)
	SetPlaybackRange(start, end float64) error

	// DefaultResolution returns the render-global resolution and device
	// aspect ratio; SetDefaultResolution writes the resolution back.
	DefaultResolution() (width, height int, deviceAspectRatio float64, err error)
	SetDefaultResolution(width, height int) error

	// IsolateSelect toggles isolate-select on a panel; IsolateNode adds a
	// node to the panel's isolate set.
	IsolateSelect(panel string, on bool) error
	IsolateNode(panel, node string) error

	// ScreenSize returns the usable desktop size, or 0,0 in batch mode.
	ScreenSize() (width, height int)

	// Batch reports whether the host runs without a UI. In batch mode panels
	// cannot take look-through focus and camera selection happens through
	// renderable flags instead.
	Batch() bool

	// Playblast runs the host's viewport export with a fully configured
	// panel and returns the path of the produced media.
	Playblast(ctx context.Context, spec PlayblastSpec) (string, error)
}

// PanelSpec describes the temporary capture panel. The json tags are the
// wire format of the hostbridge protocol.
type PanelSpec struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Top-left corner in screen coordinates.
	Left int `json:"left"`
	Top  int `json:"top"`
	// Label shown if the host insists on window chrome.
	Label string `json:"label,omitempty"`
}

// PlayblastSpec carries the resolved parameters of one export call.
type PlayblastSpec struct {
	Panel            string  `json:"panel"`
	Filename         string  `json:"filename,omitempty"`
	CompleteFilename string  `json:"complete_filename,omitempty"`
	Format           string  `json:"format"`
	Compression      string  `json:"compression"`
	Quality          int     `json:"quality"`
	Percent          int     `json:"percent"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	StartFrame       float64 `json:"start_frame"`
	EndFrame         float64 `json:"end_frame"`
	// Frames, when non-empty, selects explicit frames instead of the
	// StartFrame..EndFrame range.
	Frames          []float64 `json:"frames,omitempty"`
	Viewer          bool      `json:"viewer"`
	OffScreen       bool      `json:"off_screen"`
	ShowOrnaments   bool      `json:"show_ornaments"`
	ForceOverwrite  bool      `json:"force_overwrite"`
	RawFrameNumbers bool      `json:"raw_frame_numbers"`
}
