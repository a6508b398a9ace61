// preset.go — Overlay a stored preset onto a request.
package viewcap

import "github.com/viewcap/viewcap/options"

// ApplyPreset overlays a preset's set parameters onto a request and returns
// the result. Parameters the preset leaves unset keep the request's value;
// option sets merge key by key with the preset winning.
func ApplyPreset(req Request, p *options.Preset) Request {
	if p == nil {
		return req
	}
	if p.Camera != nil {
		req.Camera = *p.Camera
	}
	if p.Width != nil {
		req.Width = *p.Width
	}
	if p.Height != nil {
		req.Height = *p.Height
	}
	if p.Format != nil {
		req.Format = *p.Format
	}
	if p.Compression != nil {
		req.Compression = *p.Compression
	}
	if p.Quality != nil {
		req.Quality = *p.Quality
	}
	if p.OffScreen != nil {
		req.OffScreen = *p.OffScreen
	}
	req.ViewportOptions = options.Merge(req.ViewportOptions, p.ViewportOptions)
	req.Viewport2Options = options.Merge(req.Viewport2Options, p.Viewport2Options)
	req.CameraOptions = options.Merge(req.CameraOptions, p.CameraOptions)
	req.DisplayOptions = options.Merge(req.DisplayOptions, p.DisplayOptions)
	return req
}
