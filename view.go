// view.go — Mirror current host settings to and from option sets.
package viewcap

import (
	"errors"
	"fmt"

	"github.com/viewcap/viewcap/host"
	"github.com/viewcap/viewcap/options"
	"github.com/viewcap/viewcap/scope"
)

// View is the full option state of one panel and its camera, as read from
// the host. A parsed View can be fed back through ApplyView, or spread into
// a Request to capture with the user's current look.
type View struct {
	Camera string

	ViewportOptions  options.Set
	Viewport2Options options.Set
	CameraOptions    options.Set
	DisplayOptions   options.Set
}

// ParseView reads the current value of every documented option from a panel,
// its camera, and the global display preferences. Hosts without the
// extended renderer yield a nil Viewport2Options.
func ParseView(h host.Host, panel string) (View, error) {
	camera, err := h.PanelCamera(panel)
	if err != nil {
		return View{}, fmt.Errorf("panel camera: %w", err)
	}
	v := View{Camera: camera}

	for _, ns := range options.Namespaces {
		target := accessorFor(h, ns, panel, camera)
		parsed, err := scope.Snapshot(target, options.Defaults(ns).Keys())
		if err != nil {
			if ns == options.Viewport2 && errors.Is(err, host.ErrNotSupported) {
				continue
			}
			return View{}, fmt.Errorf("parse %s: %w", ns, err)
		}
		v.setOptions(ns, parsed)
	}
	return v, nil
}

// ParseActiveView parses the panel that currently has focus.
func ParseActiveView(h host.Host) (View, error) {
	panel, err := h.ActivePanel()
	if err != nil {
		return View{}, err
	}
	return ParseView(h, panel)
}

// ApplyView writes the non-nil option sets of v to a panel, its camera, and
// the global display preferences. Unlike a capture this mutates state for
// good: nothing is snapshotted or restored.
func ApplyView(h host.Host, panel string, v View) error {
	camera, err := h.PanelCamera(panel)
	if err != nil {
		return fmt.Errorf("panel camera: %w", err)
	}
	for _, ns := range options.Namespaces {
		desired := v.optionsFor(ns)
		if desired == nil {
			continue
		}
		if err := scope.Apply(accessorFor(h, ns, panel, camera), desired); err != nil {
			return fmt.Errorf("apply %s: %w", ns, err)
		}
	}
	return nil
}

func (v View) optionsFor(ns options.Namespace) options.Set {
	switch ns {
	case options.Viewport:
		return v.ViewportOptions
	case options.Viewport2:
		return v.Viewport2Options
	case options.Camera:
		return v.CameraOptions
	case options.Display:
		return v.DisplayOptions
	}
	return nil
}

func (v *View) setOptions(ns options.Namespace, s options.Set) {
	switch ns {
	case options.Viewport:
		v.ViewportOptions = s
	case options.Viewport2:
		v.Viewport2Options = s
	case options.Camera:
		v.CameraOptions = s
	case options.Display:
		v.DisplayOptions = s
	}
}

// RequestFrom copies a parsed view's option sets into a request, so the
// capture reproduces the look of an existing panel.
func RequestFrom(v View, base Request) Request {
	base.Camera = v.Camera
	base.ViewportOptions = v.ViewportOptions
	base.Viewport2Options = v.Viewport2Options
	base.CameraOptions = v.CameraOptions
	base.DisplayOptions = v.DisplayOptions
	return base
}
