// accessors.go — scope.Accessor adapters for each option namespace's target.
package viewcap

import (
	"fmt"

	"github.com/viewcap/viewcap/host"
	"github.com/viewcap/viewcap/options"
	"github.com/viewcap/viewcap/scope"
)

func accessorFor(h host.Host, ns options.Namespace, panel, camera string) scope.Accessor {
	switch ns {
	case options.Viewport:
		return scope.Funcs{
			GetFunc: func(name string) (host.Value, error) { return h.ViewportOption(panel, name) },
			SetFunc: func(name string, v host.Value) error { return h.SetViewportOption(panel, name, v) },
		}
	case options.Viewport2:
		return scope.Funcs{
			GetFunc: func(name string) (host.Value, error) { return h.Viewport2Option(panel, name) },
			SetFunc: func(name string, v host.Value) error { return h.SetViewport2Option(panel, name, v) },
		}
	case options.Camera:
		return scope.Funcs{
			GetFunc: func(name string) (host.Value, error) { return h.GetAttr(camera, name) },
			SetFunc: func(name string, v host.Value) error { return h.SetAttr(camera, name, v) },
		}
	case options.Display:
		return displayAccessor(h)
	}
	return scope.Funcs{
		GetFunc: func(name string) (host.Value, error) {
			return nil, fmt.Errorf("%w: namespace %q", host.ErrUnknownOption, ns)
		},
		SetFunc: func(name string, v host.Value) error {
			return fmt.Errorf("%w: namespace %q", host.ErrUnknownOption, ns)
		},
	}
}

// displayAccessor routes RGB display keys through the color preference
// channel and everything else through the scalar one.
func displayAccessor(h host.Host) scope.Accessor {
	return scope.Funcs{
		GetFunc: func(name string) (host.Value, error) {
			if options.DisplayColorKeys[name] {
				c, err := h.DisplayColor(name)
				if err != nil {
					return nil, err
				}
				return c, nil
			}
			return h.DisplayPref(name)
		},
		SetFunc: func(name string, v host.Value) error {
			if options.DisplayColorKeys[name] {
				c, ok := host.AsRGB(v)
				if !ok {
					return fmt.Errorf("%w: %s wants an RGB triple, got %s",
						host.ErrUnknownOption, name, host.FormatValue(v))
				}
				return h.SetDisplayColor(name, c)
			}
			return h.SetDisplayPref(name, v)
		},
	}
}
