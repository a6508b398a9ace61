// errors.go — Sentinel errors shared by all Host implementations.
package host

import "errors"

var (
	// ErrNodeNotFound reports a scene node that does not exist.
	ErrNodeNotFound = errors.New("node not found")

	// ErrPanelNotFound reports a panel that does not exist or was deleted.
	ErrPanelNotFound = errors.New("panel not found")

	// ErrUnknownOption reports an option name the target does not carry, or
	// a value of a kind the host cannot represent.
	ErrUnknownOption = errors.New("unknown option")

	// ErrNotSupported reports a capability the host build lacks, e.g. the
	// extended viewport renderer.
	ErrNotSupported = errors.New("not supported by host")
)
