// protocol.go — Wire types for the plugin command socket.
package hostbridge

import (
	"encoding/json"

	"github.com/viewcap/viewcap/host"
)

// command is one request to the plugin.
type command struct {
	ID     int64           `json:"id"`
	Op     string          `json:"op"`
	Params json.RawMessage `json:"params,omitempty"`
}

// reply is the plugin's answer. Exactly one of Result and Error is set.
type reply struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *commandError   `json:"error,omitempty"`
}

// commandError is a host-side fault with a stable code.
type commandError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *commandError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Error codes the plugin reports. Unwrap maps them onto the host sentinels.
const (
	codeNodeNotFound  = "node_not_found"
	codePanelNotFound = "panel_not_found"
	codeUnknownOption = "unknown_option"
	codeNotSupported  = "not_supported"
)

func (e *commandError) Unwrap() error {
	switch e.Code {
	case codeNodeNotFound:
		return host.ErrNodeNotFound
	case codePanelNotFound:
		return host.ErrPanelNotFound
	case codeUnknownOption:
		return host.ErrUnknownOption
	case codeNotSupported:
		return host.ErrNotSupported
	}
	return nil
}
