// client.go — WebSocket client for the plugin command socket.
package hostbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/viewcap/viewcap/host"
)

// defaultCallTimeout bounds ordinary commands when the caller's context has
// no deadline. Playblast is exempt: a long export legitimately blocks.
const defaultCallTimeout = 10 * time.Second

// Client is a host.Host talking to the in-application plugin.
type Client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	nextID int64
}

var _ host.Host = (*Client)(nil)

// Dial connects to the plugin command socket, e.g. "ws://127.0.0.1:4794/cmd".
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("dial host bridge %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

// Close shuts the command socket down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// IsConnectionError reports whether err indicates the plugin is unreachable
// rather than a host-side fault.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if websocket.IsUnexpectedCloseError(err) {
		return true
	}
	// Fallback: string check for wrapped errors that lose type info.
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host")
}

// call sends one command and decodes its reply. The protocol is strict
// request/reply, so calls serialize on the connection mutex.
func (c *Client) call(ctx context.Context, op string, params any, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	cmd := command{ID: c.nextID, Op: op}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("%s: encode params: %w", op, err)
		}
		cmd.Params = raw
	}

	deadline, ok := ctx.Deadline()
	if !ok && op != "playblast" {
		deadline = time.Now().Add(defaultCallTimeout)
		ok = true
	}
	if ok {
		_ = c.conn.SetWriteDeadline(deadline)
		_ = c.conn.SetReadDeadline(deadline)
	} else {
		_ = c.conn.SetWriteDeadline(time.Time{})
		_ = c.conn.SetReadDeadline(time.Time{})
	}

	if err := c.conn.WriteJSON(cmd); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		var rep reply
		if err := c.conn.ReadJSON(&rep); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if rep.ID != cmd.ID {
			// Stale reply from an earlier timed-out command.
			continue
		}
		if rep.Error != nil {
			if sentinel := rep.Error.Unwrap(); sentinel != nil {
				return fmt.Errorf("%s: %s: %w", op, rep.Error.Message, sentinel)
			}
			return fmt.Errorf("%s: %w", op, rep.Error)
		}
		if result != nil && len(rep.Result) > 0 {
			if err := json.Unmarshal(rep.Result, result); err != nil {
				return fmt.Errorf("%s: decode result: %w", op, err)
			}
		}
		return nil
	}
}

// callValue runs a command whose reply is a single {"value": ...}.
func (c *Client) callValue(op string, params any) (host.Value, error) {
	var res struct {
		Value host.Value `json:"value"`
	}
	if err := c.call(context.Background(), op, params, &res); err != nil {
		return nil, err
	}
	return res.Value, nil
}

type nodeParams struct {
	Node  string     `json:"node"`
	Attr  string     `json:"attr,omitempty"`
	Value host.Value `json:"value,omitempty"`
}

type panelParams struct {
	Panel string     `json:"panel"`
	Name  string     `json:"name,omitempty"`
	Value host.Value `json:"value,omitempty"`
}

func (c *Client) NodeExists(name string) bool {
	var res struct {
		Exists bool `json:"exists"`
	}
	err := c.call(context.Background(), "nodeExists", nodeParams{Node: name}, &res)
	return err == nil && res.Exists
}

func (c *Client) ListNodes(nodeType string) ([]string, error) {
	var res struct {
		Nodes []string `json:"nodes"`
	}
	params := struct {
		Type string `json:"type"`
	}{nodeType}
	if err := c.call(context.Background(), "listNodes", params, &res); err != nil {
		return nil, err
	}
	return res.Nodes, nil
}

func (c *Client) GetAttr(node, attr string) (host.Value, error) {
	return c.callValue("getAttr", nodeParams{Node: node, Attr: attr})
}

func (c *Client) SetAttr(node, attr string, value host.Value) error {
	return c.call(context.Background(), "setAttr", nodeParams{Node: node, Attr: attr, Value: value}, nil)
}

func (c *Client) CreatePanel(spec host.PanelSpec) (string, error) {
	var res struct {
		Panel string `json:"panel"`
	}
	if err := c.call(context.Background(), "createPanel", spec, &res); err != nil {
		return "", err
	}
	return res.Panel, nil
}

func (c *Client) DeletePanel(panel string) error {
	return c.call(context.Background(), "deletePanel", panelParams{Panel: panel}, nil)
}

func (c *Client) SetFocus(panel string) error {
	return c.call(context.Background(), "setFocus", panelParams{Panel: panel}, nil)
}

func (c *Client) ActivePanel() (string, error) {
	var res struct {
		Panel string `json:"panel"`
	}
	if err := c.call(context.Background(), "activePanel", nil, &res); err != nil {
		return "", err
	}
	return res.Panel, nil
}

func (c *Client) PanelCamera(panel string) (string, error) {
	var res struct {
		Camera string `json:"camera"`
	}
	if err := c.call(context.Background(), "panelCamera", panelParams{Panel: panel}, &res); err != nil {
		return "", err
	}
	return res.Camera, nil
}

func (c *Client) LookThrough(panel, camera string) error {
	params := struct {
		Panel  string `json:"panel"`
		Camera string `json:"camera"`
	}{panel, camera}
	return c.call(context.Background(), "lookThrough", params, nil)
}

func (c *Client) ViewportOption(panel, name string) (host.Value, error) {
	return c.callValue("viewportOption", panelParams{Panel: panel, Name: name})
}

func (c *Client) SetViewportOption(panel, name string, value host.Value) error {
	return c.call(context.Background(), "setViewportOption",
		panelParams{Panel: panel, Name: name, Value: value}, nil)
}

func (c *Client) Viewport2Option(panel, name string) (host.Value, error) {
	return c.callValue("viewport2Option", panelParams{Panel: panel, Name: name})
}

func (c *Client) SetViewport2Option(panel, name string, value host.Value) error {
	return c.call(context.Background(), "setViewport2Option",
		panelParams{Panel: panel, Name: name, Value: value}, nil)
}

func (c *Client) DisplayPref(name string) (host.Value, error) {
	return c.callValue("displayPref", panelParams{Name: name})
}

func (c *Client) SetDisplayPref(name string, value host.Value) error {
	return c.call(context.Background(), "setDisplayPref", panelParams{Name: name, Value: value}, nil)
}

func (c *Client) DisplayColor(name string) (host.RGB, error) {
	v, err := c.callValue("displayColor", panelParams{Name: name})
	if err != nil {
		return host.RGB{}, err
	}
	rgb, ok := host.AsRGB(v)
	if !ok {
		return host.RGB{}, fmt.Errorf("displayColor %s: %w: got %s",
			name, host.ErrUnknownOption, host.FormatValue(v))
	}
	return rgb, nil
}

func (c *Client) SetDisplayColor(name string, color host.RGB) error {
	return c.call(context.Background(), "setDisplayColor",
		panelParams{Name: name, Value: []float64{color[0], color[1], color[2]}}, nil)
}

func (c *Client) UserPref(name string) (host.Value, error) {
	return c.callValue("userPref", panelParams{Name: name})
}

func (c *Client) SetUserPref(name string, value host.Value) error {
	return c.call(context.Background(), "setUserPref", panelParams{Name: name, Value: value}, nil)
}

func (c *Client) CurrentTime() (float64, error) {
	var res struct {
		Frame float64 `json:"frame"`
	}
	if err := c.call(context.Background(), "currentTime", nil, &res); err != nil {
		return 0, err
	}
	return res.Frame, nil
}

func (c *Client) SetCurrentTime(frame float64) error {
	params := struct {
		Frame float64 `json:"frame"`
	}{frame}
	return c.call(context.Background(), "setCurrentTime", params, nil)
}

func (c *Client) PlaybackRange() (float64, float64, error) {
	var res struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}
	if err := c.call(context.Background(), "playbackRange", nil, &res); err != nil {
		return 0, 0, err
	}
	return res.Start, res.End, nil
}

func (c *Client) SetPlaybackRange(start, end float64) error {
	params := struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	}{start, end}
	return c.call(context.Background(), "setPlaybackRange", params, nil)
}

func (c *Client) DefaultResolution() (int, int, float64, error) {
	var res struct {
		Width  int     `json:"width"`
		Height int     `json:"height"`
		Aspect float64 `json:"aspect"`
	}
	if err := c.call(context.Background(), "defaultResolution", nil, &res); err != nil {
		return 0, 0, 0, err
	}
	return res.Width, res.Height, res.Aspect, nil
}

func (c *Client) SetDefaultResolution(width, height int) error {
	params := struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}{width, height}
	return c.call(context.Background(), "setDefaultResolution", params, nil)
}

func (c *Client) IsolateSelect(panel string, on bool) error {
	params := struct {
		Panel string `json:"panel"`
		On    bool   `json:"on"`
	}{panel, on}
	return c.call(context.Background(), "isolateSelect", params, nil)
}

func (c *Client) IsolateNode(panel, node string) error {
	params := struct {
		Panel string `json:"panel"`
		Node  string `json:"node"`
	}{panel, node}
	return c.call(context.Background(), "isolateNode", params, nil)
}

func (c *Client) ScreenSize() (int, int) {
	var res struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	if err := c.call(context.Background(), "screenSize", nil, &res); err != nil {
		return 0, 0
	}
	return res.Width, res.Height
}

func (c *Client) Batch() bool {
	var res struct {
		Batch bool `json:"batch"`
	}
	if err := c.call(context.Background(), "batch", nil, &res); err != nil {
		return false
	}
	return res.Batch
}

func (c *Client) Playblast(ctx context.Context, spec host.PlayblastSpec) (string, error) {
	var res struct {
		Path string `json:"path"`
	}
	if err := c.call(ctx, "playblast", spec, &res); err != nil {
		return "", err
	}
	return res.Path, nil
}
