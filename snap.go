// snap.go — Single-frame capture convenience.
package viewcap

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/viewcap/viewcap/host"
)

var framePadding = regexp.MustCompile(`#+`)

// Snap captures a single frame and returns the path of the produced image.
//
// Snap derives from Capture with single-frame defaults: raw frame numbers,
// no viewer, and image format with png compression. An empty or "qt" format
// is always promoted to image/png, including an explicit "qt" — a one-frame
// movie is never what a snap means; any other format is kept as given. The
// frame is the first entry of Frames, or the host's current time when none
// is given. Runs of # padding in the host's returned path are replaced with
// the zero-padded frame number, so the result names the file that was
// actually written.
func Snap(ctx context.Context, h host.Host, req Request) (string, error) {
	var frame float64
	if len(req.Frames) > 0 {
		if len(req.Frames) > 1 {
			return "", fmt.Errorf("snap takes a single frame, got %d; use Capture for sequences", len(req.Frames))
		}
		frame = req.Frames[0]
	} else {
		current, err := h.CurrentTime()
		if err != nil {
			return "", fmt.Errorf("current time: %w", err)
		}
		frame = current
	}

	req.StartFrame = &frame
	req.EndFrame = &frame
	req.Frames = []float64{frame}
	req.RawFrameNumbers = true
	req.Viewer = false
	if req.Format == "" || req.Format == "qt" {
		req.Format = "image"
		req.Compression = "png"
	}

	out, err := Capture(ctx, h, req)
	if err != nil {
		return "", err
	}

	out = framePadding.ReplaceAllStringFunc(out, func(pad string) string {
		number := strconv.Itoa(int(frame))
		for len(number) < len(pad) {
			number = "0" + number
		}
		return number
	})
	return out, nil
}
