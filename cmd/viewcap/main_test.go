package main

import (
	"flag"
	"io"
	"testing"

	"github.com/viewcap/viewcap"
)

func TestRunNoArgs(t *testing.T) {
	if code := run(nil); code != 2 {
		t.Fatalf("run() = %d, want usage error 2", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if code := run([]string{"explode"}); code != 2 {
		t.Fatalf("run(explode) = %d, want 2", code)
	}
}

func TestRunVersion(t *testing.T) {
	if code := run([]string{"--version"}); code != 0 {
		t.Fatalf("run(--version) = %d, want 0", code)
	}
}

func TestRunHelp(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"help"}} {
		if code := run(args); code != 0 {
			t.Fatalf("run(%v) = %d, want 0", args, code)
		}
	}
}

func TestRunCaptureBadFlag(t *testing.T) {
	if code := run([]string{"capture", "--nope"}); code != 2 {
		t.Fatalf("run(capture --nope) = %d, want 2", code)
	}
}

func TestRunCaptureMissingPreset(t *testing.T) {
	t.Setenv("VIEWCAP_STATE_DIR", t.TempDir())
	if code := run([]string{"capture", "--preset", "nope"}); code != 2 {
		t.Fatalf("run(capture --preset nope) = %d, want 2", code)
	}
}

func parseFrameFlags(t *testing.T, args []string) viewcap.Request {
	t.Helper()
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	start := fs.Float64("start", 0, "")
	end := fs.Float64("end", 0, "")
	frame := fs.Float64("frame", 0, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	req := viewcap.NewRequest()
	frameFlags(fs, &req, start, end, frame)
	return req
}

func TestFrameFlagsZeroIsAFrame(t *testing.T) {
	req := parseFrameFlags(t, []string{"--start", "0", "--end", "0"})
	if req.StartFrame == nil || *req.StartFrame != 0 {
		t.Fatalf("StartFrame = %v, want explicit 0", req.StartFrame)
	}
	if req.EndFrame == nil || *req.EndFrame != 0 {
		t.Fatalf("EndFrame = %v, want explicit 0", req.EndFrame)
	}

	req = parseFrameFlags(t, []string{"--frame", "0"})
	if len(req.Frames) != 1 || req.Frames[0] != 0 {
		t.Fatalf("Frames = %v, want [0]", req.Frames)
	}
}

func TestFrameFlagsUnsetStayUnset(t *testing.T) {
	req := parseFrameFlags(t, nil)
	if req.StartFrame != nil || req.EndFrame != nil || req.Frames != nil {
		t.Fatalf("unset flags populated the request: start=%v end=%v frames=%v",
			req.StartFrame, req.EndFrame, req.Frames)
	}
}

func TestRunApplyNeedsPreset(t *testing.T) {
	t.Setenv("VIEWCAP_STATE_DIR", t.TempDir())
	if code := run([]string{"apply"}); code != 2 {
		t.Fatalf("run(apply) = %d, want 2 without a preset", code)
	}
}

func TestRunPresetsEmptyState(t *testing.T) {
	t.Setenv("VIEWCAP_STATE_DIR", t.TempDir())
	if code := run([]string{"presets"}); code != 0 {
		t.Fatalf("run(presets) = %d, want 0 with no presets dir", code)
	}
}
