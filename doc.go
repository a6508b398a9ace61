// Package viewcap drives a content-creation application's built-in
// viewport-capture ("playblast") feature from script.
//
// A capture runs in a temporary, undecorated panel with its own camera,
// viewport, and display settings, so the user's visible workspace and
// preferences are untouched: every host-side setting a capture changes is
// snapshotted first and restored afterwards, on every exit path. The host
// application is reached only through the host.Host interface; hostbridge
// provides a client for a live application and hosttest an in-memory fake.
//
//	req := viewcap.NewRequest()
//	req.Camera = "shotCam"
//	req.Width = 1280
//	req.Filename = "/tmp/shot"
//	req.ViewportOptions = options.Set{"wireframeOnShaded": true}
//	out, err := viewcap.Capture(ctx, h, req)
package viewcap
