// Package host defines the scripting surface of the content-creation
// application that viewcap drives.
//
// Core functionality includes:
//   - Node attribute access (camera display toggles, renderable flags)
//   - Temporary panel lifecycle and per-panel camera binding
//   - Per-panel viewport options and global display preferences
//   - Playback range, current time, and render-resolution globals
//   - The blocking Playblast export primitive
//
// Everything here is a pass-through to the application's own scripting
// interface; no rendering happens on this side of the boundary. Concrete
// implementations live elsewhere: hostbridge connects to a live application
// over a command socket, hosttest is an in-memory fake for tests.
package host
