// Package hostbridge implements host.Host over a WebSocket command socket
// served by a companion plugin running inside the content-creation
// application.
//
// The protocol is strict request/reply JSON: each command carries a
// monotonic id, each reply echoes it. Host-side faults come back as coded
// errors and are translated to the host package's sentinel errors, so
// callers can errors.Is against ErrNodeNotFound and friends without caring
// whether the host is remote or in-process.
package hostbridge
