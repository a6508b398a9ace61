// Package options holds the named option sets a capture applies to the host:
// viewport, extended viewport renderer, camera, and global display state.
//
// Each namespace has a documented default mapping. Caller-supplied sets are
// merged over those defaults, so an omitted key always resolves to its
// default value, never to an absent one. Sets can be saved to and loaded
// from versioned YAML preset files.
package options
