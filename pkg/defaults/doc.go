// Package defaults provides centralized configuration constants for bandex.
//
// This package defines timeout values, cache lifetimes and concurrency limits
// used across the codebase. Centralizing these values keeps the CLI and the
// API server consistent.
//
// # Timeout Categories
//
//   - HTTP client timeouts: For calls to the menu source
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.FetchTimeout)
//	defer cancel()
package defaults
