// Package tor provides an optional Tor egress for the renderer.
//
// EmbeddedTor starts a private Tor daemon through tornago and exposes its
// SOCKS5 address as a proxy URL that both render engines accept. Probe checks
// that an externally supplied SOCKS5 proxy answers the protocol greeting
// before a run spends time launching a browser against it.
//
// Tor is never required. Without it the renderer connects directly.
package tor
