// Package app assembles the web application: configuration, the estimate
// and health services, the chi router with its middleware chain, and the
// HTTP server lifecycle with graceful shutdown.
package app
