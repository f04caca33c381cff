// Package server holds the HTTP server configuration.
//
// The start command builds the fiber application from Config.FiberConfig, so the
// body limit here bounds the largest blob that can be uploaded over HTTP.
package server
