// Package logger builds the zap loggers used across storage-kit.
//
// Level is one of debug, info, warn or error; debug also switches to zap's
// development preset. Format is json for machine ingestion or console for a
// colored, human-readable stream.
//
// Handlers pass their base logger through WithRayID so every line written
// while serving a request carries the id assigned by the rayid middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Upload failed", zap.Error(err))
package logger
