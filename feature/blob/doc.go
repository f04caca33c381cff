// Package blob is the object store facade.
//
// Service wraps a storage.Client with the behaviour every caller expects: container
// names are lower-cased, each call is bounded by the request policy timeout, traced and
// logged on failure. Upload creates the container when needed and, when a tier is given,
// applies it with a second call after the write. Setting TierUnspecified is a no-op.
//
// # HTTP
//
//	HEAD   /blob/{container}                   container exists
//	GET    /blob/{container}?prefix=p          list keys
//	PUT    /blob/{container}/{key}?tier=&overwrite=
//	PUT    /blob/{container}/{key}?tier=x&only_tier=true
//	GET    /blob/{container}/{key}[?properties=true]
//	HEAD   /blob/{container}/{key}
//	DELETE /blob/{container}/{key}
package blob
