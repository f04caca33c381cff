// Package storage provides an abstraction layer for blob storage services.
//
// The Client interface is the only thing the blob facade talks to. Three drivers implement it:
//
//   - azure: Azure Blob Storage through the official azblob SDK. Reads honour the configured
//     location mode (primary and/or secondary endpoint); writes always hit the primary.
//   - s3: any S3-compatible service through the MinIO Go client. Containers are buckets and
//     tiers map to storage classes.
//   - memory: process-local maps, used by tests and for local runs.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - ContainerExists / CreateContainer: container lookup and create-if-not-exists.
//   - Upload / Download: write and stream an object.
//   - Delete: delete-if-exists.
//   - SetTier / Properties / Exists: tier change and attribute lookups.
//   - List: flat, recursive listing by key prefix.
//
// Read paths return an error wrapping ErrNotFound when the container or object is missing.
//
// # Usage
//
//	acct, err := cfg.Storage.Account()
//	client, err := storage.NewClient(cfg.Storage, acct, policy.Default())
//	exists, err := client.ContainerExists(ctx, "assets")
package storage
