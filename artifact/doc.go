// Package artifact stores and resolves versioned dataset artifacts.
//
// An artifact is addressed by a reference "name:version" (for example
// "clean_sample.csv:latest"). A Registry lays artifacts out on a Store as
//
//	<name>/<version>/<name>
//	<name>/<version>/metadata.json
//
// where version is "v0", "v1", ... in logging order, and "latest" always
// mirrors the most recent version.
//
// Stores:
//   - LocalStore: a directory on the local file system
//   - MemoryStore: in-memory, for tests
//   - minio.Store: MinIO and other S3-compatible services
//   - s3.Store: Amazon S3 through aws-sdk-go-v2
package artifact
