// Package images is the image-hosting collaborator boundary.
//
// Avatars and recipe photos are stored out-of-process; the rest of the
// system only ever sees a public URL plus an opaque storage id it can hand
// back for deletion. The production implementation targets S3-compatible
// object storage (AWS or MinIO via a custom base endpoint); the in-memory
// implementation backs development mode and tests.
package images
