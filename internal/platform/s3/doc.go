// Package s3 provides a thin S3 API client for talking to the target store
// directly: existence probes for the check command and read/write
// round-trips that verify freshly issued service-account credentials.
package s3
