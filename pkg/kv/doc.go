// Package kv defines the narrow key-value contract used to persist serialized
// blobs, and an in-process implementation of it.
//
// Implementations live next to their drivers: see pkg/sqlitekv for a durable
// local file and pkg/redis for a shared remote store. pkg/secrets wraps any
// Storage with at-rest encryption.
package kv
