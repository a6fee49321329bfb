// Package cache stores image measurements and rendered slides between runs.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// the preview server, and [NullCache] when caching is off. Values are opaque
// bytes; [GetValue] and [SetValue] add msgpack encoding for structured values.
//
// Keys come from a [Keyer]. Image measurements are keyed by the file's
// content hash, so editing an image invalidates its entry without any
// explicit eviction.
package cache
