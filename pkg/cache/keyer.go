package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Keyer builds cache keys for each kind of cached value.
type Keyer interface {
	// MetricsKey addresses the measured size of an image by content hash.
	MetricsKey(contentHash string) string

	// ArtifactKey addresses one rendered output of a slide.
	ArtifactKey(slideHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Variant  string  `json:"variant"`
	Language string  `json:"language,omitempty"`
	Dark     bool    `json:"dark,omitempty"`
	Extents  bool    `json:"extents,omitempty"`
	DPI      float64 `json:"dpi,omitempty"`
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultKeyer is the standard key layout: "metrics:{hash}" and
// "artifact:{hash}".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) MetricsKey(contentHash string) string {
	return "metrics:" + contentHash
}

// ArtifactKey hashes the slide hash together with the msgpack encoding of
// the render options, so any option change yields a new key.
func (DefaultKeyer) ArtifactKey(slideHash string, opts ArtifactKeyOpts) string {
	data, _ := msgpack.Marshal([]any{slideHash, opts})
	return "artifact:" + Hash(data)
}

// ScopedKeyer prefixes every key of an inner keyer, so unrelated users of one
// backend never read each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
	// shareMetrics leaves metrics keys unscoped.
	shareMetrics bool
}

// NewScopedKeyer scopes inner under prefix, which is used verbatim. A nil
// inner keyer means [DefaultKeyer].
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "deck:partners:")
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ForDocument scopes inner to one document file, identified by the hash of
// its absolute path. Image metrics stay shared since they are keyed by
// content already; only artifacts are scoped.
func ForDocument(inner Keyer, path string) *ScopedKeyer {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	k := NewScopedKeyer(inner, "doc:"+Hash([]byte(path))[:12]+":")
	k.shareMetrics = true
	return k
}

// Prefix returns the scope prefix.
func (k *ScopedKeyer) Prefix() string { return k.prefix }

func (k *ScopedKeyer) MetricsKey(contentHash string) string {
	if k.shareMetrics {
		return k.inner.MetricsKey(contentHash)
	}
	return k.prefix + k.inner.MetricsKey(contentHash)
}

func (k *ScopedKeyer) ArtifactKey(slideHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(slideHash, opts)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = (*ScopedKeyer)(nil)
)
