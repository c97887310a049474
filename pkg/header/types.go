// Package header provides the kind and version header carried by bandex
// documents, such as serialized menu reports.
package header

import (
	"time"
)

const (
	// APIGroup is the group of every bandex document kind.
	APIGroup = "bandex"

	// APIVersionV1 is the current document version.
	APIVersionV1 = "v1"

	// KindMenuReport identifies a menu report.
	KindMenuReport = "MenuReport"

	// MetadataGeneratedAt holds the RFC 3339 time a document was generated.
	MetadataGeneratedAt = "generated-at"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the document kind.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the document version.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a Header with the provided options. The version defaults to
// APIGroup/APIVersionV1.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIGroup + "/" + APIVersionV1,
		Metadata:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header identifies the kind and version of a document.
type Header struct {
	// Kind is the type of the document.
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the schema version of the document, as group/version.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Set marks h as a document of kind generated at t.
func (h *Header) Set(kind string, t time.Time) {
	*h = *New(
		WithKind(kind),
		WithMetadata(MetadataGeneratedAt, t.UTC().Format(time.RFC3339)),
	)
}
