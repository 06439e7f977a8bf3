//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// CloneRequestBuilder helps create clone requests with a fluent interface.
type CloneRequestBuilder struct {
	*testkit.BaseBuilder
	url         string
	destination string
	name        string
}

// NewCloneRequestBuilder creates a new builder; the destination has to be set per test.
func NewCloneRequestBuilder() *CloneRequestBuilder {
	return &CloneRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		url:         defaultRemoteURL,
	}
}

// WithURL sets the repository URL.
func (b *CloneRequestBuilder) WithURL(rawURL string) *CloneRequestBuilder {
	b.url = rawURL
	return b
}

// WithDestination sets the parent folder.
func (b *CloneRequestBuilder) WithDestination(destination string) *CloneRequestBuilder {
	b.destination = destination
	return b
}

// WithName overrides the derived directory name.
func (b *CloneRequestBuilder) WithName(name string) *CloneRequestBuilder {
	b.name = name
	return b
}

// Build creates the request (satisfies testkit.Builder interface).
func (b *CloneRequestBuilder) Build() interface{} {
	return b.BuildCloneRequest()
}

// BuildCloneRequest creates the request with a concrete return type.
func (b *CloneRequestBuilder) BuildCloneRequest() entities.CloneRequest {
	return entities.CloneRequest{URL: b.url, Destination: b.destination, Name: b.name}
}

// Reset clears the builder state, allowing it to be reused.
func (b *CloneRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.url = defaultRemoteURL
	b.destination = ""
	b.name = ""
	return b
}

// Clone creates a deep copy of the CloneRequestBuilder.
func (b *CloneRequestBuilder) Clone() testkit.Builder {
	return &CloneRequestBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		url:         b.url,
		destination: b.destination,
		name:        b.name,
	}
}
