// Package mocks provides centralized mock implementations for testing.
//
// This package contains in-memory implementations of the store interfaces and
// a configurable mock generator, facilitating consistent and DRY testing
// across the codebase. Instead of defining inline fakes in individual test
// files, these standardized implementations can be reused.
//
// Usage:
//
//	import "github.com/blobapp/blob-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    topicStore := mocks.NewMemoryTopicStore()
//	    generator := &mocks.MockGenerator{
//	        GenerateFn: func(ctx context.Context, req generation.Request) (*generation.StructuredContent, error) {
//	            return nil, generation.ErrContentBlocked
//	        },
//	    }
//
//	    // Use the mocks in your test...
//	}
package mocks
