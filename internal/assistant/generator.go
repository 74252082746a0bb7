// Package assistant is the boundary to the external text-generation
// service. The trust layer treats it as an opaque call: nothing it returns
// affects authentication or persistence.
package assistant

import "context"

// Generator produces a tutoring answer for a prompt, optionally grounded
// in the lesson content the user is currently viewing.
type Generator interface {
	Generate(ctx context.Context, prompt, lessonContext string) (string, error)
}
