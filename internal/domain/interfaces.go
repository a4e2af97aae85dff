package domain

import "context"

// ListProvider retrieves the complete remote list for a user.
// Implementations page through the remote list and must not return partial results.
type ListProvider interface {
	FetchAll(ctx context.Context, user string, onProgress ProgressFunc) ([]TrackedItem, error)
}
