// Package cache holds the rendered output of published pages between
// revalidations. Entries expire on a time window and can be dropped early by
// key or by tag through the revalidation endpoint.
package cache

import "context"

type RenderCache interface {
	// Get returns the cached bytes for key, or ok=false when absent or
	// expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, tags []string) error
	Invalidate(ctx context.Context, key string) error
	InvalidateTag(ctx context.Context, tag string) error
	// Sweep drops entries past their window and reports how many went.
	Sweep(ctx context.Context) (int, error)
}
