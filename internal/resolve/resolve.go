// Package resolve implements the shared ID-or-name lookup used by resources
// that callers may reference either way.
package resolve

import (
	"context"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/session"
)

// ByRef resolves ref against a resource kind. It tries a direct by-ID lookup
// first; on not-found it lists all resources and filters by name. Zero or
// multiple name matches fail with a ResourceError so an ambiguous name never
// silently picks a resource.
func ByRef[T any](
	ctx context.Context,
	kind, ref string,
	get func(ctx context.Context, id string) (*T, error),
	list func(ctx context.Context) ([]T, error),
	nameOf func(*T) string,
) (*T, error) {
	got, err := get(ctx, ref)
	if err == nil {
		return got, nil
	}
	if !session.IsNotFound(err) {
		return nil, err
	}

	all, err := list(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*T
	for i := range all {
		if nameOf(&all[i]) == ref {
			matches = append(matches, &all[i])
		}
	}

	switch len(matches) {
	case 0:
		return nil, errdefs.Resource(nil, "no %s found with name or ID %q", kind, ref)
	case 1:
		return matches[0], nil
	default:
		return nil, errdefs.Resource(nil, "multiple %ss found with name %q, use the ID instead", kind, ref)
	}
}
