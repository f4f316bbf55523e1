package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/strideworks/stride/internal/domain"
)

var tracer = otel.Tracer("visibility")

// maxLinkLookups bounds the concurrent hasLink fan-out per request.
const maxLinkLookups = 8

// Viewable is any entity that carries an id and an owner identity. Every
// content concept's entity satisfies it so one resolver serves them all.
type Viewable interface {
	ViewableID() domain.ID
	ViewableOwner() domain.ID
}

// LinkChecker answers link-existence queries. Satisfied by LinkingUsecase.
type LinkChecker interface {
	HasLink(ctx context.Context, user, item domain.ID) (bool, error)
}

// Decision is the per-(entity, viewer) visibility outcome. Decisions are
// computed fresh on every read and never stored.
type Decision int

const (
	// Keep includes the entity with its owner attributed.
	Keep Decision = iota
	// Redact includes the entity with the owner field removed.
	Redact
	// Drop removes the entity from the result entirely.
	Drop
)

// VisibilityResolver decides, for a collection of entities and a viewer,
// which entities are visible and whether their owner must be redacted.
type VisibilityResolver struct {
	links LinkChecker
}

func NewVisibilityResolver(links LinkChecker) *VisibilityResolver {
	return &VisibilityResolver{links: links}
}

// ResolveAll applies the redact-on-visibility policy over a full collection:
// every entity is included, unredacted when the viewer is its owner or the
// owner has linked it, redacted otherwise. The returned decisions align by
// index with the input, whose order is authoritative and preserved.
//
// The hasLink lookups are independent, so they run concurrently; results are
// reassembled in input order. Any failed lookup aborts the whole resolution
// rather than producing a partial result.
func ResolveAll[T Viewable](ctx context.Context, r *VisibilityResolver, viewer domain.ID, items []T) ([]Decision, error) {
	ctx, span := tracer.Start(ctx, "Visibility.ResolveAll")
	defer span.End()

	decisions := make([]Decision, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLinkLookups)
	for i, item := range items {
		if !viewer.IsZero() && viewer == item.ViewableOwner() {
			decisions[i] = Keep
			continue
		}
		g.Go(func() error {
			linked, err := r.links.HasLink(ctx, item.ViewableOwner(), item.ViewableID())
			if err != nil {
				return err
			}
			if linked {
				decisions[i] = Keep
			} else {
				decisions[i] = Redact
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return decisions, nil
}

// FilterByOwner applies the filter-on-author-match policy to a collection
// already narrowed to one owner: the owner sees everything, anyone else sees
// exactly the items the owner has linked. Non-linked items are dropped, not
// redacted. Relative order of the kept items is preserved.
func FilterByOwner[T Viewable](ctx context.Context, r *VisibilityResolver, viewer, owner domain.ID, items []T) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Visibility.FilterByOwner")
	defer span.End()

	if !viewer.IsZero() && viewer == owner {
		return items, nil
	}

	linked := make([]bool, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxLinkLookups)
	for i, item := range items {
		g.Go(func() error {
			ok, err := r.links.HasLink(ctx, owner, item.ViewableID())
			if err != nil {
				return err
			}
			linked[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]T, 0, len(items))
	for i, item := range items {
		if linked[i] {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

// ApplyDecisions pairs a collection with its decisions and drops the entries
// decided as Drop, returning the surviving items with their decisions still
// aligned by index.
func ApplyDecisions[T Viewable](items []T, decisions []Decision) ([]T, []Decision) {
	kept := make([]T, 0, len(items))
	keptDecisions := make([]Decision, 0, len(decisions))
	for i, item := range items {
		if decisions[i] == Drop {
			continue
		}
		kept = append(kept, item)
		keptDecisions = append(keptDecisions, decisions[i])
	}
	return kept, keptDecisions
}
