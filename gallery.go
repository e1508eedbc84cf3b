package showroom

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ImageStore lists the images stored under a key prefix.
//
// Implementations return public URLs (or server-relative paths) in the order
// the backing store yields them. An empty prefix listing is an empty slice,
// not an error. ErrNotFound is returned when the prefix itself does not exist
// in a store that has that notion (a local directory, for instance).
type ImageStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// Gallery exposes the vehicle image listings.
type Gallery struct {
	store ImageStore
}

func NewGallery(store ImageStore) *Gallery {
	return &Gallery{store: store}
}

// Cars lists the images under PrefixCars.
func (g *Gallery) Cars(ctx context.Context) ([]string, error) {
	return g.list(ctx, PrefixCars)
}

// Motorcycles lists the images under PrefixMotorcycles.
func (g *Gallery) Motorcycles(ctx context.Context) ([]string, error) {
	return g.list(ctx, PrefixMotorcycles)
}

// All lists both prefixes concurrently and returns cars followed by
// motorcycles. If either listing fails the whole call fails and no partial
// result is returned.
func (g *Gallery) All(ctx context.Context) ([]string, error) {
	var cars, motorcycles []string

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		cars, err = g.list(egCtx, PrefixCars)
		return err
	})
	eg.Go(func() error {
		var err error
		motorcycles, err = g.list(egCtx, PrefixMotorcycles)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	all := make([]string, 0, len(cars)+len(motorcycles))
	all = append(all, cars...)
	all = append(all, motorcycles...)
	return all, nil
}

func (g *Gallery) list(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list images %s: %w", prefix, err)
	}

	images, err := g.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list images %s: %w", prefix, err)
	}

	if images == nil {
		images = []string{}
	}
	return images, nil
}
