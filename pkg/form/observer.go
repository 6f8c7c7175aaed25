package form

import "context"

// LayoutObserver is notified after each render pass with the animatable
// region and the ids of its direct children, in order. Client runtimes use it
// to animate insertions and reorderings. It never affects values or
// validation.
type LayoutObserver interface {
	Observe(ctx context.Context, region string, children []string)
	Release(region string)
}

type noopObserver struct{}

func (noopObserver) Observe(context.Context, string, []string) {}

func (noopObserver) Release(string) {}
