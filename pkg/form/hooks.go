package form

import (
	"context"
	"time"
)

// Submit outcomes reported through Hooks.OnSubmit.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Event describes one lifecycle step of a form.
type Event struct {
	FormID   string
	Field    string
	Outcome  string
	Errors   int
	Duration time.Duration
}

// Hooks receives lifecycle notifications. Nil members are skipped.
type Hooks struct {
	OnMount   func(context.Context, *Event)
	OnRender  func(context.Context, *Event)
	OnChange  func(context.Context, *Event)
	OnBlur    func(context.Context, *Event)
	OnSubmit  func(context.Context, *Event)
	OnReset   func(context.Context, *Event)
	OnUnmount func(context.Context, *Event)
}

func emit(ctx context.Context, hook func(context.Context, *Event), event *Event) {
	if hook != nil {
		hook(ctx, event)
	}
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	chain := func(a, b func(context.Context, *Event)) func(context.Context, *Event) {
		switch {
		case a == nil:
			return b
		case b == nil:
			return a
		}
		return func(ctx context.Context, e *Event) {
			a(ctx, e)
			b(ctx, e)
		}
	}
	return Hooks{
		OnMount:   chain(h.OnMount, other.OnMount),
		OnRender:  chain(h.OnRender, other.OnRender),
		OnChange:  chain(h.OnChange, other.OnChange),
		OnBlur:    chain(h.OnBlur, other.OnBlur),
		OnSubmit:  chain(h.OnSubmit, other.OnSubmit),
		OnReset:   chain(h.OnReset, other.OnReset),
		OnUnmount: chain(h.OnUnmount, other.OnUnmount),
	}
}
