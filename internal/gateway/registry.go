package gateway

import (
	"errors"
	"fmt"
	"sync"

	"paygate-be/internal/logger"

	"go.uber.org/zap"
)

// Resolver hands out the gateway instance behind a descriptor. It reports
// false when the composition root cannot produce one.
type Resolver func() (Gateway, bool)

// Descriptor binds a canonical gateway name to the way its instance is obtained.
type Descriptor struct {
	Name    string
	Resolve Resolver
}

// Instance resolves to an already built gateway.
func Instance(gw Gateway) Resolver {
	return func() (Gateway, bool) {
		return gw, gw != nil
	}
}

// Lazy builds the gateway on first use and keeps it. A failing factory is
// logged once and the descriptor resolves to no instance from then on.
func Lazy(name string, factory func() (Gateway, error)) Resolver {
	var (
		once sync.Once
		gw   Gateway
	)
	return func() (Gateway, bool) {
		once.Do(func() {
			built, err := factory()
			if err != nil {
				logger.L().Error("failed to build gateway",
					zap.String("gateway", name),
					zap.Error(err),
				)
				return
			}
			gw = built
		})
		return gw, gw != nil
	}
}

// Registry is the startup catalog of gateway descriptors. It is filled once
// during composition and only read afterwards.
type Registry struct {
	descriptors []Descriptor
}

func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{}
	for _, d := range descriptors {
		r.Register(d)
	}
	return r
}

// Register appends d. Duplicates are kept so that resolution reports them;
// call Validate at startup to fail early instead.
func (r *Registry) Register(d Descriptor) *Registry {
	r.descriptors = append(r.descriptors, d)
	return r
}

// Descriptors returns the descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Validate reports descriptors without a name or resolver and names
// registered more than once.
func (r *Registry) Validate() error {
	var errs []error
	for i, d := range r.descriptors {
		if normalizeName(d.Name) == "" || d.Resolve == nil {
			errs = append(errs, fmt.Errorf("%w: descriptor #%d has no name or resolver", ErrInvalidArgument, i))
			continue
		}

		count := 1
		seenBefore := false
		for j, other := range r.descriptors {
			if j == i || !CompareName(d.Name, other.Name) {
				continue
			}
			if j < i {
				seenBefore = true
				break
			}
			count++
		}
		if !seenBefore && count > 1 {
			errs = append(errs, &AmbiguousError{Name: d.Name, Count: count})
		}
	}
	return errors.Join(errs...)
}
