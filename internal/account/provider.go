package account

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paygate-be/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Source yields accounts for one gateway.
type Source[T Account] interface {
	Load(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc[T Account] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) Load(ctx context.Context) ([]T, error) { return f(ctx) }

// StaticSource serves accounts fixed at composition time, usually from config.
type StaticSource[T Account] []T

func (s StaticSource[T]) Load(context.Context) ([]T, error) {
	out := make([]T, len(s))
	copy(out, s)
	return out, nil
}

// RepositorySource decodes the gateway's rows from gateway_accounts. decode
// receives the row name and its settings JSON.
type RepositorySource[T Account] struct {
	repo    Repository
	gateway string
	decode  func(name string, settings json.RawMessage) (T, error)
}

func NewRepositorySource[T Account](
	repo Repository,
	gateway string,
	decode func(name string, settings json.RawMessage) (T, error),
) *RepositorySource[T] {
	return &RepositorySource[T]{repo: repo, gateway: gateway, decode: decode}
}

func (s *RepositorySource[T]) Load(ctx context.Context) ([]T, error) {
	records, err := s.repo.ListByGateway(ctx, s.gateway)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFailedLoadSource, s.gateway, err)
	}

	out := make([]T, 0, len(records))
	for _, rec := range records {
		acc, err := s.decode(rec.Name, rec.Settings)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrInvalidSettings, s.gateway, rec.Name, err)
		}
		out = append(out, acc)
	}
	return out, nil
}

const loadTimeout = 30 * time.Second

// Provider loads a gateway's accounts from its sources, in source order.
// Concurrent loads share one in-flight call.
type Provider[T Account] struct {
	gateway string
	sources []Source[T]
	group   singleflight.Group
}

func NewProvider[T Account](gateway string, sources ...Source[T]) *Provider[T] {
	return &Provider[T]{gateway: gateway, sources: sources}
}

// Load merges the sources. Concurrent callers share one load that runs
// detached from any single caller, bounded by loadTimeout; each caller still
// stops waiting when its own ctx is done.
func (p *Provider[T]) Load(ctx context.Context) (*Collection[T], error) {
	ch := p.group.DoChan(p.gateway, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return p.load(loadCtx)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	if res.Shared {
		logger.FromCtx(ctx).Debug("shared account load",
			zap.String("gateway", p.gateway),
		)
	}
	return res.Val.(*Collection[T]), nil
}

// LoadAccounts is the capability gateways expose to the gateway provider.
func (p *Provider[T]) LoadAccounts(ctx context.Context) (Finder, error) {
	c, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Provider[T]) load(ctx context.Context) (*Collection[T], error) {
	var items []T
	for _, src := range p.sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, loaded...)
	}

	logger.FromCtx(ctx).Debug("gateway accounts loaded",
		zap.String("gateway", p.gateway),
		zap.Int("count", len(items)),
	)
	return NewCollection(items...), nil
}
