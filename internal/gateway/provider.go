package gateway

import (
	"context"
	"fmt"
	"strings"

	"paygate-be/internal/logger"
	"paygate-be/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Provider resolves gateways out of a registry snapshot. It never caches
// instances; that is up to each descriptor's Resolver.
type Provider struct {
	descriptors []Descriptor
	concurrency int
	stats       *metrics.Resolution
}

type Option func(*Provider)

// WithConcurrency bounds how many gateways load their accounts at once.
func WithConcurrency(n int) Option {
	return func(p *Provider) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

func WithMetrics(m *metrics.Resolution) Option {
	return func(p *Provider) {
		if m != nil {
			p.stats = m
		}
	}
}

func NewProvider(registry *Registry, opts ...Option) *Provider {
	p := &Provider{
		descriptors: registry.Descriptors(),
		concurrency: defaultConcurrency,
		stats:       &metrics.Resolution{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Stats() metrics.ResolutionSnapshot {
	return p.stats.Snapshot()
}

// Provide returns the single gateway registered under name.
func (p *Provider) Provide(ctx context.Context, name string) (Gateway, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: gateway name is empty", ErrInvalidArgument)
	}
	log := logger.FromCtx(ctx).With(zap.String("gateway", name))

	var matches []Descriptor
	for _, d := range p.descriptors {
		if CompareName(d.Name, name) {
			matches = append(matches, d)
		}
	}

	switch {
	case len(matches) == 0:
		p.stats.NotFound.Inc()
		log.Warn("gateway not registered")
		return nil, &NotFoundError{Name: name}
	case len(matches) > 1:
		p.stats.Ambiguous.Inc()
		log.Error("gateway registered more than once", zap.Int("count", len(matches)))
		return nil, &AmbiguousError{Name: name, Count: len(matches)}
	}

	var gw Gateway
	ok := false
	if matches[0].Resolve != nil {
		gw, ok = matches[0].Resolve()
	}
	if !ok || gw == nil {
		p.stats.NotFound.Inc()
		log.Warn("gateway registered but not resolvable")
		return nil, &NotFoundError{Name: name}
	}

	p.stats.ByName.Inc()
	return gw, nil
}

type candidate struct {
	gw    Gateway
	owner AccountOwner
}

type lookupResult struct {
	index int
	found bool
}

// ProvideByAccountName returns the gateway owning an account named
// accountName. Candidates load their accounts concurrently; when more than
// one gateway owns the name, the earliest registered one wins.
func (p *Provider) ProvideByAccountName(ctx context.Context, accountName string) (Gateway, error) {
	if strings.TrimSpace(accountName) == "" {
		return nil, fmt.Errorf("%w: account name is empty", ErrInvalidArgument)
	}
	log := logger.FromCtx(ctx).With(zap.String("account", accountName))

	timer := metrics.StartTimer()
	defer func() { p.stats.ObserveAccountLookup(timer.Duration()) }()

	candidates := p.accountOwners()
	if len(candidates) == 0 {
		p.stats.AccountNotFound.Inc()
		log.Warn("no registered gateway has accounts")
		return nil, &AccountNotFoundError{AccountName: accountName}
	}

	lookupCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(lookupCtx)
	g.SetLimit(p.concurrency)

	results := make(chan lookupResult, len(candidates))
	go func() {
		for i, c := range candidates {
			g.Go(func() error {
				results <- lookupResult{index: i, found: p.hasAccount(gctx, c, accountName)}
				return nil
			})
		}
	}()

	// found[i] is nil until candidate i reports
	found := make([]*bool, len(candidates))
	next := 0
	for received := 0; received < len(candidates); received++ {
		var r lookupResult
		select {
		case r = <-results:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		found[r.index] = &r.found

		for next < len(candidates) && found[next] != nil && !*found[next] {
			next++
		}
		if next < len(candidates) && found[next] != nil && *found[next] {
			winner := candidates[next]
			p.stats.ByAccount.Inc()
			log.Debug("gateway resolved by account", zap.String("gateway", winner.gw.Name()))
			return winner.gw, nil
		}
	}

	// a cancelled caller may see its own loads fail before ctx.Done fires
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.stats.AccountNotFound.Inc()
	log.Warn("no gateway owns the account")
	return nil, &AccountNotFoundError{AccountName: accountName}
}

// accountOwners resolves every descriptor in registration order and keeps the
// gateways exposing accounts. Unresolvable gateways count as absent.
func (p *Provider) accountOwners() []candidate {
	var out []candidate
	for _, d := range p.descriptors {
		if d.Resolve == nil {
			continue
		}
		gw, ok := d.Resolve()
		if !ok || gw == nil {
			continue
		}
		owner, ok := gw.(AccountOwner)
		if !ok {
			continue
		}
		out = append(out, candidate{gw: gw, owner: owner})
	}
	return out
}

func (p *Provider) hasAccount(ctx context.Context, c candidate, accountName string) bool {
	if ctx.Err() != nil {
		return false
	}

	accounts := c.owner.Accounts()
	if accounts == nil {
		return false
	}

	finder, err := accounts.LoadAccounts(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.stats.AccountLoadErr.Inc()
			logger.FromCtx(ctx).Warn("failed to load gateway accounts",
				zap.String("gateway", c.gw.Name()),
				zap.Error(err),
			)
		}
		return false
	}
	if finder == nil {
		return false
	}

	_, ok := finder.Find(accountName)
	return ok
}
