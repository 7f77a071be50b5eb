package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Resolution counts gateway lookups by outcome.
type Resolution struct {
	ByName          Counter
	ByAccount       Counter
	NotFound        Counter
	Ambiguous       Counter
	AccountNotFound Counter
	AccountLoadErr  Counter
	accountNanos    Counter
}

// ObserveAccountLookup accumulates time spent resolving by account name.
func (r *Resolution) ObserveAccountLookup(d time.Duration) {
	if d > 0 {
		r.accountNanos.Add(uint64(d))
	}
}

type ResolutionSnapshot struct {
	ByName            uint64 `json:"by_name"`
	ByAccount         uint64 `json:"by_account"`
	NotFound          uint64 `json:"not_found"`
	Ambiguous         uint64 `json:"ambiguous"`
	AccountNotFound   uint64 `json:"account_not_found"`
	AccountLoadErrors uint64 `json:"account_load_errors"`
	AccountLookupMs   uint64 `json:"account_lookup_ms"`
}

func (r *Resolution) Snapshot() ResolutionSnapshot {
	return ResolutionSnapshot{
		ByName:            r.ByName.Load(),
		ByAccount:         r.ByAccount.Load(),
		NotFound:          r.NotFound.Load(),
		Ambiguous:         r.Ambiguous.Load(),
		AccountNotFound:   r.AccountNotFound.Load(),
		AccountLoadErrors: r.AccountLoadErr.Load(),
		AccountLookupMs:   r.accountNanos.Load() / uint64(time.Millisecond),
	}
}
