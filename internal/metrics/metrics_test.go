package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	c.Add(10)

	assert.Equal(t, uint64(110), c.Load())
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), time.Millisecond)
}

func TestResolution_Snapshot(t *testing.T) {
	var r Resolution
	r.ByName.Inc()
	r.ByAccount.Add(2)
	r.NotFound.Inc()
	r.AccountLoadErr.Inc()
	r.ObserveAccountLookup(3 * time.Millisecond)
	r.ObserveAccountLookup(-time.Second)

	snap := r.Snapshot()
	assert.Equal(t, uint64(1), snap.ByName)
	assert.Equal(t, uint64(2), snap.ByAccount)
	assert.Equal(t, uint64(1), snap.NotFound)
	assert.Equal(t, uint64(0), snap.Ambiguous)
	assert.Equal(t, uint64(1), snap.AccountLoadErrors)
	assert.Equal(t, uint64(3), snap.AccountLookupMs)
}
