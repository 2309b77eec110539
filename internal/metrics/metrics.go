// Package metrics keeps process-wide counters and meters in a go-metrics
// registry and reports them as JSON.
package metrics

import (
	"context"
	"io"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

var reg = gometrics.NewRegistry()

func Incr(name string, i int64) {
	gometrics.GetOrRegisterCounter(name, reg).Inc(i)
}

func Decr(name string, i int64) {
	gometrics.GetOrRegisterCounter(name, reg).Dec(i)
}

func Mark(name string, n int64) {
	gometrics.GetOrRegisterMeter(name, reg).Mark(n)
}

// Count returns the current value of a counter, 0 when it was never touched.
func Count(name string) int64 {
	if c, ok := reg.Get(name).(gometrics.Counter); ok {
		return c.Count()
	}
	return 0
}

// Start writes the registry as JSON to w every period until ctx is done.
func Start(ctx context.Context, period time.Duration, w io.Writer) {
	if period <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(period)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				WriteOnce(w)
			}
		}
	}()
}

func WriteOnce(w io.Writer) {
	gometrics.WriteJSONOnce(reg, w)
}
