package solver

import (
	"sync/atomic"
	"time"
)

// Metrics records what one solve did. Side information only: no value in it
// feeds back into the search.
type Metrics struct {
	RecursiveCalls      int64
	FeasibilityPrunings int64
	UpperBoundPrunings  int64
	MemoHits            int64
	MemoMisses          int64
	MemoSize            int64
	Elapsed             time.Duration
}

func (m Metrics) TotalPrunings() int64 {
	return m.FeasibilityPrunings + m.UpperBoundPrunings
}

func (m Metrics) MemoHitRate() float64 {
	lookups := m.MemoHits + m.MemoMisses
	if lookups == 0 {
		return 0
	}
	return float64(m.MemoHits) / float64(lookups)
}

type Collector interface {
	Start()
	AddCall()
	AddFeasibilityPruning()
	AddUpperBoundPruning()
	AddMemoHit()
	AddMemoMiss()
	SetMemoSize(n int)
	Complete() Metrics
}

// collector counts with atomics so a parallel root split would not need any
// changes here. The sequential solver pays next to nothing for it.
type collector struct {
	startTime           time.Time
	calls               atomic.Int64
	feasibilityPrunings atomic.Int64
	upperBoundPrunings  atomic.Int64
	memoHits            atomic.Int64
	memoMisses          atomic.Int64
	memoSize            atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
}

func (c *collector) AddCall() {
	c.calls.Add(1)
}

func (c *collector) AddFeasibilityPruning() {
	c.feasibilityPrunings.Add(1)
}

func (c *collector) AddUpperBoundPruning() {
	c.upperBoundPrunings.Add(1)
}

func (c *collector) AddMemoHit() {
	c.memoHits.Add(1)
}

func (c *collector) AddMemoMiss() {
	c.memoMisses.Add(1)
}

func (c *collector) SetMemoSize(n int) {
	c.memoSize.Store(int64(n))
}

func (c *collector) Complete() Metrics {
	return Metrics{
		RecursiveCalls:      c.calls.Load(),
		FeasibilityPrunings: c.feasibilityPrunings.Load(),
		UpperBoundPrunings:  c.upperBoundPrunings.Load(),
		MemoHits:            c.memoHits.Load(),
		MemoMisses:          c.memoMisses.Load(),
		MemoSize:            c.memoSize.Load(),
		Elapsed:             time.Since(c.startTime),
	}
}

type noCollector struct{}

func NewNoCollector() Collector {
	return &noCollector{}
}

func (noCollector) Start()                 {}
func (noCollector) AddCall()               {}
func (noCollector) AddFeasibilityPruning() {}
func (noCollector) AddUpperBoundPruning()  {}
func (noCollector) AddMemoHit()            {}
func (noCollector) AddMemoMiss()           {}
func (noCollector) SetMemoSize(n int)      {}
func (noCollector) Complete() Metrics      { return Metrics{} }
