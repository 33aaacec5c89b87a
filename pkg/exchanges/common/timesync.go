package common

import (
	"context"
	"sync"
	"time"
)

// TimeSync tracks the offset between an exchange server clock and the local
// clock. It only syncs when asked to; there is no background refresh.
type TimeSync struct {
	getServerTime func(ctx context.Context) (int64, error)
	now           func() time.Time
	offset        int64 // milliseconds (server - local)
	lastSync      time.Time
	mu            sync.RWMutex
}

// NewTimeSync creates a tracker fed by getServerTime (epoch milliseconds).
func NewTimeSync(getServerTime func(ctx context.Context) (int64, error)) *TimeSync {
	return &TimeSync{
		getServerTime: getServerTime,
		now:           time.Now,
	}
}

// Sync measures the offset once, assuming symmetric network latency.
func (ts *TimeSync) Sync(ctx context.Context) error {
	localBefore := ts.now().UnixMilli()
	serverTime, err := ts.getServerTime(ctx)
	if err != nil {
		return err
	}
	localAfter := ts.now().UnixMilli()

	localTime := localBefore + (localAfter-localBefore)/2

	ts.mu.Lock()
	ts.offset = serverTime - localTime
	ts.lastSync = ts.now()
	ts.mu.Unlock()
	return nil
}

// Now returns the current time in epoch milliseconds adjusted for the offset.
func (ts *TimeSync) Now() int64 {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.now().UnixMilli() + ts.offset
}

// Offset returns the last measured offset in milliseconds.
func (ts *TimeSync) Offset() int64 {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.offset
}

// LastSync returns when Sync last succeeded; zero if never.
func (ts *TimeSync) LastSync() time.Time {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.lastSync
}
