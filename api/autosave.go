/*
autosave.go - Periodic snapshot mirroring

PURPOSE:
  Mirrors in-memory state to the snapshot cache on a timer, in addition to
  the save-on-mutation done by the handlers. Covers state that mutated
  between a failed best-effort save and the next mutation.

DESIGN:
  - Runs a background goroutine with configurable interval
  - Saves the admin snapshot (roster, payroll periods, pay slips) and every
    live portal session
  - Failures are logged and retried on the next tick

USAGE:
  saver := NewAutosaver(cache, rosterStore, register, sessions)
  saver.Start()
  // ... later
  saver.Stop()

SEE ALSO:
  - handlers.go: Save-on-mutation
  - store/store.go: Snapshot keys and JSON helpers
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/chainpay/hr-engine/payroll"
	"github.com/chainpay/hr-engine/portal"
	"github.com/chainpay/hr-engine/roster"
	"github.com/chainpay/hr-engine/store"
)

// =============================================================================
// ADMIN SNAPSHOT
// =============================================================================

// AdminSnapshot is the admin half of the persisted cache: the roster plus
// the payroll register contents, in one entry.
type AdminSnapshot struct {
	Employees []roster.Employee       `json:"employees"`
	Periods   []payroll.PayrollPeriod `json:"payroll_periods"`
	Slips     []payroll.PaySlip       `json:"pay_slips"`
}

// SaveAdminSnapshot mirrors the roster and register to the cache.
func SaveAdminSnapshot(ctx context.Context, cache store.SnapshotStore, r *roster.Roster, reg *payroll.Register) error {
	periods, slips := reg.Snapshot()
	return store.Save(ctx, cache, store.AdminKey, AdminSnapshot{
		Employees: r.Snapshot(),
		Periods:   periods,
		Slips:     slips,
	})
}

// LoadAdminSnapshot restores roster and register from the cache. A missing
// or unparseable entry leaves both at their defaults.
func LoadAdminSnapshot(ctx context.Context, cache store.SnapshotStore, r *roster.Roster, reg *payroll.Register) (bool, error) {
	var snap AdminSnapshot
	found, err := store.Load(ctx, cache, store.AdminKey, &snap)
	if err != nil || !found {
		return false, err
	}
	r.Restore(snap.Employees)
	reg.Restore(snap.Periods, snap.Slips)
	return true, nil
}

// =============================================================================
// AUTOSAVER
// =============================================================================

type Autosaver struct {
	Cache    store.SnapshotStore
	Roster   *roster.Roster
	Register *payroll.Register
	Sessions *portal.Manager
	Interval time.Duration

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewAutosaver(cache store.SnapshotStore, r *roster.Roster, reg *payroll.Register, sessions *portal.Manager) *Autosaver {
	return &Autosaver{
		Cache:    cache,
		Roster:   r,
		Register: reg,
		Sessions: sessions,
		Interval: 30 * time.Second,
		stop:     make(chan bool),
	}
}

// Start begins the autosave loop.
func (a *Autosaver) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ticker = time.NewTicker(a.Interval)
	a.wg.Add(1)

	go a.run()

	log.Printf("[Autosave] Started with interval: %v", a.Interval)
}

// Stop stops the loop after a final save. Further calls are no-ops.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ticker != nil {
		a.ticker.Stop()
		a.ticker = nil
		close(a.stop)
		a.wg.Wait()
		a.saveAll()
		log.Println("[Autosave] Stopped")
	}
}

func (a *Autosaver) run() {
	defer a.wg.Done()

	for {
		select {
		case <-a.ticker.C:
			a.saveAll()
		case <-a.stop:
			return
		}
	}
}

func (a *Autosaver) saveAll() {
	ctx := context.Background()

	if err := SaveAdminSnapshot(ctx, a.Cache, a.Roster, a.Register); err != nil {
		log.Printf("[Autosave] Error saving admin snapshot: %v", err)
	}
	if err := a.Sessions.PersistAll(ctx); err != nil {
		log.Printf("[Autosave] Error saving session snapshots: %v", err)
	}
}
