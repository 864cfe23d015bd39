// Package livesync owns the lifecycle of the live-update channel for one
// repository subscription: it streams activity pushes when the transport is
// healthy, falls back to timed polling the instant it is not, reconnects
// with a fixed delay, and keeps the assembled view consistent by periodic
// reconciliation. Push transports fail silently in practice, so polling is
// unconditional whenever the stream is down; the view must never be left
// stale and uncorrectable.
package livesync

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glare-project/glare/internal/attribution"
	"github.com/glare-project/glare/internal/view"
	"github.com/glare-project/glare/pkg/logging"
	"github.com/glare-project/glare/pkg/model"
)

// State is the controller's lifecycle state.
type State string

const (
	StateIdle         State = "idle"
	StateConnecting   State = "connecting"
	StateStreaming    State = "streaming"
	StateReconnecting State = "reconnecting"
	StatePolling      State = "polling"
)

// Scope selects what a reconciliation fetches. While streaming, activity
// arrives over the stream itself, so most reconciliations skip the activity
// endpoint to avoid a redundant fetch.
type Scope int

const (
	// ScopeSnapshots reloads snapshots and attribution only.
	ScopeSnapshots Scope = iota
	// ScopeFull additionally reloads live activity.
	ScopeFull
)

// Loader fetches raw records from the console API.
type Loader interface {
	ListSnapshots(ctx context.Context, repoID string) ([]model.SnapshotRecord, error)
	ListAttributions(ctx context.Context, repoID string) ([]model.WorkerAttribution, error)
	ListActivities(ctx context.Context, repoID string) ([]model.SnapshotActivity, error)
}

// Stream is one open live-update connection.
type Stream interface {
	// Read blocks until the next message or a terminal error.
	Read() ([]byte, error)
	Close() error
}

// Transport opens streams. Implemented by WebSocketTransport; tests inject
// fakes.
type Transport interface {
	Dial(ctx context.Context, url string) (Stream, error)
}

// View is the recomputed state handed to the observer on every change.
type View struct {
	Snapshots  []model.SnapshotRecord
	Activities []model.SnapshotActivity
	Items      []model.ViewItem
	Groups     []view.MonthGroup
	Selected   string
	State      State
}

// Options configures a subscription.
type Options struct {
	RepositoryID string
	// StreamURL is the live endpoint; empty means the stream URL could not
	// be derived and the controller runs on polling alone.
	StreamURL      string
	PollInterval   time.Duration // default 10s
	ReconnectDelay time.Duration // default 5s
	Match          attribution.Config
	// WorkerID enables the worker facet on the assembled view.
	WorkerID string
	// OnUpdate receives every recomputed view. Called from controller
	// goroutines; must not call back into the controller synchronously.
	OnUpdate func(View)
	Logger   *logging.Logger
}

// Controller is the per-repository live-sync state machine. All fields are
// owned by one controller instance; a new subscription for the same
// repository must tear down the old one first.
type Controller struct {
	mu    sync.Mutex
	opts  Options
	load  Loader
	trans Transport
	log   *logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	state          State
	stream         Stream
	pollStop       chan struct{}
	reconnectTimer *time.Timer

	inflight bool
	disposed bool
	visible  bool

	snapshots    []model.SnapshotRecord
	attrIndex    *attribution.Index
	activities   []model.SnapshotActivity
	runningCount int
	selected     string
}

// Subscribe opens a subscription and starts its live-update machinery.
func Subscribe(loader Loader, transport Transport, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = 5 * time.Second
	}
	if opts.Match.TimeTolerance <= 0 {
		opts.Match = attribution.DefaultConfig()
	}

	log := opts.Logger
	if log == nil {
		log = logging.WithFields(nil)
	}
	log = log.WithFields(map[string]any{
		"repository":   opts.RepositoryID,
		"subscription": uuid.NewString(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		opts:    opts,
		load:    loader,
		trans:   transport,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		state:   StateIdle,
		visible: true,
	}

	if opts.StreamURL == "" || transport == nil {
		// No live endpoint: degrade to polling from the start.
		c.mu.Lock()
		c.state = StatePolling
		c.startPollingLocked()
		c.mu.Unlock()
		go c.Reconcile(ScopeFull)
		return c
	}

	go c.connect()
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns the currently-selected item id.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Select sets the selection; it is reconciled against the item list on the
// next refresh.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.selected = id
	}
}

// SetVisible gates background work. Reconciliations no-op while hidden;
// becoming visible again forces one immediate reconciliation.
func (c *Controller) SetVisible(visible bool) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	was := c.visible
	c.visible = visible
	c.mu.Unlock()

	if !was && visible {
		c.Reconcile(ScopeFull)
	}
}

// Dispose tears the subscription down: the stream is closed, the polling
// ticker and any pending reconnect are stopped, and no callback runs
// afterward. Dispose is idempotent.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.state = StateIdle
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}
	c.stopPollingLocked()
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	c.mu.Unlock()

	c.cancel()
	c.log.Debug("subscription disposed")
}

// Reconcile recomputes the view from freshly-fetched records. At most one
// reconciliation is in flight per subscription; a trigger arriving while
// one is outstanding is dropped, not queued — triggers are frequent and
// idempotent, so staleness resolves on the next one. Errors are absorbed:
// background reconciliation keeps the previous data and logs at warn.
func (c *Controller) Reconcile(scope Scope) {
	c.mu.Lock()
	if c.disposed || c.inflight || !c.visible {
		c.mu.Unlock()
		return
	}
	c.inflight = true
	ctx := c.ctx
	repoID := c.opts.RepositoryID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inflight = false
		c.mu.Unlock()
	}()

	snaps, snapErr := c.load.ListSnapshots(ctx, repoID)
	attrs, attrErr := c.load.ListAttributions(ctx, repoID)

	var acts []model.SnapshotActivity
	actErr := error(nil)
	if scope == ScopeFull {
		acts, actErr = c.load.ListActivities(ctx, repoID)
	}

	for _, err := range []error{snapErr, attrErr, actErr} {
		if err != nil {
			c.log.ErrorErr("reconciliation fetch failed; keeping previous data", err)
		}
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if snapErr == nil {
		c.snapshots = snaps
	}
	if attrErr == nil {
		c.attrIndex = attribution.NewIndex(attrs, c.opts.Match)
	}
	if scope == ScopeFull && actErr == nil {
		c.activities = acts
		c.runningCount = countRunning(acts)
	}
	c.mu.Unlock()

	c.publish()
}

func (c *Controller) connect() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.reconnectTimer = nil
	ctx := c.ctx
	streamURL := c.opts.StreamURL
	c.mu.Unlock()

	stream, err := c.trans.Dial(ctx, streamURL)
	if err != nil {
		c.log.Debug("stream dial failed", map[string]any{"error": err.Error()})
		c.streamDown()
		return
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		stream.Close()
		return
	}
	c.stream = stream
	c.state = StateStreaming
	c.stopPollingLocked()
	c.mu.Unlock()

	c.log.Debug("stream open")

	// One immediate silent reconciliation on connect; the stream itself
	// supplies activity, so skip the redundant activity fetch.
	c.Reconcile(ScopeSnapshots)

	go c.readLoop(stream)
}

func (c *Controller) readLoop(stream Stream) {
	for {
		payload, err := stream.Read()
		if err != nil {
			c.mu.Lock()
			stale := c.stream != stream || c.disposed
			c.mu.Unlock()
			if !stale {
				c.log.Debug("stream closed", map[string]any{"error": err.Error()})
				c.streamDown()
			}
			return
		}
		c.handleMessage(payload)
	}
}

// handleMessage applies one stream push. A payload carrying an activities
// array replaces the activity set wholesale; the transition of the running
// count from above zero to zero means a run just finished, so one extra
// snapshot reconciliation picks up the newly-completed snapshot. Anything
// malformed is a generic "something changed" signal, not a fatal error.
func (c *Controller) handleMessage(payload []byte) {
	var env model.StreamEnvelope
	if err := json.Unmarshal(payload, &env); err != nil || env.Activities == nil {
		c.Reconcile(ScopeFull)
		return
	}

	acts := *env.Activities
	running := countRunning(acts)

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	finished := c.runningCount > 0 && running == 0
	c.runningCount = running
	c.activities = acts
	c.mu.Unlock()

	c.publish()

	if finished {
		c.Reconcile(ScopeSnapshots)
	}
}

func (c *Controller) streamDown() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	if c.stream != nil {
		c.stream.Close()
		c.stream = nil
	}
	c.state = StateReconnecting
	// Polling starts immediately so the view keeps degrading gracefully
	// while reconnects are pending.
	c.startPollingLocked()
	if c.reconnectTimer == nil {
		c.reconnectTimer = time.AfterFunc(c.opts.ReconnectDelay, c.connect)
	}
	c.mu.Unlock()
}

func (c *Controller) startPollingLocked() {
	if c.pollStop != nil {
		return
	}
	stop := make(chan struct{})
	c.pollStop = stop
	interval := c.opts.PollInterval

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.Reconcile(ScopeFull)
			}
		}
	}()
}

func (c *Controller) stopPollingLocked() {
	if c.pollStop != nil {
		close(c.pollStop)
		c.pollStop = nil
	}
}

// publish recomputes the assembled view from the cached records and hands
// it to the observer.
func (c *Controller) publish() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	snaps := c.snapshots
	ix := c.attrIndex
	acts := c.activities
	workerID := c.opts.WorkerID
	selected := c.selected
	state := c.state
	onUpdate := c.opts.OnUpdate
	c.mu.Unlock()

	res := view.Assemble(snaps, ix, acts, view.Options{WorkerID: workerID})
	selected = view.ReconcileSelection(selected, res.Items)

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.selected = selected
	c.mu.Unlock()

	if onUpdate != nil {
		onUpdate(View{
			Snapshots:  snaps,
			Activities: acts,
			Items:      res.Items,
			Groups:     res.Groups,
			Selected:   selected,
			State:      state,
		})
	}
}

func countRunning(acts []model.SnapshotActivity) int {
	n := 0
	for i := range acts {
		if acts[i].Kind == model.ActivityRunning {
			n++
		}
	}
	return n
}
