package session

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/Kalyan9AI/blubblegame/internal/audio"
	"github.com/Kalyan9AI/blubblegame/internal/bubble"
	"github.com/Kalyan9AI/blubblegame/internal/store"
)

// Bubble key labels. Reserved keys are excluded: q quits, m toggles
// mute, r restarts.
const keyPool = "asdfghjklwetyuiopzxcvbn"

type eventKind int

const (
	evStart eventKind = iota
	evRestart
	evEnd
	evActivated
	evToggleMute
)

type event struct {
	kind eventKind
	id   int // bubble ID for evActivated
}

// liveBubble is a spawned bubble that has not yet been popped or expired.
type liveBubble struct {
	bubble.Bubble
	SpawnedAt time.Time
	Deadline  time.Time
}

// Controller owns the session state and processes all events on a single
// goroutine: the 1s countdown tick, the variable-interval spawn timer, an
// earliest-deadline expiry timer, and user events from the mailbox. No
// handler interleaves with another, so state needs no locking. Renderers
// read immutable snapshots.
type Controller struct {
	store    store.Store
	feedback audio.Feedback
	factory  *bubble.Factory
	rng      *rand.Rand
	widthFn  func() int
	now      func() time.Time

	sess  Session
	phase Phase
	best  int
	muted bool
	live  []liveBubble

	events chan event
	snap   atomic.Pointer[Snapshot]

	ticker      *time.Ticker
	spawnTimer  *time.Timer
	expiryTimer *time.Timer
}

// Options configures a Controller. Store is required; everything else
// has a sensible default.
type Options struct {
	Store    store.Store
	Feedback audio.Feedback
	Rand     *rand.Rand // seedable for deterministic tests
	Now      func() time.Time

	// ViewportWidth reports the current viewport width used for bubble
	// sizing; called at each spawn so resizes take effect immediately.
	ViewportWidth func() int
}

// NewController creates a controller in the idle phase, with the best
// score and mute preference loaded from the store.
func NewController(opts Options) *Controller {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	fb := opts.Feedback
	if fb == nil {
		fb = audio.Nop{}
	}
	widthFn := opts.ViewportWidth
	if widthFn == nil {
		widthFn = func() int { return 120 }
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Controller{
		store:    opts.Store,
		feedback: fb,
		factory:  bubble.NewFactory(rng),
		rng:      rng,
		widthFn:  widthFn,
		now:      now,
		events:   make(chan event, 64),
	}
	// Absent or unreadable preferences fall back to defaults.
	c.best, _ = c.store.BestScore()
	c.muted, _ = c.store.Muted()
	c.feedback.SetMuted(c.muted)
	c.publish()
	return c
}

// Start begins a session; no-op if one is already running.
func (c *Controller) Start() { c.send(event{kind: evStart}) }

// Restart abandons any running session and begins a fresh one.
func (c *Controller) Restart() { c.send(event{kind: evRestart}) }

// End finishes the running session early.
func (c *Controller) End() { c.send(event{kind: evEnd}) }

// Activated reports that the player hit bubble id. Events for bubbles
// that already expired, or that arrive after the session ended, are inert.
func (c *Controller) Activated(id int) { c.send(event{kind: evActivated, id: id}) }

// ToggleMute flips the persisted mute preference.
func (c *Controller) ToggleMute() { c.send(event{kind: evToggleMute}) }

// Snapshot returns the most recently published state for rendering.
func (c *Controller) Snapshot() *Snapshot { return c.snap.Load() }

// send enqueues an event without blocking; a full mailbox drops the
// event, matching how input is shed under backpressure.
func (c *Controller) send(ev event) {
	select {
	case c.events <- ev:
	default:
	}
}

// Run processes the mailbox until ctx is cancelled. All timers fire into
// the same select, so handlers run to completion in arrival order.
func (c *Controller) Run(ctx context.Context) {
	c.ticker = time.NewTicker(time.Second)
	c.ticker.Stop() // armed by handleStart
	defer c.ticker.Stop()

	c.spawnTimer = newStoppedTimer()
	defer c.spawnTimer.Stop()
	c.expiryTimer = newStoppedTimer()
	defer c.expiryTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.ticker.C:
			c.handleTick()
		case <-c.spawnTimer.C:
			c.handleSpawn()
			if c.sess.Running {
				c.spawnTimer.Reset(c.sess.SpawnInterval)
			}
		case <-c.expiryTimer.C:
			c.expireDue()
			c.armExpiry()
		case ev := <-c.events:
			c.dispatch(ev)
		}
		c.publish()
	}
}

func (c *Controller) dispatch(ev event) {
	switch ev.kind {
	case evStart:
		c.handleStart()
	case evRestart:
		c.handleRestart()
	case evEnd:
		c.handleEnd()
	case evActivated:
		c.handleActivated(ev.id)
	case evToggleMute:
		c.handleToggleMute()
	}
}

func (c *Controller) handleStart() {
	if c.sess.Running {
		return
	}
	c.sess = Session{
		Score:         0,
		Remaining:     Seconds,
		SpawnInterval: InitialSpawnInterval,
		Running:       true,
	}
	c.live = c.live[:0]
	c.phase = PhaseRunning
	if c.ticker != nil {
		c.ticker.Reset(time.Second)
	}
	if c.spawnTimer != nil {
		stopTimer(c.spawnTimer)
		c.spawnTimer.Reset(c.sess.SpawnInterval)
	}
	c.armExpiry()
}

func (c *Controller) handleRestart() {
	c.stopTimers()
	c.sess.Running = false
	c.handleStart()
}

func (c *Controller) handleEnd() {
	if !c.sess.Running {
		return
	}
	c.sess.Running = false
	c.phase = PhaseEnded
	c.stopTimers()
	if c.sess.Score > c.best {
		c.best = c.sess.Score
		// Persistence failures never interrupt play.
		_ = c.store.SetBestScore(c.best)
	}
	c.feedback.GameOver()
}

// handleTick decrements the countdown once per second while running.
func (c *Controller) handleTick() {
	if !c.sess.Running {
		return
	}
	c.sess.Remaining--
	if c.sess.Remaining <= 0 {
		c.sess.Remaining = 0
		c.handleEnd()
	}
}

// handleSpawn creates one bubble and arms its expiry deadline.
func (c *Controller) handleSpawn() {
	if !c.sess.Running {
		return
	}
	b := c.factory.New(c.widthFn(), c.sess.Score)
	b.Key = c.pickKey()
	now := c.now()
	c.live = append(c.live, liveBubble{
		Bubble:    b,
		SpawnedAt: now,
		Deadline:  now.Add(b.Duration),
	})
	c.armExpiry()
}

// handleActivated pops bubble id, awarding points and accelerating the
// cadence at every new multiple of accelScoreStep. Pop and expiry race;
// whichever removes the bubble first wins and the loser is a no-op.
func (c *Controller) handleActivated(id int) {
	if !c.sess.Running {
		return
	}
	i := c.indexOf(id)
	if i < 0 {
		return
	}
	points := bubble.PointsFor(c.live[i].SizePx)
	c.removeAt(i)
	c.sess.Score += points
	c.feedback.Pop(points)
	if c.sess.Score%accelScoreStep == 0 {
		c.accelerate()
	}
	c.armExpiry()
}

func (c *Controller) handleToggleMute() {
	c.muted = !c.muted
	c.feedback.SetMuted(c.muted)
	_ = c.store.SetMuted(c.muted)
}

// accelerate shortens the spawn interval one step. When the truncated
// value is unchanged (already at the floor) nothing is rescheduled, so
// no duplicate cadence can accumulate.
func (c *Controller) accelerate() {
	next := NextInterval(c.sess.SpawnInterval)
	if next == c.sess.SpawnInterval {
		return
	}
	c.sess.SpawnInterval = next
	if c.spawnTimer != nil {
		stopTimer(c.spawnTimer)
		c.spawnTimer.Reset(next)
	}
}

// expireDue removes every bubble whose deadline has passed.
func (c *Controller) expireDue() {
	now := c.now()
	kept := c.live[:0]
	for _, lb := range c.live {
		if lb.Deadline.After(now) {
			kept = append(kept, lb)
		}
	}
	c.live = kept
}

func (c *Controller) indexOf(id int) int {
	for i, lb := range c.live {
		if lb.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) removeAt(i int) {
	c.live = append(c.live[:i], c.live[i+1:]...)
}

// pickKey returns a label not used by any live bubble. When the pool is
// exhausted a duplicate is allowed; a press then pops the oldest match.
func (c *Controller) pickKey() rune {
	taken := make(map[rune]bool, len(c.live))
	for _, lb := range c.live {
		taken[lb.Key] = true
	}
	free := make([]rune, 0, len(keyPool))
	for _, r := range keyPool {
		if !taken[r] {
			free = append(free, r)
		}
	}
	if len(free) == 0 {
		return rune(keyPool[c.rng.Intn(len(keyPool))])
	}
	return free[c.rng.Intn(len(free))]
}

// armExpiry points the expiry timer at the earliest live deadline.
func (c *Controller) armExpiry() {
	if c.expiryTimer == nil {
		return
	}
	stopTimer(c.expiryTimer)
	var earliest time.Time
	for _, lb := range c.live {
		if earliest.IsZero() || lb.Deadline.Before(earliest) {
			earliest = lb.Deadline
		}
	}
	if earliest.IsZero() {
		return
	}
	d := earliest.Sub(c.now())
	if d < 0 {
		d = 0
	}
	c.expiryTimer.Reset(d)
}

// stopTimers cancels the tick, spawn and expiry timers. Must run before
// any rescheduling on restart so the old cadence cannot keep firing.
func (c *Controller) stopTimers() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	if c.spawnTimer != nil {
		stopTimer(c.spawnTimer)
	}
	if c.expiryTimer != nil {
		stopTimer(c.expiryTimer)
	}
}

func (c *Controller) publish() {
	views := make([]BubbleView, len(c.live))
	for i, lb := range c.live {
		views[i] = BubbleView{Bubble: lb.Bubble, SpawnedAt: lb.SpawnedAt}
	}
	c.snap.Store(&Snapshot{
		Phase:     c.phase,
		Score:     c.sess.Score,
		Remaining: c.sess.Remaining,
		Best:      c.best,
		Muted:     c.muted,
		Bubbles:   views,
	})
}

// newStoppedTimer returns a timer that will not fire until Reset.
func newStoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	stopTimer(t)
	return t
}

// stopTimer stops t and drains a pending fire so Reset starts clean.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
