package bollywood

import "sync"

// registry is the dense, append-only actor -> id table plus the alive
// counter the coordinator blocks on during Join. Ids are assigned
// 0-based and in order; end only grows. Grounded on cacti.c's actArr
// (pushActorsCont's CAST_LIMIT ceiling and realloc-doubling growth —
// Go's append already amortizes the doubling, so no manual growth logic
// is needed here) and najoast-sngo's core/service_registry.go for the
// one-mutex-guards-one-table shape.
type registry struct {
	mu        sync.RWMutex
	cond      *sync.Cond
	actors    []*Actor
	alive     int
	castLimit int
}

func newRegistry(castLimit int) *registry {
	r := &registry{castLimit: castLimit}
	r.cond = sync.NewCond(r.mu.RLocker())
	return r
}

// register assigns the next dense id to actor, grows the table, and
// increments both end (implicit, via append) and alive. It fails with
// ErrCastLimit once the registry already holds castLimit actors.
func (r *registry) register(actor *Actor) (ActorID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.actors) >= r.castLimit {
		return 0, ErrCastLimit
	}

	id := ActorID(len(r.actors))
	actor.id = id
	r.actors = append(r.actors, actor)
	r.alive++
	return id, nil
}

// lookup returns the actor at id, or nil if id is out of range. Callers
// that will act on the returned actor rely on actors never being removed
// from the table (only dying, which is a flag on the Actor itself) —
// holding r.mu for the lookup is therefore sufficient, no further guard
// is required for subsequent use of the pointer.
func (r *registry) lookup(id ActorID) *Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.actors) {
		return nil
	}
	return r.actors[id]
}

// end returns the current count of registered actors (next id to be
// assigned).
func (r *registry) end() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actors)
}

// aliveCount returns the current alive counter.
func (r *registry) aliveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.alive
}

// decrementAlive is called once a worker has observed an actor's mailbox
// fully drained while that actor was dying (spec.md §4.3's liveness
// definition). It reports whether alive reached zero as a result and
// wakes any goroutine blocked in waitUntilIdle.
func (r *registry) decrementAlive() (reachedZero bool) {
	r.mu.Lock()
	r.alive--
	reachedZero = r.alive <= 0
	r.mu.Unlock()
	if reachedZero {
		r.cond.Broadcast()
	}
	return reachedZero
}

// markAllDyingAndForceZeroIfIdle implements spec.md §4.6's shutdown step
// as one atomic operation under registry.mu: every currently-registered
// actor is marked dying before the mutex is released. Because register
// also holds r.mu, an actor registered by a concurrent handleSpawn is
// either appended before this call takes the lock (and is marked here)
// or after it releases the lock; an actor registered after the sweep is
// not marked dying by this call. isRunnableQueueEmpty is evaluated last, still under
// r.mu, to decide whether to force alive to zero immediately (spec.md
// §5's registry_mutex > pool_mutex lock order).
func (r *registry) markAllDyingAndForceZeroIfIdle(isRunnableQueueEmpty func() bool) (reachedZero bool) {
	r.mu.Lock()
	for _, actor := range r.actors {
		actor.markDying()
	}
	if isRunnableQueueEmpty() {
		r.alive = 0
		r.mu.Unlock()
		r.cond.Broadcast()
		return true
	}
	r.mu.Unlock()
	return false
}

// waitUntilIdle blocks until alive reaches zero, mirroring cacti.c's
// actor_system_join spinning on globalCond/globalMutex. Grounded on
// runnableQueue's identical cond.Wait-in-a-for-loop shape.
func (r *registry) waitUntilIdle() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for r.alive > 0 {
		r.cond.Wait()
	}
}
