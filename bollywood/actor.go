package bollywood

import "sync"

// Actor is the runtime's record of one schedulable entity: its identity,
// its read-only role, its mailbox, and the liveness flags that decide
// when it stops counting as alive. Every field below mailbox is guarded
// by mu; role is set once at construction and never mutated, so it needs
// no lock.
//
// This mirrors cacti.c's actorAction struct (dead, spw, aMutex, mQ,
// sttptr) field for field, and generalizes the teacher's bollywood.Actor
// (Mailbox, State, Alive) from "one goroutine runs Performance forever"
// to "a worker dispatches into this struct's state".
type Actor struct {
	id   ActorID
	role Role

	mu           sync.Mutex
	mailbox      *mailbox
	userState    any
	dying        bool
	pendingHello bool

	// scheduled is true exactly while some worker is responsible for
	// this actor's mailbox: either it is sitting on the runnable queue
	// waiting to be popped, or a worker is between popping it and
	// finishing postDispatch for the message it just ran. It merges the
	// spec's "on the runnable queue" and "currently running" states
	// into one flag so that a message arriving mid-dispatch never
	// causes a second worker to pick up the same actor concurrently —
	// see DESIGN.md's open-question resolution for why this is stronger
	// than literally reproducing cacti.c's sample-at-pop-time race.
	scheduled bool
}

// newActor builds an actor with no id assigned yet; registry.register is
// the only place an id is ever set, at the moment of registration.
func newActor(role Role, queueLimit int) *Actor {
	return &Actor{
		role:         role,
		mailbox:      newMailbox(queueLimit),
		pendingHello: true,
	}
}

// ID returns this actor's stable registry id.
func (a *Actor) ID() ActorID { return a.id }

// isDying reports the current value of the monotonic dying flag.
func (a *Actor) isDying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dying
}

// markDying sets the actor's dying flag. It never clears it: the flag is
// monotonic (false -> true only), matching the registry invariant in
// spec.md §3.
func (a *Actor) markDying() {
	a.mu.Lock()
	a.dying = true
	a.mu.Unlock()
}

// trySend pushes msg onto the mailbox under the actor mutex and reports
// whether the caller must enqueue this actor onto the runnable queue
// (the sender side of the scheduling edge rule, spec.md §4.2). It is the
// empty->non-empty transition of the merged scheduled flag, not of the
// mailbox alone, that triggers enqueue: if a worker is already
// responsible for this actor (scheduled == true, whether queued or
// mid-dispatch), the push is silently absorbed — the worker's
// postDispatch call is guaranteed to observe the new message because it
// re-checks mailbox emptiness under this same mutex after the handler
// returns. full reports ACTOR_QUEUE_LIMIT saturation.
func (a *Actor) trySend(msg *Message) (mustEnqueue bool, full bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.mailbox.push(msg); !ok {
		return false, true
	}
	if a.scheduled {
		return false, false
	}
	a.scheduled = true
	return true, false
}

// popForDispatch pops the next message for a worker to run. The actor
// must already be marked scheduled (it was just taken off the runnable
// queue); popForDispatch does not re-check that invariant, it simply
// returns the oldest message.
func (a *Actor) popForDispatch() *Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mailbox.pop()
}

// postDispatch runs after a worker's handler call for the message
// popForDispatch returned has completed. It reports whether the actor
// must be re-enqueued (its mailbox is non-empty again) and, if not,
// whether it is now dying — the registry's alive counter is only
// touched by the caller once it also holds the registry mutex, per
// spec.md's lock ordering (registry_mutex before actor_mutex).
func (a *Actor) postDispatch() (reenqueue bool, dying bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.mailbox.isEmpty() {
		return true, false
	}
	a.scheduled = false
	return false, a.dying
}

// consumeHello clears the one-shot pendingHello flag the first time a
// HELLO message is dispatched to this actor. It reports whether the
// flag was set (i.e. whether this dispatch is that one-shot HELLO).
func (a *Actor) consumeHello() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.pendingHello {
		return false
	}
	a.pendingHello = false
	return true
}
