package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActor_TrySendEnqueuesOnlyOnEmptyToNonEmptyEdge(t *testing.T) {
	a := newActor(Role{}, 4)

	mustEnqueue, full := a.trySend(&Message{Type: 0})
	assert.True(t, mustEnqueue)
	assert.False(t, full)

	mustEnqueue, full = a.trySend(&Message{Type: 1})
	assert.False(t, mustEnqueue, "a second message while the actor is already scheduled must not re-enqueue")
	assert.False(t, full)
}

func TestActor_TrySendReportsFullAtQueueLimit(t *testing.T) {
	a := newActor(Role{}, 1)
	_, full := a.trySend(&Message{Type: 0})
	assert.False(t, full)

	_, full = a.trySend(&Message{Type: 1})
	assert.True(t, full)
}

func TestActor_PostDispatchReenqueuesWhenMailboxNonEmpty(t *testing.T) {
	a := newActor(Role{}, 4)
	_, _ = a.trySend(&Message{Type: 0})
	_, _ = a.trySend(&Message{Type: 1})

	_ = a.popForDispatch()
	reenqueue, dying := a.postDispatch()
	assert.True(t, reenqueue)
	assert.False(t, dying)
}

func TestActor_PostDispatchClearsScheduledWhenMailboxDrained(t *testing.T) {
	a := newActor(Role{}, 4)
	_, _ = a.trySend(&Message{Type: 0})
	_ = a.popForDispatch()

	reenqueue, dying := a.postDispatch()
	assert.False(t, reenqueue)
	assert.False(t, dying)

	// scheduled was cleared, so a fresh message must enqueue again.
	mustEnqueue, _ := a.trySend(&Message{Type: 1})
	assert.True(t, mustEnqueue)
}

func TestActor_PostDispatchReportsDyingOnlyWhenDrainedAndDying(t *testing.T) {
	a := newActor(Role{}, 4)
	_, _ = a.trySend(&Message{Type: 0})
	a.markDying()
	_ = a.popForDispatch()

	reenqueue, dying := a.postDispatch()
	assert.False(t, reenqueue)
	assert.True(t, dying)
}

func TestActor_ConsumeHelloFiresOnce(t *testing.T) {
	a := newActor(Role{}, 4)
	assert.True(t, a.consumeHello())
	assert.False(t, a.consumeHello())
}

func TestActor_ScheduledFlagPreventsASecondWorkerFromPoppingConcurrently(t *testing.T) {
	// Regression test for the concurrency defect a literal wasEmpty-at-
	// pop-time sample would reintroduce: a message arriving while a
	// handler is still running must not cause the actor to be queued a
	// second time until postDispatch clears scheduled.
	a := newActor(Role{}, 4)

	mustEnqueue, _ := a.trySend(&Message{Type: 0})
	assert.True(t, mustEnqueue)

	_ = a.popForDispatch() // worker A takes responsibility, dispatch in progress

	// A second message arrives mid-dispatch.
	mustEnqueue, _ = a.trySend(&Message{Type: 1})
	assert.False(t, mustEnqueue, "actor is already scheduled; must not be queued twice")

	// Worker A finishes; the epilogue must re-enqueue exactly once.
	reenqueue, _ := a.postDispatch()
	assert.True(t, reenqueue)
}
