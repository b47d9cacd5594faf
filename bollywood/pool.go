package bollywood

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// pool is the fixed-size worker pool (spec.md §4.5): poolSize goroutines,
// each looping pop-dispatch-postDispatch forever, no per-actor goroutines
// and no work stealing between workers beyond the shared runnable queue
// itself. Grounded on cacti.c's workThreadPool/createThreadPool (a fixed
// pthread_t[] driving the same loop) and the teacher's engine dispatch
// goroutine, generalized from one goroutine per Engine to N.
type pool struct {
	size    int
	queue   *runnableQueue
	reg     *registry
	sys     *System
	log     *zap.Logger
	tracer  trace.Tracer
	metrics *metrics
	done    chan struct{}
}

func newPool(size int, queue *runnableQueue, reg *registry, sys *System, log *zap.Logger, tracer trace.Tracer) *pool {
	return &pool{
		size:    size,
		queue:   queue,
		reg:     reg,
		sys:     sys,
		log:     log,
		tracer:  tracer,
		metrics: newMetrics(),
		done:    make(chan struct{}),
	}
}

// start launches the fixed worker goroutines. It returns immediately; use
// wait to block until all workers have exited (after requestShutdown).
func (p *pool) start() {
	for i := 0; i < p.size; i++ {
		go p.workerLoop(i)
	}
}

// wait blocks until every worker goroutine has returned, signalling that
// the runnable queue has been fully drained of in-flight dispatch work.
func (p *pool) wait() {
	for i := 0; i < p.size; i++ {
		<-p.done
	}
}

// workerLoop is the ten-step dispatch cycle spec.md §4.5 describes: pop an
// actor, pop its oldest message, branch on sentinel vs ordinary type,
// build a Context, call the handler (recovering panics per §4.5b), then
// decide re-enqueue vs. liveness bookkeeping under the scheduling edge.
func (p *pool) workerLoop(workerID int) {
	defer func() { p.done <- struct{}{} }()

	for {
		actor, ok := p.queue.pop()
		if !ok {
			return
		}

		msg := actor.popForDispatch()
		if msg == nil {
			// Nothing to do: postDispatch still runs so the scheduled
			// flag is cleared and any liveness bookkeeping happens.
			p.finishDispatch(actor)
			continue
		}

		p.dispatch(actor, msg)
		p.finishDispatch(actor)
	}
}

func (p *pool) dispatch(actor *Actor, msg *Message) {
	_, span := p.tracer.Start(context.Background(), "bollywood.dispatch",
		trace.WithAttributes(
			attribute.Int("actor_id", int(actor.ID())),
			attribute.Int("message_type", int(msg.Type)),
		))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			p.metrics.handlerPanics.Add(1)
			p.log.Error("bollywood: handler panic recovered",
				zap.Int("actor_id", int(actor.ID())),
				zap.Int("message_type", int(msg.Type)),
				zap.Any("recovered", r),
				zap.ByteString("stack", debug.Stack()),
			)
			span.RecordError(errPanic{r})
		}
	}()

	switch msg.Type {
	case GODIE:
		actor.markDying()
	case SPAWN:
		p.handleSpawn(actor, msg)
	case HELLO:
		p.handleHello(actor, msg)
	default:
		p.handleOrdinary(actor, msg)
	}

	p.metrics.messagesProcessed.Add(1)
}

// handleOrdinary dispatches a non-sentinel message to the actor's own
// handler table entry for msg.Type. A type outside the table is logged
// and dropped; the one-shot HELLO is handled separately by handleHello.
func (p *pool) handleOrdinary(actor *Actor, msg *Message) {
	if int(msg.Type) < 0 || int(msg.Type) >= len(actor.role.Handlers) {
		p.log.Error("bollywood: dropping message with out-of-range type",
			zap.Int("actor_id", int(actor.ID())),
			zap.Int("message_type", int(msg.Type)))
		return
	}
	handler := actor.role.Handlers[msg.Type]
	c := &dispatchContext{actor: actor, sys: p.sys}
	handler(c, &actor.userState, *msg)
}

// handleSpawn implements spec.md §4.5 step 7: create a new actor from the
// role carried in data, register it, then send it a synthetic HELLO whose
// payload is the id of the actor currently processing this SPAWN message
// (cacti.c's msg_spawn, using actor_id_self() at that point in time).
func (p *pool) handleSpawn(actor *Actor, msg *Message) {
	payload, ok := msg.Payload.(SpawnPayload)
	if !ok {
		p.log.Error("bollywood: SPAWN message with invalid payload",
			zap.Int("actor_id", int(actor.ID())))
		return
	}
	child := newActor(payload.Role, p.sys.queueLimit)
	childID, err := p.reg.register(child)
	if err != nil {
		p.log.Error("bollywood: spawn failed, registry at capacity",
			zap.Int("spawner_id", int(actor.ID())), zap.Error(err))
		return
	}
	p.log.Debug("bollywood: actor spawned",
		zap.Int("spawner_id", int(actor.ID())), zap.Int("child_id", int(childID)))

	hello := &Message{Type: HELLO, Payload: HelloPayload{SpawnerID: actor.ID()}}
	if mustEnqueue, full := child.trySend(hello); full {
		p.log.Error("bollywood: newly spawned actor's mailbox rejected its own HELLO",
			zap.Int("child_id", int(childID)))
	} else if mustEnqueue {
		p.queue.push(child)
	}
}

// handleHello runs the actor's HELLO handler. role.Handlers has no
// reserved slot for it: HELLO is always dispatched to handler index 0,
// so a role that cares about HELLO checks msg.Type == HELLO there (see
// the roles in cmd/actordemo). A role with no handlers gets no HELLO
// call. Beyond that, the runtime's only responsibility here is the
// one-shot consumeHello gate.
func (p *pool) handleHello(actor *Actor, msg *Message) {
	if !actor.consumeHello() {
		p.log.Warn("bollywood: duplicate HELLO observed, ignoring",
			zap.Int("actor_id", int(actor.ID())))
		return
	}
	if len(actor.role.Handlers) == 0 {
		return
	}
	c := &dispatchContext{actor: actor, sys: p.sys}
	actor.role.Handlers[0](c, &actor.userState, *msg)
}

// finishDispatch runs the scheduling-edge epilogue (spec.md §4.2/§4.3):
// re-enqueue if the mailbox still holds messages after the handler ran
// (left over from before, or sent while it ran), otherwise
// clear scheduled and, if the actor is dying, decrement the registry's
// alive counter under the mandated lock order (registry mutex before
// actor mutex is satisfied because postDispatch only touches the actor
// mutex; the registry mutex is acquired here, after, for the counter).
func (p *pool) finishDispatch(actor *Actor) {
	reenqueue, dying := actor.postDispatch()
	if reenqueue {
		p.queue.push(actor)
		return
	}
	if dying {
		p.reg.decrementAlive()
	}
}

func (p *pool) requestShutdown() {
	p.queue.requestShutdown()
}

type errPanic struct{ v any }

func (e errPanic) Error() string { return fmt.Sprintf("bollywood: recovered handler panic: %v", e.v) }
