package bollywood

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// System is the coordinator spec.md §4.7 describes: it owns the registry,
// the runnable queue, the worker pool and the signal thread, and exposes
// the four operations a caller has (Create is NewSystem itself, Send,
// Join, and Spawn only reachable through a handler's Context). Grounded
// on cacti.c's global actor_system_create/send_message/actor_system_join
// trio and the teacher's Engine, generalized from "one Engine owns one
// goroutine per Actor" to "one System owns a fixed pool".
type System struct {
	instanceID uuid.UUID
	log        *zap.Logger

	queueLimit int
	castLimit  int

	reg    *registry
	queue  *runnableQueue
	pool   *pool
	signal *signalThread

	rootID ActorID

	shutdownOnce sync.Once
	joinOnce     sync.Once
	joined       chan struct{}
}

// NewSystem is create_system: it builds the registry, runnable queue and
// worker pool, registers role as actor 0 (the root), seeds it with a
// HELLO whose SpawnerID is -1 (no spawner), starts the fixed workers and
// the signal thread, and returns. It returns an error if the instance id
// cannot be generated, if the root actor cannot be registered, or if the
// root's mailbox rejects the seed HELLO.
func NewSystem(role Role, opts ...Option) (*System, error) {
	cfg := defaultSystemConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	sys := &System{
		instanceID: id,
		log:        cfg.logger.With(zap.String("system_id", id.String())),
		queueLimit: cfg.queueLimit,
		castLimit:  cfg.castLimit,
		reg:        newRegistry(cfg.castLimit),
		queue:      newRunnableQueue(),
		joined:     make(chan struct{}),
	}

	root := newActor(role, cfg.queueLimit)
	rootID, err := sys.reg.register(root)
	if err != nil {
		return nil, err
	}
	sys.rootID = rootID

	sys.pool = newPool(cfg.poolSize, sys.queue, sys.reg, sys, sys.log, cfg.tracer)
	sys.signal = newSignalThread(sys)

	hello := &Message{Type: HELLO, Payload: HelloPayload{SpawnerID: -1}}
	if mustEnqueue, full := root.trySend(hello); full {
		return nil, ErrQueueFull
	} else if mustEnqueue {
		sys.queue.push(root)
	}

	sys.pool.start()
	sys.signal.start()

	sys.log.Info("bollywood: system created",
		zap.Int("pool_size", cfg.poolSize),
		zap.Int("queue_limit", cfg.queueLimit),
		zap.Int("cast_limit", cfg.castLimit))

	return sys, nil
}

// Root returns the id of the actor registered from NewSystem's role
// argument.
func (s *System) Root() ActorID {
	return s.rootID
}

// Send is send_message: it validates id against the registry before
// touching anything else (spec.md §9's resolved open question — bounds
// first, so an out-of-range id can never cause a type-table dereference
// on a nonexistent actor), then validates msg.Type against the target's
// own handler table, then checks the target isn't already dying, then
// pushes onto the mailbox and enqueues on the empty->non-empty edge.
func (s *System) Send(id ActorID, msg Message) error {
	actor := s.reg.lookup(id)
	if actor == nil {
		return ErrOutOfRange
	}
	if !validMessageType(msg.Type, actor.role) {
		return ErrInvalidType
	}
	if actor.isDying() {
		return ErrDying
	}

	mustEnqueue, full := actor.trySend(&Message{Type: msg.Type, Payload: msg.Payload})
	if full {
		return ErrQueueFull
	}
	if mustEnqueue {
		s.queue.push(actor)
	}
	return nil
}

func validMessageType(t MessageType, role Role) bool {
	switch t {
	case GODIE, SPAWN:
		return true
	default:
		return int(t) >= 0 && int(t) < role.nprompts()
	}
}

// Join is join_system: it blocks until every registered actor has
// drained its mailbox while dying (the registry's alive counter reaching
// zero), or until ctx is done, whichever comes first. Idempotent and
// safe to call from multiple goroutines; every caller observes the same
// completion.
func (s *System) Join(ctx context.Context) {
	go s.joinOnce.Do(func() {
		s.waitForIdle()
		close(s.joined)
	})

	select {
	case <-s.joined:
	case <-ctx.Done():
	}
}

// waitForIdle blocks on the registry's condition variable until alive
// reaches zero, then shuts the pool and signal thread down.
func (s *System) waitForIdle() {
	s.reg.waitUntilIdle()
	s.pool.requestShutdown()
	s.pool.wait()
	s.signal.stop()
}

// beginShutdown implements spec.md §4.6: mark every registered actor
// dying and, in the same critical section under the registry mutex,
// check whether the runnable queue is already empty and force the
// alive counter to zero if so — so Join never blocks forever waiting
// for workers that have nothing left to do, and so no actor registered
// concurrently by a handleSpawn can slip through unmarked (spec.md §9's
// resolved open question on the signal/worker race, see DESIGN.md).
func (s *System) beginShutdown() {
	s.shutdownOnce.Do(func() {
		s.reg.markAllDyingAndForceZeroIfIdle(s.queue.isEmpty)
	})
}
