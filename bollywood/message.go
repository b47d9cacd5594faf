package bollywood

// ActorID is a stable, dense, 0-based identifier assigned at registration.
// Ids are never reused.
type ActorID int

// MessageType discriminates what a Message means to its receiver. Values
// in [0, Role.nprompts) index the receiving role's handler table; GODIE,
// SPAWN and HELLO are reserved sentinels outside that range.
type MessageType int

const (
	// GODIE asks the receiving actor to finish draining its mailbox and
	// then count as dead. It carries no payload.
	GODIE MessageType = -1
	// SPAWN asks the runtime to create a new actor from the Role carried
	// in the message payload. The payload is owned by the sender until
	// delivery, then re-interpreted by the worker that dispatches it.
	SPAWN MessageType = -2
	// HELLO is the one-shot message the runtime sends to a freshly
	// spawned (or seeded) actor. Its payload is the spawning actor's id
	// (ActorID(-1) for the root actor), owned by the runtime.
	HELLO MessageType = -3
)

// Message is the triple spec.md describes as (type, nbytes, data):
// Payload stands in for "nbytes + opaque pointer" since a Go value
// already knows its own size; ownership of Payload passes to the
// receiver the instant push succeeds.
type Message struct {
	Type    MessageType
	Payload any
}

// HandlerFunc is one entry in a Role's handler table. ctx exposes the
// two operations spec.md says are only meaningful during handler
// execution (Self, Spawn); state is a pointer to the actor's user state
// slot so a handler can both read and replace it; msg is the message
// being dispatched.
type HandlerFunc func(ctx Context, state *any, msg Message)

// Context is the per-dispatch handle a worker builds for exactly the
// duration of one handler call. It is the Go-idiomatic stand-in for the
// C original's thread-local current_actor_id (spec.md §9): since
// nothing outside a handler ever holds a Context, Self and Spawn are
// simply unreachable outside one, rather than merely "undefined".
//
// Grounded on the teacher's vendored bollywood.Context interface
// (Engine()/Self()/Sender()/Message(), passed to Actor.Receive).
type Context interface {
	// Self returns the id of the actor whose handler is currently
	// running.
	Self() ActorID
	// Spawn requests a new actor be created from role. It is sugar for
	// sending a SPAWN message to Self(): the new actor is registered
	// and sent its HELLO (carrying Self()'s id as spawner) once this
	// handler's own turn ends and the queued SPAWN message reaches the
	// front of Self()'s mailbox, not synchronously within this call —
	// the new actor's id is therefore not returned here; the child
	// learns it via ctx.Self() in its own HELLO handler, and the parent
	// learns the child via whatever the child tells it.
	Spawn(role Role) error
	// Send is System.Send, reachable from inside a handler for the same
	// reason spec.md never restricts send_message to outside handler
	// execution: it only ever touches the target's own mailbox, never
	// ctx's owner's transient dispatch state. Exposed on Context purely
	// so a handler does not need to capture its *System by closure — a
	// handler sending itself GODIE is the common case (Self(), msg).
	Send(id ActorID, msg Message) error
}

// Role is a read-only, non-owning set of message handlers shared by every
// actor created with it. The runtime never mutates a Role.
type Role struct {
	Handlers []HandlerFunc
}

// nprompts is the number of ordinary (non-sentinel) message types this
// role accepts.
func (r Role) nprompts() int {
	return len(r.Handlers)
}

// SpawnPayload is the payload carried by a SPAWN message: the role the
// new actor should run.
type SpawnPayload struct {
	Role Role
}

// HelloPayload is the payload carried by a HELLO message: the id of the
// actor that caused this one to be created, or -1 for the seeded root.
type HelloPayload struct {
	SpawnerID ActorID
}
