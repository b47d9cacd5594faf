package bollywood

// StatusError is the Go rendering of the negative integer status codes
// spec.md's send_message/create_system contract returns. The Code field
// carries the literal value spec.md documents so a caller that wants the
// raw integer can still get it.
type StatusError struct {
	Code int
	msg  string
}

func (e *StatusError) Error() string { return e.msg }

func newStatus(code int, msg string) *StatusError {
	return &StatusError{Code: code, msg: msg}
}

// Sentinel statuses, matching spec.md §6's table one for one. Compare
// with errors.Is, or inspect (*StatusError).Code for the raw integer.
var (
	// ErrDying: -1, target id is dying.
	ErrDying = newStatus(-1, "bollywood: target actor is dying")
	// ErrOutOfRange: -2, actor id is out of range.
	ErrOutOfRange = newStatus(-2, "bollywood: actor id out of range")
	// ErrInvalidType: -3, message type is neither GODIE, SPAWN, nor a
	// valid index into the receiving role's handler table.
	ErrInvalidType = newStatus(-3, "bollywood: invalid message type")
	// ErrAllocFailed: -4, envelope allocation failed.
	ErrAllocFailed = newStatus(-4, "bollywood: envelope allocation failed")
	// ErrScheduleFailed: -5, the actor could not be enqueued onto the
	// runnable queue.
	ErrScheduleFailed = newStatus(-5, "bollywood: scheduling failed")
	// ErrQueueFull: -6, the target mailbox is at ACTOR_QUEUE_LIMIT.
	ErrQueueFull = newStatus(-6, "bollywood: mailbox full")

	// ErrAlreadyCreated is returned by NewSystem when called twice
	// against process-global state; unused by this module's
	// per-instance System (kept for API parity with spec.md's
	// create_system contract, which is process-global in the original).
	ErrAlreadyCreated = newStatus(-7, "bollywood: system already created")
	// ErrCastLimit is returned by registry registration when the registry
	// is already at CAST_LIMIT. Context.Spawn does not return it: the
	// worker that handles the SPAWN message logs it and drops the spawn.
	ErrCastLimit = newStatus(-8, "bollywood: actor registry at capacity")
)

// Is lets callers use errors.Is(err, bollywood.ErrDying) etc. Two
// StatusErrors are equal for errors.Is purposes when their codes match.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

