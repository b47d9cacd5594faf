package bollywood

// dispatchContext is the concrete Context a worker builds fresh for the
// duration of exactly one handler call (spec.md §9's resolution of "how
// does a handler learn its own id"). It is never retained past the
// handler call that received it.
type dispatchContext struct {
	actor *Actor
	sys   *System
}

func (c *dispatchContext) Self() ActorID {
	return c.actor.ID()
}

func (c *dispatchContext) Spawn(role Role) error {
	return c.sys.Send(c.actor.ID(), Message{Type: SPAWN, Payload: SpawnPayload{Role: role}})
}

func (c *dispatchContext) Send(id ActorID, msg Message) error {
	return c.sys.Send(id, msg)
}
