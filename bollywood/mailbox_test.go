package bollywood

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMailbox_EmptyInitially(t *testing.T) {
	m := newMailbox(4)
	assert.True(t, m.isEmpty())
	assert.Nil(t, m.pop())
}

func TestMailbox_PushReportsWasEmpty(t *testing.T) {
	m := newMailbox(4)

	wasEmpty, ok := m.push(&Message{Type: 0})
	assert.True(t, ok)
	assert.True(t, wasEmpty)

	wasEmpty, ok = m.push(&Message{Type: 1})
	assert.True(t, ok)
	assert.False(t, wasEmpty)
}

func TestMailbox_FIFOOrder(t *testing.T) {
	m := newMailbox(4)
	for i := 0; i < 3; i++ {
		_, ok := m.push(&Message{Type: MessageType(i)})
		assert.True(t, ok)
	}
	for i := 0; i < 3; i++ {
		got := m.pop()
		if assert.NotNil(t, got) {
			assert.Equal(t, MessageType(i), got.Type)
		}
	}
	assert.True(t, m.isEmpty())
}

func TestMailbox_RejectsPushPastCapacity(t *testing.T) {
	m := newMailbox(2)
	_, ok := m.push(&Message{Type: 0})
	assert.True(t, ok)
	_, ok = m.push(&Message{Type: 1})
	assert.True(t, ok)

	_, ok = m.push(&Message{Type: 2})
	assert.False(t, ok, "mailbox at capacity must reject further pushes")
}

func TestMailbox_WrapsAroundAfterDrainAndRefill(t *testing.T) {
	m := newMailbox(3)
	_, _ = m.push(&Message{Type: 0})
	_, _ = m.push(&Message{Type: 1})
	_ = m.pop()

	_, ok := m.push(&Message{Type: 2})
	assert.True(t, ok)
	_ = m.pop()
	// Only message 2 remains, in the last slot; the next push wraps to 0.
	_, ok = m.push(&Message{Type: 3})
	assert.True(t, ok)
	_, ok = m.push(&Message{Type: 4})
	assert.True(t, ok)

	got := m.pop()
	if assert.NotNil(t, got) {
		assert.Equal(t, MessageType(2), got.Type)
	}
}
