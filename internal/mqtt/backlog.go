package mqtt

import "log"

// queuedMsg stores a serialized message for replay after reconnection.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a fixed-capacity FIFO holding telemetry produced while the
// broker is unreachable. Not safe for concurrent use; the publisher
// synchronizes access.
type backlog struct {
	buf      []queuedMsg
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any message was dropped since last drain
}

func newBacklog(capacity int) *backlog {
	return &backlog{
		buf:      make([]queuedMsg, capacity),
		capacity: capacity,
	}
}

func (b *backlog) push(msg queuedMsg) {
	if b.count == b.capacity {
		if !b.overflow {
			log.Printf("mqtt: backlog full (%d messages), dropping oldest", b.capacity)
			b.overflow = true
		}
		// Overwrite oldest: head already points at it.
		b.buf[b.head] = msg
		b.head = (b.head + 1) % b.capacity
		return
	}
	b.buf[b.head] = msg
	b.head = (b.head + 1) % b.capacity
	b.count++
}

func (b *backlog) drainAll() []queuedMsg {
	if b.count == 0 {
		return nil
	}

	result := make([]queuedMsg, b.count)
	start := (b.head - b.count + b.capacity) % b.capacity
	for i := 0; i < b.count; i++ {
		result[i] = b.buf[(start+i)%b.capacity]
	}

	b.count = 0
	b.head = 0
	b.overflow = false
	return result
}

func (b *backlog) len() int {
	return b.count
}
