package mqtt

import "log"

// spooledMsg stores a serialized MQTT message for replay after reconnection.
type spooledMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// spool is a fixed-capacity FIFO that stores messages while disconnected.
// Not safe for concurrent use — caller must synchronize.
type spool struct {
	buf      []spooledMsg
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any message was dropped since last drain
}

func newSpool(capacity int) *spool {
	return &spool{
		buf:      make([]spooledMsg, capacity),
		capacity: capacity,
	}
}

func (s *spool) push(msg spooledMsg) {
	if s.count == s.capacity {
		if !s.overflow {
			log.Printf("mqtt: spool full (%d messages), dropping oldest", s.capacity)
			s.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		s.buf[s.head] = msg
		s.head = (s.head + 1) % s.capacity
		// count stays at capacity
		return
	}
	s.buf[s.head] = msg
	s.head = (s.head + 1) % s.capacity
	s.count++
}

func (s *spool) drainAll() []spooledMsg {
	if s.count == 0 {
		return nil
	}

	result := make([]spooledMsg, s.count)
	// Oldest item is at (head - count) mod capacity
	start := (s.head - s.count + s.capacity) % s.capacity
	for i := 0; i < s.count; i++ {
		result[i] = s.buf[(start+i)%s.capacity]
	}

	s.count = 0
	s.head = 0
	s.overflow = false
	return result
}

func (s *spool) len() int {
	return s.count
}
