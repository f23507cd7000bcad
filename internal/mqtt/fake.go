package mqtt

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// DisplayEvents contains all display events that were published.
	DisplayEvents []DisplayEvent

	// DisplayPayloads contains the JSON payloads for display events.
	DisplayPayloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishDisplayError, if set, will be returned by PublishDisplay.
	PublishDisplayError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishDisplay records the display event.
func (f *FakePublisher) PublishDisplay(event DisplayEvent) error {
	if f.PublishDisplayError != nil {
		return f.PublishDisplayError
	}

	f.DisplayEvents = append(f.DisplayEvents, event)

	payload, err := FormatDisplayPayload(event)
	if err != nil {
		return err
	}
	f.DisplayPayloads = append(f.DisplayPayloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	f.SystemEvents = append(f.SystemEvents, event)

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.DisplayEvents = nil
	f.DisplayPayloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishDisplayError = nil
	f.PublishSystemError = nil
	f.Connected = false
}
