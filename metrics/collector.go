// Package metrics provides per-session metrics collection.
//
// The Collector accumulates counters during a single injection
// session. It is a leaf package with no internal dependencies.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of session counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after
// creation.
type Snapshot struct {
	// Injection
	EventsEncoded int64
	EncodedByKind map[string]int64
	MessagesSent  int64
	BytesSent     int64
	SendFailures  int64

	// Decode / relay
	MessagesParsed int64
	DecodeErrors   int64
	UnknownKinds   int64
	UnknownCodes   int64 // button source/target outside the enumerations

	// Dimensions (informational, set at construction)
	Transport string
	Device    string
	SessionID string
}

// Collector accumulates metrics during a single session.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver
// safe so instrumentation can be optional.
type Collector struct {
	mu sync.Mutex

	eventsEncoded int64
	encodedByKind map[string]int64
	messagesSent  int64
	bytesSent     int64
	sendFailures  int64

	messagesParsed int64
	decodeErrors   int64
	unknownKinds   int64
	unknownCodes   int64

	transport string
	device    string
	sessionID string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(transport, device, sessionID string) *Collector {
	return &Collector{
		encodedByKind: make(map[string]int64),
		transport:     transport,
		device:        device,
		sessionID:     sessionID,
	}
}

// IncEncoded records one encoded event of the given kind.
func (c *Collector) IncEncoded(kind string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.eventsEncoded++
	c.encodedByKind[kind]++
	c.mu.Unlock()
}

// AddSent records one message put on the channel.
func (c *Collector) AddSent(bytes int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.messagesSent++
	c.bytesSent += int64(bytes)
	c.mu.Unlock()
}

// IncSendFailure records a transport send failure.
func (c *Collector) IncSendFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.sendFailures++
	c.mu.Unlock()
}

// IncParsed records one successfully parsed inbound message.
func (c *Collector) IncParsed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.messagesParsed++
	c.mu.Unlock()
}

// IncDecodeError records a fatal decode or parse failure.
func (c *Collector) IncDecodeError() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.decodeErrors++
	c.mu.Unlock()
}

// IncUnknownKind records a message relayed with an undocumented
// discriminant.
func (c *Collector) IncUnknownKind() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.unknownKinds++
	c.mu.Unlock()
}

// IncUnknownCodes records a button event whose source or target code
// is outside the documented enumerations.
func (c *Collector) IncUnknownCodes() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.unknownCodes++
	c.mu.Unlock()
}

// Snapshot returns an immutable copy of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{EncodedByKind: map[string]int64{}}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	byKind := make(map[string]int64, len(c.encodedByKind))
	for k, v := range c.encodedByKind {
		byKind[k] = v
	}
	return Snapshot{
		EventsEncoded:  c.eventsEncoded,
		EncodedByKind:  byKind,
		MessagesSent:   c.messagesSent,
		BytesSent:      c.bytesSent,
		SendFailures:   c.sendFailures,
		MessagesParsed: c.messagesParsed,
		DecodeErrors:   c.decodeErrors,
		UnknownKinds:   c.unknownKinds,
		UnknownCodes:   c.unknownCodes,
		Transport:      c.transport,
		Device:         c.device,
		SessionID:      c.sessionID,
	}
}
