package metrics

import (
	"sync"
	"testing"
)

func TestCollector_Snapshot(t *testing.T) {
	c := NewCollector("loopback", "booted", "sess-1")

	c.IncEncoded("touch")
	c.IncEncoded("touch")
	c.IncEncoded("button")
	c.AddSent(320)
	c.AddSent(176)
	c.IncSendFailure()
	c.IncParsed()
	c.IncDecodeError()
	c.IncUnknownKind()
	c.IncUnknownCodes()

	snap := c.Snapshot()
	if snap.EventsEncoded != 3 {
		t.Errorf("EventsEncoded = %d, want 3", snap.EventsEncoded)
	}
	if snap.EncodedByKind["touch"] != 2 || snap.EncodedByKind["button"] != 1 {
		t.Errorf("EncodedByKind = %v", snap.EncodedByKind)
	}
	if snap.MessagesSent != 2 || snap.BytesSent != 496 {
		t.Errorf("sent = %d messages / %d bytes, want 2 / 496", snap.MessagesSent, snap.BytesSent)
	}
	if snap.SendFailures != 1 || snap.DecodeErrors != 1 || snap.UnknownKinds != 1 || snap.UnknownCodes != 1 {
		t.Errorf("failure counters = %+v", snap)
	}
	if snap.Transport != "loopback" || snap.Device != "booted" || snap.SessionID != "sess-1" {
		t.Errorf("dimensions = %q/%q/%q", snap.Transport, snap.Device, snap.SessionID)
	}
}

func TestCollector_SnapshotIsACopy(t *testing.T) {
	c := NewCollector("loopback", "", "")
	c.IncEncoded("touch")

	snap := c.Snapshot()
	snap.EncodedByKind["touch"] = 100

	if got := c.Snapshot().EncodedByKind["touch"]; got != 1 {
		t.Errorf("collector mutated through snapshot: %d", got)
	}
}

func TestCollector_NilReceiverSafe(t *testing.T) {
	var c *Collector
	c.IncEncoded("touch")
	c.AddSent(176)
	c.IncSendFailure()
	c.IncParsed()
	c.IncDecodeError()
	c.IncUnknownKind()
	c.IncUnknownCodes()

	snap := c.Snapshot()
	if snap.EventsEncoded != 0 || snap.EncodedByKind == nil {
		t.Errorf("nil collector snapshot = %+v", snap)
	}
}

func TestCollector_ConcurrentIncrements(t *testing.T) {
	c := NewCollector("loopback", "", "")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.IncEncoded("touch")
				c.AddSent(320)
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	if snap.EventsEncoded != 800 || snap.MessagesSent != 800 {
		t.Errorf("counters = %d / %d, want 800 / 800", snap.EventsEncoded, snap.MessagesSent)
	}
}
