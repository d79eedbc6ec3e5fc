package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/button-sensor/internal/logic"
)

var testSource = Source{Pin: 17, BootID: "0b5c1c52-8a4e-4f5e-9a43-3c1d8d3c2e10"}

func TestFormatPayload(t *testing.T) {
	event := logic.Event{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		Type:      logic.EventButtonOn,
		State:     logic.StateOn,
	}

	payload, err := FormatPayload(testSource, event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"button":{"timestamp":"2026-02-02T22:18:12Z","event":"BUTTON_ON","state":"ON","pin":17,"boot_id":"0b5c1c52-8a4e-4f5e-9a43-3c1d8d3c2e10"}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatPayloadAllEventTypes(t *testing.T) {
	tests := []struct {
		eventType logic.EventType
		state     logic.State
		wantState string
	}{
		{logic.EventButtonOn, logic.StateOn, "ON"},
		{logic.EventButtonOff, logic.StateOff, "OFF"},
		{logic.EventTick, logic.StateOff, "OFF"},
		{logic.EventTick, "", "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType)+"/"+tt.wantState, func(t *testing.T) {
			payload, err := FormatPayload(testSource, logic.Event{
				Timestamp: time.Now(),
				Type:      tt.eventType,
				State:     tt.state,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var parsed Payload
			if err := json.Unmarshal(payload, &parsed); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if parsed.Button.Event != string(tt.eventType) {
				t.Errorf("event: got %s, want %s", parsed.Button.Event, tt.eventType)
			}
			if parsed.Button.State != tt.wantState {
				t.Errorf("state: got %s, want %s", parsed.Button.State, tt.wantState)
			}
		})
	}
}

func TestFormatPayloadOmitsEmptyBootID(t *testing.T) {
	payload, err := FormatPayload(Source{Pin: 4}, logic.Event{Timestamp: time.Now(), Type: logic.EventButtonOff, State: logic.StateOff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var parsed map[string]map[string]interface{}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, exists := parsed["button"]["boot_id"]; exists {
		t.Error("boot_id should be omitted when empty")
	}
}

func TestFormatPayloadTimezoneConversion(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	payload, err := FormatPayload(testSource, logic.Event{
		Timestamp: time.Date(2026, 2, 3, 0, 30, 0, 0, loc),
		Type:      logic.EventButtonOn,
		State:     logic.StateOn,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed Payload
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Button.Timestamp != "2026-02-02T22:30:00Z" {
		t.Errorf("expected UTC timestamp, got %s", parsed.Button.Timestamp)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"system":{"timestamp":"2026-02-10T08:30:00Z","event":"SHUTDOWN","reason":"SIGTERM"}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	payload, err := FormatSystemPayload(SystemEvent{
		Timestamp: time.Date(2026, 2, 10, 14, 30, 0, 0, time.UTC),
		Event:     "RECONNECTED",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `{"system":{"timestamp":"2026-02-10T14:30:00Z","event":"RECONNECTED"}}`
	if string(payload) != expected {
		t.Errorf("unexpected payload:\ngot:  %s\nwant: %s", payload, expected)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"HEARTBEAT"}}`)
	payload, err := FormatSystemPayload(SystemEvent{Event: "HEARTBEAT", RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload, got %s", payload)
	}
}

func TestTopics(t *testing.T) {
	if Topic != "home/button/sensor/events" {
		t.Errorf("unexpected topic: %s", Topic)
	}
	if TopicSystem != "home/button/sensor/system" {
		t.Errorf("unexpected system topic: %s", TopicSystem)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()
	f.Source = testSource

	err := f.Publish(logic.Event{Timestamp: time.Now(), Type: logic.EventButtonOn, State: logic.StateOn})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Events) != 1 || len(f.Payloads) != 1 {
		t.Fatalf("expected 1 event and payload, got %d/%d", len(f.Events), len(f.Payloads))
	}

	var parsed Payload
	if err := json.Unmarshal(f.Payloads[0], &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Button.Pin != 17 {
		t.Errorf("pin: got %d, want 17", parsed.Button.Pin)
	}
}

func TestFakePublisherErrors(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("simulated error")
	f.PublishSystemError = errors.New("simulated system error")

	if err := f.Publish(logic.Event{Type: logic.EventButtonOn}); err == nil {
		t.Error("expected Publish error")
	}
	if err := f.PublishSystem(SystemEvent{Event: "STARTUP"}); err == nil {
		t.Error("expected PublishSystem error")
	}
	if len(f.Events) != 0 || len(f.SystemEvents) != 0 {
		t.Error("failed publishes should not be recorded")
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(logic.Event{Type: logic.EventButtonOn})
	f.PublishSystem(SystemEvent{Event: "STARTUP"})
	f.Close()
	f.Connected = true

	f.Reset()

	if len(f.Events) != 0 || len(f.Payloads) != 0 || len(f.SystemEvents) != 0 || len(f.SystemPayloads) != 0 {
		t.Error("Reset should clear recorded events")
	}
	if f.Closed || f.Connected {
		t.Error("Reset should clear Closed and Connected")
	}
}

func TestFakePublisherSystemEventNames(t *testing.T) {
	f := NewFakePublisher()
	f.PublishSystem(SystemEvent{Event: "STARTUP", Retained: true})
	f.PublishSystem(SystemEvent{Event: "HEARTBEAT"})

	names := f.SystemEventNames()
	if len(names) != 2 || names[0] != "STARTUP" || names[1] != "HEARTBEAT" {
		t.Errorf("unexpected names: %v", names)
	}
	if !f.SystemEvents[0].Retained || f.SystemEvents[1].Retained {
		t.Error("retained flag not recorded")
	}
}
