package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"atfplatform/backend/models"
)

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.Send:
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			t.Fatalf("bad event payload: %v", err)
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("expected event, got none")
		return Event{}
	}
}

func TestPublishReachesOnlySubscribers(t *testing.T) {
	h := NewHub()
	sub := h.Register("sock-1")
	other := h.Register("sock-2")
	h.Subscribe(sub, "chat.7")

	h.Publish("chat.7", ".MessageSent", map[string]string{"body": "salam"})

	ev := recvEvent(t, sub)
	if ev.Channel != "chat.7" || ev.Event != ".MessageSent" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	select {
	case <-other.Send:
		t.Fatal("unsubscribed client must not receive the event")
	default:
	}
}

func TestPublishCarriesCorrelationID(t *testing.T) {
	h := NewHub()
	sub := h.Register("sock-1")
	h.Subscribe(sub, "chat.7")

	// Correlation ids are opaque client strings, not UUIDs; an optimistic
	// temp id like "tmp-1" must come back verbatim.
	h.Publish("chat.7", ".MessageSent", models.ChatMessage{
		ID:            "5f0c8b1e-0000-0000-0000-000000000000",
		UserID:        7,
		SenderID:      7,
		Body:          "salam",
		CorrelationID: "tmp-1",
	})

	ev := recvEvent(t, sub)
	data, ok := ev.Data.(map[string]interface{})
	if !ok || data["correlation_id"] != "tmp-1" {
		t.Fatalf("correlation id must be echoed in the event, got %+v", ev.Data)
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	h := NewHub()
	c := h.Register("sock-1")
	h.Subscribe(c, "chat.1")
	h.Unregister(c)

	if _, open := <-c.Send; open {
		t.Fatal("send channel must be closed after unregister")
	}
	// Publishing after unregister must not panic.
	h.Publish("chat.1", ".MessageSent", nil)
}

func TestHasSubscriber(t *testing.T) {
	h := NewHub()
	c := h.Register("sock-1")
	if h.HasSubscriber("chat.1") {
		t.Fatal("no subscriber expected yet")
	}
	h.Subscribe(c, "chat.1")
	if !h.HasSubscriber("chat.1") {
		t.Fatal("expected subscriber on chat.1")
	}
	h.Unsubscribe(c, "chat.1")
	if h.HasSubscriber("chat.1") {
		t.Fatal("unsubscribe must remove the listener")
	}
}
