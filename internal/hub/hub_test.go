package hub

import (
	"encoding/json"
	"testing"
)

func TestBroadcastReachesOnlyThatInvitation(t *testing.T) {
	h := NewHub()
	a := make(Client, 1)
	b := make(Client, 1)
	h.Subscribe(1, a)
	h.Subscribe(2, b)

	h.Broadcast(1, Event{Type: EventPlayerJoined, Payload: map[string]int{"user_id": 9}})

	select {
	case msg := <-a:
		var got struct {
			Type    string         `json:"type"`
			Payload map[string]int `json:"payload"`
		}
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != EventPlayerJoined || got.Payload["user_id"] != 9 {
			t.Errorf("unexpected event: %+v", got)
		}
	default:
		t.Fatal("subscriber of invitation 1 received nothing")
	}

	select {
	case msg := <-b:
		t.Fatalf("subscriber of invitation 2 should not receive %s", msg)
	default:
	}
}

func TestBroadcastDoesNotBlockOnFullClient(t *testing.T) {
	h := NewHub()
	slow := make(Client) // unbuffered and never read
	h.Subscribe(1, slow)

	done := make(chan struct{})
	go func() {
		h.Broadcast(1, Event{Type: EventPlayerLeft})
		close(done)
	}()
	<-done
}

func TestUnsubscribeClosesAndCleansUp(t *testing.T) {
	h := NewHub()
	c := make(Client, 1)
	h.Subscribe(3, c)
	if h.Subscribers(3) != 1 {
		t.Fatalf("Subscribers() = %d, want 1", h.Subscribers(3))
	}

	h.Unsubscribe(3, c)

	if _, ok := <-c; ok {
		t.Error("client channel should be closed")
	}
	if h.Subscribers(3) != 0 {
		t.Errorf("Subscribers() = %d, want 0", h.Subscribers(3))
	}

	// A second unsubscribe must not panic on the closed channel.
	h.Unsubscribe(3, c)
}
