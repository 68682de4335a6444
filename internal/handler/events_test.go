package handler

import (
	"encoding/json"
	"testing"

	"gamebase/backend/internal/hub"
)

func TestIsDeleted(t *testing.T) {
	event := func(typ string) []byte {
		b, err := json.Marshal(hub.Event{Type: typ})
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	tests := []struct {
		name string
		msg  []byte
		want bool
	}{
		{"deleted", event(hub.EventInvitationDeleted), true},
		{"joined", event(hub.EventPlayerJoined), false},
		{"garbage", []byte("not json"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDeleted(tt.msg); got != tt.want {
				t.Errorf("isDeleted(%s) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}
