package core

import (
	"encoding/json"
	"testing"

	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

func TestOutboundEncodeKeepsRawPayload(t *testing.T) {
	offer := json.RawMessage(`{"type":"offer","sdp":"v=0\r\na=x<y&z>\r\n"}`)
	frame, err := Outbound{
		Type:    EventIncomingCall,
		Payload: IncomingCall{From: "alice@x.com", Offer: offer},
	}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	want := `{"type":"incoming-call","payload":{"from":"alice@x.com","offer":{"type":"offer","sdp":"v=0\r\na=x<y&z>\r\n"}}}`
	if string(frame) != want {
		t.Errorf("unexpected frame\n got: %s\nwant: %s", frame, want)
	}
}

func TestOutboundEncodeCompactsRawPayload(t *testing.T) {
	candidate := json.RawMessage("{ \"candidate\": \"candidate:1\",\n  \"sdpMid\": \"0\" }")
	frame, err := Outbound{Type: EventICECandidate, Payload: ICECandidate{Candidate: candidate}}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"type":"ice-candidate","payload":{"candidate":{"candidate":"candidate:1","sdpMid":"0"}}}`
	if string(frame) != want {
		t.Errorf("unexpected frame\n got: %s\nwant: %s", frame, want)
	}
}

func TestOutboundEncodeEmptyUsers(t *testing.T) {
	frame, err := Outbound{Type: EventAllUsers, Payload: AllUsers{Users: []domain.Identity{}}}.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(frame) != `{"type":"all-users","payload":{"users":[]}}` {
		t.Errorf("unexpected frame: %s", frame)
	}
}

func TestIsClientEvent(t *testing.T) {
	cases := map[EventType]bool{
		EventJoinRoom:         true,
		EventCallUser:         true,
		EventCallAccepted:     true,
		EventICECandidate:     true,
		EventSendMessage:      true,
		EventRaiseHand:        true,
		EventPing:             false,
		EventUserDisconnected: false,
		"disconnect":          false,
	}
	for ev, want := range cases {
		if got := IsClientEvent(ev); got != want {
			t.Errorf("IsClientEvent(%q) = %v, want %v", ev, got, want)
		}
	}
}
