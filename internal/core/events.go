package core

import (
	"bytes"
	"encoding/json"

	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

type EventType string

// Client to server.
const (
	EventJoinRoom     EventType = "join-room"
	EventCallUser     EventType = "call-user"
	EventCallAccepted EventType = "call-accepted"
	EventICECandidate EventType = "ice-candidate"
	EventSendMessage  EventType = "send-message"
	EventRaiseHand    EventType = "raise-hand"
	EventPing         EventType = "ping"
)

// Server to client. call-accepted and ice-candidate keep their inbound names.
const (
	EventRoomFull         EventType = "room-full"
	EventAllUsers         EventType = "all-users"
	EventJoinedRoom       EventType = "joined-room"
	EventUserJoined       EventType = "user-joined"
	EventIncomingCall     EventType = "incoming-call"
	EventReceiveMessage   EventType = "receive-message"
	EventRemoteHand       EventType = "remote-hand"
	EventUserDisconnected EventType = "user-disconnected"
	EventPong             EventType = "pong"
)

var clientEvents = map[EventType]struct{}{
	EventJoinRoom:     {},
	EventCallUser:     {},
	EventCallAccepted: {},
	EventICECandidate: {},
	EventSendMessage:  {},
	EventRaiseHand:    {},
}

// IsClientEvent reports whether t may be submitted by a client for routing.
// ping is answered by the transport and is not routed.
func IsClientEvent(t EventType) bool {
	_, ok := clientEvents[t]
	return ok
}

// Envelope is the inbound wire unit: {"type": "...", "payload": ...}.
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Outbound is a server event before encoding.
type Outbound struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Encode renders the envelope without HTML escaping so relayed session
// descriptions keep their bytes. encoding/json compacts RawMessage
// payloads, so only compact client JSON survives byte for byte.
func (o Outbound) Encode() (Frame, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return Frame(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

type JoinRoomPayload struct {
	RoomID  string `json:"roomId"`
	EmailID string `json:"emailId"`
}

type CallUserPayload struct {
	Offer   json.RawMessage `json:"offer"`
	EmailID string          `json:"emailId"`
}

type CallAcceptedPayload struct {
	EmailID string          `json:"emailId"`
	Answer  json.RawMessage `json:"answer"`
}

type ICECandidatePayload struct {
	EmailID   string          `json:"emailId"`
	Candidate json.RawMessage `json:"candidate"`
}

type SendMessagePayload struct {
	Message string `json:"message"`
}

type RoomFull struct {
	RoomID domain.RoomID `json:"roomId"`
}

type AllUsers struct {
	Users []domain.Identity `json:"users"`
}

type JoinedRoom struct {
	RoomID domain.RoomID `json:"roomId"`
}

type UserJoined struct {
	EmailID domain.Identity `json:"emailId"`
}

type IncomingCall struct {
	From  domain.Identity `json:"from,omitempty"`
	Offer json.RawMessage `json:"offer"`
}

type CallAccepted struct {
	Answer json.RawMessage `json:"answer"`
}

type ICECandidate struct {
	Candidate json.RawMessage `json:"candidate"`
}

type ReceiveMessage struct {
	Sender  domain.Identity `json:"sender"`
	Message string          `json:"message"`
	Time    string          `json:"time"`
}

type RemoteHand struct {
	Sender domain.Identity `json:"sender"`
	State  bool            `json:"state"`
}

type UserDisconnected struct {
	EmailID domain.Identity `json:"emailId"`
}
