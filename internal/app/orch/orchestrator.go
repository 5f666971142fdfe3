package orch

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/app"
	"github.com/tanishqmanglor/nexmeet/internal/core"
)

// ErrStopped is returned when an event is offered after Run has exited.
var ErrStopped = errors.New("orchestrator stopped")

type eventKind int

const (
	kindMessage eventKind = iota
	kindConnect
	kindDisconnect
)

// Event is one unit of work for the worker.
type Event struct {
	kind    eventKind
	SID     core.SessionID
	Type    core.EventType
	Payload json.RawMessage
	Conn    core.SignalConnection
}

type handlerFunc func(o *Orchestrator, ev Event)

var handlers = map[core.EventType]handlerFunc{
	core.EventJoinRoom:     (*Orchestrator).handleJoin,
	core.EventCallUser:     (*Orchestrator).handleCallUser,
	core.EventCallAccepted: (*Orchestrator).handleCallAccepted,
	core.EventICECandidate: (*Orchestrator).handleICECandidate,
	core.EventSendMessage:  (*Orchestrator).handleSendMessage,
	core.EventRaiseHand:    (*Orchestrator).handleRaiseHand,
}

type Stats struct {
	Connections  int `json:"connections"`
	Participants int `json:"participants"`
	Rooms        int `json:"rooms"`
}

// Orchestrator serializes every state change on one worker goroutine, so a
// capacity check and the registration that follows it never interleave with
// another event.
type Orchestrator struct {
	Registry  *app.Registry
	Rooms     *app.Membership
	Admission *app.Admission
	Relay     *app.Relay
	Policy    app.Policy

	events chan Event
	done   chan struct{}

	// conns is owned by the worker.
	conns     map[core.SessionID]core.SignalConnection
	connected atomic.Int64
}

func New(capacity, eventBuffer int, policy app.Policy) *Orchestrator {
	if policy == nil {
		policy = app.SimplePolicy{Action: app.DropMessage}
	}
	reg := app.NewRegistry()
	rooms := app.NewMembership(reg, capacity)
	o := &Orchestrator{
		Registry:  reg,
		Rooms:     rooms,
		Admission: app.NewAdmission(reg, rooms),
		Policy:    policy,
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
		conns:     make(map[core.SessionID]core.SignalConnection),
	}
	o.Relay = app.NewRelay(reg, rooms, o)
	return o
}

// Run processes events until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) {
	defer close(o.done)
	log.Info().Str("module", "orch").Msg("worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "orch").Msg("worker stopped")
			return
		case ev := <-o.events:
			o.Handle(ev)
		}
	}
}

func (o *Orchestrator) Connect(ctx context.Context, sid core.SessionID, conn core.SignalConnection) error {
	return o.enqueue(ctx, Event{kind: kindConnect, SID: sid, Conn: conn})
}

func (o *Orchestrator) Disconnect(ctx context.Context, sid core.SessionID) error {
	return o.enqueue(ctx, Event{kind: kindDisconnect, SID: sid})
}

// Submit queues a client event. Types outside the client table are dropped.
func (o *Orchestrator) Submit(ctx context.Context, sid core.SessionID, env core.Envelope) error {
	if !core.IsClientEvent(env.Type) {
		log.Warn().Str("module", "orch").Str("sid", string(sid)).Str("type", string(env.Type)).Msg("unknown event")
		return nil
	}
	return o.enqueue(ctx, Event{kind: kindMessage, SID: sid, Type: env.Type, Payload: env.Payload})
}

func (o *Orchestrator) enqueue(ctx context.Context, ev Event) error {
	select {
	case <-o.done:
		return ErrStopped
	default:
	}
	select {
	case o.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-o.done:
		return ErrStopped
	}
}

// Handle runs one event to completion on the calling goroutine.
func (o *Orchestrator) Handle(ev Event) {
	switch ev.kind {
	case kindConnect:
		o.conns[ev.SID] = ev.Conn
		o.connected.Add(1)
		log.Info().Str("module", "orch").Str("sid", string(ev.SID)).Msg("connected")
	case kindDisconnect:
		o.handleDisconnect(ev)
	default:
		h, ok := handlers[ev.Type]
		if !ok {
			log.Warn().Str("module", "orch").Str("sid", string(ev.SID)).Str("type", string(ev.Type)).Msg("no handler")
			return
		}
		h(o, ev)
	}
}

// Deliver implements app.Outbox.
func (o *Orchestrator) Deliver(to core.SessionID, msg core.Outbound) bool {
	conn, ok := o.conns[to]
	if !ok {
		return false
	}
	frame, err := msg.Encode()
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("sid", string(to)).Str("type", string(msg.Type)).Msg("encode")
		return false
	}
	if err := conn.TrySend(frame); err != nil {
		if errors.Is(err, core.ErrConnClosed) {
			log.Debug().Str("module", "orch").Str("sid", string(to)).Str("type", string(msg.Type)).Msg("session closed, dropped")
			return false
		}
		switch o.Policy.OnBackPressure(to, msg) {
		case app.KickSession:
			log.Warn().Err(err).Str("module", "orch").Str("sid", string(to)).Msg("send failed, closing session")
			conn.Close()
		case app.DropMessage:
			log.Warn().Err(err).Str("module", "orch").Str("sid", string(to)).Str("type", string(msg.Type)).Msg("send failed, dropped")
		}
		return false
	}
	return true
}

func (o *Orchestrator) Stats() Stats {
	return Stats{
		Connections:  int(o.connected.Load()),
		Participants: o.Registry.Len(),
		Rooms:        len(o.Rooms.Rooms()),
	}
}

func decode(ev Event, v any) bool {
	if err := json.Unmarshal(ev.Payload, v); err != nil {
		log.Warn().Err(err).Str("module", "orch").Str("sid", string(ev.SID)).Str("type", string(ev.Type)).Msg("bad payload")
		return false
	}
	return true
}
