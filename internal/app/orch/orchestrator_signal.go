package orch

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/adapters/rtc"
	"github.com/tanishqmanglor/nexmeet/internal/core"
	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

func (o *Orchestrator) handleCallUser(ev Event) {
	var p core.CallUserPayload
	if !decode(ev, &p) || !o.validTarget(ev, p.EmailID, p.Offer) {
		return
	}
	summary := rtc.DescribeOffer(p.Offer)
	ok := o.Relay.RelayOffer(ev.SID, domain.Identity(p.EmailID), p.Offer)
	log.Debug().Str("module", "orch").Str("sid", string(ev.SID)).Str("target", p.EmailID).
		Str("sdp_type", summary.Type).Strs("media", summary.Media).Bool("delivered", ok).Msg("offer relayed")
}

func (o *Orchestrator) handleCallAccepted(ev Event) {
	var p core.CallAcceptedPayload
	if !decode(ev, &p) || !o.validTarget(ev, p.EmailID, p.Answer) {
		return
	}
	ok := o.Relay.RelayAnswer(ev.SID, domain.Identity(p.EmailID), p.Answer)
	log.Debug().Str("module", "orch").Str("sid", string(ev.SID)).Str("target", p.EmailID).Bool("delivered", ok).Msg("answer relayed")
}

func (o *Orchestrator) handleICECandidate(ev Event) {
	var p core.ICECandidatePayload
	if !decode(ev, &p) || !o.validTarget(ev, p.EmailID, p.Candidate) {
		return
	}
	o.Relay.RelayCandidate(ev.SID, domain.Identity(p.EmailID), p.Candidate)
}

func (o *Orchestrator) handleSendMessage(ev Event) {
	var p core.SendMessagePayload
	if !decode(ev, &p) {
		return
	}
	o.Relay.BroadcastChatMessage(ev.SID, p.Message)
}

func (o *Orchestrator) handleRaiseHand(ev Event) {
	var raised *bool
	if !decode(ev, &raised) {
		return
	}
	if raised == nil {
		log.Warn().Str("module", "orch").Str("sid", string(ev.SID)).Msg("raise-hand without state")
		return
	}
	o.Relay.BroadcastHandState(ev.SID, *raised)
}

func (o *Orchestrator) validTarget(ev Event, target string, body json.RawMessage) bool {
	if target == "" || len(body) == 0 || string(body) == "null" {
		log.Warn().Str("module", "orch").Str("sid", string(ev.SID)).Str("type", string(ev.Type)).Msg("missing target or body")
		return false
	}
	return true
}
