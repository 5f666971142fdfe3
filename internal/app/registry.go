package app

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tanishqmanglor/nexmeet/internal/core"
	"github.com/tanishqmanglor/nexmeet/internal/domain"
)

type sessionEntry struct {
	Identity domain.Identity
	Room     domain.RoomID
	joinSeq  uint64
}

// Eviction reports what a removed session was attached to so callers can
// notify peers. Found is false when the session was unknown.
type Eviction struct {
	SID      core.SessionID
	Identity domain.Identity
	Room     domain.RoomID
	Found    bool
}

// Registry maps identity to session, session to identity and session to room.
// It never emits notifications.
type Registry struct {
	mu         sync.RWMutex
	sessions   map[core.SessionID]*sessionEntry
	identities map[domain.Identity]core.SessionID
	seq        uint64
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:   make(map[core.SessionID]*sessionEntry),
		identities: make(map[domain.Identity]core.SessionID),
	}
}

// Register binds sid to identity. A different session still registered for
// the same identity is evicted first (last write wins) and returned.
func (r *Registry) Register(sid core.SessionID, identity domain.Identity) Eviction {
	r.mu.Lock()
	defer r.mu.Unlock()

	var replaced Eviction
	if old, ok := r.identities[identity]; ok && old != sid {
		replaced = r.evictLocked(old)
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("stale_sid", string(old)).
			Str("identity", string(identity)).Str("room", string(replaced.Room)).Msg("evicted stale session")
	}

	entry, ok := r.sessions[sid]
	if !ok {
		entry = &sessionEntry{}
		r.sessions[sid] = entry
	}
	if entry.Identity != "" && entry.Identity != identity && r.identities[entry.Identity] == sid {
		delete(r.identities, entry.Identity)
	}
	entry.Identity = identity
	r.identities[identity] = sid
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Str("identity", string(identity)).Msg("registered session")
	return replaced
}

func (r *Registry) LookupSession(identity domain.Identity) (core.SessionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.identities[identity]
	return sid, ok
}

func (r *Registry) LookupIdentity(sid core.SessionID) (domain.Identity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Identity, true
	}
	return "", false
}

// SetRoom attaches a registered session to room. Sessions without an
// identity cannot hold a room.
func (r *Registry) SetRoom(sid core.SessionID, room domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return false
	}
	if entry.Room != room {
		r.seq++
		entry.joinSeq = r.seq
	}
	entry.Room = room
	log.Debug().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(room)).Msg("updated room")
	return true
}

func (r *Registry) GetRoom(sid core.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[sid]
	if !ok || entry.Room == "" {
		return "", false
	}
	return entry.Room, true
}

// Evict drops every entry keyed by or pointing to sid. Unknown sids are a no-op.
func (r *Registry) Evict(sid core.SessionID) Eviction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictLocked(sid)
}

func (r *Registry) evictLocked(sid core.SessionID) Eviction {
	entry, ok := r.sessions[sid]
	if !ok {
		return Eviction{SID: sid}
	}
	delete(r.sessions, sid)
	if r.identities[entry.Identity] == sid {
		delete(r.identities, entry.Identity)
	}
	return Eviction{SID: sid, Identity: entry.Identity, Room: entry.Room, Found: true}
}

// Len is the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

type regSnap struct {
	SID      core.SessionID
	Identity domain.Identity
	Room     domain.RoomID
	joinSeq  uint64
}

// snapshot returns sessions holding a room, in join order.
func (r *Registry) snapshot() []regSnap {
	r.mu.RLock()
	out := make([]regSnap, 0, len(r.sessions))
	for sid, e := range r.sessions {
		if e.Room == "" {
			continue
		}
		out = append(out, regSnap{SID: sid, Identity: e.Identity, Room: e.Room, joinSeq: e.joinSeq})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].joinSeq < out[j].joinSeq })
	return out
}
