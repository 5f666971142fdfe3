package rtc

import (
	"strings"

	"github.com/pion/webrtc/v4"
)

// DefaultSTUNURLs are handed to browsers when no ICE servers are configured.
var DefaultSTUNURLs = []string{
	"stun:stun.l.google.com:19302",
	"stun:stun1.l.google.com:19302",
	"stun:stun2.l.google.com:19302",
}

func DefaultICEServers() []webrtc.ICEServer {
	return []webrtc.ICEServer{{URLs: append([]string(nil), DefaultSTUNURLs...)}}
}

// NewICEServer builds a browser ICE server entry. Credentials are only set
// for TURN servers that need them.
func NewICEServer(urls []string, username, credential string) webrtc.ICEServer {
	s := webrtc.ICEServer{URLs: urls, Username: username}
	if credential != "" {
		s.Credential = credential
	}
	return s
}

// ICEServers groups configured urls into browser entries. TURN urls carry
// the credentials, STUN urls never do. No urls means the defaults.
func ICEServers(urls []string, username, credential string) []webrtc.ICEServer {
	if len(urls) == 0 {
		return DefaultICEServers()
	}
	var stun, turn []string
	for _, u := range urls {
		if strings.HasPrefix(u, "turn:") || strings.HasPrefix(u, "turns:") {
			turn = append(turn, u)
		} else {
			stun = append(stun, u)
		}
	}
	out := make([]webrtc.ICEServer, 0, 2)
	if len(stun) > 0 {
		out = append(out, NewICEServer(stun, "", ""))
	}
	if len(turn) > 0 {
		out = append(out, NewICEServer(turn, username, credential))
	}
	return out
}
