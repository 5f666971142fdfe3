package rtc

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pion/webrtc/v4"
)

const testSDP = "v=0\r\n" +
	"o=- 4215775240449105457 2 IN IP4 127.0.0.1\r\n" +
	"s=-\r\n" +
	"t=0 0\r\n" +
	"m=audio 9 UDP/TLS/RTP/SAVPF 111\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=rtpmap:111 opus/48000/2\r\n" +
	"m=video 9 UDP/TLS/RTP/SAVPF 96\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"a=rtpmap:96 VP8/90000\r\n"

func TestDescribeOffer(t *testing.T) {
	raw, err := json.Marshal(map[string]string{"type": "offer", "sdp": testSDP})
	if err != nil {
		t.Fatal(err)
	}
	got := DescribeOffer(raw)
	want := Summary{Type: "offer", Media: []string{"audio", "video"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DescribeOffer = %+v, want %+v", got, want)
	}
}

func TestDescribeOfferTolerant(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Summary
	}{
		{"not json", `nope`, Summary{}},
		{"array", `[1,2]`, Summary{}},
		{"answer without sdp", `{"type":"answer"}`, Summary{Type: "answer"}},
		{"garbage sdp", `{"type":"offer","sdp":"hello"}`, Summary{Type: "offer"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DescribeOffer(json.RawMessage(tc.raw)); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DescribeOffer = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestICEServers(t *testing.T) {
	def := DefaultICEServers()
	if len(def) != 1 || len(def[0].URLs) != 3 {
		t.Fatalf("unexpected defaults %+v", def)
	}
	def[0].URLs[0] = "mutated"
	if DefaultSTUNURLs[0] == "mutated" {
		t.Error("defaults share backing array")
	}

	turn := NewICEServer([]string{"turn:relay.example.com:3478"}, "user", "pass")
	if turn.Credential != "pass" || turn.Username != "user" {
		t.Errorf("turn = %+v", turn)
	}

	b, err := json.Marshal([]webrtc.ICEServer{NewICEServer([]string{"stun:example.com"}, "", "")})
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 1 || decoded[0]["urls"] == nil {
		t.Fatalf("stun entry = %s", b)
	}
	if _, ok := decoded[0]["credential"]; ok {
		t.Errorf("stun entry carries a credential: %s", b)
	}
}

func TestICEServersFromConfig(t *testing.T) {
	tests := []struct {
		name  string
		urls  []string
		count int
	}{
		{"defaults", nil, 1},
		{"stun only", []string{"stun:a:19302", "stun:b:19302"}, 1},
		{"turn only", []string{"turn:t:3478"}, 1},
		{"mixed", []string{"stun:a:19302", "turns:t:5349", "turn:t:3478?transport=tcp"}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ICEServers(tc.urls, "u", "p")
			if len(got) != tc.count {
				t.Fatalf("got %d entries: %+v", len(got), got)
			}
			for _, s := range got {
				isTurn := len(s.URLs) > 0 && s.URLs[0][:4] == "turn"
				if isTurn && s.Username != "u" {
					t.Errorf("turn entry missing username: %+v", s)
				}
				if !isTurn && s.Username != "" {
					t.Errorf("stun entry has username: %+v", s)
				}
			}
		})
	}
}
