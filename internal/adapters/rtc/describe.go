package rtc

import (
	"encoding/json"

	"github.com/pion/sdp/v3"
	"github.com/pion/webrtc/v4"
)

// Summary is a log-friendly view of a relayed session description.
type Summary struct {
	Type  string
	Media []string
}

// DescribeOffer inspects a relayed description without changing it.
// Anything that does not parse yields an empty Summary.
func DescribeOffer(raw json.RawMessage) Summary {
	var desc webrtc.SessionDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return Summary{}
	}
	var out Summary
	if desc.Type != webrtc.SDPTypeUnknown {
		out.Type = desc.Type.String()
	}
	if desc.SDP == "" {
		return out
	}
	var parsed sdp.SessionDescription
	if err := parsed.UnmarshalString(desc.SDP); err != nil {
		return out
	}
	for _, md := range parsed.MediaDescriptions {
		out.Media = append(out.Media, md.MediaName.Media)
	}
	return out
}
