// Package rtc builds the ICE configuration handed to browsers. The hub never
// opens peer connections itself; clients use this to reach each other.
package rtc

import (
	"fmt"

	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

func DefaultWebRTCConfig() webrtc.Configuration {
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{
			{
				URLs: []string{"stun:stun.l.google.com:19302"},
			},
		},
	}
}

// NewICEConfig groups STUN urls into one server entry and TURN urls into
// another that carries the credentials.
func NewICEConfig(urls []string, username, credential string) (webrtc.Configuration, error) {
	if len(urls) == 0 {
		return DefaultWebRTCConfig(), nil
	}
	var stunURLs, turnURLs []string
	for _, raw := range urls {
		u, err := stun.ParseURI(raw)
		if err != nil {
			return webrtc.Configuration{}, fmt.Errorf("ice server %q: %w", raw, err)
		}
		switch u.Scheme {
		case stun.SchemeTypeSTUN, stun.SchemeTypeSTUNS:
			stunURLs = append(stunURLs, raw)
		case stun.SchemeTypeTURN, stun.SchemeTypeTURNS:
			turnURLs = append(turnURLs, raw)
		default:
			return webrtc.Configuration{}, fmt.Errorf("ice server %q: unsupported scheme", raw)
		}
	}

	cfg := webrtc.Configuration{}
	if len(stunURLs) > 0 {
		cfg.ICEServers = append(cfg.ICEServers, webrtc.ICEServer{URLs: stunURLs})
	}
	if len(turnURLs) > 0 {
		if username == "" || credential == "" {
			return webrtc.Configuration{}, fmt.Errorf("turn servers need ice_username and ice_credential")
		}
		cfg.ICEServers = append(cfg.ICEServers, webrtc.ICEServer{
			URLs:       turnURLs,
			Username:   username,
			Credential: credential,
		})
	}
	return cfg, nil
}
