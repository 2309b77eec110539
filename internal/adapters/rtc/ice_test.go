package rtc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewICEConfig(t *testing.T) {
	cfg, err := NewICEConfig(nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultWebRTCConfig(), cfg)

	cfg, err = NewICEConfig([]string{
		"stun:stun.example.org:3478",
		"turn:turn.example.org:3478?transport=udp",
	}, "user", "secret")
	require.NoError(t, err)
	require.Len(t, cfg.ICEServers, 2)
	assert.Equal(t, []string{"stun:stun.example.org:3478"}, cfg.ICEServers[0].URLs)
	assert.Equal(t, "user", cfg.ICEServers[1].Username)
	assert.Equal(t, "secret", cfg.ICEServers[1].Credential)
}

func TestNewICEConfigRejects(t *testing.T) {
	_, err := NewICEConfig([]string{"http://example.org"}, "", "")
	assert.Error(t, err)

	_, err = NewICEConfig([]string{"turn:turn.example.org:3478"}, "", "")
	assert.Error(t, err)
}
