package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	_, err := NewMember("", "Bob")
	require.ErrorIs(t, err, ErrEmptyPeer)

	m, err := NewMember("p1", "")
	require.NoError(t, err)
	assert.Equal(t, AnonymousName, m.Name())

	long := strings.Repeat("ж", MaxDisplayNameLen+10)
	m, err = NewMember("p1", long)
	require.NoError(t, err)
	assert.Equal(t, MaxDisplayNameLen, len([]rune(m.DisplayName)))
}

func TestPointerValidate(t *testing.T) {
	cases := []struct {
		p  Pointer
		ok bool
	}{
		{Pointer{0, 0}, true},
		{Pointer{0.5, 0.5}, true},
		{Pointer{1, 1}, true},
		{Pointer{-0.01, 0.5}, false},
		{Pointer{0.5, 1.01}, false},
		{Pointer{640, 480}, false},
		{Pointer{math.NaN(), 0}, false},
		{Pointer{math.Inf(1), 0}, false},
	}
	for _, c := range cases {
		err := c.p.Validate()
		if c.ok {
			assert.NoError(t, err, "%+v", c.p)
		} else {
			assert.ErrorIs(t, err, ErrPointerOutOfRange, "%+v", c.p)
		}
	}
}

func TestValidateMessage(t *testing.T) {
	assert.ErrorIs(t, ValidateMessage(""), ErrEmptyMessage)
	assert.ErrorIs(t, ValidateMessage(strings.Repeat("a", MaxMessageLen+1)), ErrMessageTooLong)
	assert.NoError(t, ValidateMessage("hi"))
}
