package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	for _, username := range []string{"alice", "bob.smith", "x", "user-42"} {
		token := IssueToken(username)

		got, issuedAt, err := DecodeToken(token)
		require.NoError(t, err)
		assert.Equal(t, username, got)
		assert.WithinDuration(t, time.Now(), issuedAt, 5*time.Second)
	}
}

func TestDecodeTokenMalformed(t *testing.T) {
	cases := map[string]string{
		"not base64":        "!!!not-base64!!!",
		"no separator":      base64.StdEncoding.EncodeToString([]byte("aliceonly")),
		"too many fields":   base64.StdEncoding.EncodeToString([]byte("alice:123:456")),
		"bad timestamp":     base64.StdEncoding.EncodeToString([]byte("alice:notanumber")),
		"empty payload":     base64.StdEncoding.EncodeToString(nil),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeToken(token)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}
