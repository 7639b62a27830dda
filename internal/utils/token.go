// Package utils provides helper functions for bearer tokens and password
// verification.
package utils

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedToken is returned by DecodeToken when the payload does not
// have the expected username:timestamp shape.
var ErrMalformedToken = errors.New("malformed token")

// IssueToken builds a bearer token for the given username. The token is
// base64("username:epochMillis"); it carries no signature, so validity rests
// entirely on the expiry window and the username resolving to a real user.
func IssueToken(username string) string {
	payload := username + ":" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// DecodeToken reverses IssueToken, returning the username and issuance
// time. It fails with ErrMalformedToken when the token is not base64, does
// not split into exactly two colon-delimited fields, or the timestamp is not
// an integer.
func DecodeToken(token string) (string, time.Time, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", time.Time{}, ErrMalformedToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return "", time.Time{}, ErrMalformedToken
	}

	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", time.Time{}, ErrMalformedToken
	}

	return parts[0], time.UnixMilli(millis), nil
}
