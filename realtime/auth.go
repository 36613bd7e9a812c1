package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sign produces the private-channel signature handed out by
// POST /broadcasting/auth: an HMAC over "socketID:channel".
func Sign(secret, socketID, channel string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(socketID + ":" + channel))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret, socketID, channel, signature string) bool {
	expected := Sign(secret, socketID, channel)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ChatChannelOwner extracts the user id segment of a "chat.{id}" channel
// name. Returns false for any other channel shape.
func ChatChannelOwner(channel string) (string, bool) {
	rest, ok := strings.CutPrefix(channel, "chat.")
	if !ok || rest == "" || strings.Contains(rest, ".") {
		return "", false
	}
	return rest, true
}
