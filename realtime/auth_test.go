package realtime

import "testing"

func TestSignVerifyRoundTrip(t *testing.T) {
	sig := Sign("secret", "sock-1", "chat.7")
	if !VerifySignature("secret", "sock-1", "chat.7", sig) {
		t.Fatal("signature must verify with same inputs")
	}
	if VerifySignature("secret", "sock-2", "chat.7", sig) {
		t.Fatal("signature must be bound to the socket id")
	}
	if VerifySignature("secret", "sock-1", "chat.8", sig) {
		t.Fatal("signature must be bound to the channel")
	}
	if VerifySignature("other", "sock-1", "chat.7", sig) {
		t.Fatal("signature must be bound to the secret")
	}
}

func TestChatChannelOwner(t *testing.T) {
	owner, ok := ChatChannelOwner("chat.42")
	if !ok || owner != "42" {
		t.Fatalf("expected owner 42, got %q ok=%v", owner, ok)
	}
	for _, bad := range []string{"chat.", "presence.42", "chat.1.2", "chat"} {
		if _, ok := ChatChannelOwner(bad); ok {
			t.Fatalf("channel %q must not parse", bad)
		}
	}
}
