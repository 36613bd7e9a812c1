package realtime

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/igm/sockjs-go/sockjs"
)

type subscribeMessage struct {
	Action  string `json:"action"` // subscribe | unsubscribe
	Channel string `json:"channel"`
	Auth    string `json:"auth"`
}

type connectionEstablished struct {
	Event    string `json:"event"`
	SocketID string `json:"socket_id"`
}

// Handler serves the /realtime sockjs endpoint. Each session gets a socket
// id, then may subscribe to channels it holds a valid /broadcasting/auth
// signature for.
func Handler(h *Hub, secret string) http.Handler {
	return sockjs.NewHandler("/realtime", sockjs.DefaultOptions, func(session sockjs.Session) {
		socketID := uuid.NewString()
		client := h.Register(socketID)
		defer h.Unregister(client)

		hello, _ := json.Marshal(connectionEstablished{Event: "connection_established", SocketID: socketID})
		if err := session.Send(string(hello)); err != nil {
			return
		}

		go func() {
			for msg := range client.Send {
				_ = session.Send(string(msg))
			}
		}()

		for {
			msg, err := session.Recv()
			if err != nil {
				return
			}
			var sub subscribeMessage
			if err := json.Unmarshal([]byte(msg), &sub); err != nil {
				continue
			}
			switch sub.Action {
			case "subscribe":
				if !VerifySignature(secret, socketID, sub.Channel, sub.Auth) {
					_ = session.Close(4003, "subscription denied")
					return
				}
				h.Subscribe(client, sub.Channel)
			case "unsubscribe":
				h.Unsubscribe(client, sub.Channel)
			}
		}
	})
}
