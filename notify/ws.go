package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"flexwage/middleware"
	"flexwage/models"
	"flexwage/rdx"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS keeps a connection open and streams the user's notifications.
// Browsers cannot set headers on websocket dials, so the token may also come
// in as a "token" query parameter.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("userid")

	token := r.Header.Get("Authorization")
	if token == "" {
		token = "Bearer " + r.URL.Query().Get("token")
	}
	if _, err := middleware.ValidateJWT(token); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written its error response
		log.Printf("notify: websocket upgrade failed: %v", err)
		return
	}

	mu.Lock()
	subscribers[userID] = append(subscribers[userID], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[userID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[userID] = newList
	mu.Unlock()

	conn.Close()
}

func broadcast(userID string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[userID]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[userID] = newList
}

// StartWorker subscribes to the notify channel and fans messages out to the
// target user's live connections.
func StartWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, channel)
	ch := sub.Channel()

	log.Println("[NotifyWorker] Listening for notification events...")

	for msg := range ch {
		var n models.Notification
		if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
			log.Printf("[NotifyWorker] Failed to parse event: %v", err)
			continue
		}
		broadcast(n.UserID, []byte(msg.Payload))
	}
}
