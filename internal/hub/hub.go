// Package hub pushes state change events to connected websocket clients.
// Self-contained deployments fan out through an in-process pub/sub,
// everything else rides redis channels so multiple instances stay in sync.
package hub

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Client struct {
	UserID           int64
	SessionID        int64
	Conn             *websocket.Conn
	WsChannel        chan string
	PubSub           *redis.PubSub
	Ctx              context.Context
	CurrentServerID  int64
	CurrentChannelID int64
	mutex            sync.Mutex
}

var clients = make(map[int64]*Client)
var clientsMutex sync.Mutex

var sugar *zap.SugaredLogger
var redisClient *redis.Client
var redisCtx = context.Background()
var selfContained = true

func Setup(_sugar *zap.SugaredLogger, _redisClient *redis.Client, _selfContained bool) {
	sugar = _sugar
	redisClient = _redisClient
	selfContained = _selfContained
}

func HandleClient(w http.ResponseWriter, r *http.Request, userID int64) {
	sugar.Debugf("Connecting user ID [%d] to WebSocket", userID)

	sessionCookie, err := r.Cookie("session")
	if err != nil {
		sugar.Debug(err)
		switch {
		case errors.Is(err, http.ErrNoCookie):
			http.Error(w, "No session cookie was provided", http.StatusUnauthorized)
		default:
			http.Error(w, "Couldn't read session cookie", http.StatusInternalServerError)
		}
		return
	}

	sessionID, err := strconv.ParseInt(sessionCookie.Value, 10, 64)
	if err != nil {
		sugar.Error(err)
		http.Error(w, "Session cookie is in improper format", http.StatusBadRequest)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		sugar.Error(err)
		return
	}
	defer conn.Close()

	clientCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &Client{
		UserID:    userID,
		SessionID: sessionID,
		Conn:      conn,
		WsChannel: make(chan string, 64),
		Ctx:       clientCtx,
	}

	if !selfContained {
		client.PubSub = redisClient.Subscribe(clientCtx)
		defer client.PubSub.Close()
	}

	setClient(sessionID, client)

	// forward published events to the websocket
	go func() {
		var redisCh <-chan *redis.Message
		if client.PubSub != nil {
			redisCh = client.PubSub.Channel()
		}

		for {
			select {
			case <-client.Ctx.Done():
				return
			case payload, ok := <-client.WsChannel:
				if !ok {
					return
				}
				err := client.Conn.WriteMessage(websocket.TextMessage, []byte(payload))
				if err != nil {
					sugar.Error(err)
					return
				}
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				err := client.Conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload))
				if err != nil {
					sugar.Error(err)
					return
				}
			}
		}
	}()

	// clients don't send anything meaningful upstream, the read loop only
	// notices the disconnect
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			sugar.Debug(err)
			break
		}
	}

	deleteClient(sessionID)
	unsubscribeFromAllLocal(sessionID)
}

func setClient(sessionID int64, client *Client) {
	sugar.Debugf("Adding user ID [%d] to clients as session ID [%d]", client.UserID, sessionID)
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	clients[sessionID] = client
}

func deleteClient(sessionID int64) {
	sugar.Debugf("Removing session ID [%d] from clients", sessionID)
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	delete(clients, sessionID)
}

func GetClient(sessionID int64) (*Client, bool) {
	clientsMutex.Lock()
	defer clientsMutex.Unlock()

	client, exists := clients[sessionID]
	return client, exists
}
