package mux

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10

// getWS upgrades the request and runs a full protocol session over the
// websocket: one protocol line per text message, exactly the grammar the TCP
// surface speaks
func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		m.hub.ServeConn(&wsConn{conn: conn})
	}
}

// wsConn adapts a websocket connection to the room line transport
type wsConn struct {
	conn *websocket.Conn

	mu sync.Mutex
}

func (c *wsConn) ReadLine() (string, error) {
	for {
		msgType, payload, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}

		if msgType == websocket.TextMessage {
			return string(payload), nil
		}
	}
}

func (c *wsConn) WriteLine(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
