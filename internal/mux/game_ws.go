package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"uno-server/pkg/room"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// getGameNameWS streams updates of the game
// The feed is read-only, anything the client sends besides control frames is ignored
func (m *Mux) getGameNameWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		dealer := dealerFromContext(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		updates, unsubscribe, err := dealer.Subscribe(r.Context())
		if err != nil {
			logrus.WithError(err).Error("could not subscribe")
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, ""))
			_ = conn.Close()
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})

		waitForCloseFrame := make(chan bool)
		defer func() {
			unsubscribe()
			_ = conn.Close()
			close(waitForCloseFrame)
		}()

		go m.webSocketWriteLoop(conn, updates, waitForCloseFrame)
		m.webSocketReadLoop(conn)
	}
}

func (m *Mux) webSocketWriteLoop(conn *websocket.Conn, updates <-chan *room.Update, waitForCloseFrame chan bool) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case update, ok := <-updates:
			if !ok {
				// the game went away
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"))

				select {
				case <-waitForCloseFrame:
				case <-time.After(time.Second):
				}
				return
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(update); err != nil {
				logrus.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

func (m *Mux) webSocketReadLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).Debug("websocket closed")
			}

			return
		}
	}
}
