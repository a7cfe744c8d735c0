package v1

import (
	"context"
	"time"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Photo-Gallery/internal/metrics"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	_snapshotTimeout = 5 * time.Second
	_writeTimeout    = 5 * time.Second
	_pingInterval    = 30 * time.Second
)

func (r *V1) upgradeStream(ctx *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(ctx) {
		return ctx.Next()
	}

	return fiber.ErrUpgradeRequired
}

// @Summary 	Realtime record stream
// @Description Websocket. Sends a full snapshot on connect and after every change of the collection.
// @Tags 		records
// @Router 		/v1/records/stream [get]
func (r *V1) streamRecords(conn *websocket.Conn) {
	metrics.StreamSubscribers.Inc()
	defer metrics.StreamSubscribers.Dec()

	changes, cancel := r.feed.Subscribe()
	defer cancel()

	// the hijacked connection keeps the server's read deadline otherwise
	_ = conn.SetReadDeadline(time.Time{})

	// 1. клиент ничего не присылает; читаем только чтобы заметить закрытие
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// 2. начальный снимок
	if !r.sendSnapshot(conn) {
		return
	}

	ping := time.NewTicker(_pingInterval)
	defer ping.Stop()

	// 3. новый полный снимок на каждое изменение
	for {
		select {
		case <-closed:
			return
		case _, ok := <-changes:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(_writeTimeout))

				return
			}
			if !r.sendSnapshot(conn) {
				return
			}
		case <-ping.C:
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(_writeTimeout))
			if err != nil {
				return
			}
		}
	}
}

// sendSnapshot reports whether the stream may continue. A failed query is
// reported to the client as an error frame and ends the stream.
func (r *V1) sendSnapshot(conn *websocket.Conn) bool {
	ctx, cancel := context.WithTimeout(context.Background(), _snapshotTimeout)
	defer cancel()

	msg := response.StreamMessage{Type: response.StreamSnapshot}

	records, err := r.rec.List(ctx)
	if err != nil {
		r.logger.Error(err, "restapi - v1 - sendSnapshot - r.rec.List")
		msg = response.StreamMessage{Type: response.StreamError, Error: "failed to load records"}
	} else {
		msg.Records = records
	}

	_ = conn.SetWriteDeadline(time.Now().Add(_writeTimeout))
	if werr := conn.WriteJSON(msg); werr != nil {
		r.logger.Debug(werr, "restapi - v1 - sendSnapshot - conn.WriteJSON")

		return false
	}

	return err == nil
}
