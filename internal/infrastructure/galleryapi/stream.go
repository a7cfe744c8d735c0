package galleryapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/andreyxaxa/Photo-Gallery/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Photo-Gallery/internal/entity"
	"github.com/andreyxaxa/Photo-Gallery/internal/gallery"
	"github.com/gorilla/websocket"
)

var ErrStreamClosed = errors.New("record stream closed")

// Subscribe opens the realtime record stream. Every frame is a full
// snapshot ordered newest first.
func (c *Client) Subscribe(ctx context.Context) (gallery.Subscription, error) {
	wsURL := *c.base
	wsURL.Scheme = strings.Replace(wsURL.Scheme, "http", "ws", 1)
	wsURL.Path = strings.TrimRight(wsURL.Path, "/") + "/v1/records/stream"

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.timeout,
	}

	conn, resp, err := dialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("Client - Subscribe - dialer.DialContext: %w", decodeError(resp))
		}

		return nil, fmt.Errorf("Client - Subscribe - dialer.DialContext: %w", err)
	}

	s := &stream{
		conn:   conn,
		frames: make(chan frame),
		done:   make(chan struct{}),
	}
	go s.read()

	return s, nil
}

type frame struct {
	records []entity.ImageRecord
	err     error
}

type stream struct {
	conn   *websocket.Conn
	frames chan frame
	done   chan struct{}
	once   sync.Once
}

var _ gallery.Subscription = (*stream)(nil)

func (s *stream) read() {
	defer close(s.frames)

	for {
		var msg response.StreamMessage

		err := s.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				err = ErrStreamClosed
			}
			s.send(frame{err: fmt.Errorf("stream - read - s.conn.ReadJSON: %w", err)})

			return
		}

		if msg.Type == response.StreamError {
			s.send(frame{err: fmt.Errorf("stream - read: server error: %s", msg.Error)})

			return
		}

		if !s.send(frame{records: msg.Records}) {
			return
		}
	}
}

func (s *stream) send(f frame) bool {
	select {
	case s.frames <- f:
		return true
	case <-s.done:
		return false
	}
}

func (s *stream) Next(ctx context.Context) ([]entity.ImageRecord, error) {
	select {
	case <-s.done:
		return nil, ErrStreamClosed
	default:
	}

	select {
	case f, ok := <-s.frames:
		if !ok {
			return nil, ErrStreamClosed
		}

		return f.records, f.err
	case <-s.done:
		return nil, ErrStreamClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *stream) Close() error {
	var err error

	s.once.Do(func() {
		close(s.done)

		_ = s.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		err = s.conn.Close()
	})

	return err
}
