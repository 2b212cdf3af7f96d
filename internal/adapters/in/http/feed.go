package http

import (
	"log/slog"
	"time"

	"menuorder/internal/core/ports"
	"menuorder/internal/generated/servers"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = feedPongWait * 9 / 10
)

// GetOrderFeed handles GET /api/v1/venues/{venueId}/orders/feed - streams the
// venue's order changes as JSON websocket messages. The feed carries no
// snapshot; clients reload the order list when they connect.
func (s *Server) GetOrderFeed(ctx echo.Context, venueId servers.VenueId) error {
	venueID, err := toKernelID(venueId)
	if err != nil {
		return s.fail(ctx, err)
	}

	conn, err := s.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.Debug("order feed upgrade failed", slog.Any("error", err))
		return nil
	}

	sub := s.feed.Subscribe(venueID)
	defer sub.Close()

	logger := s.logger.With(slog.String("venue_id", venueID.String()))
	logger.Debug("order feed opened")
	s.stream(conn, sub.C(), logger)
	logger.Debug("order feed closed")

	return nil
}

func (s *Server) stream(conn *websocket.Conn, changes <-chan ports.OrderChange, logger *slog.Logger) {
	defer conn.Close()

	// The client sends nothing but control frames; reading keeps pongs and
	// close frames flowing.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(feedPingPeriod)
	defer ping.Stop()

	for {
		select {
		case change, ok := <-changes:
			if !ok {
				closeFeed(conn, websocket.CloseNormalClosure, "")
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(change); err != nil {
				logger.Debug("order feed write failed", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteWait)); err != nil {
				return
			}
		case <-gone:
			return
		case <-s.shutdown:
			closeFeed(conn, websocket.CloseGoingAway, "server shutdown")
			return
		}
	}
}

func closeFeed(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, text),
		time.Now().Add(feedWriteWait))
}
