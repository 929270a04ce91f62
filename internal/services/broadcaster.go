package services

import (
	"context"
	"encoding/json"
	"time"

	"taxihail/internal/models"
	"taxihail/pkg/logger"
	"taxihail/pkg/websocket"
)

const resubscribeBackoff = 5 * time.Second

// RideBroadcaster pumps ride change events from the store's live
// subscription into the websocket hub, routing each event to the viewers
// whose board it belongs on.
type RideBroadcaster struct {
	dashboard DashboardService
	hub       *websocket.Hub
	logger    *logger.Logger
}

func NewRideBroadcaster(dashboard DashboardService, hub *websocket.Hub, log *logger.Logger) *RideBroadcaster {
	return &RideBroadcaster{
		dashboard: dashboard,
		hub:       hub,
		logger:    log,
	}
}

// Run consumes the live ride stream until ctx is canceled, re-subscribing
// with a backoff when the stream drops.
func (b *RideBroadcaster) Run(ctx context.Context) {
	for {
		if err := b.pump(ctx); err != nil {
			b.logger.WithError(err).Warn("Ride stream interrupted, re-subscribing")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeBackoff):
		}
	}
}

func (b *RideBroadcaster) pump(ctx context.Context) error {
	sub, err := b.dashboard.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer sub.Close(context.Background())

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.Events():
			if !ok {
				return nil
			}
			b.publish(event)
		}
	}
}

func (b *RideBroadcaster) publish(event models.RideEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.logger.WithError(err).Error("Failed to encode ride event")
		return
	}

	ride := event.Ride
	b.hub.Publish(payload, func(viewer websocket.Viewer) bool {
		return b.dashboard.VisibleTo(Viewer{
			UID:  viewer.UID,
			Role: models.UserRole(viewer.Role),
		}, ride)
	})
}
