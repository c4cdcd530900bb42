// Package monitoring keeps the camera's stream list fresh in the
// background so resolutions and SSE clients see current data without
// waiting on a camera round trip.
package monitoring

import (
	"context"
	"log/slog"
	"time"

	"github.com/smazurov/streamroles/internal/logging"
	"github.com/smazurov/streamroles/internal/streams"
)

// HealthCheck reports the camera's reachability and stream count.
type HealthCheck struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	StreamCount int       `json:"stream_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// Poller periodically queries the camera for its stream variants.
type Poller struct {
	lister   streams.Lister
	interval time.Duration
	onUpdate func([]streams.Descriptor)
	logger   *slog.Logger
	cancel   context.CancelFunc
}

// NewPoller creates a camera poller. onUpdate is called with each
// successful stream list; failed polls are logged and skipped.
func NewPoller(lister streams.Lister, interval time.Duration, onUpdate func([]streams.Descriptor)) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		lister:   lister,
		interval: interval,
		onUpdate: onUpdate,
		logger:   logging.GetLogger("camera"),
	}
}

// Start begins polling in the background.
func (p *Poller) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
}

// Stop terminates the polling loop.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("Camera poller stopped")
			return
		case <-ticker.C:
			pollCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			list, err := p.lister.ListStreamOptions(pollCtx)
			cancel()
			if err != nil {
				p.logger.Warn("Camera poll failed", "error", err)
				continue
			}
			if p.onUpdate != nil {
				p.onUpdate(list)
			}
		}
	}
}

// CheckHealth performs a one-shot camera reachability check.
func (p *Poller) CheckHealth(ctx context.Context) (*HealthCheck, error) {
	list, err := p.lister.ListStreamOptions(ctx)
	if err != nil {
		return &HealthCheck{
			Status:    "error",
			Message:   err.Error(),
			Timestamp: time.Now(),
		}, err
	}

	return &HealthCheck{
		Status:      "ok",
		Message:     "Camera is reachable",
		StreamCount: len(list),
		Timestamp:   time.Now(),
	}, nil
}
