// Package telemetry writes invocation metrics to InfluxDB v2.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"smart-home-mock/internal/domain"
)

var (
	ErrDisabled         = errors.New("telemetry: disabled in configuration")
	ErrConnectionFailed = errors.New("telemetry: connection failed")
	ErrNotConnected     = errors.New("telemetry: not connected")
)

const (
	Measurement = "skill_invocations"

	connectTimeout        = 10 * time.Second
	millisecondsPerSecond = 1000
)

type Config struct {
	Enabled       bool
	URL           string
	Token         string
	Org           string
	Bucket        string
	BatchSize     int
	FlushInterval int // seconds
}

// Client batches one point per invocation through the non-blocking write API.
// It satisfies application.Recorder.
type Client struct {
	client    influxdb2.Client
	writeAPI  api.WriteAPI
	logger    *slog.Logger
	mu        sync.RWMutex
	connected bool
}

func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = 10
	}

	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(uint(batchSize)).
			SetFlushInterval(uint(flushInterval)*millisecondsPerSecond),
	)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	healthy, err := client.Ping(pingCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping failed: %w", ErrConnectionFailed, err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("%w: server not healthy", ErrConnectionFailed)
	}

	c := &Client{
		client:    client,
		writeAPI:  client.WriteAPI(cfg.Org, cfg.Bucket),
		logger:    logger,
		connected: true,
	}
	go c.handleWriteErrors(c.writeAPI.Errors())

	return c, nil
}

func (c *Client) handleWriteErrors(errorsCh <-chan error) {
	for err := range errorsCh {
		c.logger.Warn("telemetry write failed", "error", err)
	}
}

// Record queues a point for inv. Delivery errors surface in the log.
func (c *Client) Record(_ context.Context, inv domain.Invocation) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.connected {
		return ErrNotConnected
	}

	c.writeAPI.WritePoint(invocationPoint(inv))
	return nil
}

func invocationPoint(inv domain.Invocation) *write.Point {
	outcome := "ok"
	if inv.Failed() {
		outcome = "error"
	}

	tags := map[string]string{
		"namespace":    string(inv.Namespace),
		"request_name": inv.RequestName,
		"outcome":      outcome,
	}
	if inv.ResponseName != "" {
		tags["response_name"] = inv.ResponseName
	}

	fields := map[string]any{
		"duration_ms": float64(inv.Duration) / float64(time.Millisecond),
		"count":       1,
	}
	if inv.ApplianceID != "" {
		fields["appliance_id"] = inv.ApplianceID
	}

	ts := inv.ReceivedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	return write.NewPoint(Measurement, tags, fields, ts)
}

// Close flushes pending points and releases the client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return nil
	}
	c.connected = false

	c.writeAPI.Flush()
	c.client.Close()
	return nil
}
