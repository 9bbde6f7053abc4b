// Package mqtt exposes the Smart Home handler over an MQTT broker. Requests
// published to <prefix>/request/<id> are answered on <prefix>/response/<id>,
// or on <prefix>/error/<id> when the handler fails.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"smart-home-mock/internal/application"
	"smart-home-mock/internal/domain"
	"smart-home-mock/internal/infra"
	"smart-home-mock/internal/validation"
)

const (
	connectTimeout    = 10 * time.Second
	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 1000 // milliseconds
	keepAlive         = 60 * time.Second
	maxQoS            = 2
)

// Error codes carried in error replies.
const (
	CodeBadRequest = "bad_request"
	CodeValidation = "validation_error"
	CodeInternal   = "internal_error"
)

type Dispatcher interface {
	Handle(ctx context.Context, req *domain.Request) (*domain.Response, error)
}

type Config struct {
	Broker   string
	ClientID string
	Prefix   string
	QoS      byte
	Username string
	Password string
	Retry    infra.RetryConfig
}

// publisher is the subset of the paho client the bridge writes through.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

type errorReply struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Bridge struct {
	cfg        Config
	topics     Topics
	dispatcher Dispatcher
	logger     *slog.Logger

	mu        sync.RWMutex
	client    pahomqtt.Client
	publisher publisher
	ctx       context.Context
}

func NewBridge(cfg Config, dispatcher Dispatcher, logger *slog.Logger) *Bridge {
	if cfg.QoS > maxQoS {
		cfg.QoS = 1
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = infra.DefaultRetryConfig()
	}
	return &Bridge{
		cfg:        cfg,
		topics:     Topics{Prefix: cfg.Prefix},
		dispatcher: dispatcher,
		logger:     logger,
		ctx:        context.Background(),
	}
}

// Start connects to the broker, retrying with backoff, and subscribes to
// the request topic. ctx bounds the connection attempts and every handled
// request.
func (b *Bridge) Start(ctx context.Context) error {
	opts := b.clientOptions()
	client := pahomqtt.NewClient(opts)

	err := infra.WithRetry(ctx, b.cfg.Retry, func(attempt int) error {
		token := client.Connect()
		if !token.WaitTimeout(connectTimeout) {
			return fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
		}
		if err := token.Error(); err != nil {
			b.logger.Warn("mqtt connect attempt failed", "attempt", attempt, "broker", b.cfg.Broker, "error", err)
			return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.client = client
	b.publisher = pahoPublisher{client: client}
	b.ctx = ctx
	b.mu.Unlock()

	if err := b.subscribe(); err != nil {
		client.Disconnect(disconnectQuiesce)
		return err
	}

	b.logger.Info("mqtt bridge started", "broker", b.cfg.Broker, "topic", b.topics.Requests())
	return nil
}

func (b *Bridge) clientOptions() *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(b.cfg.Broker)
	opts.SetClientID(b.cfg.ClientID)
	if b.cfg.Username != "" {
		opts.SetUsername(b.cfg.Username)
		opts.SetPassword(b.cfg.Password)
	}
	opts.SetCleanSession(true)
	// Handlers publish and wait for the ack, which deadlocks with ordered delivery.
	opts.SetOrderMatters(false)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetKeepAlive(keepAlive)
	opts.SetWill(b.topics.Status(), `{"status":"offline"}`, 1, true)

	opts.SetOnConnectHandler(func(c pahomqtt.Client) {
		c.Publish(b.topics.Status(), 1, true, `{"status":"online"}`)
		// Clean sessions drop subscriptions on reconnect.
		if b.isConnected() {
			if err := b.subscribe(); err != nil {
				b.logger.Error("restoring mqtt subscription", "error", err)
			}
		}
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		b.logger.Warn("mqtt connection lost", "error", err)
	})
	return opts
}

func (b *Bridge) subscribe() error {
	b.mu.RLock()
	client := b.client
	b.mu.RUnlock()
	if client == nil {
		return ErrNotConnected
	}

	token := client.Subscribe(b.topics.Requests(), b.cfg.QoS, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		b.handleMessage(msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrSubscribeFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubscribeFailed, err)
	}
	return nil
}

func (b *Bridge) isConnected() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.client != nil && b.client.IsConnectionOpen()
}

// Stop publishes the offline status and disconnects.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	client := b.client
	b.client = nil
	b.publisher = nil
	b.mu.Unlock()

	if client == nil {
		return nil
	}

	if client.IsConnectionOpen() {
		token := client.Publish(b.topics.Status(), 1, true, `{"status":"offline"}`)
		token.WaitTimeout(publishTimeout)
	}
	client.Disconnect(disconnectQuiesce)
	b.logger.Info("mqtt bridge stopped")
	return nil
}

// handleMessage dispatches one request payload and publishes the reply.
func (b *Bridge) handleMessage(topic string, payload []byte) {
	suffix, ok := b.topics.RequestSuffix(topic)
	if !ok {
		b.logger.Warn("ignoring message on unexpected topic", "topic", topic)
		return
	}

	b.mu.RLock()
	pub := b.publisher
	ctx := b.ctx
	b.mu.RUnlock()
	if pub == nil {
		b.logger.Warn("dropping mqtt request", "topic", topic, "error", ErrNotConnected)
		return
	}

	replyTopic, body := b.process(ctx, suffix, payload)
	if err := pub.Publish(replyTopic, b.cfg.QoS, false, body); err != nil {
		b.logger.Error("publishing mqtt reply", "topic", replyTopic, "error", err)
	}
}

// process returns the topic and body of the reply to a request payload.
func (b *Bridge) process(ctx context.Context, suffix string, payload []byte) (string, []byte) {
	var req domain.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return b.topics.Error(suffix), encodeError(CodeBadRequest, "invalid JSON payload: "+err.Error())
	}

	resp, err := b.dispatcher.Handle(ctx, &req)
	if err != nil {
		return b.topics.Error(suffix), encodeError(errorCode(err), err.Error())
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return b.topics.Error(suffix), encodeError(CodeInternal, "encoding response: "+err.Error())
	}
	return b.topics.Response(suffix), body
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, application.ErrMalformedRequest),
		errors.Is(err, application.ErrUnsupportedNamespace):
		return CodeBadRequest
	case errors.Is(err, validation.ErrInvalidContext),
		errors.Is(err, validation.ErrInvalidResponse):
		return CodeValidation
	default:
		return CodeInternal
	}
}

func encodeError(code, message string) []byte {
	//nolint:errcheck // two strings always encode
	body, _ := json.Marshal(errorReply{Error: errorBody{Code: code, Message: message}})
	return body
}

type pahoPublisher struct {
	client pahomqtt.Client
}

func (p pahoPublisher) Publish(topic string, qos byte, retained bool, payload []byte) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if !p.client.IsConnectionOpen() {
		return ErrNotConnected
	}
	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}
