package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smart-home-mock/internal/domain"
)

// Handler answers discovery and control/query requests with canned responses.
// It holds no per-request state and is safe for concurrent use.
type Handler struct {
	catalog    ApplianceCatalog
	validator  Validator
	recorder   Recorder
	logger     *slog.Logger
	now        func() time.Time
	appliances map[string]controlFunc
}

type Option func(*Handler)

// WithClock overrides the clock used for response timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func NewHandler(
	catalog ApplianceCatalog,
	validator Validator,
	recorder Recorder,
	logger *slog.Logger,
	opts ...Option,
) *Handler {
	if recorder == nil {
		recorder = &NoopRecorder{}
	}
	h := &Handler{
		catalog:    catalog,
		validator:  validator,
		recorder:   recorder,
		logger:     logger,
		now:        time.Now,
		appliances: make(map[string]controlFunc),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.registerAppliances()
	return h
}

// Handle validates the context, dispatches the request and validates the
// response. Validation failures are logged and returned unchanged.
func (h *Handler) Handle(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	start := h.now()

	resp, err := h.handle(ctx, req)

	inv := domain.Invocation{
		ID:         "inv-" + uuid.NewString(),
		ReceivedAt: start.UTC(),
		Duration:   h.now().Sub(start),
	}
	if req != nil {
		inv.Namespace = req.Header.Namespace
		inv.RequestName = req.Header.Name
		inv.MessageID = req.Header.MessageID
		inv.ApplianceID = req.ApplianceID()
	}
	if err != nil {
		inv.Error = err.Error()
	} else {
		inv.ResponseNamespace = resp.Header.Namespace
		inv.ResponseName = resp.Header.Name
	}

	if recErr := h.recorder.Record(context.WithoutCancel(ctx), inv); recErr != nil {
		h.logger.Warn("recording invocation", "error", recErr, "invocation_id", inv.ID)
	}

	return resp, err
}

func (h *Handler) handle(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if err := h.validator.ValidateContext(ctx); err != nil {
		h.logger.Error("invalid invocation context", "error", err)
		return nil, err
	}

	if req == nil {
		err := fmt.Errorf("%w: empty request", ErrMalformedRequest)
		h.logger.Error("handling request", "error", err)
		return nil, err
	}

	h.logger.Info("request header", headerAttrs(req.Header)...)
	h.logger.Info("request payload", "payload", encodePayload(req.Payload))

	var (
		resp *domain.Response
		err  error
	)
	switch req.Header.Namespace {
	case domain.NamespaceDiscovery:
		resp = h.discover(req)
	case domain.NamespaceControl, domain.NamespaceQuery:
		resp, err = h.control(req)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedNamespace, req.Header.Namespace)
	}
	if err != nil {
		h.logger.Error("handling request", "error", err, "name", req.Header.Name, "message_id", req.Header.MessageID)
		return nil, err
	}

	h.logger.Info("response header", headerAttrs(resp.Header)...)
	h.logger.Info("response payload", "payload", encodePayload(resp.Payload))

	if err := h.validator.ValidateResponse(req, resp); err != nil {
		h.logger.Error("invalid response", "error", err, "name", resp.Header.Name, "message_id", resp.Header.MessageID)
		return nil, err
	}

	return resp, nil
}

func (h *Handler) discover(req *domain.Request) *domain.Response {
	header := buildHeader(req, domain.DiscoverAppliancesResponse)
	return buildResponse(header, domain.DiscoverAppliancesPayload{
		DiscoveredAppliances: h.catalog.Discover(),
	})
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(domain.TimestampLayout)
}

func headerAttrs(header domain.Header) []any {
	return []any{
		"namespace", header.Namespace,
		"name", header.Name,
		"message_id", header.MessageID,
		"payload_version", header.PayloadVersion,
	}
}

func encodePayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%+v", payload)
	}
	return string(data)
}
