// Package sms delivers verification codes. GatewayNotifier talks to an HTTP
// SMS provider; ConsoleNotifier prints messages for local development.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds one call to the provider.
const DefaultTimeout = 5 * time.Second

const tracerName = "repair/sms"

type sendRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// GatewayNotifier posts messages to "<baseURL>/send" with a bearer API key.
// Any non-2xx answer counts as a failed delivery.
type GatewayNotifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
	timeout time.Duration
	tracer  trace.Tracer
}

var _ ports.Notifier = (*GatewayNotifier)(nil)

func NewGatewayNotifier(baseURL, apiKey string, timeout time.Duration) *GatewayNotifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GatewayNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
			},
		},
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
	}
}

func (n *GatewayNotifier) Send(ctx context.Context, phone kernel.PhoneNumber, message string) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	ctx, span := n.tracer.Start(ctx, "sms.send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("sms.phone", phone.Masked()))

	body, err := json.Marshal(sendRequest{Phone: phone.String(), Message: message})
	if err != nil {
		return n.fail(span, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/send", bytes.NewReader(body))
	if err != nil {
		return n.fail(span, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+n.apiKey)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := n.client.Do(req)
	if err != nil {
		return n.fail(span, fmt.Errorf("sms gateway: %w", err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return n.fail(span, fmt.Errorf("sms gateway returned %s", resp.Status))
	}
	return nil
}

func (n *GatewayNotifier) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
