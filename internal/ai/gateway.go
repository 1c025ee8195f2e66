package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ImagePart is an image attached to a model request.
type ImagePart struct {
	Data     []byte
	MIMEType string
}

// Request is a single prompt sent to a generative model.
type Request struct {
	Model  string
	Prompt string
	Image  *ImagePart // nil for text-only requests
}

// Gateway issues one call to a hosted generative model and returns the text of the first
// candidate. Implementations do not retry.
type Gateway interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// FailureKind tags why a model call failed. It is used for logging only; callers always fall back.
type FailureKind string

const (
	FailureAuth      FailureKind = "auth"
	FailureRateLimit FailureKind = "rate_limit"
	FailureTransport FailureKind = "transport"
	FailureUpstream  FailureKind = "upstream"
	FailureEmpty     FailureKind = "empty_response"
	FailureParse     FailureKind = "parse"
)

var errMissingAPIKey = errors.New("api key is not configured")

// GatewayError is returned by every Gateway implementation.
type GatewayError struct {
	Kind       FailureKind
	Provider   string
	Model      string
	StatusCode int    // upstream HTTP status, 0 when no response was received
	Body       string // upstream error message or body
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %s (status %d): %s", e.Provider, e.Model, e.Kind, e.StatusCode, e.Body)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Model, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Model, e.Kind)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// KindForStatus classifies an upstream HTTP status.
func KindForStatus(status int) FailureKind {
	switch {
	case status == 0:
		return FailureTransport
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return FailureAuth
	case status == http.StatusTooManyRequests:
		return FailureRateLimit
	default:
		return FailureUpstream
	}
}

// FailureKindOf reports the failure kind carried by err, defaulting to transport.
func FailureKindOf(err error) FailureKind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return FailureTransport
}
