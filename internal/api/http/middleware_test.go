package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/field-report-service/internal/observability"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

type errorEnvelope struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	app := fiber.New()
	metrics := observability.NewMetrics()
	RegisterMiddlewares(app, zap.NewNop(), metrics, 0)
	return app, metrics
}

func decodeEnvelope(t *testing.T, body io.Reader) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return envelope
}

func TestErrorMiddlewareRendersDomainErrors(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewConflict("petugasId sudah digunakan", map[string]any{"petugasId": "PTG-001"})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	envelope := decodeEnvelope(t, resp.Body)
	if envelope.Error.Code != "CONFLICT" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Details["petugasId"] != "PTG-001" {
		t.Fatalf("details not rendered: %+v", envelope.Error.Details)
	}
}

func TestErrorMiddlewareHidesInternalCauses(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/internal", func(c *fiber.Ctx) error {
		return apperrors.NewUpstreamFailure("gagal mengupload foto", io.ErrUnexpectedEOF)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/internal", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp.Body)
	if envelope.Error.Message != "gagal mengupload foto" {
		t.Fatalf("upstream cause leaked: %q", envelope.Error.Message)
	}
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/panic", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", resp.StatusCode)
	}
	envelope := decodeEnvelope(t, resp.Body)
	if envelope.Error.Code != "INTERNAL_ERROR" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
}

func TestRequestMetricsRecorded(t *testing.T) {
	app, metrics := newTestApp(t)
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })

	if _, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil)); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(metrics.RequestTotals()) == 0 {
		t.Fatal("request metrics not recorded")
	}
}
