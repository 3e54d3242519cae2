package api

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/example/product-catalog/modules/api"

// requireJSON rejects requests whose media type is not application/json.
func requireJSON(c *fiber.Ctx) error {
	contentType := string(c.Request().Header.ContentType())
	if contentType == "" {
		return fiber.NewError(fiber.StatusUnsupportedMediaType,
			fmt.Sprintf("Content-Type must be %s", fiber.MIMEApplicationJSON))
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != fiber.MIMEApplicationJSON {
		return fiber.NewError(fiber.StatusUnsupportedMediaType,
			fmt.Sprintf("Content-Type must be %s", fiber.MIMEApplicationJSON))
	}
	return c.Next()
}

// tracing starts a server span per request and hands its context to the
// handlers through UserContext. Errors are rendered here so the span sees
// the final status.
func tracing(tp trace.TracerProvider) fiber.Handler {
	tracer := tp.Tracer(tracerName)

	return func(c *fiber.Ctx) error {
		carrier := propagation.HeaderCarrier(http.Header(c.GetReqHeaders()))
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), carrier)

		ctx, span := tracer.Start(ctx, "http.request",
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("http.method", c.Method())),
		)
		defer span.End()
		c.SetUserContext(ctx)

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		span.SetName(c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		return nil
	}
}
