package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tableorder/internal/config"
	"tableorder/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ルート登録に必要なハンドラ一式
type Handlers struct {
	Landing      *handler.LandingHandler
	Menu         *handler.MenuHandler
	Cart         *handler.CartHandler
	Payment      *handler.PaymentHandler
	Confirmation *handler.ConfirmationHandler
	Kitchen      *handler.KitchenHandler
	Notification *handler.NotificationHandler
}

// New は echo を組み立ててルートを登録する。
func New(cfg config.Config, log *slog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(tracing(cfg.ServiceName))
	e.Use(requestLogger(log))

	RegisterRoutes(e, cfg, h)
	return e
}

// Start は ctx が終わるまで待ち受け、終わったら graceful shutdown する。
func Start(ctx context.Context, e *echo.Echo, addr string, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("http server shutting down")
	return e.Shutdown(shutdownCtx)
}

// アクセスログ（slog）
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			ctx := c.Request().Context()
			if v.Error != nil {
				log.ErrorContext(ctx, "request", append(attrs, "error", v.Error.Error())...)
				return nil
			}
			log.InfoContext(ctx, "request", attrs...)
			return nil
		},
	})
}

// リクエストごとに span を開始する（traceparent があれば引き継ぐ）
func tracing(serviceName string) echo.MiddlewareFunc {
	tracer := otel.Tracer(serviceName + "/http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
			ctx, span := tracer.Start(ctx, req.Method+" "+c.Path(),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method),
					attribute.String("http.route", c.Path()),
				),
			)
			defer span.End()

			c.SetRequest(req.WithContext(ctx))
			err := next(c)
			span.SetAttributes(attribute.Int("http.response.status_code", c.Response().Status))
			if err != nil {
				span.RecordError(err)
			}
			return err
		}
	}
}
