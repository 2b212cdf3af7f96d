package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"menuorder/internal/generated/servers"
	"menuorder/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// RouterOptions configure NewRouter.
type RouterOptions struct {
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// ValidateRequests checks every API request against api/openapi.yml.
	ValidateRequests bool
}

// NewRouter builds the echo instance: API routes, /health, /metrics and the
// /swagger docs UI.
func NewRouter(server *Server, opts RouterOptions) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	if opts.Metrics != nil {
		e.Use(requestMetrics(opts.Metrics))
	}

	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = registerDocs(swagger); err != nil {
		return nil, err
	}

	if opts.ValidateRequests {
		validator, validatorErr := requestValidator(swagger)
		if validatorErr != nil {
			return nil, validatorErr
		}
		e.Use(validator)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	// Hijacked websocket connections outlive http.Server.Shutdown otherwise.
	e.Server.RegisterOnShutdown(server.Close)

	return e, nil
}

type swaggerDoc struct {
	doc string
}

func (d swaggerDoc) ReadDoc() string {
	return d.doc
}

var docsOnce sync.Once

// registerDocs publishes the OpenAPI document to the swag registry that
// echo-swagger serves as doc.json. swag panics on a second registration.
func registerDocs(doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	docsOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{doc: string(raw)})
	})
	return nil
}
