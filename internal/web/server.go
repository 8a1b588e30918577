// Package web serves the report form and the report endpoint.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"vatreport/internal/logger"
	"vatreport/internal/metrics"
	"vatreport/internal/printful"
	"vatreport/internal/report"
	"vatreport/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
	shutdownTimeout = 10 * time.Second
)

// Generator produces a report for a window.
type Generator interface {
	Generate(ctx context.Context, w models.Window) (*report.Result, error)
}

// Handler serves the report pages.
type Handler struct {
	generator  Generator
	location   *time.Location
	reportsDir string
	now        func() time.Time
}

// NewHandler creates a handler. Dates without a zone are read in loc.
func NewHandler(generator Generator, loc *time.Location, reportsDir string) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		generator:  generator,
		location:   loc,
		reportsDir: reportsDir,
		now:        time.Now,
	}
}

// welcomePage is the data rendered into welcome.html.
type welcomePage struct {
	ReportGenerated bool
	FileName        string
	Records         int
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h.RegisterRoutes(router.Group(""))
	return router
}

// RegisterRoutes mounts the form, the report endpoint and report downloads.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/", h.Welcome)
	router.GET("/getPrintfulOrders", h.GetPrintfulOrders)
	if h.reportsDir != "" {
		router.Static("/reports", h.reportsDir)
	}
}

// Welcome renders the empty report form.
func (h *Handler) Welcome(c *gin.Context) {
	c.HTML(http.StatusOK, "welcome.html", welcomePage{})
}

// GetPrintfulOrders generates a report for the startDate/endDate query and
// renders the form again with the new file name.
func (h *Handler) GetPrintfulOrders(c *gin.Context) {
	log := requestLog(c)

	w, err := report.ParseWindow(c.Query("startDate"), c.Query("endDate"), h.location, h.now())
	if err != nil {
		log.Warn().Err(err).Msg("Invalid report dates")
		c.String(http.StatusBadRequest, "An error occurred: %s", err.Error())
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), w)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred")
		c.String(http.StatusInternalServerError, "An error occurred: %s", errorMessage(err))
		return
	}

	log.Info().
		Str("file", result.FileName).
		Int("records", result.Records).
		Msg("Report generated")

	c.HTML(http.StatusOK, "welcome.html", welcomePage{
		ReportGenerated: true,
		FileName:        result.FileName,
		Records:         result.Records,
	})
}

// errorMessage returns the innermost message users can act on.
func errorMessage(err error) string {
	var fetchErr *printful.FetchFailedError
	if errors.As(err, &fetchErr) {
		return fetchErr.Error()
	}
	if errors.Is(err, printful.ErrInvalidResponse) {
		return printful.ErrInvalidResponse.Error()
	}
	return err.Error()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		log := logger.WithRequestID(requestID)
		c.Set(loggerKey, log)

		start := time.Now()
		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}

func requestLog(c *gin.Context) zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(zerolog.Logger); ok {
			return log
		}
	}
	return logger.WithComponent("web")
}

// Run serves router on addr until ctx is canceled.
func Run(ctx context.Context, addr string, router http.Handler) error {
	const op = "Run"
	log := logger.WithComponent("web")

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info().Msg("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s: shutdown: %w", op, err)
	}
	return nil
}
