// Package server exposes the reconciliation engine over HTTP: upload two
// exports, download the comparison report.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"accident-reconciliation/internal/domain"
	"accident-reconciliation/internal/gateway"
	"accident-reconciliation/internal/logging"
	"accident-reconciliation/internal/report"
	"accident-reconciliation/internal/usecase"
)

// MaxUploadSize bounds the multipart request body.
const MaxUploadSize = 32 << 20

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Server holds the HTTP handlers for the API.
type Server struct {
	app    *fiber.App
	uc     *usecase.ReconciliationUseCase
	schema domain.Schema
	logger *zerolog.Logger
}

// New wires the routes. schema tells the spreadsheet reader which columns
// hold dates.
func New(uc *usecase.ReconciliationUseCase, schema domain.Schema, logger *zerolog.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Server{
		uc:     uc,
		schema: schema.Merge(domain.DefaultSchema()),
		logger: logger,
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "accident-reconciler",
		BodyLimit:             MaxUploadSize,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          s.handleError,
	})

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/profiles", s.handleProfiles)
	api.Post("/reconcile", s.handleReconcile)
	return s
}

// App exposes the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("Reconciliation service listening")
	return s.app.Listen(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleProfiles(c *fiber.Ctx) error {
	return c.JSON(s.uc.Profiles().All())
}

func (s *Server) handleReconcile(c *fiber.Ctx) error {
	format, err := report.ParseFormat(c.FormValue("format"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	primary, err := s.readUpload(c, "primary", s.schema.Primary.AccidentDate)
	if err != nil {
		return err
	}
	secondary, err := s.readUpload(c, "secondary", s.schema.Secondary.AccidentDate)
	if err != nil {
		return err
	}

	ctx := logging.WithLogger(c.UserContext(), s.logger)
	rep, err := s.uc.ReconcileTables(ctx, c.FormValue("profile"), primary, secondary)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.NewWriter(format).Write(&buf, rep); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	c.Attachment(downloadName(c.FormValue("name"), rep.Profile, format))
	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set("X-Run-Id", rep.RunID)
	return c.Send(buf.Bytes())
}

func (s *Server) readUpload(c *fiber.Ctx, field, dateColumn string) (*domain.Table, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("no file uploaded in form field %q", field))
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %q: %w", header.Filename, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	table, err := gateway.ReadTable(file, header.Filename, dateColumn)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s file: %v", field, err))
	}
	return table, nil
}

// downloadName keeps a caller-supplied name but forces the report extension.
func downloadName(requested, profile string, format report.Format) string {
	requested = strings.TrimSpace(filepath.Base(requested))
	if requested == "" || requested == "." || requested == string(filepath.Separator) {
		return domain.DefaultReportName(profile, string(format))
	}
	ext := "." + string(format)
	if !strings.EqualFold(filepath.Ext(requested), ext) {
		requested += ext
	}
	return requested
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		status = fe.Code
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		status = fiber.StatusBadRequest
	}

	event := s.logger.Warn()
	if status >= fiber.StatusInternalServerError {
		event = s.logger.Error()
	}
	event.Err(err).Int("status", status).Str("path", c.Path()).Msg("Request failed")

	return c.Status(status).JSON(ErrorResponse{Status: status, Message: err.Error()})
}
