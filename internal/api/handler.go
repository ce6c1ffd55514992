package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/insightdelivered/statement-kpi-extractor/internal/analyzer"
	"github.com/insightdelivered/statement-kpi-extractor/internal/models"
	"github.com/ternarybob/arbor"
)

// Form fields of the /api/analyze endpoint.
const (
	FieldPnL     = "pyg"
	FieldBalance = "balance"
)

// AnalyzeResponse is the JSON response from the /api/analyze endpoint. On
// success the analysis fields are inlined next to Success.
type AnalyzeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	*models.Analysis
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	analyzer *analyzer.Analyzer
	logger   arbor.ILogger
	version  string
}

func NewHandler(a *analyzer.Analyzer, logger arbor.ILogger, version string) *Handler {
	return &Handler{analyzer: a, logger: logger, version: version}
}

// NewApp builds the fiber application with the API routes registered.
// bodyLimitMB caps the size of one upload request.
func NewApp(h *Handler, bodyLimitMB int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "kpi-extractor",
		BodyLimit:             bodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/analyze", h.HandleAnalyze)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.version,
		"engine":  "fiber",
	})
}

func (h *Handler) HandleAnalyze(c *fiber.Ctx) error {
	pnlHeader, err := c.FormFile(FieldPnL)
	if err != nil {
		return h.writeError(c, fiber.StatusBadRequest, fmt.Sprintf("No profit and loss file uploaded. Use form field '%s'.", FieldPnL))
	}
	pnl, err := readDocument(pnlHeader)
	if err != nil {
		return h.writeError(c, fiber.StatusBadRequest, err.Error())
	}

	var balance *analyzer.Document
	if balanceHeader, err := c.FormFile(FieldBalance); err == nil {
		doc, err := readDocument(balanceHeader)
		if err != nil {
			return h.writeError(c, fiber.StatusBadRequest, err.Error())
		}
		balance = &doc
	}

	result, err := h.analyzer.Analyze(pnl, balance)
	if err != nil {
		return h.writeError(c, statusFor(err), err.Error())
	}

	h.logger.Info().Str("id", result.ID).Str("file", pnl.Name).
		Bool("hasBalance", result.HasBalance).Int("warnings", len(result.Warnings)).
		Msg("Analysis served")
	return c.JSON(AnalyzeResponse{Success: true, Analysis: result})
}

// statusFor maps extraction errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrLoad):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func readDocument(fh *multipart.FileHeader) (analyzer.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return analyzer.Document{}, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return analyzer.Document{}, fmt.Errorf("failed to read uploaded file %q: %w", fh.Filename, err)
	}
	return analyzer.Document{Name: fh.Filename, Data: data}, nil
}

func (h *Handler) writeError(c *fiber.Ctx, status int, msg string) error {
	h.logger.Info().Int("status", status).Str("error", msg).Msg("Analysis rejected")
	return c.Status(status).JSON(AnalyzeResponse{
		Success: false,
		Error:   msg,
	})
}
