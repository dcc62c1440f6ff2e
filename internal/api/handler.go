// Package api exposes the parsing engine over HTTP.
package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/budgetbuddy/statement-engine/internal/engine"
	"github.com/budgetbuddy/statement-engine/internal/extractor"
	"github.com/budgetbuddy/statement-engine/internal/models"
	"github.com/budgetbuddy/statement-engine/internal/writer"
)

const maxUploadBytes = 32 << 20

// ConvertResponse is the JSON response from the /convert endpoint.
type ConvertResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error,omitempty"`
	Result  *models.ParseResult `json:"result,omitempty"`
	Count   int                 `json:"count"`
	CSV     string              `json:"csv,omitempty"`
}

// Server holds the HTTP handlers around one engine instance.
type Server struct {
	engine *engine.Engine
	log    *log.Logger
}

// NewApp builds the fiber application with all routes registered.
func NewApp(eng *engine.Engine, logger *log.Logger) *fiber.App {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{engine: eng, log: logger}

	app := fiber.New(fiber.Config{
		AppName:   "statement-engine",
		BodyLimit: maxUploadBytes,
	})
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start))
		return err
	})
	app.Get("/health", s.handleHealth)
	app.Post("/convert", s.handleConvert)
	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	text, err := s.extractUpload(fileHeader)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	doc := engine.Document{
		Text:     text,
		Filename: fileHeader.Filename,
		Account:  accountFromForm(c),
	}
	res, err := s.engine.Parse(doc)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	if res.Transactions == nil {
		res.Transactions = []models.Transaction{}
	}
	resp := ConvertResponse{
		Success: true,
		Result:  res,
		Count:   len(res.Transactions),
	}
	if c.FormValue("csv") == "true" {
		var b strings.Builder
		w := &writer.CSVWriter{IncludeMetadata: true}
		if err := w.Write(&b, res); err != nil {
			return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
		}
		resp.CSV = b.String()
	}
	return c.JSON(resp)
}

// extractUpload routes the upload to the right extractor by extension.
func (s *Server) extractUpload(fileHeader *multipart.FileHeader) (string, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	lower := strings.ToLower(fileHeader.Filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		tmp, err := os.CreateTemp("", "statement-*.pdf")
		if err != nil {
			return "", fmt.Errorf("failed to create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())
		if _, err := io.Copy(tmp, f); err != nil {
			tmp.Close()
			return "", fmt.Errorf("failed to save upload: %w", err)
		}
		tmp.Close()
		return extractor.ExtractTextCombined(tmp.Name())
	case strings.HasSuffix(lower, ".xls"):
		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		return extractor.ExtractXLS(data)
	case strings.HasSuffix(lower, ".txt"), strings.HasSuffix(lower, ".text"):
		data, err := io.ReadAll(f)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q: use .pdf, .xls or .txt", fileHeader.Filename)
	}
}

// accountFromForm builds the optional caller-supplied account context.
func accountFromForm(c *fiber.Ctx) *models.AccountContext {
	typ := c.FormValue("accountType")
	holder := c.FormValue("accountHolder")
	if typ == "" && holder == "" {
		return nil
	}
	return &models.AccountContext{Type: typ, HolderName: holder}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{Success: false, Error: msg})
}
