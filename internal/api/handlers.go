package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"image_to_code_server/internal/ai"
	"image_to_code_server/internal/ai/fallback"
	aiutils "image_to_code_server/internal/ai/utils"
	"image_to_code_server/internal/preview"
	"image_to_code_server/internal/types"
	"image_to_code_server/internal/utils"
)

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator    *ai.Generator
	logger       *slog.Logger
	maxBodyBytes int64 // cap for JSON request bodies
}

// DefaultMaxBodyBytes is used when NewAPIHandler is given a non-positive body limit.
const DefaultMaxBodyBytes int64 = 10 << 20

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(generator *ai.Generator, logger *slog.Logger, maxBodyBytes int64) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &APIHandler{
		generator:    generator,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// --- Structs for API Requests/Responses ---

// GenerateCodeRequest is decoded by hand so that an absent or null visionResult can be told
// apart from one that is present but malformed.
type GenerateCodeRequest struct {
	VisionResult json.RawMessage `json:"visionResult"`
	Format       string          `json:"format,omitempty"` // accepted, all formats are always generated
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const exportFilename = "generated-code.zip"

// --- API Handlers ---

// POST /api/vision
func (h *APIHandler) AnalyzeScreenshot(c *gin.Context) {
	logger := h.requestLogger(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		logger.Info("vision request without image", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No image uploaded"})
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		logger.Warn("could not read uploaded image, serving demo description",
			"filename", fileHeader.Filename, "error", err)
		c.JSON(http.StatusOK, fallback.DemoUIDescription())
		return
	}

	mimeType := utils.DetectMIMEType(fileHeader.Header.Get("Content-Type"), data)
	logger.Info("received screenshot",
		"filename", fileHeader.Filename,
		"mime_type", mimeType,
		"bytes", len(data),
	)

	desc := h.generator.AnalyzeScreenshot(c.Request.Context(), ai.ImagePart{Data: data, MIMEType: mimeType})
	c.JSON(http.StatusOK, desc)
}

// POST /api/generate-code
func (h *APIHandler) GenerateCode(c *gin.Context) {
	logger := h.requestLogger(c)

	body, err := io.ReadAll(h.limitBody(c))
	if err != nil {
		if isBodyTooLarge(err) {
			h.rejectTooLarge(c)
			return
		}
		logger.Error("could not read code request body", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate code"})
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No vision result provided"})
		return
	}

	var req GenerateCodeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		logger.Error("code request body is not valid JSON", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate code"})
		return
	}
	raw := bytes.TrimSpace(req.VisionResult)
	if isFalsy(raw) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No vision result provided"})
		return
	}

	var desc types.UIDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		logger.Error("visionResult is not a UI description", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate code"})
		return
	}

	if req.Format != "" {
		logger.Debug("format hint ignored, generating all formats", "format", req.Format)
	}

	bundle := h.generator.GenerateCode(c.Request.Context(), desc)
	c.JSON(http.StatusOK, bundle)
}

// POST /api/preview
func (h *APIHandler) RenderPreview(c *gin.Context) {
	bundle, ok := h.bindBundle(c)
	if !ok {
		return
	}

	page, err := preview.Render(bundle)
	if err != nil {
		h.requestLogger(c).Error("failed to render preview", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to render preview"})
		return
	}

	c.Header("Content-Security-Policy", preview.SandboxPolicy)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// POST /api/export
func (h *APIHandler) ExportBundle(c *gin.Context) {
	bundle, ok := h.bindBundle(c)
	if !ok {
		return
	}

	files := aiutils.BundleFiles(bundle)
	var buf bytes.Buffer
	if err := aiutils.WriteZip(&buf, files); err != nil {
		h.requestLogger(c).Error("failed to build export archive", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export code"})
		return
	}

	h.requestLogger(c).Info("exported code bundle", "files", len(files), "bytes", buf.Len())
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// GET /health
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": h.generator.Provider()})
}

func (h *APIHandler) requestLogger(c *gin.Context) *slog.Logger {
	if id := c.GetString(requestIDKey); id != "" {
		return h.logger.With("request_id", id)
	}
	return h.logger
}

// bindBundle decodes a CodeBundle body within the size cap, answering 413 or 400 itself on failure.
func (h *APIHandler) bindBundle(c *gin.Context) (types.CodeBundle, bool) {
	var bundle types.CodeBundle
	h.limitBody(c)
	if err := c.ShouldBindJSON(&bundle); err != nil {
		if isBodyTooLarge(err) {
			h.rejectTooLarge(c)
			return bundle, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return bundle, false
	}
	return bundle, true
}

func (h *APIHandler) limitBody(c *gin.Context) io.Reader {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	return c.Request.Body
}

func (h *APIHandler) rejectTooLarge(c *gin.Context) {
	h.requestLogger(c).Info("request body too large", "limit_bytes", h.maxBodyBytes)
	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Request body too large"})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// isFalsy reports whether a JSON value is absent, null, false, 0 or "".
func isFalsy(raw json.RawMessage) bool {
	switch {
	case len(raw) == 0:
		return true
	case raw[0] == '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s == ""
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		var n float64
		return json.Unmarshal(raw, &n) == nil && n == 0
	}
	return bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("false"))
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("uploaded file is empty")
	}
	return data, nil
}
