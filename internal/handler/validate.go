package handler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/middleware"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/service"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/taxonomy"
)

type ValidateHandler struct {
	svc           *service.ValidateService
	uploadDir     string
	maxUploadSize int64
}

func NewValidateHandler(svc *service.ValidateService, uploadDir string, maxUploadSize int64) *ValidateHandler {
	return &ValidateHandler{svc: svc, uploadDir: uploadDir, maxUploadSize: maxUploadSize}
}

// Validate handles POST /api/validate. JSON bodies carry a URL submission;
// multipart bodies carry a raw video upload that is staged to disk first.
func (h *ValidateHandler) Validate(c fiber.Ctx) error {
	contentType := string(c.Request().Header.ContentType())

	var (
		source   service.Source
		hashtags string
		errResp  error
		ok       bool
	)
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		source, hashtags, errResp, ok = h.stageUpload(c)
	} else {
		source, hashtags, errResp, ok = h.parseURLRequest(c)
	}
	if !ok {
		return errResp
	}

	start := time.Now()
	outcome, err := h.svc.Validate(c.Context(), source, hashtags)
	Metrics.ScoringDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, service.ErrInput) {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SOURCE", userFacing(err))
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Validation failed")
	}

	recordOutcome(outcome)

	return c.JSON(buildValidateResponse(outcome))
}

func (h *ValidateHandler) parseURLRequest(c fiber.Ctx) (service.Source, string, error, bool) {
	var req model.ValidateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body"), false
	}

	if req.SourceKind == "file" {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_SOURCE",
			"File submissions must be sent as multipart/form-data"), false
	}

	rawURL, errMsg := middleware.ValidateURL(req.Payload)
	if errMsg != "" {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg), false
	}

	kind, platform, err := service.ClassifySourceURL(rawURL)
	if err != nil {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusBadRequest, "UNSUPPORTED_URL", userFacing(err)), false
	}

	source := service.Source{
		Kind:     kind,
		URL:      rawURL,
		Platform: platform,
	}
	return source, middleware.ValidateHashtags(req.Hashtags), nil, true
}

func (h *ValidateHandler) stageUpload(c fiber.Ctx) (service.Source, string, error, bool) {
	fh, err := c.FormFile("video")
	if err != nil {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusBadRequest, "MISSING_FILE", "A video file is required"), false
	}

	if fh.Size > h.maxUploadSize {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d MB upload limit", h.maxUploadSize/(1024*1024))), false
	}

	name := middleware.SafeUploadName(fh.Filename)
	if name == "" || !middleware.AllowedUploadExtension(name) {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT",
			"Supported formats: mp4, mov, avi, webm, mkv, flv, wmv"), false
	}

	// Unique prefix keeps concurrent uploads of the same filename apart
	// while preserving the original name for filename-based scoring.
	staged := filepath.Join(h.uploadDir, uuid.NewString()[:8]+"_"+name)
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusInternalServerError, "UPLOAD_FAILED", "Could not stage upload"), false
	}
	if err := c.SaveFile(fh, staged); err != nil {
		return service.Source{}, "", middleware.ErrorResponse(c, fiber.StatusInternalServerError, "UPLOAD_FAILED", "Could not stage upload"), false
	}

	source := service.Source{
		Kind:     model.SourceFileUpload,
		FilePath: staged,
		Staged:   true,
	}
	return source, middleware.ValidateHashtags(c.FormValue("hashtags")), nil, true
}

func recordOutcome(outcome service.Outcome) {
	outcomeLabel := "invalid"
	if outcome.Result.IsValid {
		outcomeLabel = "valid"
	}
	Metrics.ValidationsTotal.WithLabelValues(string(outcome.Result.Method), outcomeLabel).Inc()
	if outcome.Assignment != nil {
		Metrics.ClassificationsTotal.WithLabelValues(outcome.Assignment.MobKey).Inc()
	}
}

func buildValidateResponse(outcome service.Outcome) model.ValidateResponse {
	resp := model.ValidateResponse{
		Success:      true,
		IsValid:      outcome.Result.IsValid,
		Confidence:   outcome.Result.Confidence,
		ContentScore: outcome.Result.ContentScore,
		HashtagScore: outcome.Result.HashtagScore,
		Reason:       outcome.Result.Reason,
		Method:       outcome.Result.Method,
		VideoInfo:    outcome.VideoInfo,
	}

	if outcome.Assignment != nil {
		resp.MobID = outcome.Assignment.MobID
		resp.MobName = outcome.Assignment.MobName
		resp.MatchReasons = outcome.Assignment.Reasons
		if mob := taxonomy.ByID(outcome.Assignment.MobID); mob != nil {
			resp.MobIcon = mob.Icon
			resp.MobColor = mob.Color
		}
	}
	return resp
}

// userFacing strips the sentinel prefix from wrapped input errors so the
// client sees just the actionable text.
func userFacing(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
