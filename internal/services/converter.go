package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/pdf-to-json/internal/extractor"
	"github.com/BerylCAtieno/pdf-to-json/internal/models"
	"github.com/BerylCAtieno/pdf-to-json/internal/structurer"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"
)

// ProcessingErrorMessage is the only failure text callers ever see.
const ProcessingErrorMessage = "Error processing the PDF"

type ConversionService interface {
	Convert(ctx context.Context, req *models.ConvertRequest) (*models.ConvertResponse, error)
}

type conversionService struct {
	extractor  extractor.Extractor
	structurer structurer.Structurer
	logger     *utils.Logger
}

// NewConversionService holds no per-request state, so one instance serves
// all requests concurrently.
func NewConversionService(ext extractor.Extractor, st structurer.Structurer, logger *utils.Logger) ConversionService {
	return &conversionService{
		extractor:  ext,
		structurer: st,
		logger:     logger,
	}
}

func (s *conversionService) Convert(ctx context.Context, req *models.ConvertRequest) (*models.ConvertResponse, error) {
	data, err := DecodeFile(req.File)
	if err != nil {
		s.logger.Error("Failed to decode file payload", "error", err)
		return nil, utils.WrapInternalError(ProcessingErrorMessage, err)
	}

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		s.logger.Error("Failed to extract text", "error", err, "file_size", len(data))
		return nil, utils.WrapInternalError(ProcessingErrorMessage, err)
	}

	if text == "" {
		s.logger.Warn("No text extracted from PDF", "file_size", len(data))
	}

	s.logger.Info("Starting structuring", "file_size", len(data), "text_length", len(text))

	content, err := s.structurer.Structure(ctx, text)
	if err != nil {
		s.logger.Error("Failed to structure text", "error", err, "text_length", len(text))
		return nil, utils.WrapInternalError(ProcessingErrorMessage, err)
	}

	s.logger.Info("PDF converted successfully",
		"file_size", len(data),
		"text_length", len(text),
		"json_length", len(content))

	return &models.ConvertResponse{JSON: content}, nil
}

// DecodeFile decodes a base64 payload. A data URL prefix such as
// "data:application/pdf;base64," is stripped first, and unpadded or
// URL-safe input is accepted as well as standard padded base64.
func DecodeFile(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}
	payload = strings.TrimSpace(payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}

	raw := strings.TrimRight(payload, "=")
	if data, rawErr := base64.RawStdEncoding.DecodeString(raw); rawErr == nil {
		return data, nil
	}
	if data, rawErr := base64.RawURLEncoding.DecodeString(raw); rawErr == nil {
		return data, nil
	}

	return nil, fmt.Errorf("invalid base64 payload: %w", err)
}
