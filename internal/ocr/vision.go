package ocr

import (
	"context"
	"log/slog"
)

// ImageTranscriber is the slice of the chat client the vision variant needs.
type ImageTranscriber interface {
	TranscribeImage(ctx context.Context, imagePath string) (string, error)
}

// VisionModel is the remote recognizer variant: the image is sent to a
// vision-capable chat model and the completion is the recognized text.
type VisionModel struct {
	client ImageTranscriber
	logger *slog.Logger
}

func NewVisionModel(client ImageTranscriber, logger *slog.Logger) *VisionModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisionModel{client: client, logger: logger}
}

func (v *VisionModel) Recognize(ctx context.Context, imagePath string) (string, error) {
	return v.client.TranscribeImage(ctx, imagePath)
}
