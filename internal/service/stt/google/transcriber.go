// Package google provides a Google Cloud Speech-to-Text transcriber.
package google

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"

	"github.com/Akhils696/rapid100-ai-dispatch/internal/service/stt"
)

// Transcriber implements stt.Transcriber using Google Cloud
// Speech-to-Text synchronous recognition.
type Transcriber struct {
	client *speech.Client
}

// New creates a Google transcriber.
// Requires GOOGLE_APPLICATION_CREDENTIALS to be set.
func New(ctx context.Context) (*Transcriber, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Transcriber{client: c}, nil
}

// Transcribe sends one audio chunk for recognition and joins the top
// alternative of every result. Cancellation of the call's context maps
// to silence rather than an error, matching a caller hanging up
// mid-chunk.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, cfg stt.AudioConfig) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	resp, err := t.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: int32(cfg.SampleRateHz),
			LanguageCode:    languageCode(cfg.Language),
			UseEnhanced:     cfg.NoiseFiltering,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		switch status.Code(err) {
		case codes.Canceled, codes.DeadlineExceeded:
			return "", nil
		}
		return "", err
	}

	var parts []string
	for _, r := range resp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		parts = append(parts, r.Alternatives[0].Transcript)
	}
	return strings.Join(parts, " "), nil
}

// Close releases the underlying client.
func (t *Transcriber) Close() error {
	return t.client.Close()
}

// languageCode widens short language tags to the BCP-47 codes the API
// expects.
func languageCode(lang string) string {
	switch strings.ToLower(lang) {
	case "", "en":
		return "en-US"
	case "es":
		return "es-US"
	case "hi":
		return "hi-IN"
	default:
		return lang
	}
}
