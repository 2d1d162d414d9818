package checker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"span-checker/api/internal/llm"
	"span-checker/api/internal/llm/types"
	"span-checker/api/internal/store"
	"span-checker/api/internal/util"
)

var ErrEmptyText = errors.New("text is empty")

const (
	SourceWeb      = "web"
	SourceTelegram = "telegram"
	SourceCLI      = "cli"
)

// Recorder persists successful checks. *store.SubmissionRepo implements it.
type Recorder interface {
	Record(ctx context.Context, s store.Submission) error
}

// LanguageDetector is satisfied by *detector.Detector.
type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

type Result struct {
	Raw     json.RawMessage
	Parsed  types.CheckResponse
	Engine  string
	Model   string
	Latency time.Duration
}

type Service struct {
	Engine   llm.Engine
	Recorder Recorder         // optional
	Detector LanguageDetector // optional
}

func New(engine llm.Engine, rec Recorder, det LanguageDetector) *Service {
	return &Service{Engine: engine, Recorder: rec, Detector: det}
}

// Check validates text, runs one engine call and journals the result. Errors from the
// engine are returned unchanged so callers can show their message.
func (s *Service) Check(ctx context.Context, source, text string) (Result, error) {
	text = util.NormalizeText(text)
	if text == "" {
		return Result{}, ErrEmptyText
	}

	start := time.Now()
	raw, err := s.Engine.Check(ctx, types.CheckRequest{Text: text})
	latency := time.Since(start)

	log := logrus.WithFields(logrus.Fields{
		"source":     source,
		"engine":     s.Engine.Name(),
		"model":      s.Engine.GetModel(),
		"chars":      len([]rune(text)),
		"latency_ms": latency.Milliseconds(),
	})
	if err != nil {
		log.WithError(err).Error("check failed")
		return Result{}, err
	}

	res := Result{
		Raw:     raw,
		Engine:  s.Engine.Name(),
		Model:   s.Engine.GetModel(),
		Latency: latency,
	}
	if parsed, perr := types.ParseCheckResponse(raw); perr == nil {
		res.Parsed = parsed
	} else {
		log.WithError(perr).Warn("model output does not match the expected shape")
	}
	log.Info("check done")

	s.record(ctx, source, text, res)
	return res, nil
}

func (s *Service) record(ctx context.Context, source, text string, res Result) {
	var lang string
	if s.Detector != nil {
		if iso, ok := s.Detector.DetectISO(text); ok {
			lang = iso
			if iso != "es" {
				logrus.WithField("lang", iso).Warn("submission does not look like Spanish")
			}
		}
	}
	if s.Recorder == nil {
		return
	}

	sub := store.Submission{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Source:         source,
		Engine:         res.Engine,
		Model:          res.Model,
		Lang:           lang,
		TextHash:       util.SHA256Hex(text),
		Text:           text,
		CorrectedText:  res.Parsed.CorrectedText,
		ExplanationsMD: res.Parsed.ExplanationsMD,
		LatencyMS:      res.Latency.Milliseconds(),
	}
	// the journal must not hold the caller up once the client has gone away
	if err := s.Recorder.Record(context.WithoutCancel(ctx), sub); err != nil {
		logrus.WithError(err).WithField("submission_id", sub.ID).Warn("journal write failed")
	}
}
