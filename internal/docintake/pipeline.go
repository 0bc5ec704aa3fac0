// Package docintake converts an uploaded PDF into extracted text and a
// small structured-field completion. The pipeline runs as an explicit
// state machine so each fallback and fatal transition is testable with
// fake collaborators.
package docintake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidInput indicates the upload is not a PDF. No pipeline stage
// runs after this check fails.
var ErrInvalidInput = errors.New("only PDF files are allowed")

const pdfMediaType = "application/pdf"

// TextExtractor reads the embedded text layer of a PDF.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// OCREngine runs optical character recognition over a document.
type OCREngine interface {
	Recognize(ctx context.Context, data []byte) (string, error)
}

// Completer invokes a text-generation service with a fully rendered
// prompt and returns the raw completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Stage identifies a pipeline state.
type Stage int

const (
	StageTypeCheck Stage = iota
	StageDigitalExtract
	StageOpticalFallback
	StageFieldExtraction
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageTypeCheck:
		return "type_check"
	case StageDigitalExtract:
		return "digital_extract"
	case StageOpticalFallback:
		return "optical_fallback"
	case StageFieldExtraction:
		return "field_extraction"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// TextSource records which stage supplied the document text.
type TextSource string

const (
	SourceDigital TextSource = "digital"
	SourceOCR     TextSource = "ocr"
)

// Result is the pipeline output: the raw completion text and the stage
// that produced the document text it was derived from.
type Result struct {
	Text   string
	Source TextSource
}

// fieldPrompt directs the completion service to extract exactly two
// fields, returning null for any field absent from the source text.
const fieldPrompt = `You are a medical document parser.
Extract ONLY the following fields from the text:
- Patient Name
- Date of Birth (MM/DD/YYYY)

If not found, return null for that field.

Text:
%s
`

// Pipeline drives a document through the extraction stages sequentially.
type Pipeline struct {
	extractor TextExtractor
	ocr       OCREngine
	completer Completer
	logger    *zap.Logger
}

// New wires a pipeline from its three collaborators.
func New(extractor TextExtractor, ocr OCREngine, completer Completer, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		ocr:       ocr,
		completer: completer,
		logger:    logger,
	}
}

// Process runs the state machine over one document. A digital-extraction
// failure is recoverable (logged, falls through to OCR); OCR and
// completion failures are fatal and surface to the caller. There are no
// retries at any stage.
func (p *Pipeline) Process(ctx context.Context, data []byte, mediaType string) (*Result, error) {
	var (
		text    string
		source  TextSource
		result  *Result
		failure error
	)

	stage := StageTypeCheck
	for {
		switch stage {
		case StageTypeCheck:
			if mediaType != pdfMediaType {
				failure = ErrInvalidInput
				stage = StageFailed
				continue
			}
			stage = StageDigitalExtract

		case StageDigitalExtract:
			extracted, err := p.extractor.Extract(ctx, data)
			if err != nil {
				// Recoverable: scanned or corrupt PDFs land here.
				p.logger.Warn("pdf text extraction failed, falling back to OCR", zap.Error(err))
				extracted = ""
			}
			text = strings.TrimSpace(extracted)
			source = SourceDigital
			if text == "" {
				stage = StageOpticalFallback
			} else {
				stage = StageFieldExtraction
			}

		case StageOpticalFallback:
			ocrText, err := p.ocr.Recognize(ctx, data)
			if err != nil {
				// Fatal: no further fallback exists.
				failure = fmt.Errorf("ocr recognition: %w", err)
				stage = StageFailed
				continue
			}
			text = ocrText
			source = SourceOCR
			stage = StageFieldExtraction

		case StageFieldExtraction:
			completion, err := p.completer.Complete(ctx, fmt.Sprintf(fieldPrompt, text))
			if err != nil {
				failure = fmt.Errorf("field extraction: %w", err)
				stage = StageFailed
				continue
			}
			result = &Result{Text: completion, Source: source}
			stage = StageDone

		case StageDone:
			p.logger.Info("document processed",
				zap.String("text_source", string(source)),
				zap.Int("document_bytes", len(data)))
			return result, nil

		case StageFailed:
			return nil, failure
		}
	}
}
