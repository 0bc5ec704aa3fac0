package docintake

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR recognizes text with a fixed language profile. A fresh
// client is created per call; gosseract clients are not safe for
// concurrent use.
type TesseractOCR struct {
	language string
}

// NewTesseractOCR returns an OCR engine for the given language profile
// (e.g. "eng").
func NewTesseractOCR(language string) *TesseractOCR {
	return &TesseractOCR{language: language}
}

// Recognize implements OCREngine.
func (t *TesseractOCR) Recognize(_ context.Context, data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("load document: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
