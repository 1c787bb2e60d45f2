package extract

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MIME types accepted by the ingestion pipeline.
const (
	MimePDF  = "application/pdf"
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
)

// MinReadableChars is the threshold below which PDF text is treated as
// unreadable and the pipeline short-circuits to an empty result.
const MinReadableChars = 20

// Supported reports whether the MIME type is accepted for upload.
func Supported(mimeType string) bool {
	switch NormalizeMimeType(mimeType) {
	case MimePDF, MimePNG, MimeJPEG:
		return true
	default:
		return false
	}
}

// IsImage reports whether the MIME type takes the vision extraction path.
func IsImage(mimeType string) bool {
	switch NormalizeMimeType(mimeType) {
	case MimePNG, MimeJPEG:
		return true
	default:
		return false
	}
}

// NormalizeMimeType strips parameters and lowercases a MIME type.
func NormalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

// PDFText pulls plain text from an in-memory PDF.
// Library used: github.com/ledongthuc/pdf.
func PDFText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Readable reports whether extracted text clears the minimum threshold.
func Readable(text string) bool {
	return len(strings.TrimSpace(text)) >= MinReadableChars
}

// Excerpt returns up to the first n bytes of text for the validation pass,
// backing off to a rune boundary so a multi-byte character is never split.
func Excerpt(text string, n int) string {
	if len(text) <= n {
		return text
	}
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n]
}
