package ingest

import "time"

// DocumentResponse is the API shape for a single document.
type DocumentResponse struct {
	DocumentID       string           `json:"documentId"`
	FileName         string           `json:"fileName"`
	MimeType         string           `json:"mimeType"`
	SizeBytes        int64            `json:"sizeBytes"`
	FileURL          string           `json:"fileUrl"`
	ExtractedData    ExtractionRecord `json:"extractedData"`
	LinkedEmployeeID *string          `json:"linkedEmployeeId,omitempty"`
	UploadedAt       time.Time        `json:"uploadedAt"`
}

func toResponse(doc Document, fileURL string) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:    doc.ID,
		FileName:      doc.FileName,
		MimeType:      doc.MimeType,
		SizeBytes:     doc.SizeBytes,
		FileURL:       fileURL,
		ExtractedData: doc.Extraction,
		UploadedAt:    doc.CreatedAt,
	}
	if doc.LinkedEmployeeID != "" {
		linked := doc.LinkedEmployeeID
		resp.LinkedEmployeeID = &linked
	}
	return resp
}

// DocumentSummary is the list-view shape; the full extraction blob is omitted.
type DocumentSummary struct {
	DocumentID        string    `json:"documentId"`
	FileName          string    `json:"fileName"`
	MimeType          string    `json:"mimeType"`
	SizeBytes         int64     `json:"sizeBytes"`
	ProcessingMethod  string    `json:"processingMethod"`
	ExtractionSuccess bool      `json:"extractionSuccess"`
	ConfidenceBucket  string    `json:"confidenceBucket"`
	UploadedAt        time.Time `json:"uploadedAt"`
}

func toSummary(doc Document) DocumentSummary {
	return DocumentSummary{
		DocumentID:        doc.ID,
		FileName:          doc.FileName,
		MimeType:          doc.MimeType,
		SizeBytes:         doc.SizeBytes,
		ProcessingMethod:  doc.Extraction.ProcessingMethod,
		ExtractionSuccess: doc.Extraction.ExtractionSuccess,
		ConfidenceBucket:  doc.Extraction.Confidence.Bucket,
		UploadedAt:        doc.CreatedAt,
	}
}
