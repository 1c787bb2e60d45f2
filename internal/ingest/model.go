package ingest

import "time"

// Pipeline states for a single upload. Failures of any step transition
// directly to StateError; there is no retry or resume.
const (
	StateReceived      = "RECEIVED"
	StateTextExtracted = "TEXT_EXTRACTED"
	StateSkipped       = "SKIPPED"
	StateAIExtracted   = "AI_EXTRACTED"
	StateValidated     = "VALIDATED"
	StateScored        = "SCORED"
	StatePersisted     = "PERSISTED"
	StateError         = "ERROR"
)

// Processing methods recorded in the stored extraction blob.
const (
	MethodPDFText  = "PDF_TEXT_EXTRACTION"
	MethodImageOCR = "IMAGE_OCR"
	MethodDualAI   = "DUAL_AI_VALIDATION"
	MethodError    = "ERROR"
)

// Document represents an uploaded benefits document owned by a company.
// Immutable after creation except for the optional one-time employee link.
type Document struct {
	ID               string
	CompanyID        string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	Extraction       ExtractionRecord
	LinkedEmployeeID string
	CreatedAt        time.Time
}

// ExtractionResult is the four-section schema produced by the model passes.
// Every leaf is nullable by design: absence is a first-class value, and keys
// are always emitted so downstream consumers see a fully shaped object.
type ExtractionResult struct {
	EmployeeInfo     EmployeeInfo     `json:"employeeInfo"`
	InsuranceDetails InsuranceDetails `json:"insuranceDetails"`
	BenefitBreakdown BenefitBreakdown `json:"benefitBreakdown"`
	CompanyPolicy    CompanyPolicy    `json:"companyPolicy"`
}

// EmployeeInfo identifies the employee named in the document.
type EmployeeInfo struct {
	Name       *string `json:"name"`
	EmployeeID *string `json:"employeeID"`
	Department *string `json:"department"`
}

// InsuranceDetails captures the insurance policy terms.
type InsuranceDetails struct {
	Provider     *string `json:"provider"`
	PolicyNumber *string `json:"policyNumber"`
	CoverageType *string `json:"coverageType"`
	BenefitRate  *string `json:"benefitRate"`
	MaxWeeks     *string `json:"maxWeeks"`
}

// BenefitBreakdown captures per-leave-type coverage.
type BenefitBreakdown struct {
	ShortTermDisability *string `json:"shortTermDisability"`
	MaternityCoverage   *string `json:"maternityCoverage"`
	PaternalCoverage    *string `json:"paternalCoverage"`
	AdoptionCoverage    *string `json:"adoptionCoverage"`
}

// CompanyPolicy captures the employer's own top-up policy.
type CompanyPolicy struct {
	TopUpOffered    *bool   `json:"topUpOffered"`
	TopUpPercentage *string `json:"topUpPercentage"`
	TotalCoverage   *string `json:"totalCoverage"`
}

// ExtractionRecord is the full blob persisted alongside the document row.
type ExtractionRecord struct {
	ExtractionResult
	ExtractedAt       time.Time        `json:"extractedAt"`
	ProcessingMethod  string           `json:"processingMethod"`
	ExtractionSuccess bool             `json:"extractionSuccess"`
	FailureReason     *string          `json:"failureReason"`
	Confidence        ConfidenceReport `json:"confidence"`
}

// HasAnyField reports whether any leaf of the result is non-null.
func (r ExtractionResult) HasAnyField() bool {
	for _, p := range []*string{
		r.EmployeeInfo.Name, r.EmployeeInfo.EmployeeID, r.EmployeeInfo.Department,
		r.InsuranceDetails.Provider, r.InsuranceDetails.PolicyNumber,
		r.InsuranceDetails.CoverageType, r.InsuranceDetails.BenefitRate,
		r.InsuranceDetails.MaxWeeks,
		r.BenefitBreakdown.ShortTermDisability, r.BenefitBreakdown.MaternityCoverage,
		r.BenefitBreakdown.PaternalCoverage, r.BenefitBreakdown.AdoptionCoverage,
		r.CompanyPolicy.TopUpPercentage, r.CompanyPolicy.TotalCoverage,
	} {
		if p != nil {
			return true
		}
	}
	return r.CompanyPolicy.TopUpOffered != nil
}

func degradedRecord(method, reason string, at time.Time) ExtractionRecord {
	return ExtractionRecord{
		ExtractedAt:       at,
		ProcessingMethod:  method,
		ExtractionSuccess: false,
		FailureReason:     &reason,
		Confidence:        Score(ExtractionResult{}),
	}
}
