package ingest

import "math"

// Confidence buckets. Thresholds use strict comparisons: a score of exactly
// 0.5 is PARTIAL and exactly 0.1 is FAILED.
const (
	BucketSuccess = "SUCCESS"
	BucketPartial = "PARTIAL"
	BucketFailed  = "FAILED"
)

// ConfidenceReport is derived from an ExtractionResult and embedded in the
// stored blob; it is never persisted as its own entity.
type ConfidenceReport struct {
	Score           float64 `json:"score"`
	ExtractedFields int     `json:"extractedFields"`
	TotalFields     int     `json:"totalFields"`
	Bucket          string  `json:"bucket"`
}

const scoredFieldCount = 6

// Placeholder strings some models emit instead of null; they count as absent.
var placeholderValues = map[string]struct{}{
	"Not specified": {},
	"Not available": {},
}

// Score computes the completeness ratio over the fixed six-field checklist:
// employee name, employee external id, insurance provider, policy number,
// maternity coverage, top-up percentage. Equal weight per field, no field
// required; this is a heuristic completeness indicator, not a statistical
// confidence measure.
func Score(result ExtractionResult) ConfidenceReport {
	checklist := []*string{
		result.EmployeeInfo.Name,
		result.EmployeeInfo.EmployeeID,
		result.InsuranceDetails.Provider,
		result.InsuranceDetails.PolicyNumber,
		result.BenefitBreakdown.MaternityCoverage,
		result.CompanyPolicy.TopUpPercentage,
	}

	extracted := 0
	for _, field := range checklist {
		if fieldExtracted(field) {
			extracted++
		}
	}

	score := math.Round(float64(extracted)/float64(scoredFieldCount)*100) / 100

	return ConfidenceReport{
		Score:           score,
		ExtractedFields: extracted,
		TotalFields:     scoredFieldCount,
		Bucket:          bucketFor(score),
	}
}

func fieldExtracted(field *string) bool {
	if field == nil || *field == "" {
		return false
	}
	_, placeholder := placeholderValues[*field]
	return !placeholder
}

func bucketFor(score float64) string {
	switch {
	case score > 0.5:
		return BucketSuccess
	case score > 0.1:
		return BucketPartial
	default:
		return BucketFailed
	}
}
