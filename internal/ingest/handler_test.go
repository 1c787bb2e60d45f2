package ingest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"leavepilot-backend/internal/ingest"
	"leavepilot-backend/internal/llm"
	"leavepilot-backend/internal/shared/config"
	"leavepilot-backend/internal/shared/server"
	localstore "leavepilot-backend/internal/shared/storage/object/local"
)

const extractionPayload = `{
  "employeeInfo": {"name": "Ada Park", "employeeID": "E-9", "department": null},
  "insuranceDetails": {"provider": "Northwind", "policyNumber": null, "coverageType": null, "benefitRate": null, "maxWeeks": null},
  "benefitBreakdown": {"shortTermDisability": null, "maternityCoverage": "100% for 12 weeks", "paternalCoverage": null, "adoptionCoverage": null},
  "companyPolicy": {"topUpOffered": null, "topUpPercentage": "25%", "totalCoverage": null}
}`

type stubExtractor struct {
	raw string
	err error
}

func (s stubExtractor) Extract(ctx context.Context, input llm.ExtractInput) (json.RawMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(s.raw), nil
}

func newTestRouter(t *testing.T, extractor llm.Extractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := ingest.NewService(extractor, llm.PlaceholderValidator{}, localstore.New(t.TempDir()), ingest.NewMemoryRepo())
	return server.NewRouter(server.RouterDeps{
		Config:        config.Config{Env: "dev"},
		IngestHandler: ingest.NewHandler(svc, nil),
	})
}

func multipartBody(t *testing.T, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
}

func TestUploadRequiresIdentity(t *testing.T) {
	router := newTestRouter(t, stubExtractor{raw: extractionPayload})

	body, contentType := multipartBody(t, "policy.png", pngBytes())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	router := newTestRouter(t, stubExtractor{raw: extractionPayload})

	body, contentType := multipartBody(t, "notes.txt", []byte("plain text notes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Dev-Admin", "tester")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error.Code != "unsupported_file_type" {
		t.Fatalf("expected unsupported_file_type, got %s", envelope.Error.Code)
	}
}

func TestUploadModelOutageReturns502(t *testing.T) {
	router := newTestRouter(t, stubExtractor{err: errors.New("provider down")})

	body, contentType := multipartBody(t, "policy.png", pngBytes())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Dev-Admin", "tester")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestUploadListGetAndLinkFlow(t *testing.T) {
	router := newTestRouter(t, stubExtractor{raw: extractionPayload})

	body, contentType := multipartBody(t, "policy.png", pngBytes())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Dev-Admin", "tester")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		DocumentID    string `json:"documentId"`
		FileURL       string `json:"fileUrl"`
		ExtractedData struct {
			ExtractionSuccess bool `json:"extractionSuccess"`
			Confidence        struct {
				ExtractedFields int    `json:"extractedFields"`
				Bucket          string `json:"bucket"`
			} `json:"confidence"`
			EmployeeInfo struct {
				Name       *string `json:"name"`
				Department *string `json:"department"`
			} `json:"employeeInfo"`
		} `json:"extractedData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.DocumentID == "" || created.FileURL == "" {
		t.Fatalf("expected documentId and fileUrl, got %+v", created)
	}
	if !created.ExtractedData.ExtractionSuccess {
		t.Fatalf("expected extractionSuccess=true")
	}
	if created.ExtractedData.Confidence.ExtractedFields != 5 || created.ExtractedData.Confidence.Bucket != "SUCCESS" {
		t.Fatalf("expected 5 extracted fields / SUCCESS, got %+v", created.ExtractedData.Confidence)
	}
	if created.ExtractedData.EmployeeInfo.Department != nil {
		t.Fatalf("null leaves must stay null in the response")
	}

	// List.
	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-1/documents", nil)
	reqList.Header.Set("X-Dev-Admin", "tester")
	respList := httptest.NewRecorder()
	router.ServeHTTP(respList, reqList)
	if respList.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", respList.Code)
	}
	var summaries []struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&summaries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(summaries) != 1 || summaries[0].DocumentID != created.DocumentID {
		t.Fatalf("expected the uploaded document in the list, got %+v", summaries)
	}

	// Get by id.
	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-1/documents/"+created.DocumentID, nil)
	reqGet.Header.Set("X-Dev-Admin", "tester")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", respGet.Code)
	}

	// Link an employee, then reject the second link.
	linkBody := bytes.NewBufferString(`{"employeeId":"emp-1"}`)
	reqLink := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents/"+created.DocumentID+"/link-employee", linkBody)
	reqLink.Header.Set("Content-Type", "application/json")
	reqLink.Header.Set("X-Dev-Admin", "tester")
	respLink := httptest.NewRecorder()
	router.ServeHTTP(respLink, reqLink)
	if respLink.Code != http.StatusOK {
		t.Fatalf("link: expected 200, got %d", respLink.Code)
	}

	linkAgain := bytes.NewBufferString(`{"employeeId":"emp-2"}`)
	reqLink2 := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents/"+created.DocumentID+"/link-employee", linkAgain)
	reqLink2.Header.Set("Content-Type", "application/json")
	reqLink2.Header.Set("X-Dev-Admin", "tester")
	respLink2 := httptest.NewRecorder()
	router.ServeHTTP(respLink2, reqLink2)
	if respLink2.Code != http.StatusConflict {
		t.Fatalf("second link: expected 409, got %d", respLink2.Code)
	}
}

func scrapeCounter(t *testing.T, router *gin.Engine, name string) uint64 {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("metrics scrape: expected 200, got %d", resp.Code)
	}
	for _, line := range strings.Split(resp.Body.String(), "\n") {
		if strings.HasPrefix(line, name+" ") {
			value, err := strconv.ParseUint(strings.TrimPrefix(line, name+" "), 10, 64)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			return value
		}
	}
	t.Fatalf("counter %s not exposed", name)
	return 0
}

func TestMetricsEndpointCountsUploads(t *testing.T) {
	router := newTestRouter(t, stubExtractor{raw: extractionPayload})

	// No identity needed for the scrape endpoint.
	started := scrapeCounter(t, router, "ingest_started_total")
	persisted := scrapeCounter(t, router, "ingest_persisted_total")

	body, contentType := multipartBody(t, "policy.png", pngBytes())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Dev-Admin", "tester")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	if got := scrapeCounter(t, router, "ingest_started_total"); got != started+1 {
		t.Fatalf("expected started counter to advance to %d, got %d", started+1, got)
	}
	if got := scrapeCounter(t, router, "ingest_persisted_total"); got != persisted+1 {
		t.Fatalf("expected persisted counter to advance to %d, got %d", persisted+1, got)
	}
}

func TestDocumentsAreTenantScoped(t *testing.T) {
	router := newTestRouter(t, stubExtractor{raw: extractionPayload})

	body, contentType := multipartBody(t, "policy.png", pngBytes())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/co-1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Dev-Admin", "tester")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	reqGet := httptest.NewRequest(http.MethodGet, "/api/v1/companies/co-other/documents/"+created.DocumentID, nil)
	reqGet.Header.Set("X-Dev-Admin", "tester")
	respGet := httptest.NewRecorder()
	router.ServeHTTP(respGet, reqGet)
	if respGet.Code != http.StatusNotFound {
		t.Fatalf("cross-tenant get: expected 404, got %d", respGet.Code)
	}
}
