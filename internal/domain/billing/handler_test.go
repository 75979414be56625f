package billing

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/records"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_GenerateBill(t *testing.T) {
	svc, st, _ := newTestService(t)
	st.AddPatient(records.Patient{Name: "Ann"})
	h, e := NewHandler(svc), echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/bills", `{"patient_id":"1","service":"100","medicine":"50"}`), rec)
	if err := h.GenerateBill(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp BillResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if math.Abs(resp.Total-177) > 1e-9 {
		t.Errorf("expected 177, got %v", resp.Total)
	}
	if !strings.Contains(resp.Text, "TOTAL: 177.00") {
		t.Errorf("unexpected text %q", resp.Text)
	}
}

func TestHandler_GenerateBill_NoPatients(t *testing.T) {
	svc, _, _ := newTestService(t)
	h, e := NewHandler(svc), echo.New()

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/bills", `{}`), httptest.NewRecorder())
	he, ok := h.GenerateBill(c).(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400")
	}
}

func TestHandler_ExportBill(t *testing.T) {
	svc, st, dir := newTestService(t)
	st.AddPatient(records.Patient{Name: "Ann"})
	h, e := NewHandler(svc), echo.New()

	target := filepath.Join(dir, "out.txt")
	body, _ := json.Marshal(map[string]string{"service": "10", "path": target})
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/bills/export", string(body)), rec)
	if err := h.ExportBill(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("expected exported file: %v", err)
	}
	if !strings.HasPrefix(string(data), "--- Hospital Bill ---\n") {
		t.Errorf("unexpected file content %q", data)
	}
}
