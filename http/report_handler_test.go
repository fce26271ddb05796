package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"naija-tax/domain"
	"naija-tax/repository"
	"naija-tax/service"
)

type recordingMailer struct {
	sent []service.Email
}

func (m *recordingMailer) Send(ctx context.Context, msg service.Email) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newTestRouter(mailer service.Mailer, limiter *RateLimiter) (http.Handler, *repository.CounterRepositoryMemory) {
	taxService := service.NewTaxService(repository.NewCalculationRepositoryMemory(0))
	counter := repository.NewCounterRepositoryMemory()
	reportService := service.NewReportService(mailer, counter, nil, service.ReportOptions{})

	router := NewRouter(RouterConfig{
		TaxHandler:    NewTaxHandler(taxService),
		ReportHandler: NewReportHandler(taxService, reportService),
		RateLimiter:   limiter,
	})
	return router, counter
}

const reportBody = `{
	"firstName": "Ada",
	"email": "ada@example.com",
	"consent": true,
	"grossIncome": 4000000,
	"period": "annual",
	"deductions": {"mortgage": 0, "pension": 0, "rent": 0, "insurance": 0}
}`

func TestSendReport_OK(t *testing.T) {

	mailer := &recordingMailer{}
	router, counter := newTestRouter(mailer, nil)

	req := httptest.NewRequest(http.MethodPost, "/tax/report", bytes.NewBufferString(reportBody))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var outcome domain.ReportOutcome
	json.NewDecoder(w.Body).Decode(&outcome)
	if !outcome.Success || outcome.UserCount != 1 {
		t.Errorf("unexpected outcome %+v", outcome)
	}

	if len(mailer.sent) != 1 || !strings.Contains(mailer.sent[0].HTML, "₦509,999.82") {
		t.Errorf("expected the user email with recomputed tax")
	}

	if n, _ := counter.GetCount(context.Background()); n != 1 {
		t.Errorf("expected counter 1, got %d", n)
	}
}

func TestSendReport_RequiresConsent(t *testing.T) {

	mailer := &recordingMailer{}
	router, _ := newTestRouter(mailer, nil)

	body := strings.Replace(reportBody, `"consent": true`, `"consent": false`, 1)
	req := httptest.NewRequest(http.MethodPost, "/tax/report", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if len(mailer.sent) != 0 {
		t.Errorf("no email should be sent without consent")
	}
}

func TestSendReport_MailNotConfigured(t *testing.T) {

	router, _ := newTestRouter(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/tax/report", bytes.NewBufferString(reportBody))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var outcome domain.ReportOutcome
	json.NewDecoder(w.Body).Decode(&outcome)

	if w.Code != http.StatusUnprocessableEntity || outcome.Success {
		t.Errorf("expected failure outcome, got %d %+v", w.Code, outcome)
	}
	if !strings.Contains(outcome.Error, "not configured") {
		t.Errorf("unexpected reason %q", outcome.Error)
	}
}

func TestSendReport_RateLimited(t *testing.T) {

	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	router, _ := newTestRouter(&recordingMailer{}, limiter)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/tax/report", bytes.NewBufferString(reportBody))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != want {
			t.Errorf("request %d: expected %d, got %d", i, want, w.Code)
		}
		if want == http.StatusTooManyRequests && w.Header().Get("Retry-After") == "" {
			t.Errorf("expected Retry-After header")
		}
	}
}

func TestUserCountHandler(t *testing.T) {

	router, counter := newTestRouter(&recordingMailer{}, nil)
	counter.Increment(context.Background())
	counter.Increment(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/stats/users", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var got map[string]int64
	json.NewDecoder(w.Body).Decode(&got)

	if w.Code != http.StatusOK || got["userCount"] != 2 {
		t.Errorf("expected userCount 2, got %d %+v", w.Code, got)
	}
}

func TestRouter_MethodMismatch(t *testing.T) {

	router, _ := newTestRouter(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/tax/calculate", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}
