package http

import (
	"encoding/json"
	"log"
	"net/http"

	"naija-tax/domain"
	"naija-tax/service"
)

type ReportRequest struct {
	CalculateRequest
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Consent   bool   `json:"consent"`
}

type ReportHandler struct {
	taxService    *service.TaxService
	reportService *service.ReportService
}

func NewReportHandler(
	taxService *service.TaxService,
	reportService *service.ReportService,
) *ReportHandler {
	return &ReportHandler{
		taxService:    taxService,
		reportService: reportService,
	}
}

// SendReport recalculates from the submitted inputs rather than trusting
// client-side figures, then hands the result to the report sender.
func (h *ReportHandler) SendReport(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if reason := service.ValidateRecipient(req.FirstName, req.Email, req.Consent); reason != "" {
		writeJSON(w, http.StatusUnprocessableEntity, domain.ReportOutcome{Error: reason})
		return
	}

	period, err := service.NormalizePeriod(req.Period)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, deductions, err := h.taxService.Calculate(domain.TaxInput{
		GrossIncome: req.GrossIncome,
		Period:      period,
		Overrides:   req.Deductions,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	display := period
	if req.DisplayPeriod != "" {
		if display, err = service.NormalizePeriod(req.DisplayPeriod); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	data := service.BuildReportData(req.FirstName, req.Email, display, result, deductions)
	outcome := h.reportService.SendTaxReport(r.Context(), data)

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, outcome)
}

func (h *ReportHandler) UserCount(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	count, err := h.reportService.UserCount(r.Context())
	if err != nil {
		log.Printf("Error reading user count: %v", err)
		http.Error(w, "user count unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"userCount": count})
}
