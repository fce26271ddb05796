package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"naija-tax/domain"
	"naija-tax/service"
)

type CalculateRequest struct {
	GrossIncome   float64                   `json:"grossIncome"`
	Period        domain.Period             `json:"period"`
	Deductions    domain.DeductionOverrides `json:"deductions,omitempty"`
	DisplayPeriod domain.Period             `json:"displayPeriod,omitempty"`
}

type CalculateResponse struct {
	Period        domain.Period     `json:"period"`
	Result        domain.TaxResult  `json:"result"`
	Display       domain.TaxResult  `json:"display"`
	Deductions    domain.Deductions `json:"deductions"`
	ZeroTaxReason string            `json:"zeroTaxReason,omitempty"`
	Explanation   []string          `json:"explanation"`
}

type bracketView struct {
	Label string   `json:"label"`
	Lower float64  `json:"lower"`
	Upper *float64 `json:"upper"` // null for the top bracket
	Rate  float64  `json:"rate"`
}

type TaxHandler struct {
	service *service.TaxService
}

func NewTaxHandler(service *service.TaxService) *TaxHandler {
	return &TaxHandler{service: service}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *TaxHandler) CalculateTax(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.calculate(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TaxHandler) calculate(req CalculateRequest) (CalculateResponse, error) {
	period, err := service.NormalizePeriod(req.Period)
	if err != nil {
		return CalculateResponse{}, err
	}

	display := period
	if req.DisplayPeriod != "" {
		if display, err = service.NormalizePeriod(req.DisplayPeriod); err != nil {
			return CalculateResponse{}, errors.New("displayPeriod must be annual or monthly")
		}
	}

	result, deductions, err := h.service.Calculate(domain.TaxInput{
		GrossIncome: req.GrossIncome,
		Period:      period,
		Overrides:   req.Deductions,
	})
	if err != nil {
		return CalculateResponse{}, err
	}

	return CalculateResponse{
		Period:        display,
		Result:        result,
		Display:       result.Project(display),
		Deductions:    deductions,
		ZeroTaxReason: service.ZeroTaxReason(result),
		Explanation:   service.ExplainBreakdown(result, display),
	}, nil
}

func (h *TaxHandler) DefaultDeductions(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	gross, err := strconv.ParseFloat(r.URL.Query().Get("grossIncome"), 64)
	if err != nil || math.IsNaN(gross) || math.IsInf(gross, 0) {
		http.Error(w, "grossIncome must be a number", http.StatusBadRequest)
		return
	}

	period, err := service.NormalizePeriod(domain.Period(r.URL.Query().Get("period")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, service.DefaultDeductions(service.AnnualIncome(gross, period)))
}

func (h *TaxHandler) Brackets(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	brackets := service.TaxBrackets()
	views := make([]bracketView, 0, len(brackets))
	for _, b := range brackets {
		v := bracketView{Label: b.Label, Lower: b.Lower, Rate: b.Rate}
		if !math.IsInf(b.Upper, 1) {
			upper := b.Upper
			v.Upper = &upper
		}
		views = append(views, v)
	}

	writeJSON(w, http.StatusOK, views)
}
