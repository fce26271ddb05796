package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	TaxHandler    *TaxHandler
	ReportHandler *ReportHandler
	RateLimiter   *RateLimiter // guards report delivery; nil disables limiting
	TrustProxy    bool
}

func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	tax := r.PathPrefix("/tax").Subrouter()
	tax.HandleFunc("/calculate", cfg.TaxHandler.CalculateTax).Methods(http.MethodPost)
	tax.HandleFunc("/brackets", cfg.TaxHandler.Brackets).Methods(http.MethodGet)
	tax.HandleFunc("/deductions/defaults", cfg.TaxHandler.DefaultDeductions).Methods(http.MethodGet)

	var report http.Handler = http.HandlerFunc(cfg.ReportHandler.SendReport)
	if cfg.RateLimiter != nil {
		report = RateLimitMiddleware(cfg.RateLimiter, cfg.TrustProxy)(report)
	}
	tax.Handle("/report", report).Methods(http.MethodPost)

	r.HandleFunc("/stats/users", cfg.ReportHandler.UserCount).Methods(http.MethodGet)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return r
}
