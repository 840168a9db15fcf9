package reportinghttp

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the report endpoints onto the router. The trend
// endpoint is rate limited per client IP since it spans a 12-month window.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Get("/reports/balance-sheet", h.handleBalanceSheet)
	r.Get("/reports/income-statement", h.handleIncomeStatement)
	r.Get("/reports/payroll", h.handlePayrollSummary)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter)
		gr.Get("/reports/monthly-comparison", h.handleMonthlyComparison)
	})
}
