package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/mazajretail/shishapos-backend/api/responses"
	"github.com/mazajretail/shishapos-backend/internal/reports"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

func SalesSummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Default window: the last 30 days.
		to := time.Now().UTC()
		from := to.AddDate(0, 0, -30)

		if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid from date"))
				return
			}
			from = parsed
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
			parsed, err := time.Parse(dateLayout, raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid to date"))
				return
			}
			// The "to" day is inclusive on the wire.
			to = parsed.AddDate(0, 0, 1)
		}

		summary, err := svc.SalesSummary(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

func StockHealth(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health, err := svc.StockHealth(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, health)
	}
}
