package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mazajretail/shishapos-backend/api/responses"
	"github.com/mazajretail/shishapos-backend/api/validators"
	"github.com/mazajretail/shishapos-backend/internal/ledger"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

func ListLedger(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

func RecordLedgerEntry(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ledger.EntryInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.Record(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

func SettleLedgerEntry(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entry, err := svc.Settle(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entry)
	}
}

func OutstandingBalances(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balances, err := svc.Outstanding(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, balances)
	}
}

func DueSoon(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		within := 7 * 24 * time.Hour
		if raw := strings.TrimSpace(r.URL.Query().Get("days")); raw != "" {
			days, err := strconv.Atoi(raw)
			if err != nil || days <= 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "days must be a positive integer"))
				return
			}
			within = time.Duration(days) * 24 * time.Hour
		}
		entries, err := svc.DueSoon(r.Context(), within)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
