package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Sam-oo1/bussinBank"
	"github.com/Sam-oo1/bussinBank/date"
	"github.com/Sam-oo1/bussinBank/forecast"
	"github.com/Sam-oo1/bussinBank/renderer"
	"github.com/Sam-oo1/bussinBank/tools"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// MetricsResponse is the body of GET /metrics.
type MetricsResponse struct {
	Date                date.Date                         `json:"date"`
	NetWorth            bussinbank.Money                  `json:"net_worth"`
	LiquidCash          bussinbank.Money                  `json:"liquid_cash"`
	MonthlyBurnRate     bussinbank.Money                  `json:"monthly_burn_rate"`
	RunwayDays          bussinbank.Bound[int]             `json:"runway_days"`
	EmergencyFundMonths bussinbank.Bound[decimal.Decimal] `json:"emergency_fund_months"`
	SpendingThisMonth   bussinbank.Money                  `json:"spending_this_month"`
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, MetricsResponse{
		Date:                s.store.Today(),
		NetWorth:            s.store.NetWorth(),
		LiquidCash:          s.store.LiquidCash(),
		MonthlyBurnRate:     s.store.MonthlyBurnRate(),
		RunwayDays:          s.store.RunwayDays(),
		EmergencyFundMonths: s.store.EmergencyFundMonths(),
		SpendingThisMonth:   s.store.SpendingThisMonth(),
	})
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Report handles GET /report.html, the status report as an HTML page.
func (s *Server) Report(w http.ResponseWriter, r *http.Request) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(renderer.RenderStatus(renderer.NewStatus(s.store))), &body); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>BussinBank</title></head><body>\n%s</body></html>\n", body.Bytes())
}

// Spending handles GET /spending?month=YYYY-MM, the current month by default.
func (s *Server) Spending(w http.ResponseWriter, r *http.Request) {
	var month date.Date
	if v := r.URL.Query().Get("month"); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %q, want YYYY-MM", v))
			return
		}
		month = date.FromTime(t)
	}
	spending := s.store.MonthlySpendingByCategory(month)
	if month.IsZero() {
		month = s.store.Today()
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"month":    month.Format("2006-01"),
		"spending": nonNil(spending),
	})
}

// ListAccounts handles GET /accounts.
func (s *Server) ListAccounts(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"accounts": nonNil(s.store.Accounts())})
}

// GetAccount handles GET /accounts/{id}.
func (s *Server) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, a := range s.store.Accounts() {
		if a.ID == id {
			WriteJSON(w, http.StatusOK, a)
			return
		}
	}
	WriteError(w, http.StatusNotFound, fmt.Sprintf("account %q not found", id))
}

// OpenAccount handles POST /accounts.
func (s *Server) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var in bussinbank.AccountInput
	if !s.decode(w, r, &in) {
		return
	}
	a, err := s.store.OpenAccount(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}

// ListTransactions handles GET /transactions, optionally filtered by
// account, and limited to the most recent ones.
func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	account := q.Get("account")
	var txs []bussinbank.Transaction
	for _, tx := range s.store.Transactions() {
		if account == "" || tx.AccountID() == account {
			txs = append(txs, tx)
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		if len(txs) > limit {
			txs = txs[len(txs)-limit:]
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"transactions": nonNil(txs), "count": len(txs)})
}

// AddTransaction handles POST /transactions.
func (s *Server) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var raw bussinbank.RawTransaction
	if !s.decode(w, r, &raw) {
		return
	}
	tx, err := s.store.AddTransaction(r.Context(), raw)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tx)
}

// ListGoals handles GET /goals.
func (s *Server) ListGoals(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"goals": nonNil(s.store.Goals())})
}

// SetGoal handles POST /goals.
func (s *Server) SetGoal(w http.ResponseWriter, r *http.Request) {
	var in bussinbank.GoalInput
	if !s.decode(w, r, &in) {
		return
	}
	g, err := s.store.SetGoal(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, g)
}

// GoalSummary handles GET /goals/summary.
func (s *Server) GoalSummary(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"goals": nonNil(s.store.GoalSummary())})
}

// ForecastBalance handles GET /forecast/balance?date=YYYY-MM-DD&extra=N.
func (s *Server) ForecastBalance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	target, err := date.ParseRelative(q.Get("date"), s.store.Today())
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	extra, ok := decimalParam(w, r, "extra")
	if !ok {
		return
	}
	balance := s.forecaster.ProjectBalance(target, extra)
	WriteJSON(w, http.StatusOK, tools.Projection{
		Date:         target,
		ExtraSavings: bussinbank.M(extra, balance.Currency()),
		Balance:      balance,
	})
}

// ForecastMonthly handles GET /forecast/monthly?months=N, N at most forecast.MaxMonthsAhead.
func (s *Server) ForecastMonthly(w http.ResponseWriter, r *http.Request) {
	months := forecast.DefaultMonthsAhead
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > forecast.MaxMonthsAhead {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid months %q", v))
			return
		}
		months = n
	}
	WriteJSON(w, http.StatusOK, map[string]any{"balances": s.forecaster.ForecastMonthlyBalances(months)})
}

// ForecastGoal handles GET /forecast/goal?target=N. A null months means never.
func (s *Server) ForecastGoal(w http.ResponseWriter, r *http.Request) {
	target, ok := decimalParam(w, r, "target")
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"target": bussinbank.M(target, s.store.Currency()),
		"months": s.forecaster.MonthsUntilGoal(bussinbank.M(target, s.store.Currency())),
	})
}

// ForecastRetire handles GET /forecast/retire?annual=N&swr=R.
func (s *Server) ForecastRetire(w http.ResponseWriter, r *http.Request) {
	annual, ok := decimalParam(w, r, "annual")
	if !ok {
		return
	}
	swr := forecast.DefaultSafeWithdrawalRate
	if r.URL.Query().Has("swr") {
		if swr, ok = decimalParam(w, r, "swr"); !ok {
			return
		}
	}
	ret, err := s.forecaster.WhenCanIRetire(bussinbank.M(annual, s.store.Currency()), swr)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ret)
}

// decode reads a strict JSON body into v, or writes a 400.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// decimalParam reads an optional decimal query parameter, zero when absent.
func decimalParam(w http.ResponseWriter, r *http.Request, name string) (decimal.Decimal, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, v))
		return decimal.Zero, false
	}
	return d, true
}

// fail writes err with its status, server side errors are logged and not disclosed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		WriteError(w, status, "internal server error")
		return
	}
	WriteError(w, status, err.Error())
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
