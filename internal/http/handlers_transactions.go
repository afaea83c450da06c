package http

import (
	"errors"
	"net/http"
	"time"

	"finpro/internal/core"
	applog "finpro/internal/log"
	"finpro/internal/services"
)

type createTransactionRequest struct {
	Date        string `json:"date"`   // YYYY-MM-DD
	Amount      string `json:"amount"` // "50000" or "1.000.000"
	Type        string `json:"type"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type summaryResponse struct {
	Period           string           `json:"period"`
	PeriodLabel      string           `json:"period_label"`
	Income           core.Money       `json:"income"`
	Expense          core.Money       `json:"expense"`
	Balance          core.Money       `json:"balance"`
	Count            int              `json:"count"`
	AvgDailyExpense  core.Money       `json:"avg_daily_expense"`
	BalanceFormatted string           `json:"balance_formatted"`
	ByCategory       []categoryBucket `json:"by_category"`
}

type categoryBucket struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
}

type dailyGroupResponse struct {
	Date         string             `json:"date"` // YYYY-MM-DD
	Net          core.Money         `json:"net"`
	NetFormatted string             `json:"net_formatted"`
	Transactions []core.Transaction `json:"transactions"`
}

type historyResponse struct {
	Period string               `json:"period,omitempty"`
	Days   []dailyGroupResponse `json:"days"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	units, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	tx, err := s.finance.AddTransaction(r.Context(), user.Key(), services.NewTransactionInput{
		Date:        date,
		Amount:      core.Money{Units: units},
		Type:        core.TransactionType(req.Type),
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnknownType),
			errors.Is(err, core.ErrUnknownCategory),
			errors.Is(err, core.ErrEmptyCategory),
			errors.Is(err, core.ErrInvalidAmount),
			errors.Is(err, core.ErrInvalidDate):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			applog.FromContext(r.Context()).ErrorContext(r.Context(), "Transaction create failed",
				applog.FieldOperation, applog.OpCreate,
				applog.FieldUser, user.Key(),
				applog.FieldError, err.Error())
			writeError(w, http.StatusInternalServerError, "could not record transaction")
		}
		return
	}

	// A write changes every cached summary for the user.
	s.summaries.InvalidateUser(user.Key())

	logs := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	logs.LogTransactionRecorded(r.Context(), user.Key(), tx.ID, tx.Amount.Units, string(tx.Type), tx.Category)

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	period, err := parsePeriodParam(r, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	if cached, found := s.summaries.Get(user.Key(), period.String()); found {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary, err := s.finance.MonthSummary(r.Context(), user.Key(), period)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Summary failed",
			applog.FieldOperation, applog.OpSummarize,
			applog.FieldUser, user.Key(),
			applog.FieldPeriod, period.String(),
			applog.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not compute summary")
		return
	}

	resp := summaryResponse{
		Period:           period.String(),
		PeriodLabel:      period.Label(),
		Income:           summary.Income,
		Expense:          summary.Expense,
		Balance:          summary.Balance,
		Count:            summary.Count,
		AvgDailyExpense:  summary.AverageDailyExpense(s.finance.AvgDailyDivisor()),
		BalanceFormatted: core.FormatRupiah(summary.Balance),
		ByCategory:       make([]categoryBucket, 0, len(summary.ByCategory)),
	}
	for _, ca := range summary.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryBucket{Name: ca.Name, Amount: ca.Amount})
	}

	s.summaries.Set(user.Key(), period.String(), resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	// An absent period means the full history; "period=2024-05" narrows it.
	var period *core.Period
	if v := r.URL.Query().Get("period"); v != "" {
		p, err := core.ParsePeriod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
			return
		}
		period = &p
	}

	groups, err := s.finance.History(r.Context(), user.Key(), period)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "History failed",
			applog.FieldOperation, applog.OpGroup,
			applog.FieldUser, user.Key(),
			applog.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	resp := historyResponse{Days: make([]dailyGroupResponse, 0, len(groups))}
	if period != nil {
		resp.Period = period.String()
	}
	for _, g := range groups {
		resp.Days = append(resp.Days, dailyGroupResponse{
			Date:         g.Date.Format("2006-01-02"),
			Net:          g.Net,
			NetFormatted: core.FormatRupiah(g.Net),
			Transactions: g.Transactions,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	vocab := s.finance.Vocabulary()
	writeJSON(w, http.StatusOK, map[string][]string{
		"income":  vocab.For(core.TypeIncome),
		"expense": vocab.For(core.TypeExpense),
	})
}
