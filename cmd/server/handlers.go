package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/casework/internal/breakdown"
	"github.com/Simplici0/casework/internal/estimate"
	"github.com/Simplici0/casework/internal/format"
	"github.com/Simplici0/casework/internal/quote"
	"github.com/Simplici0/casework/internal/report"
	"github.com/Simplici0/casework/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var errBadID = errors.New("invalid id")

type server struct {
	store *store.Store
	log   *zap.Logger
}

type effectiveResponse struct {
	EstimateID int64           `json:"estimate_id"`
	SectionID  int64           `json:"section_id"`
	Resolution estimate.Result `json:"resolution"`
}

type formattedTable struct {
	Headers []string          `json:"headers"`
	Rows    [][]string        `json:"rows"`
	Summary map[string]string `json:"summary"`
}

type breakdownResponse struct {
	EstimateID  int64                `json:"estimate_id"`
	SectionID   int64                `json:"section_id"`
	Categories  []breakdown.Category `json:"categories"`
	Adjustments map[int64]float64    `json:"adjustments"`
	Table       breakdown.Table      `json:"table"`
	Formatted   formattedTable       `json:"formatted"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/estimates/{estimateID}/sections/{sectionID}", func(r chi.Router) {
		r.Get("/effective", s.handleEffective)
		r.Get("/breakdown", s.handleBreakdown)
		r.Get("/breakdown.xlsx", s.handleBreakdownExcel)
		r.Get("/breakdown.pdf", s.handleBreakdownPDF)
	})
	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *server) handleEffective(w http.ResponseWriter, r *http.Request) {
	_, q, ids, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, effectiveResponse{
		EstimateID: ids.estimate,
		SectionID:  ids.section,
		Resolution: q.Resolution,
	})
}

func (s *server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	_, q, ids, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows := make([][]string, 0, len(q.Table.Rows))
	for _, row := range q.Table.Rows {
		rows = append(rows, report.Cells(q.Table, row))
	}
	sum := q.Table.Summary

	s.writeJSON(w, breakdownResponse{
		EstimateID:  ids.estimate,
		SectionID:   ids.section,
		Categories:  breakdown.Visible(q.Categories),
		Adjustments: q.Adjustments,
		Table:       q.Table,
		Formatted: formattedTable{
			Headers: report.Headers(q.Table),
			Rows:    rows,
			Summary: map[string]string{
				"parts":      format.Currency(sum.PartsTotal),
				"labor":      format.Currency(sum.LaborTotal),
				"subtotal":   format.Currency(sum.Subtotal),
				"profit":     format.Currency(sum.Profit),
				"commission": format.Currency(sum.Commission),
				"discount":   format.Currency(sum.Discount),
				"total":      format.Currency(sum.Total),
			},
		},
	})
}

func (s *server) handleBreakdownExcel(w http.ResponseWriter, r *http.Request) {
	in, q, ids, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := report.Excel(document(in, q, ids))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeFile(w, xlsxContentType, fmt.Sprintf("section-%d-breakdown.xlsx", ids.section), data)
}

func (s *server) handleBreakdownPDF(w http.ResponseWriter, r *http.Request) {
	in, q, ids, err := s.loadQuote(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := report.PDF(document(in, q, ids))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeFile(w, "application/pdf", fmt.Sprintf("section-%d-breakdown.pdf", ids.section), data)
}

type sectionIDs struct {
	estimate int64
	section  int64
}

// loadQuote reads the section's tiers and one catalog snapshot, then prices
// the section from scratch.
func (s *server) loadQuote(r *http.Request) (store.SectionInputs, quote.Quote, sectionIDs, error) {
	var ids sectionIDs
	var err error
	if ids.estimate, err = parseID(chi.URLParam(r, "estimateID")); err != nil {
		return store.SectionInputs{}, quote.Quote{}, ids, err
	}
	if ids.section, err = parseID(chi.URLParam(r, "sectionID")); err != nil {
		return store.SectionInputs{}, quote.Quote{}, ids, err
	}

	ctx := r.Context()
	in, err := s.store.SectionInputs(ctx, ids.estimate, ids.section)
	if err != nil {
		return store.SectionInputs{}, quote.Quote{}, ids, err
	}
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return store.SectionInputs{}, quote.Quote{}, ids, err
	}

	q, err := quote.Section(&in.Section, &in.Project, &in.Organization, snap)
	if err != nil {
		return store.SectionInputs{}, quote.Quote{}, ids, err
	}
	return in, q, ids, nil
}

func document(in store.SectionInputs, q quote.Quote, ids sectionIDs) report.Document {
	title := in.Section.Name
	if in.Project.Name != "" {
		title = in.Project.Name + " / " + in.Section.Name
	}
	return report.Document{
		Title:    title,
		Subtitle: fmt.Sprintf("Estimate %d, section %d", ids.estimate, ids.section),
		Table:    q.Table,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, raw)
	}
	return id, nil
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}

func (s *server) writeFile(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		s.log.Warn("write file response", zap.String("file", name), zap.Error(err))
	}
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, estimate.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
