package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Simplici0/casework/internal/catalog"
	"github.com/Simplici0/casework/internal/db"
	"github.com/Simplici0/casework/internal/migrations"
	"github.com/Simplici0/casework/internal/model"
	"github.com/Simplici0/casework/internal/seed"
	"github.com/Simplici0/casework/internal/store"
)

type fixture struct {
	srv        *server
	estimateID int64
	sectionID  int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(ctx, database, seed.Config{}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	s := store.New(database)
	faceMat := int64(3)
	estimateID, err := s.CreateEstimate(ctx, 1, model.ProjectDefaults{Name: "Hill kitchen", FaceMat: &faceMat})
	if err != nil {
		t.Fatalf("create estimate: %v", err)
	}
	sectionID, err := s.CreateSection(ctx, model.Section{
		EstimateID: estimateID,
		Name:       "Island",
		AddHours:   model.ParseAddHours(map[string]any{"setup_hours": 2}),
		LineItems: []model.LineItem{
			{Category: model.CategoryBoxes, Quantity: 4, UnitCost: 100, Finish: model.FinishBox, Hours: map[int64]float64{catalog.ShopServiceID: 1}},
			{Category: model.CategoryDoors, Quantity: 6, UnitCost: 50, Finish: model.FinishDoor},
			{Category: model.CategoryHinges, Quantity: 12},
		},
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	return fixture{
		srv:        &server{store: s, log: zap.NewNop()},
		estimateID: estimateID,
		sectionID:  sectionID,
	}
}

func (f fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	f.srv.routes().ServeHTTP(rr, req)
	return rr
}

func (f fixture) sectionPath(suffix string) string {
	return fmt.Sprintf("/estimates/%d/sections/%d/%s", f.estimateID, f.sectionID, suffix)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rr := f.get(t, "/healthz")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rr.Code, rr.Body.String())
	}
}

func TestHandleEffectiveReportsSourcesAndFinish(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("estimateID", fmt.Sprint(f.estimateID))
	rctx.URLParams.Add("sectionID", fmt.Sprint(f.sectionID))
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	f.srv.handleEffective(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var body effectiveResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Resolution.Section.FaceMat != 3 {
		t.Fatalf("expected project face material 3, got %d", body.Resolution.Section.FaceMat)
	}
	if body.Resolution.Section.Sources["face_mat"] != model.SourceProject {
		t.Fatalf("expected face_mat from project, got %q", body.Resolution.Section.Sources["face_mat"])
	}
	if !body.Resolution.Context.FaceMaterial.FinishNeeded {
		t.Fatalf("expected finish to apply to project face material")
	}
	if body.Resolution.Context.BoxMaterial.FinishNeeded {
		t.Fatalf("expected prefinished box material to skip finish")
	}
}

func TestHandleBreakdownReturnsFormattedTable(t *testing.T) {
	f := newFixture(t)

	rr := f.get(t, f.sectionPath("breakdown"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var body breakdownResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	labels := make([]string, 0, len(body.Categories))
	for _, c := range body.Categories {
		labels = append(labels, c.Name)
	}
	if strings.Join(labels, ",") != "Cabinet Boxes,Doors,Hinges" {
		t.Fatalf("unexpected visible categories %v", labels)
	}
	if body.Adjustments[catalog.InstallServiceID] != 2 {
		t.Fatalf("expected setup hours on install, got %v", body.Adjustments)
	}

	rows := body.Formatted.Rows
	if len(rows) != 4 || rows[3][0] != "Labor Adjustments" {
		t.Fatalf("unexpected formatted rows %v", rows)
	}
	if !strings.HasPrefix(body.Formatted.Summary["total"], "$") {
		t.Fatalf("expected formatted total, got %q", body.Formatted.Summary["total"])
	}
}

func TestHandleBreakdownUnknownSection(t *testing.T) {
	f := newFixture(t)

	rr := f.get(t, fmt.Sprintf("/estimates/%d/sections/999/breakdown", f.estimateID))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}

	rr = f.get(t, "/estimates/abc/sections/1/breakdown")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestHandleBreakdownExports(t *testing.T) {
	f := newFixture(t)

	rr := f.get(t, f.sectionPath("breakdown.xlsx"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("unexpected content type %q", rr.Header().Get("Content-Type"))
	}
	book, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not valid Excel: %v", err)
	}
	defer book.Close()
	if title, _ := book.GetCellValue(book.GetSheetName(0), "A1"); title != "Hill kitchen / Island" {
		t.Fatalf("unexpected title %q", title)
	}

	rr = f.get(t, f.sectionPath("breakdown.pdf"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.HasPrefix(rr.Body.String(), "%PDF-") {
		t.Fatalf("response does not start with PDF header")
	}
}
