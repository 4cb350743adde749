package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercatura/catalog-api/internal/core/domain"
	"github.com/mercatura/catalog-api/internal/core/ports"
)

type stubProductService struct {
	listFn        func(ctx context.Context) ([]domain.Product, error)
	getFn         func(ctx context.Context, id string) (*domain.Product, error)
	createFn      func(ctx context.Context, in ports.ProductInput) (*domain.Product, error)
	updateFn      func(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error)
	patchFn       func(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error)
	updateStockFn func(ctx context.Context, id string, stock int) (*domain.Product, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (s *stubProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.listFn(ctx)
}

func (s *stubProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProductService) Patch(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	return s.patchFn(ctx, id, patch)
}

func (s *stubProductService) UpdateStock(ctx context.Context, id string, stock int) (*domain.Product, error) {
	return s.updateStockFn(ctx, id, stock)
}

func (s *stubProductService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestProductHandler_Create(t *testing.T) {
	svc := &stubProductService{
		createFn: func(_ context.Context, in ports.ProductInput) (*domain.Product, error) {
			p := domain.Product{
				ID:         "p1",
				Name:       in.Name,
				Price:      in.Price,
				Stock:      in.Stock,
				CategoryID: in.CategoryID,
			}
			return &p, nil
		},
	}
	h := NewProductHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/products",
		`{"name":"Cola","price":1.5,"stock":10,"category_id":"cat1"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if p.ID != "p1" || p.Price != 1.5 || p.Stock != 10 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestProductHandler_Create_BadPayload(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	for _, body := range []string{
		`{"price":1.5,"stock":10,"category_id":"cat1"}`,
		`{"name":"Cola","price":-1,"stock":10,"category_id":"cat1"}`,
		`{"name":"Cola","price":1.5,"stock":-1,"category_id":"cat1"}`,
		`{"name":"Cola","price":1.5,"stock":10}`,
		`not json`,
	} {
		c, rec := newJSONContext(http.MethodPost, "/products", body)
		if err := h.Create(c); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestProductHandler_Get_PropagatesNotFound(t *testing.T) {
	svc := &stubProductService{
		getFn: func(_ context.Context, _ string) (*domain.Product, error) {
			return nil, domain.ErrProductNotFound
		},
	}
	h := NewProductHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products/p404", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/:id")
	c.SetParamNames("id")
	c.SetParamValues("p404")

	if err := h.Get(c); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound to reach the error handler, got %v", err)
	}
}

func TestProductHandler_UpdateStock(t *testing.T) {
	var gotID string
	var gotStock int
	svc := &stubProductService{
		updateStockFn: func(_ context.Context, id string, stock int) (*domain.Product, error) {
			gotID, gotStock = id, stock
			return &domain.Product{ID: id, Stock: stock}, nil
		},
	}
	h := NewProductHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/products/p1/stock?stock=7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/products/:id/stock")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.UpdateStock(c); err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != "p1" || gotStock != 7 {
		t.Fatalf("service called with id=%q stock=%d", gotID, gotStock)
	}
}

func TestProductHandler_UpdateStock_BadQuery(t *testing.T) {
	h := NewProductHandler(&stubProductService{})

	for _, query := range []string{"", "stock=", "stock=abc", "stock=1.5"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodPatch, "/products/p1/stock?"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/products/:id/stock")
		c.SetParamNames("id")
		c.SetParamValues("p1")

		if err := h.UpdateStock(c); err != nil {
			t.Fatalf("UpdateStock returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestProductHandler_Update_CategoryOptional(t *testing.T) {
	var got ports.ProductInput
	svc := &stubProductService{
		updateFn: func(_ context.Context, _ string, in ports.ProductInput) (*domain.Product, error) {
			got = in
			return &domain.Product{ID: "p1"}, nil
		},
	}
	h := NewProductHandler(svc)

	// Omitting category_id keeps the stored reference; the body is still a
	// valid update.
	c, rec := newJSONContext(http.MethodPut, "/products/p1",
		`{"name":"Cola","price":2.0,"stock":5}`)
	c.SetPath("/products/:id")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.CategoryID != "" {
		t.Fatalf("omitted category must reach the service empty, got %q", got.CategoryID)
	}
	if got.Name != "Cola" || got.Price != 2.0 || got.Stock != 5 {
		t.Fatalf("unexpected input forwarded: %+v", got)
	}
}

func TestProductHandler_Patch_ForwardsOnlyPresentFields(t *testing.T) {
	var got ports.ProductPatch
	svc := &stubProductService{
		patchFn: func(_ context.Context, _ string, patch ports.ProductPatch) (*domain.Product, error) {
			got = patch
			return &domain.Product{ID: "p1"}, nil
		},
	}
	h := NewProductHandler(svc)

	c, rec := newJSONContext(http.MethodPatch, "/products/p1", `{"price":2.5}`)
	c.SetPath("/products/:id")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Patch(c); err != nil {
		t.Fatalf("Patch returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Price == nil || *got.Price != 2.5 {
		t.Fatalf("price not forwarded: %+v", got)
	}
	if got.Name != nil || got.Stock != nil || got.CategoryID != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}
}
