package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/product_catalog_app/internal/apperrors"
	"github.com/SscSPs/product_catalog_app/internal/core/domain"
	portssvc "github.com/SscSPs/product_catalog_app/internal/core/ports/services"
	"github.com/SscSPs/product_catalog_app/internal/dto"
	"github.com/SscSPs/product_catalog_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type featuredEnvelope struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	Error   string            `json:"error"`
}

type ProductHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProductService *MockProductService
}

func (suite *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockProductService = new(MockProductService)

	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Category: new(MockCategoryService),
		Product:  suite.mockProductService,
	})
}

func (suite *ProductHandlerTestSuite) serve(method, url, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProductHandlerTestSuite) decodeEnvelope(w *httptest.ResponseRecorder) featuredEnvelope {
	var env featuredEnvelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (suite *ProductHandlerTestSuite) TestFeatured_WithoutCurrency() {
	products := []domain.Product{
		{ProductID: 1, Name: "A", Price: decimal.NewFromInt(100), Currency: "USD", Featured: true, CategoryName: "Books"},
	}
	suite.mockProductService.On("GetFeaturedProducts", mock.Anything).Return(products, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/products/featured", "")

	suite.Equal(http.StatusOK, w.Code)
	env := suite.decodeEnvelope(w)
	suite.True(env.Success)
	suite.Len(env.Data, 1)
	suite.mockProductService.AssertNotCalled(suite.T(), "GetFeaturedProductsInCurrency", mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestFeatured_CurrencyFromQueryAndPath() {
	items := []domain.ConvertedItem{
		{ID: 1, Name: "A", Price: 100, Currency: "USD", CategoryName: "Books"},
		{ID: 2, Name: "B", Price: 60, Currency: "EUR", CategoryName: "Games"},
	}
	suite.mockProductService.On("GetFeaturedProductsInCurrency", mock.Anything, "USD").Return(items, nil).Twice()

	for _, url := range []string{"/api/v1/products/featured?currency=USD", "/api/v1/products/featured/USD"} {
		w := suite.serve(http.MethodGet, url, "")

		suite.Equal(http.StatusOK, w.Code, url)
		env := suite.decodeEnvelope(w)
		suite.True(env.Success)
		suite.Require().Len(env.Data, 2)

		var second map[string]any
		suite.Require().NoError(json.Unmarshal(env.Data[1], &second))
		suite.Equal(float64(2), second["id"])
		suite.Equal(60.0, second["price"])
		suite.Equal("EUR", second["currency"])
		suite.Equal("Games", second["category"])
	}
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestFeatured_ErrorMapping() {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: bad code", apperrors.ErrInvalidInput), http.StatusBadRequest},
		{apperrors.ErrMissingRate, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", apperrors.ErrNetwork), http.StatusBadGateway},
		{apperrors.ErrParse, http.StatusBadGateway},
		{apperrors.ErrNotFound, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		suite.SetupTest()
		suite.mockProductService.On("GetFeaturedProductsInCurrency", mock.Anything, "GBP").Return(nil, tt.err).Once()

		w := suite.serve(http.MethodGet, "/api/v1/products/featured/GBP", "")

		suite.Equal(tt.status, w.Code, tt.err.Error())
		env := suite.decodeEnvelope(w)
		suite.False(env.Success)
		suite.NotEmpty(env.Error)
	}
}

func (suite *ProductHandlerTestSuite) TestListProducts_WithFilters() {
	suite.mockProductService.On("ListProducts", mock.Anything, mock.MatchedBy(func(p dto.ListProductsParams) bool {
		return p.CategoryID != nil && *p.CategoryID == 3 && p.Featured != nil && !*p.Featured && p.Limit == 10 && p.Offset == 0
	})).Return([]domain.Product{{ProductID: 9, Name: "X", CategoryID: 3}}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/products?category_id=3&featured=false&limit=10", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListProductsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Products, 1)
	suite.Equal(int64(9), resp.Products[0].ProductID)
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestListProducts_DefaultLimit() {
	suite.mockProductService.On("ListProducts", mock.Anything, mock.MatchedBy(func(p dto.ListProductsParams) bool {
		return p.Limit == 50 && p.CategoryID == nil && p.Featured == nil
	})).Return([]domain.Product{}, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/products", "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"products":[]}`, w.Body.String())
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_Success() {
	created := &domain.Product{ProductID: 4, Name: "Chess", Price: decimal.RequireFromString("19.99"), Currency: "EUR", CategoryID: 2, CategoryName: "Games"}
	suite.mockProductService.On("CreateProduct", mock.Anything, mock.MatchedBy(func(r dto.CreateProductRequest) bool {
		return r.Name == "Chess" && r.Price != nil && r.Price.Equal(decimal.RequireFromString("19.99")) && r.CategoryID == 2
	})).Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/products", `{"name":"Chess","currency":"EUR","price":19.99,"categoryID":2}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(float64(4), resp["productID"])
	suite.Equal("Games", resp["categoryName"])
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_ValidationDetails() {
	w := suite.serve(http.MethodPost, "/api/v1/products", `{"currency":"EURO"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	fields := make([]string, 0, len(resp.Details))
	for _, d := range resp.Details {
		fields = append(fields, d.Field)
		suite.NotEmpty(d.Message)
	}
	suite.ElementsMatch([]string{"name", "currency", "price", "categoryID"}, fields)
	suite.mockProductService.AssertNotCalled(suite.T(), "CreateProduct", mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_MalformedJSON() {
	w := suite.serve(http.MethodPost, "/api/v1/products", `{"name":`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ProductHandlerTestSuite) TestCreateProduct_UnknownCategory() {
	suite.mockProductService.On("CreateProduct", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("category 77 does not exist")).Once()

	w := suite.serve(http.MethodPost, "/api/v1/products", `{"name":"X","currency":"USD","price":"1.00","categoryID":77}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"category 77 does not exist"}`, w.Body.String())
}

func (suite *ProductHandlerTestSuite) TestGetProduct_NotFound() {
	suite.mockProductService.On("GetProductByID", mock.Anything, int64(12)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/products/12", "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ProductHandlerTestSuite) TestGetProduct_InvalidID() {
	w := suite.serve(http.MethodGet, "/api/v1/products/abc", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProductService.AssertNotCalled(suite.T(), "GetProductByID", mock.Anything, mock.Anything)
}

func (suite *ProductHandlerTestSuite) TestUpdateProduct_PostAlias() {
	updated := &domain.Product{ProductID: 5, Name: "Renamed"}
	suite.mockProductService.On("UpdateProduct", mock.Anything, int64(5), mock.MatchedBy(func(r dto.UpdateProductRequest) bool {
		return r.Name != nil && *r.Name == "Renamed" && r.Price == nil
	})).Return(updated, nil).Twice()

	for _, method := range []string{http.MethodPut, http.MethodPost} {
		w := suite.serve(method, "/api/v1/products/5", `{"name":"Renamed"}`)
		suite.Equal(http.StatusOK, w.Code, method)
	}
	suite.mockProductService.AssertExpectations(suite.T())
}

func (suite *ProductHandlerTestSuite) TestDeleteProduct_ReturnsDeleted() {
	suite.mockProductService.On("DeleteProduct", mock.Anything, int64(6)).Return(&domain.Product{ProductID: 6, Name: "Gone"}, nil).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/products/6", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Gone", resp["name"])
}

func TestProductHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}
