package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/mvshop-backend/internal/config"
	"github.com/javajoker/mvshop-backend/internal/events"
	"github.com/javajoker/mvshop-backend/internal/i18n"
	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
	"github.com/javajoker/mvshop-backend/internal/repository/memory"
	"github.com/javajoker/mvshop-backend/internal/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
	Route   string          `json:"route"`
}

type APISuite struct {
	suite.Suite
	store    *repository.Store
	engine   *gin.Engine
	category *models.Category
	admin    string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize("en"))
}

func (s *APISuite) SetupTest() {
	ctx := context.Background()
	s.store = memory.NewStore()

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", Issuer: "mvshop-test", AccessTokenTTL: 1},
		RateLimit: config.RateLimitConfig{
			GeneralPerSecond: 1000, GeneralBurst: 1000,
			AuthPerSecond: 1000, AuthBurst: 1000,
		},
		I18n: config.I18nConfig{DefaultLocale: "en"},
	}
	s.engine = Initialize(Deps{
		Config:    cfg,
		Store:     s.store,
		Publisher: events.NoopPublisher{},
	})

	s.category = &models.Category{Name: "Electronics", Slug: "electronics", IsActive: true}
	s.Require().NoError(s.store.Categories.Create(ctx, s.category))

	admin := &models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	s.Require().NoError(admin.SetPassword("admin123"))
	s.Require().NoError(s.store.Accounts.CreateUser(ctx, admin))
	s.admin = s.login("admin@example.com", "admin123")
}

func (s *APISuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.serve(req, token)
}

func (s *APISuite) serve(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *APISuite) login(email, password string) string {
	w, env := s.do("POST", "/api/auth/login", "", map[string]string{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

// approvedSeller registers a vendor, approves it and returns its token.
func (s *APISuite) approvedSeller(email string) string {
	w, env := s.do("POST", "/api/seller/register", "", map[string]interface{}{
		"name": "Vendor", "email": email, "password": "secret123", "shop_name": "Shop " + email,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		Seller models.Seller `json:"seller"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &reg))

	w, _ = s.do("POST", "/api/auth/login", "", map[string]string{"email": email, "password": "secret123"})
	s.Require().Equal(http.StatusForbidden, w.Code)

	w, _ = s.do("PUT", "/api/admin/sellers/"+reg.Seller.ID.String()+"/approve", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	return s.login(email, "secret123")
}

func (s *APISuite) productBody(sku string) map[string]interface{} {
	return map[string]interface{}{
		"name":        "Wireless Mouse",
		"description": "Ergonomic wireless mouse",
		"price":       25,
		"category":    s.category.ID.String(),
		"brand":       "Logi",
		"sku":         sku,
		"stock":       20,
		"features":    "USB, Bluetooth",
	}
}

func (s *APISuite) createProduct(token, sku string) models.Product {
	w, env := s.do("POST", "/api/seller/products", token, s.productBody(sku))
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	s.Require().NoError(json.Unmarshal(env.Data, &product))
	return product
}

func (s *APISuite) customer(email string) string {
	w, env := s.do("POST", "/api/auth/register", "", map[string]string{"name": "Ann", "email": email, "password": "secret123"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

func (s *APISuite) TestHealth() {
	w, _ := s.do("GET", "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestSellerProductLifecycle() {
	seller := s.approvedSeller("vendor@example.com")
	product := s.createProduct(seller, "SKU-1")
	s.Equal([]string{"USB", "Bluetooth"}, []string(product.Features))
	s.Equal(models.PlaceholderImageURL, product.PrimaryImage())
	s.False(product.IsApproved)

	w, env := s.do("PUT", "/api/seller/products/"+product.ID.String(), seller, map[string]interface{}{"stock": 2})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated models.Product
	s.Require().NoError(json.Unmarshal(env.Data, &updated))
	s.Equal(2, updated.Stock)
	s.Equal("Wireless Mouse", updated.Name)

	w, env = s.do("GET", "/api/seller/stats", seller, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var stats struct {
		TotalProducts int `json:"total_products"`
		LowStockCount int `json:"low_stock_count"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &stats))
	s.Equal(1, stats.TotalProducts)
	s.Equal(1, stats.LowStockCount)

	w, _ = s.do("GET", "/api/seller/products/export", seller, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Disposition"), ".xlsx")

	other := s.approvedSeller("other@example.com")
	w, env = s.do("DELETE", "/api/seller/products/"+product.ID.String(), other, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.False(env.Success)
	s.Equal("NOT_FOUND", env.Code)

	w, _ = s.do("DELETE", "/api/seller/products/"+product.ID.String(), seller, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *APISuite) TestMultipartCreate() {
	seller := s.approvedSeller("forms@example.com")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range map[string]string{
		"name":           "Desk Lamp",
		"description":    "LED desk lamp",
		"price":          "39.90",
		"category":       s.category.ID.String(),
		"brand":          "Brite",
		"sku":            "LAMP-1",
		"stock":          "5",
		"features":       `["Dimmable","USB"]`,
		"specifications": `[{"key":"Power","value":"8W"}]`,
	} {
		s.Require().NoError(mw.WriteField(k, v))
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest("POST", "/api/seller/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w, env := s.serve(req, seller)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	s.Require().NoError(json.Unmarshal(env.Data, &product))
	s.InDelta(39.90, product.Price, 1e-9)
	s.Equal([]string{"Dimmable", "USB"}, []string(product.Features))
	s.Require().Len(product.Specifications, 1)
	s.Equal("8W", product.Specifications[0].Value)
}

func (s *APISuite) TestReviewsAndModeration() {
	seller := s.approvedSeller("reviews@example.com")
	product := s.createProduct(seller, "SKU-REV")
	path := "/api/products/" + product.ID.String()

	w, _ := s.do("POST", path+"/reviews", "", map[string]interface{}{"rating": 5, "comment": "Great"})
	s.Equal(http.StatusUnauthorized, w.Code)

	ann := s.customer("ann@example.com")
	w, _ = s.do("POST", path+"/reviews", ann, map[string]interface{}{"rating": 5, "comment": "Great"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do("POST", path+"/reviews", ann, map[string]interface{}{"rating": 4, "comment": "Again"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("DUPLICATE_REVIEW", env.Code)

	bob := s.customer("bob@example.com")
	w, env = s.do("POST", path+"/reviews", bob, map[string]interface{}{"rating": 9, "comment": "Wow"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("VALIDATION_ERROR", env.Code)

	w, _ = s.do("POST", path+"/reviews", bob, map[string]interface{}{"rating": 3, "comment": "Fine"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w, env = s.do("GET", path, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got struct {
		Ratings       float64 `json:"ratings"`
		NumReviews    int     `json:"num_reviews"`
		AverageRating float64 `json:"average_rating"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.InDelta(4.0, got.Ratings, 1e-9)
	s.Equal(2, got.NumReviews)
	s.InDelta(4.0, got.AverageRating, 1e-9)

	w, _ = s.do("PATCH", path+"/reviews", bob, map[string]interface{}{"comment": "Actually good"})
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do("DELETE", path+"/reviews", bob, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do("GET", "/api/seller/reviews", seller, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do("PUT", path+"/approve", ann, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, env = s.do("PUT", path+"/approve", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var approved models.Product
	s.Require().NoError(json.Unmarshal(env.Data, &approved))
	s.True(approved.IsApproved)

	w, env = s.do("PUT", path+"/reject", s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var rejected models.Product
	s.Require().NoError(json.Unmarshal(env.Data, &rejected))
	s.Equal(models.DefaultRejectionReason, rejected.RejectionReason)
}

func (s *APISuite) TestPublicCatalog() {
	seller := s.approvedSeller("catalog@example.com")
	s.createProduct(seller, "SKU-CAT")

	w, _ := s.do("GET", "/api/products", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("1", w.Header().Get("X-Total-Count"))

	w, _ = s.do("GET", "/api/products/category/"+s.category.ID.String(), "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do("GET", "/api/products/not-a-uuid", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("/api/products/not-a-uuid", env.Route)

	w, _ = s.do("GET", "/api/products/search", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	w, _ = s.do("GET", "/api/categories", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do("POST", "/api/categories", "", map[string]string{"name": "Books"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do("POST", "/api/categories", s.admin, map[string]string{"name": "Books"})
	s.Equal(http.StatusCreated, w.Code)
}

func TestUnapprovedSellerCannotManageProducts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	cfg := &config.Config{
		JWT:       config.JWTConfig{SecretKey: "k", Issuer: "t", AccessTokenTTL: 1},
		RateLimit: config.RateLimitConfig{GeneralPerSecond: 100, GeneralBurst: 100, AuthPerSecond: 100, AuthBurst: 100},
	}
	engine := Initialize(Deps{Config: cfg, Store: store})

	user := &models.User{Name: "Pending", Email: "pending@example.com", Role: models.RoleSeller}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, store.Accounts.CreateSellerAccount(context.Background(), user, &models.Seller{ShopName: "Pending", Email: user.Email}))

	// A token issued before approval still cannot pass the seller gate.
	token, err := newTestJWT(cfg).Generate(user.ID, user.Name, string(user.Role))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/seller/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func newTestJWT(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
}
