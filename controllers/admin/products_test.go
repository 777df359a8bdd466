package adminControllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/perikliev00/api-shop/auth"
	"github.com/perikliev00/api-shop/mailer"
	"github.com/perikliev00/api-shop/models"
	"github.com/perikliev00/api-shop/routes"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Cart{},
		&models.CartItem{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.SetupRoutes(r, db, mailer.Noop{})
	return r
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	user := models.User{ID: uuid.NewString(), Email: email, PasswordHash: "irrelevant", Cart: models.Cart{}}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, ownerID, title string) models.Product {
	product := models.Product{
		ID:          uuid.NewString(),
		Title:       title,
		Price:       10.00,
		Description: "test product description",
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func loginToken(t *testing.T, user models.User) string {
	token, err := auth.IssueToken(user.ID, user.Email)
	require.NoError(t, err)
	return token
}

func doForm(t *testing.T, r *gin.Engine, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProductOwnedByCaller(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	seller := createUser(t, db, "seller@example.com")
	token := loginToken(t, seller)

	w := doForm(t, r, http.MethodPost, "/admin/add-product", token, url.Values{
		"title":       {"Desk lamp"},
		"price":       {"25.50"},
		"description": {"A perfectly fine lamp"},
		"imageUrl":    {"/uploads/lamp.png"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var product models.Product
	require.NoError(t, db.Where("title = ?", "Desk lamp").First(&product).Error)
	assert.Equal(t, seller.ID, product.UserID)
	assert.Equal(t, 25.50, product.Price)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	seller := createUser(t, db, "seller@example.com")
	token := loginToken(t, seller)

	cases := []struct {
		name string
		form url.Values
	}{
		{"short title", url.Values{"title": {"ab"}, "price": {"10"}, "description": {"long enough"}}},
		{"bad price", url.Values{"title": {"Lamp"}, "price": {"cheap"}, "description": {"long enough"}}},
		{"short description", url.Values{"title": {"Lamp"}, "price": {"10"}, "description": {"tiny"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doForm(t, r, http.MethodPost, "/admin/add-product", token, tc.form)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAdminProductsScopedToOwner(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	createProduct(t, db, alice.ID, "Alice product")
	createProduct(t, db, bob.ID, "Bob product")

	w := doForm(t, r, http.MethodGet, "/admin/products", loginToken(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice product")
	assert.NotContains(t, w.Body.String(), "Bob product")
}

func TestUpdateProductForbiddenForNonOwner(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	product := createProduct(t, db, alice.ID, "Alice product")

	w := doForm(t, r, http.MethodPost, "/admin/edit-product", loginToken(t, bob), url.Values{
		"productId":   {product.ID},
		"title":       {"Hijacked"},
		"price":       {"1"},
		"description": {"should not happen"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, "Alice product", stored.Title)
}

func TestUpdateProduct(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, alice.ID, "Old title")

	w := doForm(t, r, http.MethodPost, "/admin/edit-product", loginToken(t, alice), url.Values{
		"productId":   {product.ID},
		"title":       {"New title"},
		"price":       {"12.34"},
		"description": {"updated description"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, "New title", stored.Title)
	assert.Equal(t, 12.34, stored.Price)
}

func TestDeleteProductByNonOwnerLooksAbsent(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	product := createProduct(t, db, alice.ID, "Alice product")

	w := doForm(t, r, http.MethodDelete, "/admin/product/"+product.ID, loginToken(t, bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProduct(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice@example.com")
	product := createProduct(t, db, alice.ID, "Alice product")

	w := doForm(t, r, http.MethodDelete, "/admin/product/"+product.ID, loginToken(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExportProductsDownload(t *testing.T) {
	db := setupDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice@example.com")
	createProduct(t, db, alice.ID, "Exported product")

	w := doForm(t, r, http.MethodGet, "/admin/products/export", loginToken(t, alice), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=products.xlsx", w.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, w.Body.Bytes())
}
