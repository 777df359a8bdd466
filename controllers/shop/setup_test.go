package shopControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

	// one connection, one in-memory database
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
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "irrelevant",
		Cart:         models.Cart{},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, ownerID, title string, price float64) models.Product {
	product := models.Product{
		ID:          uuid.NewString(),
		Title:       title,
		Price:       price,
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

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
