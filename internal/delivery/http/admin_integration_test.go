package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/cafeassist/backend/internal/domain"
	"github.com/cafeassist/backend/internal/infrastructure/cache"
	"github.com/cafeassist/backend/internal/infrastructure/catalog"
	"github.com/cafeassist/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "test-admin-key"

// setupStoreRouter wires every service against an in-memory sqlite catalog
func setupStoreRouter(t *testing.T, adminKey string) (*gin.Engine, *catalog.Store) {
	t.Helper()
	ctx := context.Background()

	store, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(ctx))

	_, err = catalog.Seed(ctx, store, testCatalog())
	require.NoError(t, err)

	extractor := usecase.NewIntentExtractor(nil, usecase.IntentExtractorConfig{})
	assistant := usecase.NewAssistantService(store, cache.NewMemoryCache(0, 0), extractor, usecase.AssistantServiceConfig{})
	handler := NewHandler(assistant, usecase.NewCatalogService(store, assistant), usecase.NewNotificationService(store))

	cfg := testConfig()
	cfg.Admin.Key = adminKey
	return SetupRouter(cfg, handler), store
}

func doJSON(router *gin.Engine, method, path, payload, adminKey string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set(AdminKeyHeader, adminKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestGetProductEndpoint tests fetching a single product
func TestGetProductEndpoint(t *testing.T) {
	router, _ := setupStoreRouter(t, testAdminKey)

	t.Run("returns the product", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/products/3", "", "")

		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Product domain.Product `json:"product"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Green Tea", response.Product.Name)
		assert.Contains(t, response.Product.Labels, "Vegan")
	})

	t.Run("returns 404 for unknown product", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/products/999", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for non-numeric id", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/products/latte", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestAdminAuth tests the admin key check
func TestAdminAuth(t *testing.T) {
	t.Run("rejects missing and wrong keys", func(t *testing.T) {
		router, _ := setupStoreRouter(t, testAdminKey)

		assert.Equal(t, http.StatusForbidden, doJSON(router, "GET", "/api/v1/admin/labels", "", "").Code)
		assert.Equal(t, http.StatusForbidden, doJSON(router, "GET", "/api/v1/admin/labels", "", "wrong").Code)
		assert.Equal(t, http.StatusOK, doJSON(router, "GET", "/api/v1/admin/labels", "", testAdminKey).Code)
	})

	t.Run("empty configured key disables the admin API", func(t *testing.T) {
		router, _ := setupStoreRouter(t, "")

		w := doJSON(router, "POST", "/api/v1/admin/products", `{"name":"Latte"}`, "anything")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "disabled")
	})
}

// TestAdminProductEndpoints tests product writes and that recommendations see them
func TestAdminProductEndpoints(t *testing.T) {
	t.Run("created product is recommended", func(t *testing.T) {
		router, _ := setupStoreRouter(t, testAdminKey)

		// warm the catalog snapshot
		w := postAssistant(router, `{"message":"vegan matcha"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Green Tea"}, productNames(decodeAssistant(t, w).Recommendations))

		w = doJSON(router, "POST", "/api/v1/admin/products",
			`{"name":"Matcha Latte","price":65,"category":"Tea","labels":["Tea","Vegan"]}`, testAdminKey)
		require.Equal(t, http.StatusCreated, w.Code)

		w = postAssistant(router, `{"message":"vegan matcha"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Green Tea", "Matcha Latte"}, productNames(decodeAssistant(t, w).Recommendations))
	})

	t.Run("update replaces labels and refreshes recommendations", func(t *testing.T) {
		router, store := setupStoreRouter(t, testAdminKey)

		w := postAssistant(router, `{"message":"vegan coffee"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Americano"}, productNames(decodeAssistant(t, w).Recommendations))

		w = doJSON(router, "PUT", "/api/v1/admin/products/2",
			`{"name":"Oat Latte","price":60,"category":"Coffee","labels":["Coffee","Vegan"]}`, testAdminKey)
		require.Equal(t, http.StatusOK, w.Code)

		p, err := store.GetProduct(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Coffee", "Vegan"}, p.Labels)

		w = postAssistant(router, `{"message":"vegan coffee"}`)
		assert.Equal(t, []string{"Americano", "Oat Latte"}, productNames(decodeAssistant(t, w).Recommendations))
	})

	t.Run("delete removes product from listing", func(t *testing.T) {
		router, _ := setupStoreRouter(t, testAdminKey)

		require.Equal(t, http.StatusOK, doJSON(router, "GET", "/api/v1/products", "", "").Code)

		w := doJSON(router, "DELETE", "/api/v1/admin/products/1", "", testAdminKey)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(router, "GET", "/api/v1/products", "", "")
		var response struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 6, response.Count)

		assert.Equal(t, http.StatusNotFound, doJSON(router, "GET", "/api/v1/products/1", "", "").Code)
	})

	t.Run("write errors map to status codes", func(t *testing.T) {
		router, _ := setupStoreRouter(t, testAdminKey)

		tests := []struct {
			name     string
			method   string
			path     string
			payload  string
			wantCode int
		}{
			{"update unknown product", "PUT", "/api/v1/admin/products/999", `{"name":"Ghost"}`, http.StatusNotFound},
			{"delete unknown product", "DELETE", "/api/v1/admin/products/999", "", http.StatusNotFound},
			{"create without name", "POST", "/api/v1/admin/products", `{"price":10}`, http.StatusBadRequest},
			{"create with blank name", "POST", "/api/v1/admin/products", `{"name":"  "}`, http.StatusBadRequest},
			{"create with negative price", "POST", "/api/v1/admin/products", `{"name":"Latte","price":-5}`, http.StatusBadRequest},
			{"create with invalid JSON", "POST", "/api/v1/admin/products", `{"name":`, http.StatusBadRequest},
			{"update with bad id", "PUT", "/api/v1/admin/products/abc", `{"name":"Latte"}`, http.StatusBadRequest},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := doJSON(router, tt.method, tt.path, tt.payload, testAdminKey)
				assert.Equal(t, tt.wantCode, w.Code)
			})
		}
	})
}

// TestAdminLabelEndpoints tests label registration
func TestAdminLabelEndpoints(t *testing.T) {
	router, _ := setupStoreRouter(t, testAdminKey)

	w := doJSON(router, "POST", "/api/v1/admin/labels", `{"name":"Gluten Free"}`, testAdminKey)
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/api/v1/admin/labels", `{"name":""}`, testAdminKey).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/api/v1/admin/labels", `{"name":"   "}`, testAdminKey).Code)

	w = doJSON(router, "GET", "/api/v1/admin/labels", "", testAdminKey)
	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Labels []string `json:"labels"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Labels, "Gluten Free")
	assert.Contains(t, response.Labels, "Vegan")
}

// TestContactAndNotifications tests the contact form and admin resolve flow
func TestContactAndNotifications(t *testing.T) {
	router, _ := setupStoreRouter(t, testAdminKey)

	w := doJSON(router, "POST", "/api/v1/contact",
		`{"fullName":"Ayşe Yılmaz","email":"ayse@example.com","category":"feedback","message":"Lovely çay"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	t.Run("rejects invalid submissions", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/api/v1/contact",
			`{"fullName":"Sam","email":"not-an-email","message":"hi"}`, "").Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/api/v1/contact",
			`{"fullName":"Sam","email":"sam@example.com"}`, "").Code)
		assert.Equal(t, http.StatusBadRequest, doJSON(router, "POST", "/api/v1/contact",
			`{"fullName":"Sam","email":"sam@example.com","message":"   "}`, "").Code)
	})

	t.Run("listing requires the admin key", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, doJSON(router, "GET", "/api/v1/admin/notifications", "", "").Code)
	})

	t.Run("admin lists and resolves", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/admin/notifications", "", testAdminKey)
		require.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Notifications []domain.Notification `json:"notifications"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Notifications, 1)
		assert.Equal(t, "Ayşe Yılmaz", response.Notifications[0].FullName)
		assert.Equal(t, "Lovely çay", response.Notifications[0].Message)

		path := "/api/v1/admin/notifications/" + strconv.FormatInt(created.ID, 10)
		assert.Equal(t, http.StatusNoContent, doJSON(router, "DELETE", path, "", testAdminKey).Code)
		assert.Equal(t, http.StatusNotFound, doJSON(router, "DELETE", path, "", testAdminKey).Code)

		w = doJSON(router, "GET", "/api/v1/admin/notifications", "", testAdminKey)
		assert.Contains(t, w.Body.String(), `"notifications":[]`)
	})
}
