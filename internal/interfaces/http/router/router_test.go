package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func textHandler(status int, body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(status, body)
	}
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Register(NewDomainGroup("catalog", "/catalog"))

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("catalog", "/catalog")
	group.GET("/ping", textHandler(http.StatusOK, "pong"))

	r.Register(group)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/catalog/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Catalog-Channel", "web")
		c.Next()
	})

	group := NewDomainGroup("catalog", "/catalog")
	group.GET("/products", textHandler(http.StatusOK, "products"))

	r.Register(group).Setup()

	w := serve(engine, "GET", "/api/v1/catalog/products")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "web", w.Header().Get("X-Catalog-Channel"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	methods := []struct {
		name     string
		register func(g *DomainGroup, h gin.HandlerFunc)
		method   string
		path     string
		status   int
	}{
		{
			name:     "registers GET route",
			register: func(g *DomainGroup, h gin.HandlerFunc) { g.GET("/products", h) },
			method:   "GET",
			path:     "/api/v1/catalog/products",
			status:   http.StatusOK,
		},
		{
			name:     "registers POST route",
			register: func(g *DomainGroup, h gin.HandlerFunc) { g.POST("/products", h) },
			method:   "POST",
			path:     "/api/v1/catalog/products",
			status:   http.StatusCreated,
		},
		{
			name:     "registers PUT route",
			register: func(g *DomainGroup, h gin.HandlerFunc) { g.PUT("/products/:id", h) },
			method:   "PUT",
			path:     "/api/v1/catalog/products/123",
			status:   http.StatusOK,
		},
		{
			name:     "registers PATCH route",
			register: func(g *DomainGroup, h gin.HandlerFunc) { g.PATCH("/products/:id", h) },
			method:   "PATCH",
			path:     "/api/v1/catalog/products/123",
			status:   http.StatusOK,
		},
		{
			name:     "registers DELETE route",
			register: func(g *DomainGroup, h gin.HandlerFunc) { g.DELETE("/products/:id", h) },
			method:   "DELETE",
			path:     "/api/v1/catalog/products/123",
			status:   http.StatusNoContent,
		},
	}

	for _, tt := range methods {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			g := NewDomainGroup("catalog", "/catalog")
			tt.register(g, textHandler(tt.status, ""))

			api := engine.Group("/api/v1")
			g.RegisterRoutes(api)

			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")

		g.Use(func(c *gin.Context) {
			c.Header("X-Catalog-Group", "applied")
			c.Next()
		})
		g.GET("/products", textHandler(http.StatusOK, "ok"))

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		w := serve(engine, "GET", "/api/v1/catalog/products")
		assert.Equal(t, "applied", w.Header().Get("X-Catalog-Group"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")

		products := g.Group("products", "/products")
		products.GET("", textHandler(http.StatusOK, "products list"))

		categories := g.Group("categories", "/categories")
		categories.GET("", textHandler(http.StatusOK, "categories list"))

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		w := serve(engine, "GET", "/api/v1/catalog/products")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "products list", w.Body.String())

		w = serve(engine, "GET", "/api/v1/catalog/categories")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "categories list", w.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/products", textHandler(http.StatusOK, "products"))

	inventory := NewDomainGroup("inventory", "/inventory")
	inventory.GET("/stock", textHandler(http.StatusOK, "stock"))

	r.Register(catalog).Register(inventory)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/catalog/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products", w.Body.String())

	w = serve(engine, "GET", "/api/v1/inventory/stock")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stock", w.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("catalog", "/catalog")
	g.GET("/categories", textHandler(http.StatusOK, "categories")).
		POST("/products", textHandler(http.StatusOK, "products")).
		PUT("/variants", textHandler(http.StatusOK, "variants"))

	r.Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/catalog/categories"},
		{"POST", "/api/v1/catalog/products"},
		{"PUT", "/api/v1/catalog/variants"},
	}

	for _, tt := range tests {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "route %s %s should be registered", tt.method, tt.path)
	}
}
