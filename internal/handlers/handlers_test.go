package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/go-videoshop/internal/db"
	"github.com/diewo77/go-videoshop/internal/models"
	"github.com/diewo77/go-videoshop/internal/queries"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() { gin.SetMode(gin.TestMode) }

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), db.GormConfig(false))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return conn
}

// newTestRouter mounts every resource handler without access control.
func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	xdb, err := queries.FromGorm(db)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	mount := func(path string, h interface {
		List(*gin.Context)
		Get(*gin.Context)
		Create(*gin.Context)
		Update(*gin.Context)
		Delete(*gin.Context)
	}) {
		r.GET(path, h.List)
		r.GET(path+"/:id", h.Get)
		r.POST(path, h.Create)
		r.PUT(path+"/:id", h.Update)
		r.DELETE(path+"/:id", h.Delete)
	}
	mount("/api/clients", NewClientHandler(db))
	mount("/api/produits", NewProductHandler(db, Uploader{Dir: t.TempDir(), MaxBytes: 1 << 20}, "http://shop.test/uploads"))
	mount("/api/vendeurs", NewVendorHandler(db))
	mount("/api/ventes", NewSaleHandler(db, queries.NewSaleQueryRepository(xdb)))
	purchases := NewPurchaseHandler(db, queries.NewPurchaseQueryRepository(xdb))
	mount("/api/achats", purchases)
	r.GET("/api/clients/:id/achats", purchases.ListByClient)
	r.GET("/api/dashboard", NewDashboardHandler(db).Show)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return out
}

type errorBody struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

// violationBody is a validation_failed reply, with details keyed by field.
type violationBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func seedRefs(t *testing.T, db *gorm.DB) (models.Client, models.Product, models.Vendor) {
	t.Helper()
	c := models.Client{Nom: "Alaoui", Prenom: "Sara", Email: "sara@example.com"}
	v := models.Vendor{Nom: "Bennani", Prenom: "Youssef", CIN: "BK123"}
	p := models.Product{Titre: "Heat", Genre: "Policier"}
	for _, row := range []any{&c, &v, &p} {
		if err := db.Create(row).Error; err != nil {
			t.Fatal(err)
		}
	}
	return c, p, v
}
