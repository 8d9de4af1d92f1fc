package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/buwaneka1/shop-mapper/internal/config"
	"github.com/buwaneka1/shop-mapper/internal/database"
	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/router"
	"github.com/buwaneka1/shop-mapper/internal/session"
	"github.com/buwaneka1/shop-mapper/internal/storage"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "password123"

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a second connection would see its own empty in-memory database
	sqlDB.SetMaxOpenConns(1)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: gin.TestMode},
		Session: config.SessionConfig{Secret: "handler-test-secret", ExpireHours: 24},
		Upload:  config.UploadConfig{Dir: t.TempDir(), BaseURL: "/uploads"},
	}
	images, err := storage.NewLocalImageStore(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		t.Fatalf("image store: %v", err)
	}
	return router.SetupRouter(cfg, db, images), db
}

// fixture mirrors the demo layout: two lorries in one territory, a route
// with a shop on the first, a spare territory, and one user per role.
type fixture struct {
	territory models.Territory
	spare     models.Territory
	lorryA    models.Lorry
	lorryB    models.Lorry
	route     models.Route
	shop      models.Shop
	admin     models.User
	viewer    models.User
	repA      models.User // bound to lorryA
	repB      models.User // bound to lorryB
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	// MinCost keeps the login-heavy tests fast
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	f := &fixture{
		territory: models.Territory{Name: "Habaraduwa"},
		spare:     models.Territory{Name: "Galle"},
	}
	for _, tr := range []*models.Territory{&f.territory, &f.spare} {
		if err := db.Create(tr).Error; err != nil {
			t.Fatalf("create territory: %v", err)
		}
	}

	f.lorryA = models.Lorry{Name: "Lorry A", TerritoryID: f.territory.ID}
	f.lorryB = models.Lorry{Name: "Lorry B", TerritoryID: f.territory.ID}
	for _, l := range []*models.Lorry{&f.lorryA, &f.lorryB} {
		if err := db.Create(l).Error; err != nil {
			t.Fatalf("create lorry: %v", err)
		}
	}

	f.route = models.Route{Name: "Route 1", LorryID: f.lorryA.ID}
	if err := db.Create(&f.route).Error; err != nil {
		t.Fatalf("create route: %v", err)
	}

	f.shop = models.Shop{
		Name: "Kade", PaymentMethod: models.PaymentCash,
		PaymentStatus: models.StatusOnTime,
		Latitude: 5.97, Longitude: 80.43, RouteID: f.route.ID,
	}
	if err := db.Create(&f.shop).Error; err != nil {
		t.Fatalf("create shop: %v", err)
	}

	f.admin = models.User{Username: "admin", PasswordHash: string(hash), Role: models.RoleAdmin}
	f.viewer = models.User{Username: "viewer", PasswordHash: string(hash), Role: models.RoleViewer}
	f.repA = models.User{Username: "repA", PasswordHash: string(hash), Role: models.RoleRep, LorryID: &f.lorryA.ID}
	f.repB = models.User{Username: "repB", PasswordHash: string(hash), Role: models.RoleRep, LorryID: &f.lorryB.ID}
	for _, u := range []*models.User{&f.admin, &f.viewer, &f.repA, &f.repB} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user %s: %v", u.Username, err)
		}
	}

	return f
}

// postLogin submits the login form and returns the session cookie, or nil
// when no session was issued.
func postLogin(t *testing.T, r *gin.Engine, username, password, territoryID string) *http.Cookie {
	t.Helper()
	form := url.Values{
		"username":    {username},
		"password":    {password},
		"territoryId": {territoryID},
	}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("POST /login status = %d, want 302", w.Code)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	return nil
}

// mustLogin fails the test when the login did not produce a session.
func mustLogin(t *testing.T, r *gin.Engine, username string, territoryID uint) *http.Cookie {
	t.Helper()
	ck := postLogin(t, r, username, testPassword, strconv.FormatUint(uint64(territoryID), 10))
	if ck == nil {
		t.Fatalf("login as %s in territory %d failed", username, territoryID)
	}
	return ck
}

// do performs a request with an optional session cookie and form body.
func do(r *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
