package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/config"
	"github.com/voguesoftware/projectdash/internal/models"
	"github.com/voguesoftware/projectdash/internal/prefs"
)

// backend wraps an httptest server playing the remote REST API, counting
// every request so tests can assert a path never left the process.
type backend struct {
	srv   *httptest.Server
	calls atomic.Int64
}

func newBackend(t *testing.T, h http.HandlerFunc) *backend {
	t.Helper()
	b := &backend{}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.calls.Add(1)
		if h != nil {
			h(w, r)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) client() *api.Client { return api.New(b.srv.URL) }

func newTestStore(t *testing.T) *prefs.DBStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := prefs.NewWithDB(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestProjectListOverlaysFavorites(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"_id":"p1","name":"Alpha","milestones":[{"name":"a","completed":true},{"name":"b","completed":false}]},
			{"_id":"p2","name":"Beta"}
		]`)
	})
	store := newTestStore(t)
	if _, err := store.ToggleFavorite(prefs.FavoriteProjects, "p2"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	h := NewProjectHandler(b.client(), store)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/projects", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var views []struct {
		ID       string `json:"_id"`
		Favorite bool   `json:"favorite"`
		Progress int    `json:"progress"`
	}
	decodeBody(t, rec, &views)
	if len(views) != 2 {
		t.Fatalf("got %d projects", len(views))
	}
	if views[0].Favorite || !views[1].Favorite {
		t.Errorf("favorite overlay wrong: %+v", views)
	}
	if views[0].Progress != 50 {
		t.Errorf("progress = %d, want 50", views[0].Progress)
	}
	if views[1].Progress != 0 {
		t.Errorf("progress with no milestones = %d, want 0", views[1].Progress)
	}
}

func TestProjectToggleFavoriteEndpoint(t *testing.T) {
	b := newBackend(t, nil)
	h := NewProjectHandler(b.client(), newTestStore(t))

	rec := httptest.NewRecorder()
	h.ToggleFavorite(rec, httptest.NewRequest(http.MethodPost, "/projects/favorite?id=p1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		FavoriteProjects []string `json:"favoriteProjects"`
	}
	decodeBody(t, rec, &out)
	if len(out.FavoriteProjects) != 1 || out.FavoriteProjects[0] != "p1" {
		t.Fatalf("favoriteProjects = %v", out.FavoriteProjects)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("favorite toggle hit the backend %d times", b.calls.Load())
	}
}

func TestOrganizationCreateInvalidNeverReachesBackend(t *testing.T) {
	b := newBackend(t, nil)
	h := NewOrganizationHandler(b.client())

	body := `{"name":"Acme","contactDetails":[{"role":"","name":"Jane"}]}`
	req := httptest.NewRequest(http.MethodPost, "/organizations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "validation_failed" {
		t.Errorf("error = %q", resp.Error)
	}
	if !strings.Contains(resp.Details["message"], "contactDetails[0].role") {
		t.Errorf("details = %q", resp.Details["message"])
	}
	if b.calls.Load() != 0 {
		t.Fatalf("invalid organization reached the backend %d times", b.calls.Load())
	}
}

func TestOrganizationCreateEmptyContactsRejected(t *testing.T) {
	b := newBackend(t, nil)
	h := NewOrganizationHandler(b.client())

	req := httptest.NewRequest(http.MethodPost, "/organizations", strings.NewReader(`{"name":"Acme","contactDetails":[]}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("backend was called %d times", b.calls.Load())
	}
}

func TestInvoiceCreatePersistsComputedTotals(t *testing.T) {
	var stored models.Invoice
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&stored); err != nil {
			t.Errorf("decode stored invoice: %v", err)
		}
		fmt.Fprint(w, `{"_id":"i1"}`)
	})
	h := NewInvoiceHandler(b.client(), config.CompanyDetails{}, config.BankDetails{})

	// Stale client-side totals must be recomputed before persisting.
	body := `{
		"invoiceNo":"INV-001","taxRate":15,"discount":10,
		"subTotal":1,"taxAmount":1,"total":1,
		"lineItems":[
			{"description":"Development","unitPrice":100,"qty":2,"lineTotal":5},
			{"description":"Support","unitPrice":50,"qty":1}
		]
	}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if stored.LineItems[0].LineTotal != 200 {
		t.Errorf("stored lineTotal = %v, want 200", stored.LineItems[0].LineTotal)
	}
	if stored.SubTotal != 250 || stored.TaxAmount != 37.5 || stored.Total != 277.5 {
		t.Errorf("stored totals = %v/%v/%v, want 250/37.5/277.5", stored.SubTotal, stored.TaxAmount, stored.Total)
	}
}

func TestInvoiceCreateInvalidNeverReachesBackend(t *testing.T) {
	b := newBackend(t, nil)
	h := NewInvoiceHandler(b.client(), config.CompanyDetails{}, config.BankDetails{})

	body := `{"invoiceNo":"","lineItems":[{"description":"","unitPrice":0,"qty":1}]}`
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "validation_failed" {
		t.Errorf("error = %q", resp.Error)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("invalid invoice reached the backend %d times", b.calls.Load())
	}
}

func TestInvoicePDFDownload(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/invoices/"):
			fmt.Fprint(w, `{
				"_id":"i1","organizationId":"o1","projectId":"op1","invoiceNo":"INV-042",
				"status":"Sent","currency":"LKR","taxRate":15,
				"lineItems":[{"description":"Development","unitPrice":100,"qty":2,"lineTotal":200}],
				"subTotal":200,"taxAmount":30,"total":230
			}`)
		case strings.HasPrefix(r.URL.Path, "/api/organizations/"):
			fmt.Fprint(w, `{
				"_id":"o1","name":"Acme Corp","address":"12 Galle Rd",
				"contactDetails":[{"role":"CTO","name":"Jane Silva"}],
				"projects":[{"_id":"op1","name":"Portal Rebuild"}]
			}`)
		default:
			http.NotFound(w, r)
		}
	})
	h := NewInvoiceHandler(b.client(), config.CompanyDetails{Name: "Vogue Software Solutions"}, config.BankDetails{Name: "Commercial Bank"})

	rec := httptest.NewRecorder()
	h.PDF(rec, httptest.NewRequest(http.MethodGet, "/invoices/pdf?id=i1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, `invoice-INV-042.pdf`) {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("body does not start with PDF magic: %q", rec.Body.String()[:min(16, rec.Body.Len())])
	}
}

func TestDashboardOverviewNoFavoritesSkipsNetwork(t *testing.T) {
	b := newBackend(t, nil)
	h := NewDashboardHandler(b.client(), newTestStore(t))

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		FavoriteProjects []json.RawMessage `json:"favoriteProjects"`
	}
	decodeBody(t, rec, &out)
	if out.FavoriteProjects == nil {
		t.Error("favoriteProjects must be an empty array, not null")
	}
	if len(out.FavoriteProjects) != 0 {
		t.Errorf("favoriteProjects = %v", out.FavoriteProjects)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("empty dashboard hit the backend %d times", b.calls.Load())
	}
}

func TestDashboardOverviewSkipsDeletedFavorites(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"_id":"p1","name":"Alpha"},{"_id":"p2","name":"Beta"}]`)
	})
	store := newTestStore(t)
	for _, id := range []string{"p2", "gone"} {
		if _, err := store.ToggleFavorite(prefs.FavoriteProjects, id); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	h := NewDashboardHandler(b.client(), store)

	rec := httptest.NewRecorder()
	h.Overview(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var out struct {
		FavoriteProjects []struct {
			ID string `json:"_id"`
		} `json:"favoriteProjects"`
	}
	decodeBody(t, rec, &out)
	if len(out.FavoriteProjects) != 1 || out.FavoriteProjects[0].ID != "p2" {
		t.Fatalf("favoriteProjects = %+v, want just p2", out.FavoriteProjects)
	}
}

func TestThemeSetRejectsUnknownValue(t *testing.T) {
	h := NewThemeHandler(newTestStore(t))

	rec := httptest.NewRecorder()
	h.Set(rec, httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(`{"theme":"sepia"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Set(rec, httptest.NewRequest(http.MethodPost, "/theme", strings.NewReader(`{"theme":"dark"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))
	var out map[string]string
	decodeBody(t, rec, &out)
	if out["theme"] != "dark" {
		t.Fatalf("theme = %q, want dark", out["theme"])
	}
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token":"jwt123","user":{"firstName":"Nimal","lastName":"Perera","email":"nimal@example.com"}}`)
	})
	store := newTestStore(t)
	h := NewAuthHandler(b.client(), store)

	body := `{"email":"nimal@example.com","password":"secret"}`
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	tok, err := store.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if tok != "jwt123" {
		t.Errorf("stored token = %q", tok)
	}
	u, err := store.GetUser()
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if u == nil || u.Email != "nimal@example.com" {
		t.Errorf("stored user = %+v", u)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("login set no session cookie")
	}
}

func TestLoginMissingFieldsRejectedLocally(t *testing.T) {
	b := newBackend(t, nil)
	h := NewAuthHandler(b.client(), newTestStore(t))

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.c"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("incomplete credentials reached the backend %d times", b.calls.Load())
	}
}

func TestLogoutClearsSessionState(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetToken("jwt123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if _, err := store.ToggleFavorite(prefs.FavoriteProjects, "p1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	b := newBackend(t, nil)
	h := NewAuthHandler(b.client(), store)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	tok, _ := store.Token()
	if tok != "" {
		t.Errorf("token survived logout: %q", tok)
	}
	favs, _ := store.GetFavorites(prefs.FavoriteProjects)
	if len(favs) != 1 {
		t.Errorf("favorites should survive logout, got %v", favs)
	}
}

func TestMissingIDRejected(t *testing.T) {
	b := newBackend(t, nil)
	h := NewProjectHandler(b.client(), newTestStore(t))

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/projects/view", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &resp)
	if resp.Error != "missing_id" {
		t.Errorf("error = %q", resp.Error)
	}
	if b.calls.Load() != 0 {
		t.Fatalf("backend was called %d times", b.calls.Load())
	}
}
