package server

import (
	"log"
	"net/http"
	"time"

	"github.com/voguesoftware/projectdash/auth"
	"github.com/voguesoftware/projectdash/httpx"
	"github.com/voguesoftware/projectdash/internal/api"
	"github.com/voguesoftware/projectdash/internal/config"
	"github.com/voguesoftware/projectdash/internal/handlers"
	"github.com/voguesoftware/projectdash/internal/prefs"
	"github.com/voguesoftware/projectdash/internal/search"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(client *api.Client, store prefs.Store, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	ah := handlers.NewAuthHandler(client, store)
	mux.Handle("/login", methodHandler(map[string]http.HandlerFunc{http.MethodPost: ah.Login}))
	mux.Handle("/signup", methodHandler(map[string]http.HandlerFunc{http.MethodPost: ah.Signup}))
	mux.Handle("/logout", methodHandler(map[string]http.HandlerFunc{http.MethodPost: ah.Logout}))
	mux.Handle("/profile", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: ah.Profile})))

	dh := handlers.NewDashboardHandler(client, store)
	mux.Handle("/dashboard", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: dh.Overview})))

	ph := handlers.NewProjectHandler(client, store)
	mux.Handle("/projects", guard(methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  ph.List,
		http.MethodPost: ph.Create,
	})))
	mux.Handle("/projects/view", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: ph.Get})))
	mux.Handle("/projects/update", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPut: ph.Update})))
	mux.Handle("/projects/delete", guard(methodHandler(map[string]http.HandlerFunc{http.MethodDelete: ph.Delete})))
	mux.Handle("/projects/favorite", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPost: ph.ToggleFavorite})))

	rh := handlers.NewResourceHandler(client, store)
	mux.Handle("/resources", guard(methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  rh.List,
		http.MethodPost: rh.Create,
	})))
	mux.Handle("/resources/view", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: rh.Get})))
	mux.Handle("/resources/delete", guard(methodHandler(map[string]http.HandlerFunc{http.MethodDelete: rh.Delete})))
	mux.Handle("/resources/favorite", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPost: rh.ToggleFavorite})))

	ch := handlers.NewCustomerHandler(client)
	mux.Handle("/customers", guard(methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  ch.List,
		http.MethodPost: ch.Create,
	})))
	mux.Handle("/customers/view", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: ch.Get})))
	mux.Handle("/customers/update", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPut: ch.Update})))
	mux.Handle("/customers/delete", guard(methodHandler(map[string]http.HandlerFunc{http.MethodDelete: ch.Delete})))

	oh := handlers.NewOrganizationHandler(client)
	mux.Handle("/organizations", guard(methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  oh.List,
		http.MethodPost: oh.Create,
	})))
	mux.Handle("/organizations/view", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: oh.Get})))
	mux.Handle("/organizations/update", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPut: oh.Update})))
	mux.Handle("/organizations/delete", guard(methodHandler(map[string]http.HandlerFunc{http.MethodDelete: oh.Delete})))
	mux.Handle("/organizations/projects", guard(methodHandler(map[string]http.HandlerFunc{
		http.MethodPost:   oh.AddProject,
		http.MethodDelete: oh.RemoveProject,
	})))
	mux.Handle("/organizations/projects/documents", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPost: oh.UploadDocuments})))

	ih := handlers.NewInvoiceHandler(client, cfg.Company, cfg.Bank)
	mux.Handle("/invoices", guard(methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  ih.List,
		http.MethodPost: ih.Create,
	})))
	mux.Handle("/invoices/view", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: ih.Get})))
	mux.Handle("/invoices/update", guard(methodHandler(map[string]http.HandlerFunc{http.MethodPut: ih.Update})))
	mux.Handle("/invoices/delete", guard(methodHandler(map[string]http.HandlerFunc{http.MethodDelete: ih.Delete})))
	mux.Handle("/invoices/pdf", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: ih.PDF})))

	sh := handlers.NewSearchHandler(search.New(client))
	mux.Handle("/search", guard(methodHandler(map[string]http.HandlerFunc{http.MethodGet: sh.Search})))

	th := handlers.NewThemeHandler(store)
	mux.Handle("/theme", methodHandler(map[string]http.HandlerFunc{
		http.MethodGet:  th.Get,
		http.MethodPost: th.Set,
	}))

	return withRecover(withLogging(mux))
}

func guard(next http.Handler) http.Handler {
	return auth.Middleware(auth.RequireAuth(next))
}

func methodHandler(routes map[string]http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.Method]; ok {
			h(w, r)
			return
		}
		allow := ""
		for m := range routes {
			if allow != "" {
				allow += ","
			}
			allow += m
		}
		w.Header().Set("Allow", allow)
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
