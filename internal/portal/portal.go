// Package portal serves the premium-upgrade pages: the pricing/checkout page
// with its coupon widget, the post-checkout verification page and the
// password-reset form. All business decisions are delegated to the external
// premium API; the portal renders the state machines in internal/checkout and
// internal/resetflow.
package portal

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Awais417/passwordreset/internal/checkout"
	"github.com/Awais417/passwordreset/internal/config"
	"github.com/Awais417/passwordreset/internal/identity"
	"github.com/Awais417/passwordreset/internal/premiumapi"
	"github.com/Awais417/passwordreset/internal/resetflow"
)

// How long an abandoned visitor's page state is kept before pruning.
const stateMaxAge = 24 * time.Hour

type Portal struct {
	templates map[string]*template.Template
	config    *config.Config
	client    *premiumapi.Client
	store     *checkout.StateStore
	reset     *resetflow.Submitter
	identity  *identity.Manager
}

func New(cfg *config.Config) (*Portal, error) {
	templates := make(map[string]*template.Template)

	templateDir := cfg.TemplateDir

	// Find all the page templates
	pages, err := fs.Glob(os.DirFS(templateDir), "*.html")
	if err != nil {
		log.Printf("Error finding templates: %v", err)
		return nil, err
	}

	// For each page, parse it with the base template
	for _, page := range pages {
		if page == "base.html" {
			continue
		}

		ts, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page),
		)
		if err != nil {
			log.Printf("Error parsing template %s: %v", page, err)
			return nil, err
		}
		templates[page] = ts
	}

	log.Printf("Successfully loaded %d templates", len(templates))

	client := premiumapi.NewClient(cfg.API.BaseURL)
	store := checkout.NewStateStore(client)

	p := &Portal{
		templates: templates,
		config:    cfg,
		client:    client,
		store:     store,
		reset:     resetflow.NewSubmitter(client),
		identity:  identity.NewManager(cfg.Cookie.Secret, cfg.Cookie.Secure),
	}

	go p.pruneLoop()

	return p, nil
}

func (p *Portal) pruneLoop() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if removed := p.store.Prune(stateMaxAge); removed > 0 {
			log.Printf("[PORTAL] Pruned %d stale page states", removed)
		}
	}
}

func (p *Portal) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/heartbeat"))

	// Static files
	fileServer := http.FileServer(http.Dir(p.config.StaticDir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/payment", http.StatusSeeOther)
	})

	r.Get("/payment", p.handlePayment)
	r.Post("/payment/coupon", p.handleApplyCoupon)
	r.Post("/payment/coupon/remove", p.handleRemoveCoupon)
	r.Post("/payment/checkout", p.handleCheckout)
	r.Get("/payment/success", p.handleSuccess)

	r.Get("/reset-password", p.handleResetPassword)
	r.Post("/reset-password", p.handleResetPasswordPost)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		p.renderTemplate(w, r, "404.html", "Not Found", map[string]interface{}{
			"Path": r.URL.Path,
		})
	})

	return r
}

func (p *Portal) renderTemplate(w http.ResponseWriter, r *http.Request, tmplName string, pageTitle string, data interface{}) {
	ts, ok := p.templates[tmplName]
	if !ok {
		log.Printf("Error: template %s not found", tmplName)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var templateData map[string]interface{}
	if existingMap, ok := data.(map[string]interface{}); ok {
		templateData = existingMap
	} else {
		templateData = map[string]interface{}{}
		if data != nil {
			templateData["Data"] = data
		}
	}

	templateData["ActivePage"] = pageTitle

	if err := ts.ExecuteTemplate(w, "base.html", templateData); err != nil {
		log.Printf("Error executing template %s: %v", tmplName, err)
	}
}

// currencySymbol maps a currency code to its display symbol.
func currencySymbol(currency string) string {
	if currency == "gbp" {
		return "£"
	}
	return "$"
}
