package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authctrl "dashboard/internal/auth/controller"
	customerctrl "dashboard/internal/customer/controller"
	invoicectrl "dashboard/internal/invoice/controller"
	"dashboard/internal/overview"
	productctrl "dashboard/internal/product/controller"
	"dashboard/internal/query"
)

// Handlers is everything the router mounts. RequireSession guards the
// dashboard pages and RequireBearer guards /api.
type Handlers struct {
	Session        *authctrl.SessionController
	Overview       *overview.Controller
	Invoices       *invoicectrl.InvoiceController
	Customers      *customerctrl.CustomerController
	ProductAPI     *productctrl.APIController
	ProductPages   *productctrl.PageController
	Query          *query.Controller
	RequireSession func(http.Handler) http.Handler
	RequireBearer  func(http.Handler) http.Handler
}

func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	r.Get("/login", h.Session.LoginForm)
	r.Post("/login", h.Session.Login)
	r.Post("/logout", h.Session.Logout)
	r.Get("/query", h.Query.HandleQuery)

	r.Route("/dashboard", func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Get("/", h.Overview.HandleOverview)

		r.Get("/invoices", h.Invoices.List)
		r.Get("/invoices/create", h.Invoices.CreateForm)
		r.Post("/invoices/create", h.Invoices.Create)
		r.Get("/invoices/{id}/edit", h.Invoices.EditForm)
		r.Post("/invoices/{id}/edit", h.Invoices.Edit)
		r.Post("/invoices/{id}/delete", h.Invoices.Delete)

		r.Get("/customers", h.Customers.List)

		r.Get("/products", h.ProductPages.List)
		r.Get("/products/create", h.ProductPages.CreateForm)
		r.Post("/products/create", h.ProductPages.Create)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(h.RequireBearer)

		r.Get("/products", h.ProductAPI.HandleListProducts)
		r.Post("/products", h.ProductAPI.HandleCreateProduct)
		r.Delete("/invoices/{id}", h.Invoices.DeleteAPI)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("requestId", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
