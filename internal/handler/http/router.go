package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erico-tech-world/personal-portfolio/internal/service"
	"github.com/erico-tech-world/personal-portfolio/pkg/health"
	"github.com/erico-tech-world/personal-portfolio/pkg/middleware"
)

// RouterConfig carries the non-service dependencies of the router.
type RouterConfig struct {
	AdminAPIKey    string
	AllowedOrigins []string
	Environment    string

	// CacheMaxAge is the Cache-Control max-age in seconds for public reads.
	// Zero disables the header.
	CacheMaxAge int

	// PprofCIDRs enables /debug/pprof/* for the given CIDR ranges.
	// Empty disables profiling endpoints entirely.
	PprofCIDRs []string
}

// NewRouter creates a chi router with all portfolio routes registered.
// Public read endpoints and the contact form are open; every mutation lives
// under /api/v1/admin behind the admin key.
func NewRouter(
	gallerySvc *service.GalleryService,
	offeringSvc *service.OfferingService,
	socialSvc *service.SocialService,
	contentSvc *service.ContentService,
	contactSvc *service.ContactService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.Environment = cfg.Environment
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.AllowedOrigins
	}
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("portfolio"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("portfolio"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	if len(cfg.PprofCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	galleryHandler := NewGalleryHandler(gallerySvc, logger)
	offeringHandler := NewOfferingHandler(offeringSvc, logger)
	socialHandler := NewSocialHandler(socialSvc, logger)
	contentHandler := NewContentHandler(contentSvc, logger)
	contactHandler := NewContactHandler(contactSvc, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public read path.
		r.Group(func(r chi.Router) {
			if cfg.CacheMaxAge > 0 {
				r.Use(middleware.CacheControl(cfg.CacheMaxAge))
			}
			r.Get("/gallery", galleryHandler.ListGalleryItems)
			r.Get("/gallery/{id}", galleryHandler.GetGalleryItem)
			r.Get("/services", offeringHandler.ListOfferings)
			r.Get("/services/{id}", offeringHandler.GetOffering)
			r.Get("/socials", socialHandler.ListSocialLinks)
			r.Get("/content", contentHandler.ListContent)
			r.Get("/content/{key}", contentHandler.GetContent)
		})

		r.Post("/contact", contactHandler.SubmitContact)

		// Admin mutations.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminKey(cfg.AdminAPIKey))

			r.Post("/gallery", galleryHandler.CreateGalleryItem)
			r.Put("/gallery/{id}", galleryHandler.UpdateGalleryItem)
			r.Delete("/gallery/{id}", galleryHandler.DeleteGalleryItem)

			r.Post("/services", offeringHandler.CreateOffering)
			r.Put("/services/{id}", offeringHandler.UpdateOffering)
			r.Delete("/services/{id}", offeringHandler.DeleteOffering)

			r.Post("/socials", socialHandler.CreateSocialLink)
			r.Put("/socials/{id}", socialHandler.UpdateSocialLink)
			r.Delete("/socials/{id}", socialHandler.DeleteSocialLink)

			r.Put("/content/{key}", contentHandler.UpsertContent)
			r.Post("/cv", contentHandler.UpdateCv)

			r.Get("/contacts", contactHandler.ListContactMessages)
			r.Delete("/contacts/{id}", contactHandler.DeleteContactMessage)
		})
	})

	return r
}
