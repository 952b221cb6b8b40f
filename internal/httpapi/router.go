package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kaasla/adcash-influencer-assignment/internal/service"
)

// Handler serves the REST API over the offer, influencer and custom payout
// services.
type Handler struct {
	offers        *service.OfferService
	influencers   *service.InfluencerService
	customPayouts *service.CustomPayoutService
}

type Deps struct {
	OfferService        *service.OfferService
	InfluencerService   *service.InfluencerService
	CustomPayoutService *service.CustomPayoutService
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		offers:        deps.OfferService,
		influencers:   deps.InfluencerService,
		customPayouts: deps.CustomPayoutService,
	}
}

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)
	r.Use(bodyLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/offers", func(r chi.Router) {
			r.Get("/", h.listOffers)
			r.Post("/", h.createOffer)
			r.Get("/{id}", h.getOffer)
			r.Put("/{id}", h.updateOffer)
			r.Delete("/{id}", h.deleteOffer)

			r.Post("/{id}/custom-payouts", h.createCustomPayout)
			r.Delete("/{id}/custom-payouts/{influencerId}", h.deleteCustomPayout)
		})

		r.Route("/influencers", func(r chi.Router) {
			r.Get("/", h.listInfluencers)
			r.Post("/", h.createInfluencer)
			r.Delete("/{id}", h.deleteInfluencer)
			r.Get("/{id}/offers", h.listInfluencerOffers)
		})
	})
	return r
}
