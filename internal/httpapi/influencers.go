package httpapi

import (
	"net/http"

	"github.com/kaasla/adcash-influencer-assignment/internal/domain"
)

func (h *Handler) listInfluencers(w http.ResponseWriter, r *http.Request) {
	influencers, err := h.influencers.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := make([]influencerResponse, 0, len(influencers))
	for _, i := range influencers {
		resp = append(resp, newInfluencerResponse(i))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createInfluencer(w http.ResponseWriter, r *http.Request) {
	var req influencerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	influencer, err := h.influencers.Create(r.Context(), domain.InfluencerInput{Name: req.Name, Email: req.Email})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newInfluencerResponse(*influencer))
}

func (h *Handler) deleteInfluencer(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.influencers.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listInfluencerOffers(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	offers, err := h.influencers.Offers(r.Context(), id, r.URL.Query().Get("search"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := make([]resolvedOfferResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, newResolvedOfferResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}
