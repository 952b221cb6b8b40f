package httpapi

import (
	"net/http"
)

func (h *Handler) listOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offers.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, newOfferResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) getOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	offer, err := h.offers.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOfferResponse(*offer))
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	offer, err := h.offers.Create(r.Context(), in)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newOfferResponse(*offer))
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	offer, err := h.offers.Update(r.Context(), id, in)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newOfferResponse(*offer))
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.offers.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createCustomPayout(w http.ResponseWriter, r *http.Request) {
	offerID, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	var req customPayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	influencerID, err := parseUUID(req.InfluencerID, "influencerId")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	payout, err := req.toPayout()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	cp, err := h.customPayouts.Create(r.Context(), offerID, influencerID, payout)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newCustomPayoutResponse(*cp))
}

func (h *Handler) deleteCustomPayout(w http.ResponseWriter, r *http.Request) {
	offerID, err := uuidParam(r, "id")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	influencerID, err := uuidParam(r, "influencerId")
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.customPayouts.Delete(r.Context(), offerID, influencerID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
