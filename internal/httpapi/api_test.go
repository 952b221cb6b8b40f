package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kaasla/adcash-influencer-assignment/internal/repository"
	"github.com/kaasla/adcash-influencer-assignment/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := repository.NewMemoryStore()
	h := NewHandler(Deps{
		OfferService:        service.NewOfferService(store, nil),
		InfluencerService:   service.NewInfluencerService(store),
		CustomPayoutService: service.NewCustomPayoutService(store, nil),
	})
	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createOffer(t *testing.T, srv *httptest.Server, body string) map[string]any {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/v1/offers", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[map[string]any](t, resp)
}

func createInfluencer(t *testing.T, srv *httptest.Server, name, email string) map[string]any {
	t.Helper()
	body, err := json.Marshal(map[string]string{"name": name, "email": email})
	require.NoError(t, err)
	resp := do(t, srv, http.MethodPost, "/api/v1/influencers", string(body))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[map[string]any](t, resp)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := do(t, srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, resp))
}

func TestCreateOffer_Validation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "malformed json", body: `{"title":`, wantMsg: "malformed JSON body"},
		{name: "missing title", body: `{"description":"d","payoutType":"cpa","cpaAmount":"1.00"}`, wantMsg: "title is required"},
		{name: "unknown kind", body: `{"title":"t","description":"d","payoutType":"bonus"}`, wantMsg: "payout type must be"},
		{name: "missing cpa", body: `{"title":"t","description":"d","payoutType":"cpa"}`, wantMsg: "CPA amount is required"},
		{name: "extra fixed", body: `{"title":"t","description":"d","payoutType":"cpa","cpaAmount":"1","fixedAmount":"2"}`, wantMsg: "fixed amount is not allowed"},
		{name: "three decimals", body: `{"title":"t","description":"d","payoutType":"fixed","fixedAmount":"1.001"}`, wantMsg: "decimal notation"},
		{name: "empty fixed on cpa", body: `{"title":"t","description":"d","payoutType":"cpa","cpaAmount":"25.00","fixedAmount":""}`, wantMsg: "fixedAmount"},
		{name: "empty cpa on fixed", body: `{"title":"t","description":"d","payoutType":"fixed","cpaAmount":"","fixedAmount":"25.00"}`, wantMsg: "cpaAmount"},
		{name: "amount beyond column", body: `{"title":"t","description":"d","payoutType":"cpa","cpaAmount":"123456789012.00"}`, wantMsg: "less than 100000000"},
		{name: "numeric amount", body: `{"title":"t","description":"d","payoutType":"fixed","fixedAmount":1}`, wantMsg: "malformed JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := do(t, srv, http.MethodPost, "/api/v1/offers", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			got := decode[errorResponse](t, resp)
			assert.Equal(t, codeValidation, got.Error.Code)
			assert.Contains(t, got.Error.Message, tt.wantMsg)
		})
	}
}

func TestOfferLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	offer := createOffer(t, srv, `{"title":"Fitness App Launch","description":"<p>Drive <b>downloads</b></p>","payoutType":"cpa_fixed","cpaAmount":"10","fixedAmount":"200.5"}`)
	assert.Equal(t, "cpa_fixed", offer["payoutType"])
	assert.Equal(t, "10.00", offer["cpaAmount"])
	assert.Equal(t, "200.50", offer["fixedAmount"])
	id := offer["id"].(string)

	resp := do(t, srv, http.MethodGet, "/api/v1/offers/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/v1/offers/"+id, `{"title":"Fitness App Launch","description":"d","payoutType":"fixed","fixedAmount":"300.00"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[map[string]any](t, resp)
	assert.Equal(t, "fixed", updated["payoutType"])
	assert.Nil(t, updated["cpaAmount"])
	assert.Equal(t, "300.00", updated["fixedAmount"])

	resp = do(t, srv, http.MethodGet, "/api/v1/offers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = do(t, srv, http.MethodDelete, "/api/v1/offers/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/offers/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, codeNotFound, decode[errorResponse](t, resp).Error.Code)

	resp = do(t, srv, http.MethodGet, "/api/v1/offers/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorResponse](t, resp).Error.Message, "invalid id format")
}

func TestCustomPayoutFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	offer := createOffer(t, srv, `{"title":"Summer Fashion Campaign","description":"Promote","payoutType":"cpa","cpaAmount":"25.00"}`)
	alice := createInfluencer(t, srv, "Alice Johnson", "alice@example.com")
	bob := createInfluencer(t, srv, "Bob Smith", "bob@example.com")
	offerPath := "/api/v1/offers/" + offer["id"].(string)
	aliceID, bobID := alice["id"].(string), bob["id"].(string)

	// Same as base is redundant.
	resp := do(t, srv, http.MethodPost, offerPath+"/custom-payouts", `{"influencerId":"`+aliceID+`","payoutType":"cpa","cpaAmount":"25.0"}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "custom payout matches the base offer payout, no custom payout is needed", decode[errorResponse](t, resp).Error.Message)

	resp = do(t, srv, http.MethodPost, offerPath+"/custom-payouts", `{"influencerId":"`+aliceID+`","payoutType":"fixed","fixedAmount":"1000"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cp := decode[map[string]any](t, resp)
	assert.Equal(t, aliceID, cp["influencerId"])
	assert.Equal(t, "1000.00", cp["fixedAmount"])
	assert.Nil(t, cp["cpaAmount"])

	resp = do(t, srv, http.MethodPost, offerPath+"/custom-payouts", `{"influencerId":"`+aliceID+`","payoutType":"cpa","cpaAmount":"40"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, offerPath+"/custom-payouts", `{"influencerId":"bad","payoutType":"cpa","cpaAmount":"40"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/influencers/"+aliceID+"/offers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	aliceOffers := decode[[]map[string]any](t, resp)
	require.Len(t, aliceOffers, 1)
	assert.Equal(t, true, aliceOffers[0]["hasCustomPayout"])
	assert.Equal(t, "fixed", aliceOffers[0]["payoutType"])
	assert.Equal(t, "1000.00", aliceOffers[0]["fixedAmount"])

	resp = do(t, srv, http.MethodGet, "/api/v1/influencers/"+bobID+"/offers?search=SUMMER", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bobOffers := decode[[]map[string]any](t, resp)
	require.Len(t, bobOffers, 1)
	assert.Equal(t, false, bobOffers[0]["hasCustomPayout"])
	assert.Equal(t, "25.00", bobOffers[0]["cpaAmount"])

	resp = do(t, srv, http.MethodGet, "/api/v1/influencers/"+bobID+"/offers?search=winter", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp = do(t, srv, http.MethodDelete, offerPath+"/custom-payouts/"+aliceID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, srv, http.MethodDelete, offerPath+"/custom-payouts/"+aliceID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInfluencers(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	alice := createInfluencer(t, srv, "Alice Johnson", "alice@example.com")

	resp := do(t, srv, http.MethodPost, "/api/v1/influencers", `{"name":"Other","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/v1/influencers", `{"name":"Other","email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/influencers", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = do(t, srv, http.MethodDelete, "/api/v1/influencers/"+alice["id"].(string), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/v1/influencers/"+alice["id"].(string)+"/offers", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouting(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp := do(t, srv, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, codeNotFound, decode[errorResponse](t, resp).Error.Code)

	resp = do(t, srv, http.MethodPatch, "/api/v1/offers", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	router := NewRouter(NewHandler(Deps{OfferService: service.NewOfferService(store, nil)}))
	big := `{"title":"` + string(bytes.Repeat([]byte("a"), 2<<20)) + `"}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/offers", strings.NewReader(big)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Contains(t, got.Error.Message, "request body too large")
}
