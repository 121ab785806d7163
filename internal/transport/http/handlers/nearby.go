package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/cityevents/services/nearby-service/internal/application/item"
	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/dto"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/response"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/validate"
)

type Timeouts struct {
	// Search bounds the provider call plus the cache writes that follow it.
	Search time.Duration
	Store  time.Duration
}

type NearbyHandler struct {
	svc      *item.Service
	timeouts Timeouts
}

func NewNearbyHandler(svc *item.Service, t Timeouts) *NearbyHandler {
	if t.Search <= 0 {
		t.Search = 10 * time.Second
	}
	if t.Store <= 0 {
		t.Store = 3 * time.Second
	}
	return &NearbyHandler{svc: svc, timeouts: t}
}

// Search: GET /search?lat=&lon=&term=&user_id=
func (h *NearbyHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := validate.Float(q, "lat")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	lon, err := validate.Float(q, "lon")
	if err != nil {
		response.Err(w, r, err)
		return
	}
	term := strings.TrimSpace(q.Get("term"))
	userID := strings.TrimSpace(q.Get("user_id"))

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Search)
	defer cancel()

	res, err := h.svc.SearchForUser(ctx, userID, lat, lon, term)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToItemResps(res.Items, res.IsFavorite))
}

func (h *NearbyHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "item_id")

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Store)
	defer cancel()

	it, err := h.svc.GetItem(ctx, id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToItemResp(it, false))
}

// ListHistory: GET /history?user_id=
func (h *NearbyHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{"user_id": "required"}))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Store)
	defer cancel()

	items, err := h.svc.ListFavorites(ctx, userID)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToItemResps(items, func(string) bool { return true }))
}

func (h *NearbyHandler) SetFavorites(w http.ResponseWriter, r *http.Request) {
	h.changeFavorites(w, r, h.svc.SetFavorites)
}

func (h *NearbyHandler) UnsetFavorites(w http.ResponseWriter, r *http.Request) {
	h.changeFavorites(w, r, h.svc.UnsetFavorites)
}

func (h *NearbyHandler) changeFavorites(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID string, ids []string) ([]string, error),
) {
	var req dto.FavoriteReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Store)
	defer cancel()

	applied, err := apply(ctx, req.UserID, req.Favorite)
	if err != nil {
		response.Err(w, r, withApplied(err, applied))
		return
	}
	response.Data(w, http.StatusOK, dto.FavoriteResp{Result: dto.ResultSuccess, Applied: applied})
}

// withApplied reports the ids written before a partial failure in the
// error meta as a comma separated "applied" entry.
func withApplied(err error, applied []string) error {
	var ae *domain.AppError
	if len(applied) == 0 || !errors.As(err, &ae) {
		return err
	}
	out := *ae
	out.Meta = make(map[string]string, len(ae.Meta)+1)
	for k, v := range ae.Meta {
		out.Meta[k] = v
	}
	out.Meta["applied"] = strings.Join(applied, ",")
	return &out
}

func (h *NearbyHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.Err(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeouts.Store)
	defer cancel()

	res, err := h.svc.Login(ctx, req.UserID, req.Password)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.LoginResp{Result: dto.ResultSuccess, UserID: res.UserID, Name: res.Name})
}
