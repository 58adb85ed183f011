package http

import (
	"net/http"

	"github.com/goliatone/go-cms-bootstrap/internal/carousel"
	"github.com/goliatone/go-cms-bootstrap/internal/permissions"
)

type carouselItemRequest struct {
	ImageID      *string          `json:"image_id"`
	ImageAlt     *string          `json:"image_alt"`
	ImageTitle   *string          `json:"image_title"`
	ImageLink    *string          `json:"image_link"`
	CaptionTitle *string          `json:"caption_title"`
	CaptionText  *string          `json:"caption_text"`
	Weight       *int             `json:"weight"`
	Status       *carousel.Status `json:"status"`
}

func (req carouselItemRequest) createInput(actor string) carousel.CreateItemInput {
	input := carousel.CreateItemInput{
		ImageID:      deref(req.ImageID),
		ImageAlt:     deref(req.ImageAlt),
		ImageTitle:   deref(req.ImageTitle),
		ImageLink:    deref(req.ImageLink),
		CaptionTitle: deref(req.CaptionTitle),
		CaptionText:  deref(req.CaptionText),
		ActorID:      actor,
	}
	if req.Weight != nil {
		input.Weight = *req.Weight
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	return input
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

type carouselAdminResponse struct {
	Settings    carousel.Settings          `json:"settings"`
	ImageTypes  []carousel.Option          `json:"image_types"`
	ImageStyles []carousel.Option          `json:"image_styles"`
	Statuses    map[carousel.Status]string `json:"statuses"`
}

func (api *API) registerCarouselRoutes(mux *http.ServeMux) {
	admin := api.path("/admin/carousel")

	mux.HandleFunc("GET "+admin+"/settings", api.handleGetCarouselSettings)
	mux.HandleFunc("PUT "+admin+"/settings", api.handleSaveCarouselSettings)
	mux.HandleFunc("GET "+admin+"/items", api.handleListCarouselItems)
	mux.HandleFunc("POST "+admin+"/items", api.handleCreateCarouselItem)
	mux.HandleFunc("GET "+admin+"/items/{id}", api.handleGetCarouselItem)
	mux.HandleFunc("PUT "+admin+"/items/{id}", api.handleUpdateCarouselItem)
	mux.HandleFunc("DELETE "+admin+"/items/{id}", api.handleDeleteCarouselItem)
	mux.HandleFunc("GET "+api.path("/carousel/block"), api.handleCarouselBlock)
}

func (api *API) handleGetCarouselSettings(w http.ResponseWriter, r *http.Request) {
	if !requireAccount(w, api.accounts(r), permissions.AdministerCarousel) {
		return
	}
	settings, err := api.carousel.Settings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, carouselAdminResponse{
		Settings:    settings,
		ImageTypes:  carousel.ImageTypeOptions(),
		ImageStyles: api.carousel.ImageStyleOptions(),
		Statuses:    api.carousel.Statuses(),
	})
}

func (api *API) handleSaveCarouselSettings(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AdministerCarousel) {
		return
	}
	settings, err := api.carousel.Settings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	// Fields missing from the body keep their current value.
	if err := decodeJSON(r, &settings); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	saved, err := api.carousel.SaveSettings(r.Context(), carousel.SaveSettingsInput{
		Settings: settings,
		ActorID:  actorID(account),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (api *API) handleListCarouselItems(w http.ResponseWriter, r *http.Request) {
	if !requireAccount(w, api.accounts(r), permissions.AdministerCarousel) {
		return
	}
	items, err := api.carousel.ListItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (api *API) handleCreateCarouselItem(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AdministerCarousel) {
		return
	}
	var body carouselItemRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	item, err := api.carousel.CreateItem(r.Context(), body.createInput(actorID(account)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (api *API) handleGetCarouselItem(w http.ResponseWriter, r *http.Request) {
	if !requireAccount(w, api.accounts(r), permissions.AdministerCarousel) {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	item, err := api.carousel.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) handleUpdateCarouselItem(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AdministerCarousel) {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body carouselItemRequest
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	item, err := api.carousel.UpdateItem(r.Context(), carousel.UpdateItemInput{
		ID:           id,
		ImageID:      body.ImageID,
		ImageAlt:     body.ImageAlt,
		ImageTitle:   body.ImageTitle,
		ImageLink:    body.ImageLink,
		CaptionTitle: body.CaptionTitle,
		CaptionText:  body.CaptionText,
		Weight:       body.Weight,
		Status:       body.Status,
		ActorID:      actorID(account),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (api *API) handleDeleteCarouselItem(w http.ResponseWriter, r *http.Request) {
	account := api.accounts(r)
	if !requireAccount(w, account, permissions.AdministerCarousel) {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := api.carousel.DeleteItem(r.Context(), carousel.DeleteItemRequest{ID: id, ActorID: actorID(account)}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleCarouselBlock(w http.ResponseWriter, r *http.Request) {
	out, err := api.carousel.RenderBlock(r.Context(), api.accounts(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, out)
}
