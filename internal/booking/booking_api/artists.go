package booking_api

import (
	"errors"
	"fmt"
	"net/http"

	"ms-showcase/internal/booking/service"
	"ms-showcase/internal/flash"
)

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.Service.ListArtists(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "artists", page{Title: "Artists", Flashes: h.popFlashes(w, r), Data: artists})
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "home", page{Flashes: []flash.Message{{Category: flash.Danger, Text: "Invalid search."}}})
		return
	}
	term := r.PostForm.Get("search_term")
	result, err := h.Service.SearchArtists(r.Context(), term)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search", page{Title: "Search artists", Data: searchView{Term: term, Base: "artists", Result: result}})
}

func (h *Handler) ShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "artistID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	detail, err := h.Service.GetArtistDetail(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_artist", page{Title: detail.Name, Flashes: h.popFlashes(w, r), Data: detail})
}

func (h *Handler) CreateArtistForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "artist_form", page{Title: "List a new artist", Form: &ArtistForm{}, Action: "/artists/create"})
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "artist_form", page{Title: "List a new artist", Form: &ArtistForm{}, Action: "/artists/create"})
		return
	}
	var form ArtistForm
	fieldErrs, err := h.forms.bind(&form, r.PostForm)
	if err != nil {
		if errors.Is(err, errInvalidForm) {
			h.render(w, r, http.StatusBadRequest, "artist_form", page{Title: "List a new artist", Form: &form, Errors: fieldErrs, Action: "/artists/create"})
			return
		}
		h.serverError(w, r, err)
		return
	}

	artist := form.Model()
	if err := h.Service.CreateArtist(r.Context(), &artist); err != nil {
		h.renderHome(w, r, http.StatusOK, flash.Message{Category: flash.Danger, Text: fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name)})
		return
	}
	h.renderHome(w, r, http.StatusOK, flash.Message{Category: flash.Success, Text: fmt.Sprintf("Artist %s was successfully listed!", artist.Name)})
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "artistID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	artist, err := h.Service.GetArtist(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "artist_form", page{
		Title:  "Edit artist " + artist.Name,
		Form:   artistFormFrom(artist),
		Action: fmt.Sprintf("/artists/%d/edit", id),
	})
}

func (h *Handler) EditArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "artistID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	action := fmt.Sprintf("/artists/%d/edit", id)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "artist_form", page{Title: "Edit artist", Form: &ArtistForm{}, Action: action})
		return
	}
	var form ArtistForm
	fieldErrs, err := h.forms.bind(&form, r.PostForm)
	if err != nil {
		if errors.Is(err, errInvalidForm) {
			h.render(w, r, http.StatusBadRequest, "artist_form", page{Title: "Edit artist", Form: &form, Errors: fieldErrs, Action: action})
			return
		}
		h.serverError(w, r, err)
		return
	}

	artist, err := h.Service.UpdateArtist(r.Context(), id, form.Model())
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.addFlash(w, r, flash.Danger, fmt.Sprintf("Error! Artist %s could not be edited.", form.Name))
	default:
		h.addFlash(w, r, flash.Success, fmt.Sprintf("Artist %s was successfully edited!", artist.Name))
	}
	http.Redirect(w, r, fmt.Sprintf("/artists/%d", id), http.StatusSeeOther)
}

func (h *Handler) DeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "artistID")
	if !ok {
		sendJSONResponse(w, http.StatusNotFound, map[string]string{"error": "artist not found"})
		return
	}
	deleted, err := h.Service.DeleteArtist(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			sendJSONResponse(w, http.StatusNotFound, map[string]string{"error": "artist not found"})
			return
		}
		h.Logger.Error("BOOKING", fmt.Sprintf("Artist %d could not be deleted: %v", id, err))
		sendJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": "artist could not be deleted"})
		return
	}
	h.addFlash(w, r, flash.Success, fmt.Sprintf("Artist %s was successfully deleted!", deleted.Name))
	sendJSONResponse(w, http.StatusOK, deleted)
}

func (h *Handler) ArtistQR(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "artistID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if _, err := h.Service.GetArtist(r.Context(), id); err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.sendPNG(w, r, fmt.Sprintf("/artists/%d", id))
}
