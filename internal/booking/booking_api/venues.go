package booking_api

import (
	"errors"
	"fmt"
	"net/http"

	"ms-showcase/internal/booking/service"
	"ms-showcase/internal/flash"
)

type searchView struct {
	Term   string
	Base   string
	Result interface{}
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := h.Service.ListAreas(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "venues", page{Title: "Venues", Flashes: h.popFlashes(w, r), Data: areas})
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "home", page{Flashes: []flash.Message{{Category: flash.Danger, Text: "Invalid search."}}})
		return
	}
	term := r.PostForm.Get("search_term")
	result, err := h.Service.SearchVenues(r.Context(), term)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "search", page{Title: "Search venues", Data: searchView{Term: term, Base: "venues", Result: result}})
}

func (h *Handler) ShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "venueID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	detail, err := h.Service.GetVenueDetail(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "show_venue", page{Title: detail.Name, Flashes: h.popFlashes(w, r), Data: detail})
}

func (h *Handler) CreateVenueForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "venue_form", page{Title: "List a new venue", Form: &VenueForm{}, Action: "/venues/create"})
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "venue_form", page{Title: "List a new venue", Form: &VenueForm{}, Action: "/venues/create"})
		return
	}
	var form VenueForm
	fieldErrs, err := h.forms.bind(&form, r.PostForm)
	if err != nil {
		if errors.Is(err, errInvalidForm) {
			h.render(w, r, http.StatusBadRequest, "venue_form", page{Title: "List a new venue", Form: &form, Errors: fieldErrs, Action: "/venues/create"})
			return
		}
		h.serverError(w, r, err)
		return
	}

	venue := form.Model()
	if err := h.Service.CreateVenue(r.Context(), &venue); err != nil {
		h.renderHome(w, r, http.StatusOK, flash.Message{Category: flash.Danger, Text: fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name)})
		return
	}
	h.renderHome(w, r, http.StatusOK, flash.Message{Category: flash.Success, Text: fmt.Sprintf("Venue %s was successfully listed!", venue.Name)})
}

func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "venueID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	venue, err := h.Service.GetVenue(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "venue_form", page{
		Title:  "Edit venue " + venue.Name,
		Form:   venueFormFrom(venue),
		Action: fmt.Sprintf("/venues/%d/edit", id),
	})
}

func (h *Handler) EditVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "venueID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	action := fmt.Sprintf("/venues/%d/edit", id)
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "venue_form", page{Title: "Edit venue", Form: &VenueForm{}, Action: action})
		return
	}
	var form VenueForm
	fieldErrs, err := h.forms.bind(&form, r.PostForm)
	if err != nil {
		if errors.Is(err, errInvalidForm) {
			h.render(w, r, http.StatusBadRequest, "venue_form", page{Title: "Edit venue", Form: &form, Errors: fieldErrs, Action: action})
			return
		}
		h.serverError(w, r, err)
		return
	}

	venue, err := h.Service.UpdateVenue(r.Context(), id, form.Model())
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.addFlash(w, r, flash.Danger, fmt.Sprintf("Error! Venue %s could not be edited.", form.Name))
	default:
		h.addFlash(w, r, flash.Success, fmt.Sprintf("Venue %s was successfully edited!", venue.Name))
	}
	http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "venueID")
	if !ok {
		sendJSONResponse(w, http.StatusNotFound, map[string]string{"error": "venue not found"})
		return
	}
	deleted, err := h.Service.DeleteVenue(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			sendJSONResponse(w, http.StatusNotFound, map[string]string{"error": "venue not found"})
			return
		}
		h.Logger.Error("BOOKING", fmt.Sprintf("Venue %d could not be deleted: %v", id, err))
		sendJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": "venue could not be deleted"})
		return
	}
	h.addFlash(w, r, flash.Success, fmt.Sprintf("Venue %s was successfully deleted!", deleted.Name))
	sendJSONResponse(w, http.StatusOK, deleted)
}

func (h *Handler) VenueQR(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "venueID")
	if !ok {
		h.NotFound(w, r)
		return
	}
	if _, err := h.Service.GetVenue(r.Context(), id); err != nil {
		h.handleLookupError(w, r, err)
		return
	}
	h.sendPNG(w, r, fmt.Sprintf("/venues/%d", id))
}
