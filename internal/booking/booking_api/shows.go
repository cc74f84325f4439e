package booking_api

import (
	"errors"
	"net/http"

	"ms-showcase/internal/booking/service"
	"ms-showcase/internal/flash"
)

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := h.Service.ListShows(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "shows", page{Title: "Shows", Flashes: h.popFlashes(w, r), Data: shows})
}

func (h *Handler) CreateShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "show_form", page{Title: "Post a show", Form: &ShowForm{}, Action: "/shows/create"})
}

func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "show_form", page{Title: "Post a show", Form: &ShowForm{}, Action: "/shows/create"})
		return
	}
	var form ShowForm
	fieldErrs, err := h.forms.bind(&form, r.PostForm)
	if err != nil {
		if errors.Is(err, errInvalidForm) {
			h.render(w, r, http.StatusBadRequest, "show_form", page{Title: "Post a show", Form: &form, Errors: fieldErrs, Action: "/shows/create"})
			return
		}
		h.serverError(w, r, err)
		return
	}

	show, err := form.Model()
	if err != nil {
		h.render(w, r, http.StatusBadRequest, "show_form", page{
			Title:  "Post a show",
			Form:   &form,
			Errors: FieldErrors{"start_time": "Use YYYY-MM-DD HH:MM:SS."},
			Action: "/shows/create",
		})
		return
	}
	err = h.Service.CreateShow(r.Context(), &show)
	var refErr *service.ReferenceError
	switch {
	case errors.As(err, &refErr):
		msg := "No venue with this id."
		if refErr.Column == "artist_id" {
			msg = "No artist with this id."
		}
		h.render(w, r, http.StatusBadRequest, "show_form", page{
			Title:  "Post a show",
			Form:   &form,
			Errors: FieldErrors{refErr.Column: msg},
			Action: "/shows/create",
		})
	case err != nil:
		h.renderHome(w, r, http.StatusOK, flash.Message{Category: flash.Danger, Text: "An error occurred. Show could not be listed."})
	default:
		h.renderHome(w, r, http.StatusOK, flash.Message{Category: flash.Success, Text: "Show was successfully listed!"})
	}
}
