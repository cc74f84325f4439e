package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-showcase/internal/booking/service"
	"ms-showcase/internal/flash"
	"ms-showcase/internal/logger"
	"ms-showcase/internal/qrcode"
)

type Handler struct {
	Service *service.BookingService
	Flash   flash.Store
	QR      *qrcode.Generator
	Logger  *logger.Logger

	pages pages
	forms *formBinder
}

func NewHandler(svc *service.BookingService, store flash.Store, qr *qrcode.Generator, log *logger.Logger) (*Handler, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	if store == nil {
		store = flash.CookieStore{}
	}
	return &Handler{
		Service: svc,
		Flash:   store,
		QR:      qr,
		Logger:  log,
		pages:   p,
		forms:   newFormBinder(),
	}, nil
}

// Routes mounts every booking page on r.
func (h *Handler) Routes(r chi.Router) {
	r.NotFound(h.NotFound)
	r.Get("/", h.Home)

	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Get("/create", h.CreateVenueForm)
		r.Post("/create", h.CreateVenue)
		r.Get("/{venueID}", h.ShowVenue)
		r.Delete("/{venueID}", h.DeleteVenue)
		r.Get("/{venueID}/edit", h.EditVenueForm)
		r.Post("/{venueID}/edit", h.EditVenue)
		r.Get("/{venueID}/qr", h.VenueQR)
	})

	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Get("/create", h.CreateArtistForm)
		r.Post("/create", h.CreateArtist)
		r.Get("/{artistID}", h.ShowArtist)
		r.Delete("/{artistID}", h.DeleteArtist)
		r.Get("/{artistID}/edit", h.EditArtistForm)
		r.Post("/{artistID}/edit", h.EditArtist)
		r.Get("/{artistID}/qr", h.ArtistQR)
	})

	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Get("/create", h.CreateShowForm)
		r.Post("/create", h.CreateShow)
	})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, http.StatusOK)
}

// renderHome shows the landing page with every queued flash message plus
// any passed in directly.
func (h *Handler) renderHome(w http.ResponseWriter, r *http.Request, status int, extra ...flash.Message) {
	h.render(w, r, status, "home", page{Flashes: append(h.popFlashes(w, r), extra...)})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.pages.render(w, http.StatusNotFound, "404", page{Title: "Not found"}); err != nil {
		h.Logger.Error("BOOKING", err.Error())
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Error("BOOKING", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	if rerr := h.pages.render(w, http.StatusInternalServerError, "500", page{Title: "Server error"}); rerr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Recoverer renders the 500 page for panics raised further down the chain.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.serverError(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	if err := h.pages.render(w, status, name, data); err != nil {
		h.serverError(w, r, err)
	}
}

func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) []flash.Message {
	messages, err := h.Flash.Pop(w, r)
	if err != nil {
		h.Logger.Warn("FLASH", err.Error())
	}
	return messages
}

func (h *Handler) addFlash(w http.ResponseWriter, r *http.Request, category, text string) {
	if err := h.Flash.Add(w, r, flash.Message{Category: category, Text: text}); err != nil {
		h.Logger.Warn("FLASH", err.Error())
	}
}

// handleLookupError renders 404 for missing rows and 500 for anything else.
func (h *Handler) handleLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.NotFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

func pathID(r *http.Request, key string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func sendJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) sendPNG(w http.ResponseWriter, r *http.Request, pagePath string) {
	if h.QR == nil {
		h.NotFound(w, r)
		return
	}
	png, err := h.QR.PNG(pagePath)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
