package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"travelbook/pkg/client"
	apperrors "travelbook/pkg/errors"
	"travelbook/pkg/logger"
	"travelbook/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

const genericFailure = "Something went wrong"

const (
	pageForm = "form.html"
	pageList = "list.html"
)

var notices = map[string]string{
	"created": "Booking created",
	"updated": "Booking updated",
	"deleted": "Booking deleted",
}

//go:embed templates/*.html
var templateFS embed.FS

type page struct {
	Title  string
	Banner string
	Notice string
	Form   *Form
	List   *ListView
}

type Handler struct {
	api   client.BookingAPI
	pages map[string]*template.Template
	log   *logger.Logger
}

func NewHandler(api client.BookingAPI, log *logger.Logger) (*Handler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	return &Handler{
		api:   api,
		pages: pages,
		log:   log,
	}, nil
}

func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, 2)
	for _, name := range []string{pageForm, pageList} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.CreateForm)
	router.GET("/bookings", h.List)
	router.POST("/bookings", h.Create)
	router.GET("/bookings/:id/edit", h.EditForm)
	router.POST("/bookings/:id", h.Update)
	router.POST("/bookings/:id/delete", h.Delete)
}

func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.render(w, r, http.StatusOK, pageForm, page{
		Title:  "Travel Booking System",
		Notice: notices[r.URL.Query().Get("notice")],
		Form:   NewForm(),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.renderList(w, r, http.StatusOK, "")
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.submit(w, r, NewForm(), "created")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.api.GetBooking(r.Context(), id)
	if err != nil {
		h.logFailure(r, "EditForm", "GetBooking", err)
		h.renderList(w, r, statusFor(err), bannerFor(err))
		return
	}

	form := NewForm()
	form.Edit(*booking)
	h.render(w, r, http.StatusOK, pageForm, page{
		Title: "Edit Booking",
		Form:  form,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	form := NewForm()
	form.Mode = ModeEdit
	form.EditID = ps.ByName("id")
	h.submit(w, r, form, "updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if _, err := h.api.DeleteBooking(r.Context(), id); err != nil {
		h.logFailure(r, "Delete", "DeleteBooking", err)
		h.renderList(w, r, statusFor(err), bannerFor(err))
		return
	}

	redirect(w, r, "/bookings", "deleted")
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, form *Form, notice string) {
	title := "Travel Booking System"
	if form.Editing() {
		title = "Edit Booking"
	}

	if err := r.ParseForm(); err != nil {
		h.logFailure(r, "submit", "ParseForm", err)
		h.render(w, r, http.StatusBadRequest, pageForm, page{
			Title:  title,
			Banner: "Invalid form submission",
			Form:   form,
		})
		return
	}
	form.Bind(r.PostForm)

	if _, err := form.Submit(r.Context(), h.api); err != nil {
		status := statusFor(err)
		banner := bannerFor(err)

		var apiErr *client.APIError
		switch {
		case errors.Is(err, ErrInvalidDraft):
			status = http.StatusUnprocessableEntity
			banner = ""
		case errors.As(err, &apiErr) && apiErr.Code == apperrors.CodeValidation:
			mergeDetails(form, apiErr.Details)
		default:
			h.logFailure(r, "submit", string(form.Mode), err)
		}

		h.render(w, r, status, pageForm, page{
			Title:  title,
			Banner: banner,
			Form:   form,
		})
		return
	}

	redirect(w, r, "/bookings", notice)
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, status int, banner string) {
	list := NewListView()
	list.Load(r.Context(), h.api)

	if list.Failed() {
		h.logFailure(r, "List", "GetBookings", list.Err)
		if status == http.StatusOK {
			status = http.StatusBadGateway
		}
	}

	h.render(w, r, status, pageList, page{
		Title:  "All Bookings",
		Banner: banner,
		Notice: notices[r.URL.Query().Get("notice")],
		List:   list,
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data page) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Error("failed to render page",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"page", name,
			"error", err,
		)
		http.Error(w, genericFailure, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.log.Error("failed to write page", "page", name, "error", err)
	}
}

func (h *Handler) logFailure(r *http.Request, handlerName, operation string, err error) {
	h.log.Error("booking API call failed",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"handler", handlerName,
		"operation", operation,
		"error", err,
	)
}

func redirect(w http.ResponseWriter, r *http.Request, path, notice string) {
	target := path
	if notice != "" {
		target += "?" + url.Values{"notice": {notice}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// bannerFor shows API errors verbatim, except internal ones; anything that
// never reached the API collapses to one generic message.
func bannerFor(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Code != apperrors.CodeInternal && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericFailure
}

func statusFor(err error) int {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	switch apiErr.Code {
	case apperrors.CodeValidation:
		return http.StatusUnprocessableEntity
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func mergeDetails(form *Form, details map[string]any) {
	if len(details) == 0 {
		return
	}
	if form.Errors == nil {
		form.Errors = make(map[string]string, len(details))
	}
	for field, msg := range details {
		if s, ok := msg.(string); ok {
			form.Errors[field] = s
		}
	}
}
