package contact

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	sessioncontext "codeslabs/frontend/shared/context"
	"codeslabs/frontend/shared/html"
	"codeslabs/frontend/shared/nav"
	"codeslabs/infrastructure/restclient"
	"codeslabs/models"
)

const sendFailedMessage = "Error al enviar el mensaje. Por favor, intenta nuevamente más tarde."

// Sender delivers the contact form to the content API.
type Sender interface {
	SendContact(ctx context.Context, in models.ContactInput) (string, error)
}

// ContactPageQueryHandler renders the empty contact form.
func ContactPageQueryHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	render(w, r, http.StatusOK, models.ContactInput{}, strings.TrimSpace(query.Get("status")), strings.TrimSpace(query.Get("error")), "")
}

// SendContactCommandHandler validates the form, sends it and redirects back
// with the confirmation. Invalid input re-renders the form with the values.
func SendContactCommandHandler(sender Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/contacto?error="+url.QueryEscape("Solicitud inválida"), http.StatusSeeOther)
			return
		}
		in := models.ContactInput{
			ContactName: r.FormValue("nombreContacto"),
			CompanyName: r.FormValue("nombreEmpresa"),
			Email:       r.FormValue("emailContacto"),
			Phone:       r.FormValue("telefonoContacto"),
			Comments:    r.FormValue("comentarios"),
		}
		if _, err := in.Validate(); err != nil {
			var ve *models.ValidationError
			field := ""
			if errors.As(err, &ve) {
				field = ve.Field
			}
			render(w, r, http.StatusBadRequest, in, "", err.Error(), field)
			return
		}

		msg, err := sender.SendContact(r.Context(), in)
		if err != nil {
			slog.Error("send contact failed", slog.Any("err", err))
			errMsg := sendFailedMessage
			var apiErr *restclient.Error
			if errors.As(err, &apiErr) && apiErr.Message != "" {
				errMsg = apiErr.Message
			}
			render(w, r, http.StatusBadGateway, in, "", errMsg, "")
			return
		}
		if msg == "" {
			msg = "Mensaje enviado exitosamente. Te contactaremos pronto."
		}
		http.Redirect(w, r, "/contacto?status="+url.QueryEscape(msg), http.StatusSeeOther)
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, in models.ContactInput, okMsg, errMsg, field string) {
	page := html.Page{
		Title:  "Contacto",
		Nav:    nav.BuildTopNavData(r.URL.Path, sessioncontext.IsAdmin(r.Context())),
		Status: okMsg,
		Error:  errMsg,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := html.Layout(page, ContactPage(in, field)).Render(r.Context(), w); err != nil {
		slog.Error("render contact page failed", slog.Any("err", err))
	}
}
