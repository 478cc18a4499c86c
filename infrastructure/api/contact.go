package api

import (
	"errors"
	"log/slog"
	"net/http"

	"codeslabs/infrastructure/mailer"
	"codeslabs/models"
)

const (
	contactSentMessage   = "Mensaje enviado exitosamente. Te contactaremos pronto."
	contactFailedMessage = "Error al enviar el mensaje. Por favor, intenta nuevamente."
)

func (h *Handler) sendContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if !decode(w, r, &in) {
		return
	}
	in, err := in.Validate()
	if err != nil {
		fail(w, r, err)
		return
	}

	msg, err := h.store.SaveContactMessage(r.Context(), in)
	if err != nil {
		fail(w, r, err)
		return
	}

	if h.notifier != nil {
		err := h.notifier.NotifyContact(r.Context(), msg)
		switch {
		case errors.Is(err, mailer.ErrDisabled):
			// stored for later follow-up
		case err != nil:
			slog.Error("contact notification failed", slog.Int64("contact_id", msg.ID), slog.Any("err", err))
			respondError(w, http.StatusBadGateway, contactFailedMessage)
			return
		default:
			if err := h.store.MarkDelivered(r.Context(), msg.ID); err != nil {
				slog.Error("mark contact delivered failed", slog.Int64("contact_id", msg.ID), slog.Any("err", err))
			}
		}
	}

	respondMessage(w, http.StatusOK, contactSentMessage)
}
