package http

import (
	"errors"
	"net/http"
	"time"

	"actiowatch/internal/domain"
	"actiowatch/internal/transport/http/response"
)

type AuthHandler struct {
	base
	svc domain.AuthService
}

func NewAuthHandler(svc domain.AuthService, writer response.ResponseWriter) *AuthHandler {
	return &AuthHandler{base: newBase(writer), svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		h.writer.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := h.validator.Validate(req); len(errs) > 0 {
		h.writer.WriteValidationError(w, errs)
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.writer.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrAuthDisabled):
			h.writer.WriteError(w, http.StatusNotFound, "Authentication is disabled")
		default:
			h.writer.WriteError(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  time.Unix(res.ExpiresAt, 0),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "OK",
		Data:    res,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	h.writer.Write(w, http.StatusOK, &response.Response{Message: "OK"})
}
