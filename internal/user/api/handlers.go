package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"ride-analytics/internal/shared/apperrors"
	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/user/domain"
	"ride-analytics/internal/user/jwt"
)

// fail writes the error response and emits the access line with the mapped
// status, so error exits show up in the request log like successes do.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	status := apperrors.CheckError(err)
	util.ErrResponseInJson(w, err)
	h.logger.HTTP(status, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) badBody(w http.ResponseWriter, r *http.Request, start time.Time, instance string, err error) {
	h.logger.Error(instance, err)
	util.WriteJSONError(w, "invalid JSON body", http.StatusBadRequest)
	h.logger.HTTP(http.StatusBadRequest, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req domain.RegisterRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.badBody(w, r, start, "RegisterHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Register(ctx, req.Username, req.HashedPassword); err != nil {
		h.fail(w, r, start, err)
		return
	}

	util.ResponseInJson(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
	h.logger.HTTP(http.StatusCreated, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req domain.LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.badBody(w, r, start, "LoginHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	hash, err := h.service.Login(ctx, req.Username)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"hashed_password": hash,
	})
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req domain.VerifyRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.badBody(w, r, start, "VerifyHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	token, err := h.service.Verify(ctx, req.Username, req.HashedPassword)
	if err != nil {
		h.fail(w, r, start, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(jwt.TokenTTL.Seconds()),
	})
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}

func (h *Handler) LogRide(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req domain.LogRideRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.badBody(w, r, start, "LogRideHandler", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.LogRide(ctx, req); err != nil {
		h.fail(w, r, start, err)
		return
	}

	util.ResponseInJson(w, http.StatusOK, map[string]string{
		"message": "Ride logged successfully",
	})
	h.logger.HTTP(http.StatusOK, time.Since(start), r.RemoteAddr, r.Method, r.URL.Path)
}
