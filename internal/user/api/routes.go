package api

import (
	"net/http"

	"ride-analytics/internal/shared/util"
	"ride-analytics/internal/user/app"
)

type Handler struct {
	service *app.UserService
	logger  *util.Logger
}

func NewHandler(service *app.UserService) *Handler {
	return &Handler{service: service, logger: util.New()}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /user/register", h.Register)
	mux.HandleFunc("POST /user/login", h.Login)
	mux.HandleFunc("POST /user/verify", h.Verify)
	mux.HandleFunc("POST /user/logUberRide", h.LogRide)
}
