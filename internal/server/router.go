package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"krua/internal/order/controller"
)

func NewRouter(orderCtrl *controller.OrderController, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", orderCtrl.List)
		r.Post("/", orderCtrl.Create)
		r.Get("/summary/weekly", orderCtrl.WeeklySummary)
		r.Get("/{code}", orderCtrl.GetByCode)
		r.Put("/{code}", orderCtrl.UpdateStatus)
	})

	return r
}
