package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/golobby/container/v3"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthController struct {
	container container.Container
}

func NewHealthController(container container.Container) *HealthController {
	return &HealthController{container: container}
}

func (ctrl *HealthController) Handler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	var client *mongo.Client
	if err := ctrl.container.Resolve(&client); err == nil && client != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
			common.WriteSuccessResponse(w, status, http.StatusServiceUnavailable)
			return
		}
		status["database"] = "ok"
	}

	common.WriteSuccessResponse(w, status, http.StatusOK)
}
