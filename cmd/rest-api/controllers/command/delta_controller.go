package cmd_controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/golobby/container/v3"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
)

type DeltaController struct {
	command delta_in.DeltaCommand
}

func NewDeltaController(c container.Container) *DeltaController {
	ctrl := &DeltaController{}
	if err := c.Resolve(&ctrl.command); err != nil {
		slog.Error("Failed to resolve DeltaCommand", "err", err)
	}
	return ctrl
}

type resetRequest struct {
	EntityType string `json:"entityType"`
	ClientType string `json:"clientType"`
}

// ResetHandler advances one or all cursors to now, discarding history.
func (ctrl *DeltaController) ResetHandler(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid request body"))
		return
	}

	var class *delta_entities.EntityType
	if req.EntityType != "" && req.EntityType != "all" {
		c := delta_entities.EntityType(req.EntityType)
		if !delta_entities.IsSyncClass(c) {
			common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "unknown entity type"))
			return
		}
		class = &c
	}

	clientType := delta_entities.ClientTypeWeb
	if req.ClientType == string(delta_entities.ClientTypeMobile) {
		clientType = delta_entities.ClientTypeMobile
	}

	cursor, err := ctrl.command.ResetCursor(r.Context(), common.GetUserID(r.Context()), class, clientType)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, cursor, http.StatusOK)
}
