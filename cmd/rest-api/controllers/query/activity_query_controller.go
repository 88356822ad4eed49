package query_controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
)

type ActivityQueryController struct {
	query activity_in.ActivityQuery
}

func NewActivityQueryController(c container.Container) *ActivityQueryController {
	ctrl := &ActivityQueryController{}
	if err := c.Resolve(&ctrl.query); err != nil {
		slog.Error("Failed to resolve ActivityQuery", "err", err)
	}
	return ctrl
}

func (ctrl *ActivityQueryController) GetHandler(w http.ResponseWriter, r *http.Request) {
	activityID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid id"))
		return
	}

	activity, err := ctrl.query.Get(r.Context(), activityID)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, activity, http.StatusOK)
}

func (ctrl *ActivityQueryController) ELOStatusHandler(w http.ResponseWriter, r *http.Request) {
	activityID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid id"))
		return
	}

	status, err := ctrl.query.ELOStatus(r.Context(), activityID)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, status, http.StatusOK)
}

func (ctrl *ActivityQueryController) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	activityTypeID, err := uuid.Parse(mux.Vars(r)["activityTypeId"])
	if err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid activityTypeId"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	top, err := ctrl.query.Leaderboard(r.Context(), activityTypeID, limit)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, map[string]interface{}{"leaderboard": top}, http.StatusOK)
}
