package cmd_controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
)

type ActivityController struct {
	command activity_in.ActivityCommand
}

func NewActivityController(c container.Container) *ActivityController {
	ctrl := &ActivityController{}
	if err := c.Resolve(&ctrl.command); err != nil {
		slog.Error("Failed to resolve ActivityCommand", "err", err)
	}
	return ctrl
}

func (ctrl *ActivityController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var cmd activity_in.CreateActivityCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid request body"))
		return
	}
	cmd.CreatorID = common.GetUserID(r.Context())

	activity, err := ctrl.command.Create(r.Context(), cmd)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, activity, http.StatusCreated)
}

func (ctrl *ActivityController) JoinHandler(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	participant, err := ctrl.command.Join(r.Context(), activityID, common.GetUserID(r.Context()))
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, participant, http.StatusCreated)
}

func (ctrl *ActivityController) LeaveHandler(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := ctrl.command.Leave(r.Context(), activityID, common.GetUserID(r.Context())); err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, nil, http.StatusNoContent)
}

type respondRequest struct {
	Decision activity_in.RespondDecision `json:"decision"`
}

func (ctrl *ActivityController) RespondHandler(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	participantID, ok := pathID(w, r, "pid")
	if !ok {
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid request body"))
		return
	}

	err := ctrl.command.Respond(r.Context(), activityID, participantID, common.GetUserID(r.Context()), req.Decision)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, nil, http.StatusNoContent)
}

func (ctrl *ActivityController) CompleteHandler(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var cmd activity_in.CompleteActivityCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid request body"))
		return
	}
	cmd.ActivityID = activityID
	cmd.InvokerID = common.GetUserID(r.Context())

	result, err := ctrl.command.Complete(r.Context(), cmd)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, result, http.StatusOK)
}

func (ctrl *ActivityController) ReprocessELOHandler(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := ctrl.command.ReprocessELO(r.Context(), activityID, common.GetUserID(r.Context()))
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, result, http.StatusOK)
}

func (ctrl *ActivityController) BalanceTeamsHandler(w http.ResponseWriter, r *http.Request) {
	activityID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	assignments, err := ctrl.command.BalanceTeams(r.Context(), activityID, common.GetUserID(r.Context()))
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, map[string]interface{}{"assignments": assignments}, http.StatusOK)
}

// pathID parses a uuid path variable, writing the 400 itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
