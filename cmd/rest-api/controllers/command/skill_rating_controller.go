package cmd_controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/golobby/container/v3"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
	"github.com/sportlink/sportlink-api/pkg/infra/metrics"
)

type SkillRatingController struct {
	command skill_in.SkillRatingCommand
}

func NewSkillRatingController(c container.Container) *SkillRatingController {
	ctrl := &SkillRatingController{}
	if err := c.Resolve(&ctrl.command); err != nil {
		slog.Error("Failed to resolve SkillRatingCommand", "err", err)
	}
	return ctrl
}

func (ctrl *SkillRatingController) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var cmd skill_in.SubmitSkillRatingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid request body"))
		return
	}
	cmd.RatingUserID = common.GetUserID(r.Context())

	rating, err := ctrl.command.Submit(r.Context(), cmd)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	metrics.SkillRatingsSubmittedTotal.Inc()
	common.WriteSuccessResponse(w, rating, http.StatusCreated)
}

func (ctrl *SkillRatingController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ratingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var cmd skill_in.UpdateSkillRatingCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid request body"))
		return
	}
	cmd.RatingID = ratingID
	cmd.CallerID = common.GetUserID(r.Context())

	rating, err := ctrl.command.Update(r.Context(), cmd)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, rating, http.StatusOK)
}

func (ctrl *SkillRatingController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ratingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	err := ctrl.command.Delete(r.Context(), ratingID, common.GetUserID(r.Context()), common.IsAdmin(r.Context()))
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, nil, http.StatusNoContent)
}
