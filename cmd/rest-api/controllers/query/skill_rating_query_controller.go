package query_controllers

import (
	"log/slog"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
)

type SkillRatingQueryController struct {
	query skill_in.SkillRatingQuery
}

func NewSkillRatingQueryController(c container.Container) *SkillRatingQueryController {
	ctrl := &SkillRatingQueryController{}
	if err := c.Resolve(&ctrl.query); err != nil {
		slog.Error("Failed to resolve SkillRatingQuery", "err", err)
	}
	return ctrl
}

func (ctrl *SkillRatingQueryController) UserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid userId"))
		return
	}

	profile, err := ctrl.query.UserProfile(r.Context(), userID)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, profile, http.StatusOK)
}

func (ctrl *SkillRatingQueryController) ActivityRatingsHandler(w http.ResponseWriter, r *http.Request) {
	activityID, err := uuid.Parse(mux.Vars(r)["activityId"])
	if err != nil {
		common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "invalid activityId"))
		return
	}

	ratings, err := ctrl.query.ActivityRatings(r.Context(), activityID, common.GetUserID(r.Context()))
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, map[string]interface{}{"ratings": ratings}, http.StatusOK)
}

func (ctrl *SkillRatingQueryController) SuspiciousHandler(w http.ResponseWriter, r *http.Request) {
	patterns, err := ctrl.query.SuspiciousPatterns(r.Context())
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	common.WriteSuccessResponse(w, map[string]interface{}{"patterns": patterns}, http.StatusOK)
}
