package routing

import (
	"context"
	"net/http"

	"github.com/golobby/container/v3"
	"github.com/gorilla/mux"
	"github.com/sportlink/sportlink-api/cmd/rest-api/controllers"
	cmd_controllers "github.com/sportlink/sportlink-api/cmd/rest-api/controllers/command"
	query_controllers "github.com/sportlink/sportlink-api/cmd/rest-api/controllers/query"
	"github.com/sportlink/sportlink-api/cmd/rest-api/middlewares"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	"github.com/sportlink/sportlink-api/pkg/infra/metrics"
)

const (
	Health  string = "/health"
	Metrics string = "/metrics"

	Activities          string = "/activities"
	ActivityDetail      string = "/activities/{id}"
	ActivityJoin        string = "/activities/{id}/join"
	ActivityLeave       string = "/activities/{id}/leave"
	ActivityRespond     string = "/activities/{id}/participants/{pid}/respond"
	ActivityComplete    string = "/activities/{id}/complete"
	ActivityELOStatus   string = "/activities/{id}/elo-status"
	ActivityReprocess   string = "/activities/{id}/reprocess-elo"
	ActivityBalance     string = "/activities/{id}/balance-teams"

	SkillRatingSubmit   string = "/skill-ratings/submit"
	SkillRatingDetail   string = "/skill-ratings/{id}"
	SkillRatingUser     string = "/skill-ratings/user/{userId}"
	SkillRatingActivity string = "/skill-ratings/activity/{activityId}"
	SkillRatingSuspect  string = "/skill-ratings/suspicious"

	DeltaChanges string = "/delta/changes"
	DeltaStatus  string = "/delta/status"
	DeltaReset   string = "/delta/reset"

	Leaderboard string = "/leaderboard/{activityTypeId}"
)

func NewRouter(ctx context.Context, c container.Container) http.Handler {
	var config common.Config
	if err := c.Resolve(&config); err != nil {
		panic(err)
	}

	healthController := controllers.NewHealthController(c)
	activityController := cmd_controllers.NewActivityController(c)
	skillRatingController := cmd_controllers.NewSkillRatingController(c)
	deltaController := cmd_controllers.NewDeltaController(c)
	activityQueryController := query_controllers.NewActivityQueryController(c)
	skillRatingQueryController := query_controllers.NewSkillRatingQueryController(c)
	deltaQueryController := query_controllers.NewDeltaQueryController(c)

	auth := middlewares.NewAuthMiddleware(config.Auth.JWTSecret)

	r := mux.NewRouter()

	r.Use(middlewares.RecoveryMiddleware)
	r.Use(metrics.Middleware)
	r.Use(mux.CORSMethodMiddleware(r))

	// unauthenticated surface
	r.HandleFunc(Health, healthController.Handler).Methods("GET")
	r.Handle(Metrics, metrics.Handler()).Methods("GET")

	// everything else requires a Bearer token
	api := r.NewRoute().Subrouter()
	api.Use(auth.Handler)

	api.HandleFunc(Activities, activityController.CreateHandler).Methods("POST")
	api.HandleFunc(ActivityDetail, activityQueryController.GetHandler).Methods("GET")
	api.HandleFunc(ActivityJoin, activityController.JoinHandler).Methods("POST")
	api.HandleFunc(ActivityLeave, activityController.LeaveHandler).Methods("POST")
	api.HandleFunc(ActivityRespond, activityController.RespondHandler).Methods("PUT")
	api.HandleFunc(ActivityComplete, activityController.CompleteHandler).Methods("POST")
	api.HandleFunc(ActivityELOStatus, activityQueryController.ELOStatusHandler).Methods("GET")
	api.HandleFunc(ActivityReprocess, activityController.ReprocessELOHandler).Methods("POST")
	api.HandleFunc(ActivityBalance, activityController.BalanceTeamsHandler).Methods("POST")

	api.HandleFunc(SkillRatingSubmit, skillRatingController.SubmitHandler).Methods("POST")
	api.HandleFunc(SkillRatingSuspect, skillRatingQueryController.SuspiciousHandler).Methods("GET")
	api.HandleFunc(SkillRatingUser, skillRatingQueryController.UserProfileHandler).Methods("GET")
	api.HandleFunc(SkillRatingActivity, skillRatingQueryController.ActivityRatingsHandler).Methods("GET")
	api.HandleFunc(SkillRatingDetail, skillRatingController.UpdateHandler).Methods("PUT")
	api.HandleFunc(SkillRatingDetail, skillRatingController.DeleteHandler).Methods("DELETE")

	api.HandleFunc(DeltaChanges, deltaQueryController.ChangesHandler).Methods("GET")
	api.HandleFunc(DeltaStatus, deltaQueryController.StatusHandler).Methods("GET")
	api.HandleFunc(DeltaReset, deltaController.ResetHandler).Methods("POST")

	api.HandleFunc(Leaderboard, activityQueryController.LeaderboardHandler).Methods("GET")

	return r
}
