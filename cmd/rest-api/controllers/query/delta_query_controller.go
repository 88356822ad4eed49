package query_controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golobby/container/v3"
	common "github.com/sportlink/sportlink-api/pkg/domain"
	delta_entities "github.com/sportlink/sportlink-api/pkg/domain/delta/entities"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	"github.com/sportlink/sportlink-api/pkg/infra/metrics"
)

type DeltaQueryController struct {
	query delta_in.DeltaQuery
}

func NewDeltaQueryController(c container.Container) *DeltaQueryController {
	ctrl := &DeltaQueryController{}
	if err := c.Resolve(&ctrl.query); err != nil {
		slog.Error("Failed to resolve DeltaQuery", "err", err)
	}
	return ctrl
}

// ChangesHandler serves one long-poll round. Responses are never cacheable
// and carry the adaptive interval hint in X-Poll-Interval.
func (ctrl *DeltaQueryController) ChangesHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := delta_in.FetchDeltasQuery{
		UserID:     common.GetUserID(r.Context()),
		ClientType: parseClientType(params.Get("clientType")),
	}

	if raw := params.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "since must be RFC3339"))
			return
		}
		q.Since = &since
	}

	if raw := params.Get("entityType"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			class := delta_entities.EntityType(strings.TrimSpace(name))
			if !delta_entities.IsSyncClass(class) {
				common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "unknown entity type "+name))
				return
			}
			q.EntityClasses = append(q.EntityClasses, class)
		}
	}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			common.WriteErrorResponse(w, common.NewAPIError(http.StatusBadRequest, "VALIDATION", "limit must be a positive integer"))
			return
		}
		q.Limit = limit
	}

	result, err := ctrl.query.FetchDeltas(r.Context(), q)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	metrics.DeltaPollsTotal.WithLabelValues(string(q.ClientType), strconv.FormatBool(result.HasChanges)).Inc()

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("X-Poll-Interval", strconv.Itoa(result.RecommendedPollInterval))
	common.WriteSuccessResponse(w, result, http.StatusOK)
}

func (ctrl *DeltaQueryController) StatusHandler(w http.ResponseWriter, r *http.Request) {
	clientType := parseClientType(r.URL.Query().Get("clientType"))

	status, err := ctrl.query.Status(r.Context(), common.GetUserID(r.Context()), clientType)
	if err != nil {
		common.WriteErrorResponse(w, common.MapError(err))
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	common.WriteSuccessResponse(w, status, http.StatusOK)
}

func parseClientType(raw string) delta_entities.ClientType {
	if raw == string(delta_entities.ClientTypeMobile) {
		return delta_entities.ClientTypeMobile
	}
	return delta_entities.ClientTypeWeb
}
