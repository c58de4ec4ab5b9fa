package handle

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lottie-studio/api/internal/util"
)

type buildResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BuildBlueprint runs the full blueprint pipeline and stages the draft for
// review. The operator gets the outcome either way.
func (h *Handle) BuildBlueprint(w http.ResponseWriter, r *http.Request) {
	h.Log.Info("job run started", zap.String("route", "/baba"))

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Minute)
	defer cancel()

	act, err := h.Blueprints.BuildBlueprint(ctx)
	if err != nil {
		h.Log.Error("blueprint build failed", zap.Error(err))
		h.Notifier.Notify("Blueprint build failed: " + err.Error())
		http.Error(w, "blueprint build: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.Notifier.Notify(fmt.Sprintf("Blueprint %s staged. Validate activity_blueprint.json before running /build.", act.ID))
	util.WriteJSON(w, http.StatusOK, buildResponse{
		ID:      act.ID,
		Status:  "success",
		Message: "Activity blueprint built successfully. Validate data/activity_blueprint.json before running /build route.",
	})
}

// BuildActivity finalizes the reviewed blueprint into a publishable activity.
func (h *Handle) BuildActivity(w http.ResponseWriter, r *http.Request) {
	h.Log.Info("job run started", zap.String("route", "/build"))

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Minute)
	defer cancel()

	act, err := h.Activities.BuildActivity(ctx)
	if err != nil {
		h.Log.Error("activity build failed", zap.Error(err))
		h.Notifier.Notify("Activity build failed: " + err.Error())
		http.Error(w, "activity build: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.Notifier.Notify("Activity " + act.ID + " built and appended to history.")
	util.WriteJSON(w, http.StatusOK, buildResponse{
		ID:      act.ID,
		Status:  "success",
		Message: "Activity built successfully. Exported to data/activity.json.",
	})
}
