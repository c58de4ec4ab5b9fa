package handle

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"lottie-studio/api/internal/activity"
	"lottie-studio/api/internal/notify"
)

type Handle struct {
	Blueprints *activity.BlueprintService
	Activities *activity.Service
	Rosters    activity.RosterResolver
	Courses    activity.CourseResolver
	Notifier   notify.Notifier
	DataDir    string
	AssetsDir  string
	Log        *zap.Logger
}

// Register wires every route onto the mux.
func (h *Handle) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /baba", h.BuildBlueprint)
	mux.HandleFunc("GET /build", h.BuildActivity)

	mux.HandleFunc("GET /course/slot_record/current/{assignee}", h.CurrentSlot)
	mux.HandleFunc("GET /course/slot_record/{date}/{assignee}", h.SlotsForDate)
	mux.HandleFunc("GET /course/target_material/{course_id}/{assignee}/{weekday}", h.TargetMaterial)
	mux.HandleFunc("GET /course/target_vocabulary/{course_id}/{assignee}/{weekday}", h.TargetVocabulary)
	mux.HandleFunc("GET /course/cefr_level/{course_id}", h.CefrLevel)
	mux.HandleFunc("GET /course/{course_id}", h.Course)

	mux.Handle("GET /data/", http.StripPrefix("/data/", http.FileServer(http.Dir(h.DataDir))))
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(h.AssetsDir))))
}

// publicAssignee maps the public analyst aliases used in URLs onto roster
// assignees.
func publicAssignee(alias string) string {
	switch strings.ToLower(strings.TrimSpace(alias)) {
	case "m-maker25":
		return "teacher1"
	case "cptfreedom":
		return "teacher2"
	default:
		return alias
	}
}
