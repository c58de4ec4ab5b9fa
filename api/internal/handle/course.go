package handle

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"lottie-studio/api/internal/course"
	"lottie-studio/api/internal/util"
)

const queryTimeout = 30 * time.Second

// CurrentSlot proxies the current-slot lookup for a public assignee alias.
func (h *Handle) CurrentSlot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	slot, err := h.Rosters.CurrentSlot(ctx, publicAssignee(r.PathValue("assignee")))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if slot == nil {
		util.WriteJSON(w, http.StatusOK, []any{})
		return
	}
	util.WriteJSON(w, http.StatusOK, slot)
}

func (h *Handle) SlotsForDate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	slots, err := h.Rosters.SlotsForDate(ctx, publicAssignee(r.PathValue("assignee")), r.PathValue("date"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	util.WriteJSON(w, http.StatusOK, slots)
}

func (h *Handle) Course(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	rec, err := h.Courses.CourseRecord(ctx, r.PathValue("course_id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	util.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handle) CefrLevel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	rec, err := h.Courses.CourseRecord(ctx, r.PathValue("course_id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	util.WriteJSON(w, http.StatusOK, map[string]string{"cefr_level": h.Courses.CefrLevel(rec)})
}

func (h *Handle) TargetMaterial(w http.ResponseWriter, r *http.Request) {
	rec, assignee, weekday, ok := h.courseParams(w, r)
	if !ok {
		return
	}
	materials, err := h.Courses.TargetMaterial(rec, assignee, weekday)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	util.WriteJSON(w, http.StatusOK, materials)
}

func (h *Handle) TargetVocabulary(w http.ResponseWriter, r *http.Request) {
	rec, assignee, weekday, ok := h.courseParams(w, r)
	if !ok {
		return
	}
	vocab, err := h.Courses.TargetVocabulary(rec, assignee, weekday)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	util.WriteJSON(w, http.StatusOK, vocab)
}

func (h *Handle) courseParams(w http.ResponseWriter, r *http.Request) (rec *course.CourseRecord, assignee string, weekday int, ok bool) {
	wd, err := strconv.Atoi(r.PathValue("weekday"))
	if err != nil || wd < 0 || wd > 6 {
		http.Error(w, "weekday must be 0-6", http.StatusBadRequest)
		return nil, "", 0, false
	}
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	record, err := h.Courses.CourseRecord(ctx, r.PathValue("course_id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return nil, "", 0, false
	}
	return record, publicAssignee(r.PathValue("assignee")), wd, true
}
