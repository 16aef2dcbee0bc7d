package api

import (
	"net/http"
	"strings"
)

// CourseHandler serves the derived course list and course detail.
type CourseHandler struct {
	deps Dependencies
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(deps Dependencies) *CourseHandler {
	return &CourseHandler{deps: deps}
}

// HandleListCourses handles GET /courses?horizon=.
func (h *CourseHandler) HandleListCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	open, err := parseHorizon(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_horizon", err)
		return
	}

	courses, err := h.deps.CourseSummaries(r.Context(), open)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

// HandleGetCourse handles GET /courses/{name}?horizon=.
func (h *CourseHandler) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	name := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/courses/"))
	if name == "" {
		h.HandleListCourses(w, r)
		return
	}

	open, err := parseHorizon(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_horizon", err)
		return
	}

	courses, err := h.deps.CourseSummaries(r.Context(), open)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no_snapshot", err)
		return
	}
	for _, c := range courses {
		if c.Name == name {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "course_not_found", ErrNotFound)
}
