package testserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"calibra/coach-app/internal/domain"
)

func (s *Server) handleMyWorkouts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workouts := []domain.Workout{}
	for _, w := range s.workouts {
		if w.ClientID == currentUserID(c) {
			w.Exercises = s.populateRefs(w.Exercises)
			workouts = append(workouts, w)
		}
	}
	c.JSON(http.StatusOK, workouts)
}

func (s *Server) handleMyFeedback(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := []domain.Feedback{}
	for _, f := range s.feedback {
		if f.ClientID == currentUserID(c) {
			logs = append(logs, f)
		}
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) handleCreateFeedback(c *gin.Context) {
	var req struct {
		WorkoutID string               `json:"workoutId"`
		RPE       int                  `json:"rpe"`
		Comments  string               `json:"comments"`
		Exercises []domain.ExerciseLog `json:"exercisesData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.WorkoutID == "" {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}
	if req.RPE < domain.RPEMin || req.RPE > domain.RPEMax {
		abortWithError(c, http.StatusBadRequest, "El RPE debe estar entre 1 y 10")
		return
	}

	report := domain.Feedback{
		ID:        newID(),
		ClientID:  currentUserID(c),
		WorkoutID: req.WorkoutID,
		Date:      time.Now().UTC(),
		RPE:       req.RPE,
		Comments:  req.Comments,
		Exercises: req.Exercises,
	}
	s.mu.Lock()
	s.feedback = append(s.feedback, report)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, report)
}
