package testserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"calibra/coach-app/internal/domain"
)

// --- Users ---

type userPayload struct {
	Name        string   `json:"name"`
	Surname     string   `json:"surname"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Objectives  []string `json:"objectives"`
	Limitations []string `json:"limitations"`
	Status      string   `json:"status"`
}

func (s *Server) handleListUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []domain.User{}
	for _, record := range s.users {
		if roleOf(record) == domain.RoleClient {
			users = append(users, record.user)
		}
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleGetUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUser(c.Param("id"))
	if record == nil {
		abortWithError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	c.JSON(http.StatusOK, record.user)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" {
		abortWithError(c, http.StatusBadRequest, "Nombre y email son obligatorios")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUserByEmail(req.Email) != nil {
		abortWithError(c, http.StatusConflict, "Ya existe un usuario con ese email")
		return
	}
	record := &userRecord{
		user: domain.User{
			ID:         newID(),
			Name:       req.Name,
			Surname:    req.Surname,
			Email:      req.Email,
			Phone:      req.Phone,
			InviteCode: newCode(),
			Profile: domain.Profile{
				Objectives:  req.Objectives,
				Limitations: req.Limitations,
				Status:      "Pendiente",
			},
		},
		role: domain.RoleClient,
	}
	s.users = append(s.users, record)
	c.JSON(http.StatusCreated, record.user)
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var req userPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUser(c.Param("id"))
	if record == nil {
		abortWithError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	if req.Name != "" {
		record.user.Name = req.Name
	}
	if req.Surname != "" {
		record.user.Surname = req.Surname
	}
	if req.Email != "" {
		record.user.Email = req.Email
	}
	if req.Phone != "" {
		record.user.Phone = req.Phone
	}
	if req.Objectives != nil {
		record.user.Profile.Objectives = req.Objectives
	}
	if req.Limitations != nil {
		record.user.Profile.Limitations = req.Limitations
	}
	if req.Status != "" {
		record.user.Profile.Status = req.Status
	}
	c.JSON(http.StatusOK, record.user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := c.Param("id")
	for i, record := range s.users {
		if record.user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"msg": "Usuario eliminado"})
			return
		}
	}
	abortWithError(c, http.StatusNotFound, "Usuario no encontrado")
}

func (s *Server) handleRecoveryCode(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUser(c.Param("id"))
	if record == nil {
		abortWithError(c, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	code := newCode()
	if record.activated {
		record.recoveryCode = code
	} else {
		record.user.InviteCode = code
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

// --- Exercises ---

type exercisePayload struct {
	Name         string          `json:"name"`
	Category     domain.Category `json:"category"`
	VideoURL     string          `json:"videoUrl"`
	Instructions string          `json:"instructions"`
	Tags         []string        `json:"tags"`
}

func (s *Server) handleListExercises(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, append([]domain.Exercise{}, s.exercises...))
}

// bindExercise accepts both encodings the client uses: a JSON body, or a
// multipart form with repeated "tags" fields and an optional "image"
// attachment.
func (s *Server) bindExercise(c *gin.Context) (exercisePayload, string, bool) {
	if ct := c.ContentType(); ct == "application/json" {
		var req exercisePayload
		if err := c.ShouldBindJSON(&req); err != nil {
			return exercisePayload{}, "", false
		}
		return req, "", true
	}

	req := exercisePayload{
		Name:         c.PostForm("name"),
		Category:     domain.Category(c.PostForm("category")),
		VideoURL:     c.PostForm("videoUrl"),
		Instructions: c.PostForm("instructions"),
		Tags:         c.PostFormArray("tags"),
	}
	image := ""
	if file, err := c.FormFile("image"); err == nil {
		image = "/uploads/exercises/" + file.Filename
	}
	return req, image, true
}

func (s *Server) handleCreateExercise(c *gin.Context) {
	req, image, ok := s.bindExercise(c)
	if !ok || req.Name == "" {
		abortWithError(c, http.StatusBadRequest, "El ejercicio necesita un nombre")
		return
	}
	if !req.Category.Valid() {
		abortWithError(c, http.StatusBadRequest, "Categoría no válida")
		return
	}

	exercise := domain.Exercise{
		ID:           newID(),
		Name:         req.Name,
		Category:     req.Category,
		VideoURL:     req.VideoURL,
		Image:        image,
		Instructions: req.Instructions,
		Tags:         req.Tags,
	}
	s.mu.Lock()
	s.exercises = append(s.exercises, exercise)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(c *gin.Context) {
	req, image, ok := s.bindExercise(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.exercises {
		if s.exercises[i].ID != c.Param("id") {
			continue
		}
		ex := &s.exercises[i]
		if req.Name != "" {
			ex.Name = req.Name
		}
		if req.Category != "" {
			ex.Category = req.Category
		}
		if req.VideoURL != "" {
			ex.VideoURL = req.VideoURL
		}
		if req.Instructions != "" {
			ex.Instructions = req.Instructions
		}
		if req.Tags != nil {
			ex.Tags = req.Tags
		}
		if image != "" {
			ex.Image = image
		}
		c.JSON(http.StatusOK, ex)
		return
	}
	abortWithError(c, http.StatusNotFound, "Ejercicio no encontrado")
}

// handleDeleteExercise removes the exercise only; entries referencing it
// stay and become dangling, which the client must render as placeholders.
func (s *Server) handleDeleteExercise(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.exercises {
		if s.exercises[i].ID == c.Param("id") {
			s.exercises = append(s.exercises[:i], s.exercises[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"msg": "Ejercicio eliminado"})
			return
		}
	}
	abortWithError(c, http.StatusNotFound, "Ejercicio no encontrado")
}

// --- Templates ---

type templatePayload struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Exercises   []domain.WorkoutExercise `json:"exercises"`
}

func (s *Server) handleListTemplates(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Serve populated exercise refs, as the real backend does.
	templates := make([]domain.Template, len(s.templates))
	copy(templates, s.templates)
	for i := range templates {
		templates[i].Exercises = s.populateRefs(templates[i].Exercises)
	}
	c.JSON(http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(c *gin.Context) {
	var req templatePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		abortWithError(c, http.StatusBadRequest, "La plantilla necesita un título")
		return
	}
	template := domain.Template{
		ID:          newID(),
		Title:       req.Title,
		Description: req.Description,
		Exercises:   req.Exercises,
	}
	s.mu.Lock()
	s.templates = append(s.templates, template)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, template)
}

func (s *Server) handleUpdateTemplate(c *gin.Context) {
	var req templatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID != c.Param("id") {
			continue
		}
		if req.Title != "" {
			s.templates[i].Title = req.Title
		}
		s.templates[i].Description = req.Description
		if req.Exercises != nil {
			s.templates[i].Exercises = req.Exercises
		}
		c.JSON(http.StatusOK, s.templates[i])
		return
	}
	abortWithError(c, http.StatusNotFound, "Plantilla no encontrada")
}

func (s *Server) handleDeleteTemplate(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.templates {
		if s.templates[i].ID == c.Param("id") {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"msg": "Plantilla eliminada"})
			return
		}
	}
	abortWithError(c, http.StatusNotFound, "Plantilla no encontrada")
}

// --- Workouts ---

type workoutPayload struct {
	ClientID  string                   `json:"clientId"`
	Title     string                   `json:"title"`
	Exercises []domain.WorkoutExercise `json:"exercises"`
}

func (s *Server) handleCreateWorkout(c *gin.Context) {
	var req workoutPayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.ClientID == "" {
		abortWithError(c, http.StatusBadRequest, "La rutina necesita cliente y título")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(req.ClientID) == nil {
		abortWithError(c, http.StatusNotFound, "Cliente no encontrado")
		return
	}
	workout := domain.Workout{
		ID:           newID(),
		ClientID:     req.ClientID,
		Title:        req.Title,
		DateAssigned: time.Now().UTC(),
		Exercises:    req.Exercises,
	}
	s.workouts = append(s.workouts, workout)
	c.JSON(http.StatusCreated, workout)
}

func (s *Server) handleWorkoutsForClient(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workouts := []domain.Workout{}
	for _, w := range s.workouts {
		if w.ClientID == c.Param("id") {
			w.Exercises = s.populateRefs(w.Exercises)
			workouts = append(workouts, w)
		}
	}
	c.JSON(http.StatusOK, workouts)
}

func (s *Server) handleUpdateWorkout(c *gin.Context) {
	var req workoutPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.workouts {
		if s.workouts[i].ID != c.Param("id") {
			continue
		}
		if req.Title != "" {
			s.workouts[i].Title = req.Title
		}
		if req.Exercises != nil {
			s.workouts[i].Exercises = req.Exercises
		}
		c.JSON(http.StatusOK, s.workouts[i])
		return
	}
	abortWithError(c, http.StatusNotFound, "Rutina no encontrada")
}

func (s *Server) handleDeleteWorkout(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.workouts {
		if s.workouts[i].ID == c.Param("id") {
			s.workouts = append(s.workouts[:i], s.workouts[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"msg": "Rutina eliminada"})
			return
		}
	}
	abortWithError(c, http.StatusNotFound, "Rutina no encontrada")
}

// populateRefs fills in names for refs that still resolve; deleted
// exercises stay as bare ids, exactly like the real backend's populate.
func (s *Server) populateRefs(entries []domain.WorkoutExercise) []domain.WorkoutExercise {
	out := make([]domain.WorkoutExercise, len(entries))
	copy(out, entries)
	for i := range out {
		for _, ex := range s.exercises {
			if ex.ID == out[i].Exercise.ID {
				out[i].Exercise.Name = ex.Name
				break
			}
		}
	}
	return out
}

// --- Evaluations / Notes / Feedback / Stats ---

func (s *Server) handleListEvaluations(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	evaluations := []domain.Evaluation{}
	for _, e := range s.evaluations {
		if e.ClientID == c.Param("clientId") {
			evaluations = append(evaluations, e)
		}
	}
	c.JSON(http.StatusOK, evaluations)
}

func (s *Server) handleCreateEvaluation(c *gin.Context) {
	var req struct {
		ClientID      string                `json:"clientId"`
		Type          domain.EvaluationType `json:"type"`
		PriorityZones []string              `json:"priorityZones"`
		Focus         string                `json:"focus"`
		Notes         string                `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ClientID == "" {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}
	evaluation := domain.Evaluation{
		ID:            newID(),
		ClientID:      req.ClientID,
		Date:          time.Now().UTC(),
		Type:          req.Type,
		PriorityZones: req.PriorityZones,
		Focus:         req.Focus,
		Notes:         req.Notes,
	}
	s.mu.Lock()
	s.evaluations = append(s.evaluations, evaluation)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, evaluation)
}

func (s *Server) handleListNotes(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := []domain.Note{}
	for _, n := range s.notes {
		if n.ClientID == c.Param("clientId") {
			notes = append(notes, n)
		}
	}
	c.JSON(http.StatusOK, notes)
}

func (s *Server) handleCreateNote(c *gin.Context) {
	var req struct {
		ClientID string `json:"clientId"`
		Content  string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		abortWithError(c, http.StatusBadRequest, "La nota necesita contenido")
		return
	}
	note := domain.Note{ID: newID(), ClientID: req.ClientID, Date: time.Now().UTC(), Content: req.Content}
	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Datos no válidos")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == c.Param("id") {
			s.notes[i].Content = req.Content
			c.JSON(http.StatusOK, s.notes[i])
			return
		}
	}
	abortWithError(c, http.StatusNotFound, "Nota no encontrada")
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == c.Param("id") {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"msg": "Nota eliminada"})
			return
		}
	}
	abortWithError(c, http.StatusNotFound, "Nota no encontrada")
}

func (s *Server) handleFeedbackForClient(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := []domain.Feedback{}
	for _, f := range s.feedback {
		if f.ClientID == c.Param("clientId") {
			logs = append(logs, f)
		}
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) handleStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.Stats{
		TotalExercises: len(s.exercises),
		ActiveWorkouts: len(s.workouts),
	}
	for _, record := range s.users {
		if roleOf(record) == domain.RoleClient {
			stats.TotalClients++
		}
	}
	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, f := range s.feedback {
		if f.Date.After(weekAgo) {
			stats.RecentFeedback++
		}
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleStatsActivity(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	activity := domain.Activity{RecentFeedbacks: []domain.Feedback{}}
	start := 0
	if len(s.feedback) > 5 {
		start = len(s.feedback) - 5
	}
	activity.RecentFeedbacks = append(activity.RecentFeedbacks, s.feedback[start:]...)
	for _, f := range s.feedback {
		activity.RPETrend = append(activity.RPETrend, domain.RPEPoint{
			Date: f.Date.Format("2006-01-02"),
			RPE:  float64(f.RPE),
		})
	}
	c.JSON(http.StatusOK, activity)
}

// handleAvatar serves both roles' avatar upload.
func (s *Server) handleAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Falta el archivo de imagen")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findUser(currentUserID(c))
	if record == nil {
		abortWithError(c, http.StatusUnauthorized, "Usuario no encontrado")
		return
	}
	record.user.Avatar = "/uploads/avatars/" + file.Filename
	c.JSON(http.StatusOK, gin.H{"avatar": record.user.Avatar})
}
