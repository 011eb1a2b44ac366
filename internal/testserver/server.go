// Package testserver is a seeded, in-memory double of the coaching
// backend, faithful to the REST surface the client consumes. Tests seed
// accounts and fixtures, mount Handler() on an httptest.Server and point
// the client at it.
package testserver

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"calibra/coach-app/internal/domain"
)

type userRecord struct {
	user         domain.User
	role         domain.Role
	passwordHash string
	activated    bool
	recoveryCode string
}

// Server holds the seeded state behind the fake REST API.
type Server struct {
	jwtSecret     string
	jwtExpiration time.Duration

	mu          sync.Mutex
	users       []*userRecord
	exercises   []domain.Exercise
	templates   []domain.Template
	workouts    []domain.Workout
	evaluations []domain.Evaluation
	notes       []domain.Note
	feedback    []domain.Feedback
	requests    map[string]int

	engine *gin.Engine
}

// New creates an empty seeded server.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		jwtSecret:     "test-secret",
		jwtExpiration: time.Hour,
		requests:      map[string]int{},
	}
	s.engine = gin.New()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler to mount on an httptest.Server.
func (s *Server) Handler() *gin.Engine {
	return s.engine
}

// Requests returns how many times "METHOD /path" has been served. Used to
// assert that certain flows issue no network call.
func (s *Server) Requests(methodAndPath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[methodAndPath]
}

func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.requests[c.Request.Method+" "+c.Request.URL.Path]++
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) setupRoutes() {
	r := s.engine
	r.Use(s.countRequests())

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/claim-account", s.handleClaimAccount)
		auth.POST("/reset-password", s.handleResetPassword)
		auth.GET("/me", s.authMiddleware(), s.handleMe)
	}

	admin := r.Group("/api/admin", s.authMiddleware(), s.roleMiddleware(domain.RoleAdmin))
	{
		admin.GET("/users", s.handleListUsers)
		admin.POST("/users", s.handleCreateUser)
		admin.GET("/users/:id", s.handleGetUser)
		admin.PUT("/users/:id", s.handleUpdateUser)
		admin.DELETE("/users/:id", s.handleDeleteUser)
		admin.POST("/users/:id/recovery-code", s.handleRecoveryCode)

		admin.GET("/exercises", s.handleListExercises)
		admin.POST("/exercises", s.handleCreateExercise)
		admin.PUT("/exercises/:id", s.handleUpdateExercise)
		admin.DELETE("/exercises/:id", s.handleDeleteExercise)

		admin.GET("/templates", s.handleListTemplates)
		admin.POST("/templates", s.handleCreateTemplate)
		admin.PUT("/templates/:id", s.handleUpdateTemplate)
		admin.DELETE("/templates/:id", s.handleDeleteTemplate)

		admin.POST("/workouts", s.handleCreateWorkout)
		admin.GET("/workouts/client/:id", s.handleWorkoutsForClient)
		admin.PUT("/workouts/:id", s.handleUpdateWorkout)
		admin.DELETE("/workouts/:id", s.handleDeleteWorkout)

		admin.GET("/evaluations/:clientId", s.handleListEvaluations)
		admin.POST("/evaluations", s.handleCreateEvaluation)

		admin.GET("/notes/:clientId", s.handleListNotes)
		admin.POST("/notes", s.handleCreateNote)
		admin.PUT("/notes/:id", s.handleUpdateNote)
		admin.DELETE("/notes/:id", s.handleDeleteNote)

		admin.GET("/feedback/:clientId", s.handleFeedbackForClient)

		admin.GET("/stats", s.handleStats)
		admin.GET("/stats/activity", s.handleStatsActivity)

		admin.POST("/avatar", s.handleAvatar)
	}

	client := r.Group("/api/client", s.authMiddleware(), s.roleMiddleware(domain.RoleClient))
	{
		client.GET("/workouts", s.handleMyWorkouts)
		client.GET("/feedback", s.handleMyFeedback)
		client.POST("/feedback", s.handleCreateFeedback)
		client.POST("/avatar", s.handleAvatar)
	}
}

// --- Seeding ---

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func newCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}

func (s *Server) seedUser(name, email, password string, role domain.Role) domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	record := &userRecord{
		user:         domain.User{ID: newID(), Name: name, Email: email, Profile: domain.Profile{Status: "Activo"}},
		role:         role,
		passwordHash: string(hash),
		activated:    true,
	}
	s.mu.Lock()
	s.users = append(s.users, record)
	s.mu.Unlock()
	return record.user
}

// SeedCoach registers an activated coach account.
func (s *Server) SeedCoach(name, email, password string) domain.User {
	return s.seedUser(name, email, password, domain.RoleAdmin)
}

// SeedClient registers an activated client account.
func (s *Server) SeedClient(name, email, password string) domain.User {
	return s.seedUser(name, email, password, domain.RoleClient)
}

// SeedPendingClient registers a client that has not claimed its account
// yet. The invite code is stored uppercase, as the backend does.
func (s *Server) SeedPendingClient(name, email, inviteCode string) domain.User {
	record := &userRecord{
		user: domain.User{
			ID:         newID(),
			Name:       name,
			Email:      email,
			InviteCode: strings.ToUpper(inviteCode),
			Profile:    domain.Profile{Status: "Pendiente"},
		},
		role: domain.RoleClient,
	}
	s.mu.Lock()
	s.users = append(s.users, record)
	s.mu.Unlock()
	return record.user
}

// SeedExercise adds a library exercise.
func (s *Server) SeedExercise(name string, category domain.Category, tags ...string) domain.Exercise {
	exercise := domain.Exercise{ID: newID(), Name: name, Category: category, Tags: tags}
	s.mu.Lock()
	s.exercises = append(s.exercises, exercise)
	s.mu.Unlock()
	return exercise
}

// SeedTemplate adds a workout blueprint.
func (s *Server) SeedTemplate(title string, entries ...domain.WorkoutExercise) domain.Template {
	template := domain.Template{ID: newID(), Title: title, Exercises: entries}
	s.mu.Lock()
	s.templates = append(s.templates, template)
	s.mu.Unlock()
	return template
}

// SeedWorkout assigns a workout to a client.
func (s *Server) SeedWorkout(clientID, title string, entries ...domain.WorkoutExercise) domain.Workout {
	workout := domain.Workout{
		ID:           newID(),
		ClientID:     clientID,
		Title:        title,
		DateAssigned: time.Now().UTC(),
		Exercises:    entries,
	}
	s.mu.Lock()
	s.workouts = append(s.workouts, workout)
	s.mu.Unlock()
	return workout
}

// Workout returns a stored workout by id, for assertions.
func (s *Server) Workout(id string) (domain.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.workouts {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Workout{}, false
}

func (s *Server) findUser(id string) *userRecord {
	for _, record := range s.users {
		if record.user.ID == id {
			return record
		}
	}
	return nil
}

func (s *Server) findUserByEmail(email string) *userRecord {
	for _, record := range s.users {
		if strings.EqualFold(record.user.Email, email) {
			return record
		}
	}
	return nil
}
