package domain

// Stats is the coach dashboard summary computed server-side.
type Stats struct {
	TotalClients   int `json:"totalClients"`
	TotalExercises int `json:"totalExercises"`
	ActiveWorkouts int `json:"activeWorkouts"`
	RecentFeedback int `json:"recentFeedback"`
}

// RPEPoint is one point of the perceived-exertion trend line.
type RPEPoint struct {
	Date string  `json:"date"`
	RPE  float64 `json:"rpe"`
}

// Activity is the recent-activity feed for the coach dashboard.
type Activity struct {
	RecentFeedbacks []Feedback `json:"recentFeedbacks"`
	RPETrend        []RPEPoint `json:"rpeTrend,omitempty"`
}
