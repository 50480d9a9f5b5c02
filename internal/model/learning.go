package model

// Gap 一条已识别的知识缺口
type Gap struct {
	Topic            string  `json:"topic"`
	Category         string  `json:"category"`
	Score            float64 `json:"score"`
	Severity         string  `json:"severity"`
	Frequency        int     `json:"frequency"`
	NegativeFeedback float64 `json:"negative_feedback"`
	TimeIntensity    float64 `json:"time_intensity"`
}

// EngagementMetrics 参与度聚合
type EngagementMetrics struct {
	TotalInteractions int     `json:"total_interactions"`
	FeedbackRate      float64 `json:"feedback_rate"`
	PositiveRate      float64 `json:"positive_rate"`
	TopicsExplored    int     `json:"topics_explored"`
}

// Suggestion 缺口对应的改进建议
type Suggestion struct {
	Topic       string `json:"topic"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Level       string `json:"level"`
}

// GapAnalysis GET /api/learning/analysis/{userId} 的响应体
type GapAnalysis struct {
	UserID                 string            `json:"user_id"`
	Status                 string            `json:"status"`
	Message                string            `json:"message,omitempty"`
	AnalysisDate           string            `json:"analysis_date,omitempty"`
	OverallProgress        float64           `json:"overall_progress"`
	EngagementMetrics      EngagementMetrics `json:"engagement_metrics"`
	IdentifiedGaps         []Gap             `json:"identified_gaps"`
	ImprovementSuggestions []Suggestion      `json:"improvement_suggestions"`
	Strengths              []string          `json:"strengths"`
	Weaknesses             []string          `json:"weaknesses"`
}

// PlanResource 改进计划步骤附带的学习资源
type PlanResource struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Preview string `json:"preview"`
}

// PlanStep 改进计划中的一个步骤
type PlanStep struct {
	Step              int            `json:"step"`
	Topic             string         `json:"topic"`
	Category          string         `json:"category"`
	Goal              string         `json:"goal"`
	SuggestedApproach string         `json:"suggested_approach"`
	Resources         []PlanResource `json:"resources"`
	EstimatedTime     string         `json:"estimated_time"`
}

// ImprovementPlan GET /api/learning/improvement-plan/{userId} 的响应体
type ImprovementPlan struct {
	UserID                    string     `json:"user_id"`
	Status                    string     `json:"status"`
	Message                   string     `json:"message,omitempty"`
	CreationDate              string     `json:"creation_date,omitempty"`
	RecommendedCompletionDate string     `json:"recommended_completion_date,omitempty"`
	PlanTitle                 string     `json:"plan_title,omitempty"`
	Steps                     []PlanStep `json:"steps"`
	OverallGoal               string     `json:"overall_goal,omitempty"`
}

// UpdateProfileRequest POST /api/learning/update-profile 的请求体
type UpdateProfileRequest struct {
	UserID string `json:"user_id" binding:"required"`
}
