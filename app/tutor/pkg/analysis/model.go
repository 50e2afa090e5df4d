package analysis

// DifficultyLevel 难度级别
type DifficultyLevel string

const (
	DifficultyEasy     DifficultyLevel = "easy"
	DifficultyMedium   DifficultyLevel = "medium"
	DifficultyHard     DifficultyLevel = "hard"
	DifficultyAdvanced DifficultyLevel = "advanced"
)

// KnowledgeModule 知识模块
type KnowledgeModule string

const (
	ModuleAlgebra            KnowledgeModule = "algebra"
	ModuleGeometry           KnowledgeModule = "geometry"
	ModuleFunction           KnowledgeModule = "function"
	ModuleStatistics         KnowledgeModule = "statistics"
	ModuleNumberTheory       KnowledgeModule = "number_theory"
	ModuleCoordinateGeometry KnowledgeModule = "coordinate_geometry"
	ModuleTrigonometry       KnowledgeModule = "trigonometry"
	ModuleComprehensive      KnowledgeModule = "comprehensive"
)

// 响应状态
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// 结构化结果的固定取值
const (
	FormatVersion = "1.0"
	Subject       = "数学"
	GradeLevel    = "初中"

	defaultBackground      = "暂无背景信息"
	defaultOverallApproach = "根据题目要求逐步求解"
	defaultApplication     = "在解题过程中应用"
	defaultReasoning       = "根据题目要求进行分析"
	suggestionType         = "解题建议"
)

// AnalysisObjective 考查意图
type AnalysisObjective struct {
	KnowledgePoints   []string `json:"knowledge_points"`
	SkillRequirements []string `json:"skill_requirements"`
	ThinkingMethods   []string `json:"thinking_methods"`
}

// DifficultyAnalysis 难点解析
type DifficultyAnalysis struct {
	DifficultPoints   []string `json:"difficult_points"`
	CommonErrors      []string `json:"common_errors"`
	SolvingStrategies []string `json:"solving_strategies"`
}

// QuestionAnalysis 题目分析
type QuestionAnalysis struct {
	Background         string             `json:"background"`
	Difficulty         DifficultyLevel    `json:"difficulty"`
	Objectives         AnalysisObjective  `json:"objectives"`
	DifficultyAnalysis DifficultyAnalysis `json:"difficulty_analysis"`
	OverallApproach    string             `json:"overall_approach"`
}

// KnowledgePoint 知识点
type KnowledgePoint struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Application string          `json:"application"` // 在本题中的应用方式
	Module      KnowledgeModule `json:"module"`
}

// SolutionStep 解题步骤
type SolutionStep struct {
	StepNumber  int      `json:"step_number"`
	Description string   `json:"description"`
	Reasoning   string   `json:"reasoning"`
	KeyPoints   []string `json:"key_points"`
}

// SubQuestion 小问分析
type SubQuestion struct {
	QuestionNumber     int              `json:"question_number"`
	QuestionText       string           `json:"question_text"`
	KeyPoints          []string         `json:"key_points"` // 考点识别
	KnowledgePoints    []KnowledgePoint `json:"knowledge_points"`
	SolutionSteps      []SolutionStep   `json:"solution_steps"`
	AlternativeMethods []string         `json:"alternative_methods"`
}

// Suggestion 解题建议
type Suggestion struct {
	Type     string `json:"type"`
	Content  string `json:"content"`
	Priority int    `json:"priority"`
}

// Document 数学压轴题分析的结构化结果
type Document struct {
	Question   string `json:"question"`
	AnalysisID string `json:"analysis_id"`
	Timestamp  string `json:"timestamp"`
	Version    string `json:"version"`

	QuestionAnalysis   QuestionAnalysis `json:"question_analysis"`
	SubQuestions       []SubQuestion    `json:"sub_questions"`
	GeneralSuggestions []Suggestion     `json:"general_suggestions"`

	TotalScore   *int   `json:"total_score,omitempty"` // 题目总分，题干中没有标注时为空
	QuestionType string `json:"question_type,omitempty"`
	Subject      string `json:"subject"`
	GradeLevel   string `json:"grade_level"`

	TotalSubquestions    int `json:"total_subquestions"`
	TotalKnowledgePoints int `json:"total_knowledge_points"`
	TotalSolutionSteps   int `json:"total_solution_steps"`
}

// Response 一次转换的结果
type Response struct {
	Status           string    `json:"status"`
	AnalysisID       string    `json:"analysis_id"`
	RawText          string    `json:"raw_text"`
	StructuredResult *Document `json:"structured_result,omitempty"`
	ProcessingTime   *float64  `json:"processing_time,omitempty"` // 秒
	Error            string    `json:"error,omitempty"`
}

// OK 是否转换成功
func (r *Response) OK() bool {
	return r != nil && r.Status == StatusSuccess && r.StructuredResult != nil
}
