// Package analysis 把大模型按固定提纲输出的 Markdown 分析文本转换成结构化的分析结果。
//
// 转换只依赖文本模式匹配，不访问任何外部服务。缺失的章节会回落到默认值，
// 解析过程中的意外错误在 Convert 处统一转换为 status 为 error 的结果。
package analysis

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 输出提纲中的标题
const (
	headingQuestionAnalysis = "## 题目分析"
	headingSubQuestions     = "## 各问分析"
	headingSuggestions      = "## 解题建议"

	subheadingBackground = "### 题目背景"
	subheadingIntent     = "### 考查意图"
	subheadingDifficulty = "### 难点解析"
)

// Option 转换器选项
type Option func(*Converter)

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(c *Converter) { c.now = now }
}

// WithIDGenerator 替换分析 ID 的生成方式
func WithIDGenerator(newID func() string) Option {
	return func(c *Converter) { c.newID = newID }
}

// Converter Markdown 到结构化结果的转换器，无内部状态，可并发使用
type Converter struct {
	now   func() time.Time
	newID func() string
}

// NewConverter 创建转换器
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert 转换一段分析文本。任何情况下都返回结果而不会 panic。
func (c *Converter) Convert(question, markdown string) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = &Response{
				Status:     StatusError,
				AnalysisID: c.newID(),
				RawText:    markdown,
				Error:      fmt.Sprint(r),
			}
		}
	}()

	start := c.now()
	analysisID := c.newID()

	doc := c.buildDocument(question, markdown)
	doc.AnalysisID = analysisID
	doc.Timestamp = start.Format(time.RFC3339Nano)

	elapsed := c.now().Sub(start).Seconds()
	return &Response{
		Status:           StatusSuccess,
		AnalysisID:       analysisID,
		RawText:          markdown,
		StructuredResult: doc,
		ProcessingTime:   &elapsed,
	}
}

func (c *Converter) buildDocument(question, markdown string) *Document {
	text := Preprocess(markdown)

	subQuestions := parseSubQuestions(text)
	doc := &Document{
		Question:           question,
		Version:            FormatVersion,
		QuestionAnalysis:   parseQuestionAnalysis(text),
		SubQuestions:       subQuestions,
		GeneralSuggestions: parseSuggestions(text),
		TotalScore:         parseTotalScore(question),
		Subject:            Subject,
		GradeLevel:         GradeLevel,
		TotalSubquestions:  len(subQuestions),
	}
	for _, sq := range subQuestions {
		doc.TotalKnowledgePoints += len(sq.KnowledgePoints)
		doc.TotalSolutionSteps += len(sq.SolutionSteps)
	}
	return doc
}

func parseQuestionAnalysis(text string) QuestionAnalysis {
	section := ExtractSection(text, headingQuestionAnalysis, headingSubQuestions)
	if section == "" {
		return defaultQuestionAnalysis()
	}

	qa := defaultQuestionAnalysis()
	if background := ExtractSubsection(section, subheadingBackground); background != "" {
		qa.Background = background
	}
	qa.Difficulty = ClassifyDifficulty(text)
	qa.Objectives.KnowledgePoints = ExtractListItems(ExtractSubsection(section, subheadingIntent))
	qa.DifficultyAnalysis.DifficultPoints = ExtractListItems(ExtractSubsection(section, subheadingDifficulty))
	return qa
}

func defaultQuestionAnalysis() QuestionAnalysis {
	return QuestionAnalysis{
		Background: defaultBackground,
		Difficulty: DifficultyMedium,
		Objectives: AnalysisObjective{
			KnowledgePoints:   []string{},
			SkillRequirements: []string{},
			ThinkingMethods:   []string{},
		},
		DifficultyAnalysis: DifficultyAnalysis{
			DifficultPoints:   []string{},
			CommonErrors:      []string{},
			SolvingStrategies: []string{},
		},
		OverallApproach: defaultOverallApproach,
	}
}

func parseSubQuestions(text string) []SubQuestion {
	section := ExtractSection(text, headingSubQuestions, headingSuggestions)

	subQuestions := []SubQuestion{}
	for _, span := range segmentSubQuestions(section) {
		subQuestions = append(subQuestions, parseSubQuestion(span))
	}
	return subQuestions
}

func parseSuggestions(text string) []Suggestion {
	suggestions := []Suggestion{}
	section := ExtractSection(text, headingSuggestions, "")
	for i, item := range ExtractListItems(section) {
		suggestions = append(suggestions, Suggestion{
			Type:     suggestionType,
			Content:  item,
			Priority: i + 1,
		})
	}
	return suggestions
}

var defaultConverter = NewConverter()

// Convert 使用默认转换器转换分析文本
func Convert(question, markdown string) *Response {
	return defaultConverter.Convert(question, markdown)
}
