package analysis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// 小问标题的几种写法，按优先级排列
var subQuestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`### 第([一二三四五六七八九十\d]+)问分析`),
	regexp.MustCompile(`### (\d+)、`),
	regexp.MustCompile(`### （(\d+)）`),
	regexp.MustCompile(`### 第(\d+)小问`),
}

var chineseNumerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
}

// 题干里的分值标注，例如 "25.(10分)"、"（12分）"
var scorePattern = regexp.MustCompile(`[(（]\s*(\d+)\s*分\s*[)）]`)

// subQuestionSpan 各问分析中属于某一小问的片段
type subQuestionSpan struct {
	number int
	text   string
}

// segmentSubQuestions 切分各问分析部分。
// 第一个有命中的标题写法决定整段的切分方式，其余写法不再参与，避免同一小问被重复切出。
func segmentSubQuestions(section string) []subQuestionSpan {
	spans := []subQuestionSpan{}
	if section == "" {
		return spans
	}

	for _, pattern := range subQuestionPatterns {
		matches := pattern.FindAllStringSubmatchIndex(section, -1)
		if len(matches) == 0 {
			continue
		}
		for i, m := range matches {
			end := len(section)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			spans = append(spans, subQuestionSpan{
				number: NormalizeOrdinal(section[m[2]:m[3]]),
				text:   section[m[0]:end],
			})
		}
		return spans
	}
	return spans
}

// NormalizeOrdinal 把小问序号转换成整数：阿拉伯数字直接解析，中文数字查表，其余一律为 1
func NormalizeOrdinal(token string) int {
	token = strings.TrimSpace(token)
	if isDigits(token) {
		if n, err := strconv.Atoi(token); err == nil {
			return n
		}
	}
	if n, ok := chineseNumerals[token]; ok {
		return n
	}
	return 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseSubQuestion 解析单个小问片段
func parseSubQuestion(span subQuestionSpan) SubQuestion {
	keyPointsText := ExtractLabeledBlock(span.text, "考点识别")
	knowledgeText := ExtractLabeledBlock(span.text, "需要掌握的知识点")
	stepsText := ExtractLabeledBlock(span.text, "解题思路与步骤")

	knowledgePoints := []KnowledgePoint{}
	for _, item := range ExtractListItems(knowledgeText) {
		knowledgePoints = append(knowledgePoints, KnowledgePoint{
			Name:        knowledgePointName(item),
			Description: item,
			Application: defaultApplication,
			Module:      ClassifyModule(item),
		})
	}

	return SubQuestion{
		QuestionNumber:     span.number,
		QuestionText:       fmt.Sprintf("第%d问", span.number),
		KeyPoints:          ExtractListItems(keyPointsText),
		KnowledgePoints:    knowledgePoints,
		SolutionSteps:      parseSolutionSteps(stepsText),
		AlternativeMethods: []string{},
	}
}

// parseSolutionSteps 以数字或列表符号开头的行各算一步，步骤号按出现顺序编排
func parseSolutionSteps(text string) []SolutionStep {
	steps := []SolutionStep{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isStepLine(line) {
			continue
		}
		steps = append(steps, SolutionStep{
			StepNumber:  len(steps) + 1,
			Description: line,
			Reasoning:   defaultReasoning,
			KeyPoints:   []string{},
		})
	}
	return steps
}

func isStepLine(line string) bool {
	r := []rune(line)[0]
	return unicode.IsDigit(r) || r == '-' || r == '*' || r == '•'
}

// knowledgePointName 取冒号前的部分作为知识点名称，没有冒号时取前 20 个字符
func knowledgePointName(text string) string {
	for _, sep := range []string{"：", ":"} {
		if i := strings.Index(text, sep); i != -1 {
			return strings.TrimSpace(text[:i])
		}
	}
	r := []rune(text)
	if len(r) > 20 {
		r = r[:20]
	}
	return strings.TrimSpace(string(r))
}

// parseTotalScore 从题干的分值标注中取题目总分
func parseTotalScore(question string) *int {
	m := scorePattern.FindStringSubmatch(question)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
