package domain

import "time"

// AnalysisSummary 分析记录摘要
type AnalysisSummary struct {
	ID                string
	Question          string
	Status            string
	Difficulty        string
	TotalSubquestions int
	CreatedAt         time.Time
}
