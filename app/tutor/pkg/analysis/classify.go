package analysis

import "strings"

type difficultyRule struct {
	level    DifficultyLevel
	keywords []string
}

type moduleRule struct {
	module   KnowledgeModule
	keywords []string
}

// 按顺序匹配，排在前面的规则优先
var difficultyRules = []difficultyRule{
	{DifficultyEasy, []string{"基础", "简单", "容易"}},
	{DifficultyMedium, []string{"中等", "一般", "适中"}},
	{DifficultyHard, []string{"困难", "复杂", "挑战"}},
	{DifficultyAdvanced, []string{"压轴", "高级", "综合"}},
}

// 三角函数排在代数之前，否则 "三角函数" 会先命中代数里的 "函数"
var moduleRules = []moduleRule{
	{ModuleTrigonometry, []string{"三角函数", "正弦", "余弦", "正切"}},
	{ModuleAlgebra, []string{"代数", "方程", "不等式", "函数", "多项式"}},
	{ModuleGeometry, []string{"几何", "三角形", "圆", "角度", "平行", "垂直"}},
	{ModuleCoordinateGeometry, []string{"坐标", "解析几何", "数轴"}},
	{ModuleFunction, []string{"函数", "图像", "定义域", "值域"}},
	{ModuleStatistics, []string{"统计", "概率", "数据"}},
	{ModuleNumberTheory, []string{"数论", "整数", "质数", "因数"}},
	{ModuleComprehensive, []string{"综合", "应用", "实际"}},
}

// ClassifyDifficulty 根据关键词判断难度，没有命中时为 medium
func ClassifyDifficulty(text string) DifficultyLevel {
	for _, rule := range difficultyRules {
		if containsAny(text, rule.keywords) {
			return rule.level
		}
	}
	return DifficultyMedium
}

// ClassifyModule 根据关键词判断知识模块，没有命中时为 comprehensive
func ClassifyModule(text string) KnowledgeModule {
	for _, rule := range moduleRules {
		if containsAny(text, rule.keywords) {
			return rule.module
		}
	}
	return ModuleComprehensive
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
