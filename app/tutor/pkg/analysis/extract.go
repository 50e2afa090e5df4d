package analysis

import (
	"regexp"
	"strings"
)

var (
	blankRunPattern = regexp.MustCompile(`\n{3,}`)
	bulletPattern   = regexp.MustCompile(`^[-*•]\s*`)
	numberedPattern = regexp.MustCompile(`^\d+\.\s*`)
	listLinePattern = regexp.MustCompile(`^(?:[-*•]|\d+\.)`)
	headingPattern  = regexp.MustCompile(`^#{2,}`)
)

// Preprocess 统一文本格式：去掉代码块标记、统一换行符、压缩多余空行
func Preprocess(text string) string {
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankRunPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// ExtractSection 提取 start 与 end 两个标记之间的文本。
// end 为空或找不到时取到文本末尾；start 不存在时返回空串。
func ExtractSection(text, start, end string) string {
	pos := strings.Index(text, start)
	if pos == -1 {
		return ""
	}
	rest := text[pos+len(start):]
	if end != "" {
		if endPos := strings.Index(rest, end); endPos != -1 {
			rest = rest[:endPos]
		}
	}
	return strings.TrimSpace(rest)
}

// ExtractSubsection 提取以 marker 开头的行之后、下一个标题行之前的非空行
func ExtractSubsection(text, marker string) string {
	var result []string
	capture := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, marker):
			capture = true
		case capture && isHeading(line):
			return strings.Join(result, "\n")
		case capture && line != "":
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// ExtractLabeledBlock 提取 **label：** 之后的内容块。
// 标签行之后只允许空白；内容块在下一个加粗标签、空行、标题行或文本末尾处结束。
func ExtractLabeledBlock(text, label string) string {
	marker := "**" + label + "：**"
	pos := strings.Index(text, marker)
	if pos == -1 {
		return ""
	}

	rest := text[pos+len(marker):]
	nl := strings.Index(rest, "\n")
	if nl == -1 || strings.TrimSpace(rest[:nl]) != "" {
		return ""
	}
	rest = rest[nl+1:]

	var block []string
	started := false
	for _, line := range strings.Split(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// 标签与内容之间的空行会被跳过
			if !started {
				continue
			}
			break
		}
		if strings.HasPrefix(trimmed, "**") || isHeading(trimmed) {
			break
		}
		started = true
		block = append(block, line)
	}

	return strings.TrimSpace(strings.Join(block, "\n"))
}

// ExtractListItems 把列表行转换成去掉标记的条目。
// 与列表行混排的普通行会被忽略；整块都没有列表标记时，每个非空行即一个条目。
func ExtractListItems(text string) []string {
	items := []string{}
	var plain []string
	marked := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !isListLine(line) {
			plain = append(plain, line)
			continue
		}
		marked = true
		clean := bulletPattern.ReplaceAllString(line, "")
		clean = strings.TrimSpace(numberedPattern.ReplaceAllString(clean, ""))
		if clean != "" {
			items = append(items, clean)
		}
	}

	if !marked {
		for _, line := range plain {
			// 加粗标签和标题不是条目
			if !strings.HasPrefix(line, "**") && !isHeading(line) {
				items = append(items, line)
			}
		}
	}
	return items
}

func isListLine(line string) bool {
	if strings.HasPrefix(line, "**") {
		return false
	}
	return listLinePattern.MatchString(line)
}

func isHeading(line string) bool {
	return headingPattern.MatchString(line)
}
