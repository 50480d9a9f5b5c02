package exercise

import (
	"aeducacao_backend/internal/util"
	"encoding/json"
	"regexp"
	"strings"
)

// Exercise 一道题目。解析完成后不可变，按位置索引选项状态。
// 不校验选项中是否包含标注的答案：不一致时由展示层静默容忍。
type Exercise struct {
	Question    string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

var (
	questionLineRe    = regexp.MustCompile(`^(\d+)[.)]\s*(.*)`)
	optionLineRe      = regexp.MustCompile(`^([a-zA-Z])[.)]\s+(.*)`)
	answerLineRe      = regexp.MustCompile(`(?i)^(?:resposta|answer|gabarito)\s*:\s*(.*)`)
	explanationLineRe = regexp.MustCompile(`(?i)^(?:explicação|explicacao|explanation)\s*:\s*(.*)`)
)

// Parse 将获取到的习题资源解析为有序的题目列表。先尝试JSON，失败或
// 无题目时退回逐行的纯文本解析；两种策略都落空返回
// util.ErrNoExercisesFound，调用方须与网络错误区分开。
func Parse(data []byte) ([]Exercise, error) {
	if exercises := parseJSON(data); len(exercises) > 0 {
		return exercises, nil
	}

	if exercises := parsePlainText(string(data)); len(exercises) > 0 {
		return exercises, nil
	}

	return nil, util.ErrNoExercisesFound
}

// parseJSON 接受三种形态：数组、带exercises字段的对象、以及字段值中
// 内嵌的含question字段的对象（按出现顺序收集）。
func parseJSON(data []byte) []Exercise {
	var list []Exercise
	if err := json.Unmarshal(data, &list); err == nil {
		return nonEmpty(list)
	}

	var wrapper struct {
		Exercises []Exercise `json:"exercises"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Exercises) > 0 {
		return nonEmpty(wrapper.Exercises)
	}

	// 对象字段逐个扫描。json.Decoder保序，map不保序。
	var collected []Exercise
	dec := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // 字段名
			return nil
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}
		var candidate Exercise
		if err := json.Unmarshal(raw, &candidate); err == nil && candidate.Question != "" {
			collected = append(collected, candidate)
		}
	}
	return collected
}

func nonEmpty(list []Exercise) []Exercise {
	var out []Exercise
	for _, ex := range list {
		if ex.Question != "" {
			out = append(out, ex)
		}
	}
	return out
}

// parsePlainText 逐行解析松散格式的题目文本：
//
//	1. Pergunta?        开始新题目
//	a) opção            累积选项
//	Resposta: a         设置答案
//	Explicação: ...     设置解释
//
// 空行跳过；不在选项收集状态下的其它非空行并入当前题干；
// 输入结束时冲刷最后一道未完成的题目。
func parsePlainText(text string) []Exercise {
	var (
		exercises []Exercise
		current   *Exercise
		inOptions bool
	)

	flush := func() {
		if current != nil && current.Question != "" {
			exercises = append(exercises, *current)
		}
		current = nil
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := questionLineRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &Exercise{Question: strings.TrimSpace(m[2])}
			inOptions = false
			continue
		}

		if current == nil {
			continue
		}

		if m := optionLineRe.FindStringSubmatch(line); m != nil {
			current.Options = append(current.Options, strings.TrimSpace(m[2]))
			inOptions = true
			continue
		}

		if m := answerLineRe.FindStringSubmatch(line); m != nil {
			current.Answer = strings.TrimSpace(m[1])
			inOptions = false
			continue
		}

		if m := explanationLineRe.FindStringSubmatch(line); m != nil {
			current.Explanation = strings.TrimSpace(m[1])
			inOptions = false
			continue
		}

		// 题干续行
		if !inOptions {
			current.Question = strings.TrimSpace(current.Question + " " + line)
		}
	}

	flush()
	return exercises
}
