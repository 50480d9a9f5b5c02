package assessment

import (
	"context"
	"strings"
)

// State 评估流程的状态。只向前推进，不支持回退或修改已提交的回答。
type State string

const (
	StateNotStarted       State = "not_started"
	StateTopicLevels      State = "awaiting_topic_levels"
	StateFormatPreference State = "awaiting_format_preference"
	StateOpenEnded        State = "awaiting_open_ended"
	StateCompleted        State = "completed"
)

// QuestionKind 问题类别
type QuestionKind string

const (
	QuestionTopicLevel QuestionKind = "topic_level"
	QuestionFormat     QuestionKind = "format_preference"
	QuestionOpenEnded  QuestionKind = "open_ended"
)

// Question 预先生成的问题记录，回答写回到对应记录上
type Question struct {
	Kind    QuestionKind `json:"kind"`
	Topic   string       `json:"topic,omitempty"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options,omitempty"`
	Answer  string       `json:"answer,omitempty"`
}

// Result 评估完成后交给回调的用户画像
type Result struct {
	UserID          string   `json:"user_id"`
	KnowledgeGaps   []string `json:"knowledge_gaps"`
	PreferredFormat string   `json:"preferred_format"`
	Level           string   `json:"level"`
}

// Evaluator 对开放式回答做启发式评估，返回评估文本。
// 实际实现走后端分析接口。
type Evaluator interface {
	Evaluate(ctx context.Context, question, answer string) (string, error)
}

// 固定主题清单，按出现顺序生成一题一主题的水平问题
var DefaultTopics = []string{
	"HTML5",
	"CSS",
	"JavaScript",
	"estrutura de página web",
	"formulários",
}

var levelOptions = []string{"iniciante", "intermediário", "avançado"}

var formatOptions = []string{"texto", "vídeo", "áudio", "imagem"}

var openEndedPrompts = []string{
	"Explique com suas palavras o que são elementos semânticos em HTML5.",
	"Descreva como você estruturaria um formulário de cadastro em uma página web.",
}

// 评估文本中出现任一子串即视为暴露知识缺口
var gapSignals = []string{"incorreto", "incompleto"}

// 开放题按关键词归入的固定主题集合，无命中时用兜底标签
// 按固定顺序匹配，命中多个关键词时归到最靠前的主题
var openEndedTopicKeywords = []struct {
	keyword string
	topic   string
}{
	{"semântic", "HTML5"},
	{"html", "HTML5"},
	{"formulário", "formulários"},
	{"formulario", "formulários"},
	{"css", "CSS"},
	{"javascript", "JavaScript"},
}

const fallbackGapTopic = "conceitos gerais"

// Flow 线性问答状态机：依次询问每个主题的水平、偏好格式和两道开放
// 题，然后进入完成态。完成回调恰好触发一次。
type Flow struct {
	UserID          string         `json:"user_id"`
	State           State          `json:"state"`
	Questions       []Question     `json:"questions"`
	Current         int            `json:"current"`
	KnowledgeGaps   []string       `json:"knowledge_gaps"`
	PreferredFormat string         `json:"preferred_format"`
	Level           string         `json:"level"`
	FormatTally     map[string]int `json:"format_tally"`
	LevelVotes      map[string]int `json:"level_votes"`
	Completed       bool           `json:"completed"`

	onComplete func(Result)
}

// OnComplete 注册完成回调。Flow 会做JSON序列化存储，回调在每次
// 反序列化后需要重新挂接。
func (f *Flow) OnComplete(fn func(Result)) {
	f.onComplete = fn
}

// NewFlow 生成固定顺序的问题列表；topics 为空时使用默认主题清单
func NewFlow(userID string, topics []string, onComplete func(Result)) *Flow {
	if len(topics) == 0 {
		topics = DefaultTopics
	}

	var questions []Question
	for _, topic := range topics {
		questions = append(questions, Question{
			Kind:    QuestionTopicLevel,
			Topic:   topic,
			Prompt:  "Qual o seu nível de conhecimento em " + topic + "?",
			Options: levelOptions,
		})
	}
	questions = append(questions, Question{
		Kind:    QuestionFormat,
		Prompt:  "Qual formato de conteúdo você prefere?",
		Options: formatOptions,
	})
	for _, prompt := range openEndedPrompts {
		questions = append(questions, Question{
			Kind:   QuestionOpenEnded,
			Prompt: prompt,
		})
	}

	return &Flow{
		UserID:      userID,
		State:       StateNotStarted,
		Questions:   questions,
		FormatTally: map[string]int{},
		LevelVotes:  map[string]int{},
		onComplete:  onComplete,
	}
}

// Start 进入第一道问题
func (f *Flow) Start() *Question {
	if f.State != StateNotStarted {
		return f.CurrentQuestion()
	}
	f.State = f.stateFor(0)
	return f.CurrentQuestion()
}

// CurrentQuestion 当前待回答的问题，完成后返回 nil
func (f *Flow) CurrentQuestion() *Question {
	if f.State == StateCompleted || f.Current >= len(f.Questions) {
		return nil
	}
	return &f.Questions[f.Current]
}

func (f *Flow) stateFor(idx int) State {
	if idx >= len(f.Questions) {
		return StateCompleted
	}
	switch f.Questions[idx].Kind {
	case QuestionTopicLevel:
		return StateTopicLevels
	case QuestionFormat:
		return StateFormatPreference
	default:
		return StateOpenEnded
	}
}

// Answer 记录当前问题的回答并前移。到达终态时按多数票定级
// （平票回退 intermediário）并触发一次完成回调。
func (f *Flow) Answer(ctx context.Context, answer string, evaluator Evaluator) *Question {
	q := f.CurrentQuestion()
	if q == nil {
		return nil
	}
	if f.State == StateNotStarted {
		f.Start()
	}

	q.Answer = answer

	switch q.Kind {
	case QuestionTopicLevel:
		level := strings.ToLower(strings.TrimSpace(answer))
		f.LevelVotes[level]++
		if level == "iniciante" {
			f.KnowledgeGaps = append(f.KnowledgeGaps, q.Topic)
		}
	case QuestionFormat:
		f.PreferredFormat = answer
		f.FormatTally[answer]++
	case QuestionOpenEnded:
		f.evaluateOpenEnded(ctx, q, evaluator)
	}

	f.Current++
	f.State = f.stateFor(f.Current)

	if f.State == StateCompleted {
		f.complete()
	}
	return f.CurrentQuestion()
}

// evaluateOpenEnded 把回答交给分析接口；评估失败时静默跳过，不阻断
// 流程（评估只用于补充缺口信息）。
func (f *Flow) evaluateOpenEnded(ctx context.Context, q *Question, evaluator Evaluator) {
	if evaluator == nil || strings.TrimSpace(q.Answer) == "" {
		return
	}

	verdict, err := evaluator.Evaluate(ctx, q.Prompt, q.Answer)
	if err != nil {
		return
	}

	lower := strings.ToLower(verdict)
	signaled := false
	for _, signal := range gapSignals {
		if strings.Contains(lower, signal) {
			signaled = true
			break
		}
	}
	if !signaled {
		return
	}

	topic := fallbackGapTopic
	promptLower := strings.ToLower(q.Prompt)
	for _, kt := range openEndedTopicKeywords {
		if strings.Contains(promptLower, kt.keyword) {
			topic = kt.topic
			break
		}
	}
	f.addGap(topic)
}

func (f *Flow) addGap(topic string) {
	for _, g := range f.KnowledgeGaps {
		if g == topic {
			return
		}
	}
	f.KnowledgeGaps = append(f.KnowledgeGaps, topic)
}

// complete 结算整体水平并触发回调，重复进入不会再次触发
func (f *Flow) complete() {
	if f.Completed {
		return
	}
	f.Completed = true

	f.Level = pluralityLevel(f.LevelVotes)

	if f.onComplete != nil {
		f.onComplete(Result{
			UserID:          f.UserID,
			KnowledgeGaps:   f.KnowledgeGaps,
			PreferredFormat: f.PreferredFormat,
			Level:           f.Level,
		})
	}
}

// pluralityLevel 多数票定级；平票按固定顺序裁决，默认 intermediário
func pluralityLevel(votes map[string]int) string {
	best := "intermediário"
	bestCount := 0
	// 平票裁决顺序：intermediário > iniciante > avançado
	for _, level := range []string{"intermediário", "iniciante", "avançado"} {
		if votes[level] > bestCount {
			best = level
			bestCount = votes[level]
		}
	}
	return best
}
