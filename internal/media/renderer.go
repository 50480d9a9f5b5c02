package media

// Widget 前端应展示的媒体控件
type Widget string

const (
	WidgetVideoPlayer   Widget = "video-player"
	WidgetAudioPlayer   Widget = "audio-player"
	WidgetImage         Widget = "image"
	WidgetDocumentLink  Widget = "document-link"
	WidgetExercisesLink Widget = "exercises-link"
)

// RenderPlan 对“显示哪个控件、源是什么”的无副作用描述。媒体元素
// 自身的加载（如音视频的range请求）不在本层职责内。
type RenderPlan struct {
	Widget Widget `json:"widget"`
	Source string `json:"source"`
}

// Render 纯映射：已解析URL + 媒体类型 → 控件描述。unknown 不渲染任何
// 控件，返回 nil；本函数没有自身的错误路径。
func Render(url string, kind Kind) *RenderPlan {
	var w Widget
	switch kind {
	case KindVideo:
		w = WidgetVideoPlayer
	case KindAudio:
		w = WidgetAudioPlayer
	case KindImage:
		w = WidgetImage
	case KindMarkdown:
		w = WidgetDocumentLink
	case KindExercises:
		w = WidgetExercisesLink
	default:
		return nil
	}
	return &RenderPlan{Widget: w, Source: url}
}

// RenderReferences 为一组引用生成渲染计划，跳过无法渲染的引用
func RenderReferences(refs []Reference) []RenderPlan {
	var plans []RenderPlan
	for _, ref := range refs {
		if plan := Render(ref.ResolvedURL, ref.Kind); plan != nil {
			plans = append(plans, *plan)
		}
	}
	return plans
}
