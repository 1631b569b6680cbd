package editor

// Tool selects what a pointer event does to the buffer.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolBucket
	ToolPicker
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolBrush, ToolEraser, ToolBucket, ToolPicker}

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "Brush"
	case ToolEraser:
		return "Eraser"
	case ToolBucket:
		return "Bucket"
	case ToolPicker:
		return "Picker"
	default:
		return "Unknown"
	}
}

// continuous tools also act on drag events.
func (t Tool) continuous() bool {
	return t == ToolBrush || t == ToolEraser
}
