package chat

// Role identifies the author of a history message.
type Role string

const (
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
)

// ToolName tags assistant turns that were produced by a tool call.
type ToolName string

const (
	ToolNone  ToolName = ""
	ToolPrice ToolName = "get_crypto_price"
	ToolStats ToolName = "get_crypto_stats"
)

// Message is one model-facing history record. Assistant tool turns carry a
// compact bracket summary ("[Price of BTC = 69000]") instead of the rendered
// card so later model calls can replay past tool results as plain text.
type Message struct {
	Seq     int64    `json:"seq,omitempty"`
	Tool    ToolName `json:"tool,omitempty"`
	Role    Role     `json:"role"`
	Content string   `json:"content"`
}
