package ai

// Message 對話消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// UserMessage 建立單一 user 消息列表
func UserMessage(content string) []Message {
	return []Message{{Role: "user", Content: content}}
}
