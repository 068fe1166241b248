package model

// ChatMessage is one entry in a conversation, oldest first.
type ChatMessage struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// ChatContext is a read-only snapshot of the viewer attached to each chat
// request. It is never stored server-side.
type ChatContext struct {
	Filename     string `json:"filename"`
	CurrentPage  int    `json:"currentPage"`
	TotalPages   int    `json:"totalPages"`
	SelectedText string `json:"selectedText"`
}
