package types

type StartChatRequest struct {
	Question string `json:"question,omitempty"`
}

type StartChatResponse struct {
	SessionID string `json:"sessionId"`
	Title     string `json:"title"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type FeedbackResponse struct {
	Success  bool   `json:"success"`
	Feedback string `json:"feedback"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
