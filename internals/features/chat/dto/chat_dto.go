package dto

// ChatTurn satu giliran percakapan sebelumnya yang dikirim ulang klien.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message    string     `json:"message"`
	History    []ChatTurn `json:"history"`
	MateriSlug string     `json:"materi_slug"`
	SubSlug    string     `json:"sub_slug"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
