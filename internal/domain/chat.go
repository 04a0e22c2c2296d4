package domain

// ChatHistory é uma mensagem de n8n_chat_histories; Message guarda o jsonb bruto
type ChatHistory struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Message   []byte `json:"message"`
}

type Conversation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	PetName     string `json:"petName"`
	PetType     string `json:"petType"`
	PetBreed    string `json:"petBreed"`
	LastMessage string `json:"lastMessage"`
}
