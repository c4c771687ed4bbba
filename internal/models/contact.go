package models

// ContactMessage: заявка с формы «связаться с нами»
type ContactMessage struct {
	Name    string `json:"name" example:"Asha Rao"`
	Email   string `json:"email" example:"asha@example.com"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}
