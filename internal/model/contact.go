package model

import "time"

// Contact is a stored contact-form submission.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Message   string
	CreatedAt time.Time
}

// ContactRequest is the POST /api/contact body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SiteProfile lists the public contact channels.
type SiteProfile struct {
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	WhatsApp     string `json:"whatsapp,omitempty"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
}
