package models

import "time"

// Inquiry is a stored course inquiry from the public intake form.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryRequest is the raw intake form payload before validation.
// Honeypot is a hidden field; bots that fill it are rejected.
type InquiryRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Message  string `json:"message" validate:"required,max=5000"`
	Honeypot string `json:"honeypot" validate:"isdefault"`
}

// InquiryNotification is the message published for every new inquiry.
type InquiryNotification struct {
	InquiryID string    `json:"inquiry_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
