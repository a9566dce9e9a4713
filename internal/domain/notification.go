package domain

import "time"

// Notification is a customer message left through the contact form.
// Resolving a notification deletes it.
type Notification struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactRequest represents a contact form submission
type ContactRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Category string `json:"category"`
	Message  string `json:"message" binding:"required"`
}
