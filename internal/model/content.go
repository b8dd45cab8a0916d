package model

import "time"

// Solution is an industry solution showcased on the public site.
type Solution struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Image       string `json:"image" db:"image"`
	Icon        string `json:"icon" db:"icon"`
}

// Product is a catalog entry on the public site.
type Product struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Category    string `json:"category" db:"category"`
	Description string `json:"description" db:"description"`
	Image       string `json:"image" db:"image"`
	Video       string `json:"video,omitempty" db:"video"`
}

// NewsItem is a published news article.
type NewsItem struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Date     string `json:"date" db:"date"`
	Category string `json:"category" db:"category"`
	Summary  string `json:"summary" db:"summary"`
	Image    string `json:"image" db:"image"`
	Source   string `json:"source,omitempty" db:"source"`
	Author   string `json:"author,omitempty" db:"author"`
}

// PartnerBenefit is a selling point shown on the partner recruitment page.
type PartnerBenefit struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
}

// Association is an industry association or alliance profile.
type Association struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"type"`
	Description string    `json:"description" db:"description"`
	Content     string    `json:"content,omitempty" db:"content"`
	JoinInfo    string    `json:"join_info,omitempty" db:"join_info"`
	Logo        string    `json:"logo" db:"logo"`
	ContactInfo string    `json:"contact_info,omitempty" db:"contact_info"`
	Website     string    `json:"website,omitempty" db:"website"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ExhibitionApplication is a booth application submitted from the
// exhibitions page.
type ExhibitionApplication struct {
	ID          int64     `json:"id" db:"id"`
	Exhibition  string    `json:"exhibition" db:"exhibition"`
	Company     string    `json:"company" db:"company"`
	ContactName string    `json:"contact_name" db:"contact_name"`
	Phone       string    `json:"phone" db:"phone"`
	Email       string    `json:"email,omitempty" db:"email"`
	Message     string    `json:"message,omitempty" db:"message"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
