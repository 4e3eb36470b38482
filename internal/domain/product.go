package domain

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	TgPostURL   string    `json:"tg_post_url,omitempty"`
	Team        string    `json:"team,omitempty"`
	Size        string    `json:"size,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	League      string    `json:"league,omitempty"`
	Season      string    `json:"season,omitempty"`
	KitType     string    `json:"kit_type,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Gallery     []string  `json:"gallery"`
}
