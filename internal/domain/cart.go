package domain

type CartItem struct {
	ID       int64   `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Favorite struct {
	ID      int64   `json:"id"`
	Product Product `json:"product"`
}
