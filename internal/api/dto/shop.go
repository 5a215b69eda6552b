package dto

type ShopResponse struct {
	ShopID    string   `json:"shop_id"`
	Name      string   `json:"name"`
	Location  GeoPoint `json:"location"`
	Inventory []string `json:"inventory"`
}

type ListShopsResponse struct {
	Shops []ShopResponse `json:"shops"`
}
