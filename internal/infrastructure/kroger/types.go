package kroger

// 外部回應在客戶端邊界就轉成固定結構，不讓鬆散的巢狀 map 流進核心

// AuthResponse OAuth token 回應
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Price 商品價格
type Price struct {
	Regular float64 `json:"regular"`
	Promo   float64 `json:"promo,omitempty"`
}

// Item 商品販售單位
type Item struct {
	ItemID string `json:"itemId"`
	Size   string `json:"size,omitempty"`
	Price  *Price `json:"price,omitempty"`
}

// Product 商品
type Product struct {
	ProductID   string   `json:"productId"`
	UPC         string   `json:"upc,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Description string   `json:"description"`
	Items       []Item   `json:"items"`
}

// Pagination 分頁資訊
type Pagination struct {
	Start int `json:"start"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Meta 回應中繼資料
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// ProductSearchResponse 商品查詢回應
// Data 為空代表查無商品，是合法狀態而非錯誤
type ProductSearchResponse struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}
