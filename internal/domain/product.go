package domain

// Product represents a catalog item as served by the catalog API
type Product struct {
	ProductID    int64   `json:"ProductID"`
	Name         string  `json:"Name"`
	Description  string  `json:"Description"`
	Price        float64 `json:"Price"`
	CategoryID   int64   `json:"CategoryID"`
	ThumbnailURL string  `json:"ThumbnailURL"`
}

// Category represents a named grouping of products
type Category struct {
	CategoryID int64  `json:"CategoryID"`
	Name       string `json:"Name"`
}
