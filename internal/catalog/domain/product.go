package domain

type Product struct {
	ID          int64           `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       int64           `json:"price" yaml:"price"` // Rupiah penuh, tanpa desimal
	Category    string          `json:"category" yaml:"category"`
	Rating      float64         `json:"rating" yaml:"rating"`
	Featured    bool            `json:"featured" yaml:"featured"`
	Image       string          `json:"image" yaml:"image"`
	Details     *ProductDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

type ProductDetails struct {
	Description  string   `json:"description" yaml:"description"`
	Features     []string `json:"features" yaml:"features"`
	Duration     string   `json:"duration" yaml:"duration"`
	Deliverables string   `json:"deliverables" yaml:"deliverables"`
}

// Sentinel kategori "semua". Halaman lama memakai "all" dan "All".
const CategoryAll = "all"

const (
	DefaultMinPrice int64 = 0
	DefaultMaxPrice int64 = 5000000
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// Criteria filter katalog. Search kosong cocok dengan semua produk.
type Criteria struct {
	Search   string
	MinPrice int64
	MaxPrice int64
	Category string
}

// DefaultCriteria sama dengan state awal halaman katalog
func DefaultCriteria() Criteria {
	return Criteria{
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Category: CategoryAll,
	}
}

// Request listing dari query string
type ListProductsRequest struct {
	Search   string  `form:"search"`
	MinPrice *int64  `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice *int64  `form:"max_price" binding:"omitempty,gte=0"`
	Category string  `form:"category"`
	Sort     SortKey `form:"sort"`
}

type ProductView struct {
	Product
	FormattedPrice string `json:"formatted_price"`
}

type ProductDetailResponse struct {
	Product         ProductView   `json:"product"`
	RelatedProducts []ProductView `json:"related_products"`
	InquiryURL      string        `json:"inquiry_url"`
}
