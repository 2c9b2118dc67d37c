// entity/product.go
package entity

type Product struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
}

// Categories is the fixed category list offered by the dashboard filter.
var Categories = []string{
	"Electronics",
	"Sports & Leisure",
	"Clothing",
	"Home & Furniture",
	"Health & Beauty",
	"Garden & DIY",
}
