package dto

// StorefrontProduct is one rendered product in a storefront group: the
// stored handle/title merged with live catalog image/url when available
type StorefrontProduct struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
	Image  string `json:"image,omitempty"`
	URL    string `json:"url,omitempty"`
}

// StorefrontGroup is a product group as rendered on the storefront
type StorefrontGroup struct {
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Products []StorefrontProduct `json:"products"`
}

// StorefrontGroupsResponse is the app-proxy payload for one product page
type StorefrontGroupsResponse struct {
	Shop          string             `json:"shop"`
	ProductHandle string             `json:"product_handle"`
	Groups        []*StorefrontGroup `json:"groups"`
}
