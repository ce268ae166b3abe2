package shopify

// StorefrontProductsQuery fetches the shop's products with the fields the
// storefront merge needs. The response is filtered to the requested handles
// client side; the Storefront API has no handle-set filter.
const StorefrontProductsQuery = `
query getProducts($first: Int!) {
  products(first: $first) {
    nodes {
      handle
      title
      onlineStoreUrl
      featuredImage {
        url
        altText
      }
    }
  }
}
`

// storefrontProductsPageSize bounds a single catalog fetch
const storefrontProductsPageSize = 50
