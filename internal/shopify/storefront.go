package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/samber/lo"
	"github.com/shopkit/productgroups/internal/cache"
	"github.com/shopkit/productgroups/internal/config"
	"github.com/shopkit/productgroups/internal/domain/catalog"
	ierr "github.com/shopkit/productgroups/internal/errors"
	"github.com/shopkit/productgroups/internal/httpclient"
	"github.com/shopkit/productgroups/internal/logger"
)

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

type productsData struct {
	Products struct {
		Nodes []productNode `json:"nodes"`
	} `json:"products"`
}

type productNode struct {
	Handle         string `json:"handle"`
	Title          string `json:"title"`
	OnlineStoreURL string `json:"onlineStoreUrl"`
	FeaturedImage  *struct {
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"featuredImage"`
}

// StorefrontClient looks up live catalog data via the Shopify Storefront
// GraphQL API. Responses are cached per shop; the catalog changes far less
// often than storefront pages render.
type StorefrontClient struct {
	cfg    *config.Configuration
	client httpclient.Client
	cache  cache.Cache
	logger *logger.Logger
}

func NewStorefrontClient(
	cfg *config.Configuration,
	client httpclient.Client,
	cache cache.Cache,
	logger *logger.Logger,
) catalog.Client {
	return &StorefrontClient{
		cfg:    cfg,
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// FetchItems returns the live catalog items matching the given handles.
// Handles with no catalog match are simply absent from the result.
func (c *StorefrontClient) FetchItems(ctx context.Context, shop string, handles []string) ([]catalog.Item, error) {
	if len(handles) == 0 {
		return []catalog.Item{}, nil
	}

	byHandle, err := c.productsForShop(ctx, shop)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Item, 0, len(handles))
	for _, handle := range lo.Uniq(handles) {
		if item, ok := byHandle[handle]; ok {
			items = append(items, item)
		}
	}

	return items, nil
}

// productsForShop returns the shop's catalog keyed by handle, read through
// the cache.
func (c *StorefrontClient) productsForShop(ctx context.Context, shop string) (map[string]catalog.Item, error) {
	key := cache.GenerateKey(cache.PrefixCatalog, shop)
	if cached, ok := c.cache.Get(ctx, key); ok {
		if byHandle, ok := cached.(map[string]catalog.Item); ok {
			return byHandle, nil
		}
	}

	resp, err := c.execute(ctx, shop, StorefrontProductsQuery, map[string]interface{}{
		"first": storefrontProductsPageSize,
	})
	if err != nil {
		return nil, err
	}

	var data productsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected storefront response").
			Mark(ierr.ErrHTTPClient)
	}

	byHandle := make(map[string]catalog.Item, len(data.Products.Nodes))
	for _, node := range data.Products.Nodes {
		item := catalog.Item{
			Handle: node.Handle,
			Title:  node.Title,
			URL:    node.OnlineStoreURL,
		}
		if node.FeaturedImage != nil {
			item.ImageURL = node.FeaturedImage.URL
		}
		byHandle[node.Handle] = item
	}

	c.cache.Set(ctx, key, byHandle, c.cfg.Cache.TTL())

	return byHandle, nil
}

// execute runs a GraphQL query against the shop's storefront endpoint
func (c *StorefrontClient) execute(ctx context.Context, shop string, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := fmt.Sprintf("https://%s/api/%s/graphql.json", normalizeShopDomain(shop), c.cfg.Shopify.APIVersion)

	body, err := json.Marshal(GraphQLRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build storefront request").
			Mark(ierr.ErrHTTPClient)
	}

	resp, err := c.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    url,
		Headers: map[string]string{
			"X-Shopify-Storefront-Access-Token": c.cfg.Shopify.StorefrontToken,
		},
		Body: body,
	})
	if err != nil {
		c.logger.Errorw("storefront request failed", "error", err, "shop", shop)
		return nil, err
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(resp.Body, &graphQLResp); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Unexpected storefront response").
			Mark(ierr.ErrHTTPClient)
	}

	if len(graphQLResp.Errors) > 0 {
		messages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			messages[i] = gqlErr.Message
		}
		return nil, ierr.NewError("storefront query failed").
			WithHintf("GraphQL errors: %s", strings.Join(messages, "; ")).
			Mark(ierr.ErrHTTPClient)
	}

	return &graphQLResp, nil
}

// normalizeShopDomain strips scheme and trailing slashes from a shop domain
func normalizeShopDomain(shop string) string {
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimSuffix(shop, "/")
}
