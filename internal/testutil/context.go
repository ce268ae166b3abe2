package testutil

import (
	"context"

	"github.com/shopkit/productgroups/internal/types"
)

// DefaultShopDomain is the shop every test runs under unless it says otherwise
const DefaultShopDomain = "acme-demo.myshopify.com"

func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetShopDomain(ctx, DefaultShopDomain)
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}

// SetupContextForShop returns a context scoped to the given shop
func SetupContextForShop(shop string) context.Context {
	ctx := context.Background()
	ctx = types.SetShopDomain(ctx, shop)
	ctx = types.SetRequestID(ctx, types.GenerateUUID())
	return ctx
}
