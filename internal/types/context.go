package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID  ContextKey = "ctx_request_id"
	CtxShopDomain ContextKey = "ctx_shop_domain"
)

// GetShopDomain returns the tenant shop domain from the context
func GetShopDomain(ctx context.Context) string {
	if shop, ok := ctx.Value(CtxShopDomain).(string); ok {
		return shop
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetShopDomain sets the tenant shop domain in the context
func SetShopDomain(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, CtxShopDomain, shop)
}

// SetRequestID sets the request ID in the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// ValidateTenantContext validates that the shop domain is present in the context
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	if GetShopDomain(ctx) == "" {
		return fmt.Errorf("no shop domain found in context")
	}

	return nil
}
