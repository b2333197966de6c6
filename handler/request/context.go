package request

import (
	"context"
)

type key int

const (
	adminKey key = iota
)

type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithAdmin context with the authenticated admin id
func (c ContextX) WithAdmin(adminID string) context.Context {
	return context.WithValue(c, adminKey, adminID)
}

// GetAdmin get admin id from context
func (c ContextX) GetAdmin() (string, bool) {
	id, ok := c.Value(adminKey).(string)
	return id, ok && id != ""
}
