package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantGUC is the session setting the row-level-security policies read.
const TenantGUC = "app.current_business_id"

// WithTenantTx runs fn inside a transaction whose RLS tenant setting is bound
// to the given business. set_config with is_local=true scopes the value to
// the transaction, so pooled connections never leak a tenant.
func (c *Client) WithTenantTx(ctx context.Context, businessID uuid.UUID, fn func(tx *gorm.DB) error) error {
	if businessID == uuid.Nil {
		return fmt.Errorf("business id is required for tenant transaction")
	}

	return c.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT set_config(?, ?, true)", TenantGUC, businessID.String()).Error; err != nil {
			return fmt.Errorf("setting tenant context: %w", err)
		}
		return fn(tx)
	})
}
