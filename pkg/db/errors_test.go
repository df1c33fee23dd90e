package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationWithDriverError(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "uq_businesses_slug"}

	assert.True(t, IsUniqueViolation(dup, ""))
	assert.True(t, IsUniqueViolation(dup, "uq_businesses_slug"))
	assert.False(t, IsUniqueViolation(dup, "uq_contacts_email"))

	wrapped := fmt.Errorf("create business: %w", dup)
	assert.True(t, IsUniqueViolation(wrapped, "uq_businesses_slug"))

	fk := &pq.Error{Code: "23503", Constraint: "fk_jobs_contact"}
	assert.False(t, IsUniqueViolation(fk, ""))
	assert.False(t, IsUniqueViolation(fk, "fk_jobs_contact"))
}

func TestIsUniqueViolationFallsBackToMessage(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "uq_x"`), ""))
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "uq_x"`), "uq_x"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: businesses.slug"), ""))
	assert.False(t, IsUniqueViolation(nil, "uq_x"))
}
