package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := &pq.Error{Code: "23505", Constraint: "uq_rental_extensions_one_pending"}

	assert.True(t, IsUniqueViolation(err, "uq_rental_extensions_one_pending"))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", err), ""))
	assert.False(t, IsUniqueViolation(err, "uq_payments_extension_id"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}
