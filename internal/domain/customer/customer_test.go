package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer(Input{FirstName: "Ada", LastName: "Lovelace", Email: " ADA@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, MembershipBronze, c.Membership)
	assert.Equal(t, "ada@example.com", c.Email)
	assert.Equal(t, "Ada Lovelace", c.FullName())

	t.Run("rejects invalid input", func(t *testing.T) {
		future := time.Now().Add(48 * time.Hour)
		inputs := []Input{
			{FirstName: "", LastName: "X", Email: "x@example.com"},
			{FirstName: "X", LastName: "X", Email: "not-an-email"},
			{FirstName: "X", LastName: "X", Email: "x@example.com", Membership: "P"},
			{FirstName: "X", LastName: "X", Email: "x@example.com", BirthDate: &future},
		}
		for _, in := range inputs {
			_, err := NewCustomer(in)
			assert.Error(t, err)
		}
	})
}

func TestCustomer_SetMembership(t *testing.T) {
	c, err := NewCustomer(Input{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	require.NoError(t, c.SetMembership(MembershipGold))
	assert.Equal(t, "Gold", c.Membership.Label())
	assert.Equal(t, 2, c.GetVersion())

	assert.Error(t, c.SetMembership("Z"))
}

func TestCustomer_UpdateKeepsMembership(t *testing.T) {
	c, err := NewCustomer(Input{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Membership: MembershipSilver})
	require.NoError(t, err)

	require.NoError(t, c.Update(Input{FirstName: "Ada", LastName: "King", Email: "ada@example.com"}))
	assert.Equal(t, MembershipSilver, c.Membership)
	assert.Equal(t, "King", c.LastName)
}
