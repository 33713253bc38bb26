package shop

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateWireFormat(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-15"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d.Time, back.Time)

	_, err = ParseDate("15/03/2026")
	assert.Error(t, err)
}

func TestOrderInputValidate(t *testing.T) {
	d, _ := ParseDate("2026-03-15")
	ok := OrderInput{CustomerID: "c-1", ProductIDs: []string{"p-1"}, Date: d}
	assert.NoError(t, ok.Validate())

	err := OrderInput{}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "customer_id")
	assert.Contains(t, ve.Fields, "product_ids")
	assert.Contains(t, ve.Fields, "date")
}

func TestProductInputValidate(t *testing.T) {
	price := decimal.RequireFromString("19.99")
	assert.NoError(t, ProductInput{Name: "Mug", Price: &price}.Validate())

	neg := decimal.RequireFromString("-1")
	err := ProductInput{Name: "Mug", Price: &neg}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "price")

	badStock := -3
	err = ProductInput{Name: "Mug", Price: &price, Stock: &badStock}.Validate()
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "stock")
}

func TestCustomerInputValidate(t *testing.T) {
	assert.NoError(t, CustomerInput{Name: "Ada"}.Validate())
	err := CustomerInput{Email: "ada@example.com"}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
}

func TestAccountInputValidate(t *testing.T) {
	in := AccountInput{CustomerID: "c-1", Username: "ada", Password: "hunter2"}
	assert.NoError(t, in.Validate())

	err := AccountInput{}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
}

func TestAccountJSONExcludesCredentials(t *testing.T) {
	b, err := json.Marshal(Account{ID: "a-1", CustomerID: "c-1", Username: "ada"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
}
