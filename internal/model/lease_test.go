package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaseRecord_MarshalEmitsAllGroups(t *testing.T) {
	b, err := json.Marshal(LeaseRecord{})
	require.NoError(t, err)

	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(b, &out))

	groups := map[string]int{
		"tenant":            5,
		"landlord":          5,
		"property":          5,
		"financialTerms":    6,
		"leaseTerms":        5,
		"specialProvisions": 5,
		"legalClauses":      4,
	}
	assert.Len(t, out, len(groups))
	for g, n := range groups {
		assert.Len(t, out[g], n, g)
	}
}

func TestLeaseRecord_UnmarshalPartial(t *testing.T) {
	var r LeaseRecord
	err := json.Unmarshal([]byte(`{"tenant":{"companyName":"Acme Corp"},"extra":{"x":"y"}}`), &r)
	require.NoError(t, err)

	assert.EqualValues(t, "Acme Corp", r.Tenant.CompanyName)
	assert.Empty(t, r.FinancialTerms.BaseRent)
}

func TestLeaseRecord_UnmarshalAnyValue(t *testing.T) {
	var r LeaseRecord
	err := json.Unmarshal([]byte(`{
		"property": {"squareFootage": 12500, "suite": null},
		"specialProvisions": {"parkingSpaces": 40, "rentAbatements": ["month 1", "month 2"]},
		"legalClauses": {"tripleNet": true, "defaultClauses": {"cure": "30 days"}}
	}`), &r)
	require.NoError(t, err)

	assert.EqualValues(t, "12500", r.Property.SquareFootage)
	assert.Empty(t, r.Property.Suite)
	assert.EqualValues(t, "40", r.SpecialProvisions.ParkingSpaces)
	assert.EqualValues(t, `["month 1","month 2"]`, r.SpecialProvisions.RentAbatements)
	assert.EqualValues(t, "true", r.LegalClauses.TripleNet)
	assert.EqualValues(t, `{"cure":"30 days"}`, r.LegalClauses.DefaultClauses)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	var out map[string]map[string]string
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "12500", out["property"]["squareFootage"])
	assert.Equal(t, "true", out["legalClauses"]["tripleNet"])
}

func TestLeaseRecord_Flatten(t *testing.T) {
	r := LeaseRecord{}
	r.Tenant.CompanyName = "Acme Corp"
	r.FinancialTerms.BaseRent = "$5,000/mo"
	r.LeaseTerms.EndDate = "2029-02-28"

	cols := r.Flatten()
	assert.Len(t, cols, 35)

	byName := make(map[string]Column, len(cols))
	for _, c := range cols {
		_, dup := byName[c.Name]
		assert.False(t, dup, c.Name)
		byName[c.Name] = c
	}

	assert.Equal(t, "Acme Corp", byName["tenant_company"].SQLValue())
	assert.Equal(t, "$5,000/mo", byName["base_rent"].SQLValue())
	assert.Equal(t, "", byName["cam_charges"].SQLValue())
	assert.Nil(t, byName["lease_start_date"].SQLValue())
	assert.Equal(t, "2029-02-28", byName["lease_end_date"].SQLValue())
}
