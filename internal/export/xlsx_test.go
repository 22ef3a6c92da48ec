package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"leaseintake/internal/model"
)

func TestLeasesXLSX(t *testing.T) {
	var a, b model.LeaseRecord
	a.Tenant.CompanyName = "Acme Corp"
	a.FinancialTerms.BaseRent = "$5,000/mo"
	b.Tenant.CompanyName = "Globex"
	b.LegalClauses.InsuranceRequirements = "$1M general liability"

	processed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	leases := []model.LeaseDocument{
		{FileName: "a.pdf", Lease: a, ProcessedAt: processed},
		{FileName: "b.docx", Lease: b},
	}

	data, err := LeasesXLSX(&model.Project{ID: "p1", Name: "Downtown"}, leases)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Headers(), rows[0])
	assert.Len(t, rows[0], 37)

	assert.Equal(t, "a.pdf", rows[1][0])
	assert.Equal(t, "2024-05-01T12:00:00Z", rows[1][1])
	assert.Equal(t, "Acme Corp", rows[1][2])

	assert.Equal(t, "Globex", rows[2][2])
	assert.Equal(t, "$1M general liability", rows[2][len(rows[2])-1])
}

func TestLeasesXLSX_Empty(t *testing.T) {
	data, err := LeasesXLSX(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "leases-p1.xlsx", FileName(&model.Project{ID: "p1"}))
	assert.Equal(t, "leases.xlsx", FileName(nil))
}
