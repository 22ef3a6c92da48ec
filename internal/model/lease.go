package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// Text is a lease field value. It decodes from any JSON value: strings as-is,
// numbers and booleans as their literal text, null as "", objects and arrays
// as their compact JSON. It always encodes as a JSON string.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case b[0] == '{' || b[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = Text(buf.String())
	default:
		// number, true or false
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Party identifies a tenant or landlord.
type Party struct {
	CompanyName   Text `json:"companyName"`
	ContactPerson Text `json:"contactPerson"`
	Phone         Text `json:"phone"`
	Email         Text `json:"email"`
	Address       Text `json:"address"`
}

type Property struct {
	Address       Text `json:"address"`
	Suite         Text `json:"suite"`
	SquareFootage Text `json:"squareFootage"`
	PropertyType  Text `json:"propertyType"`
	Floors        Text `json:"floors"`
}

type FinancialTerms struct {
	BaseRent        Text `json:"baseRent"`
	RentPerSqFt     Text `json:"rentPerSqFt"`
	SecurityDeposit Text `json:"securityDeposit"`
	CAMCharges      Text `json:"camCharges"`
	Utilities       Text `json:"utilities"`
	Escalations     Text `json:"escalations"`
}

type LeaseTerms struct {
	StartDate        Text `json:"startDate"`
	EndDate          Text `json:"endDate"`
	LeaseTerm        Text `json:"leaseTerm"`
	RenewalOptions   Text `json:"renewalOptions"`
	EarlyTermination Text `json:"earlyTermination"`
}

type SpecialProvisions struct {
	ParkingSpaces    Text `json:"parkingSpaces"`
	TIAllowance      Text `json:"tiAllowance"`
	RentAbatements   Text `json:"rentAbatements"`
	AssignmentRights Text `json:"assignmentRights"`
	SubleaseRights   Text `json:"subleaseRights"`
}

type LegalClauses struct {
	TripleNet             Text `json:"tripleNet"`
	PercentageRent        Text `json:"percentageRent"`
	DefaultClauses        Text `json:"defaultClauses"`
	InsuranceRequirements Text `json:"insuranceRequirements"`
}

// LeaseRecord is the seven-group structure extracted from one lease document.
// Every field is free text (see Text); dates and amounts are kept exactly as the model wrote them.
// Marshalling always emits every group and key, empty or not.
type LeaseRecord struct {
	Tenant            Party             `json:"tenant"`
	Landlord          Party             `json:"landlord"`
	Property          Property          `json:"property"`
	FinancialTerms    FinancialTerms    `json:"financialTerms"`
	LeaseTerms        LeaseTerms        `json:"leaseTerms"`
	SpecialProvisions SpecialProvisions `json:"specialProvisions"`
	LegalClauses      LegalClauses      `json:"legalClauses"`
}

// LeaseStatusProcessed is the status stored on every persisted lease row.
const LeaseStatusProcessed = "processed"

// LeaseDocument is one persisted lease row.
type LeaseDocument struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	FileName    string          `json:"file_name"`
	FileURL     string          `json:"file_url"`
	Lease       LeaseRecord     `json:"lease"`
	Raw         json.RawMessage `json:"-"`
	Status      string          `json:"status"`
	ProcessedAt time.Time       `json:"processed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Column is one flattened lease field as stored in lease_documents.
type Column struct {
	Name  string
	Label string
	Value string
	// Nullable columns store NULL instead of an empty string.
	Nullable bool
}

// SQLValue returns the value bound for this column in an INSERT.
func (c Column) SQLValue() any {
	if c.Nullable && c.Value == "" {
		return nil
	}
	return c.Value
}

// Flatten returns every schema field in a fixed column order.
func (r LeaseRecord) Flatten() []Column {
	return []Column{
		{Name: "tenant_company", Label: "Tenant Company", Value: string(r.Tenant.CompanyName)},
		{Name: "tenant_contact", Label: "Tenant Contact", Value: string(r.Tenant.ContactPerson)},
		{Name: "tenant_phone", Label: "Tenant Phone", Value: string(r.Tenant.Phone)},
		{Name: "tenant_email", Label: "Tenant Email", Value: string(r.Tenant.Email)},
		{Name: "tenant_address", Label: "Tenant Address", Value: string(r.Tenant.Address)},
		{Name: "landlord_company", Label: "Landlord Company", Value: string(r.Landlord.CompanyName)},
		{Name: "landlord_contact", Label: "Landlord Contact", Value: string(r.Landlord.ContactPerson)},
		{Name: "landlord_phone", Label: "Landlord Phone", Value: string(r.Landlord.Phone)},
		{Name: "landlord_email", Label: "Landlord Email", Value: string(r.Landlord.Email)},
		{Name: "landlord_address", Label: "Landlord Address", Value: string(r.Landlord.Address)},
		{Name: "property_address", Label: "Property Address", Value: string(r.Property.Address)},
		{Name: "property_suite", Label: "Suite", Value: string(r.Property.Suite)},
		{Name: "property_square_footage", Label: "Square Footage", Value: string(r.Property.SquareFootage)},
		{Name: "property_type", Label: "Property Type", Value: string(r.Property.PropertyType)},
		{Name: "property_floors", Label: "Floors", Value: string(r.Property.Floors)},
		{Name: "base_rent", Label: "Base Rent", Value: string(r.FinancialTerms.BaseRent)},
		{Name: "rent_per_sqft", Label: "Rent per Sq Ft", Value: string(r.FinancialTerms.RentPerSqFt)},
		{Name: "security_deposit", Label: "Security Deposit", Value: string(r.FinancialTerms.SecurityDeposit)},
		{Name: "cam_charges", Label: "CAM Charges", Value: string(r.FinancialTerms.CAMCharges)},
		{Name: "utilities", Label: "Utilities", Value: string(r.FinancialTerms.Utilities)},
		{Name: "escalations", Label: "Escalations", Value: string(r.FinancialTerms.Escalations)},
		{Name: "lease_start_date", Label: "Lease Start", Value: string(r.LeaseTerms.StartDate), Nullable: true},
		{Name: "lease_end_date", Label: "Lease End", Value: string(r.LeaseTerms.EndDate), Nullable: true},
		{Name: "lease_term", Label: "Lease Term", Value: string(r.LeaseTerms.LeaseTerm)},
		{Name: "renewal_options", Label: "Renewal Options", Value: string(r.LeaseTerms.RenewalOptions)},
		{Name: "early_termination", Label: "Early Termination", Value: string(r.LeaseTerms.EarlyTermination)},
		{Name: "parking_spaces", Label: "Parking Spaces", Value: string(r.SpecialProvisions.ParkingSpaces)},
		{Name: "ti_allowance", Label: "TI Allowance", Value: string(r.SpecialProvisions.TIAllowance)},
		{Name: "rent_abatements", Label: "Rent Abatements", Value: string(r.SpecialProvisions.RentAbatements)},
		{Name: "assignment_rights", Label: "Assignment Rights", Value: string(r.SpecialProvisions.AssignmentRights)},
		{Name: "sublease_rights", Label: "Sublease Rights", Value: string(r.SpecialProvisions.SubleaseRights)},
		{Name: "triple_net", Label: "Triple Net", Value: string(r.LegalClauses.TripleNet)},
		{Name: "percentage_rent", Label: "Percentage Rent", Value: string(r.LegalClauses.PercentageRent)},
		{Name: "default_clauses", Label: "Default Clauses", Value: string(r.LegalClauses.DefaultClauses)},
		{Name: "insurance_requirements", Label: "Insurance Requirements", Value: string(r.LegalClauses.InsuranceRequirements)},
	}
}
