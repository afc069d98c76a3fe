package contact

import (
	"strconv"
	"strings"
	"time"
)

// Table is the contact store relation.
const Table = "contacts"

// Contact is a read-only row of the contact store.
// JSON keys are the column names, in column order.
type Contact struct {
	ID        int64   `json:"id"`
	FullName  *string `json:"full_name"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Title     *string `json:"title"`

	Email          *string `json:"email"`
	EmailDomain    *string `json:"email_domain"`
	MobilePhone    *string `json:"mobile_phone"`
	OtherPhone     *string `json:"other_phone"`
	HomePhone      *string `json:"home_phone"`
	CorporatePhone *string `json:"corporate_phone"`
	PersonLinkedin *string `json:"person_linkedin"`

	Company         *string `json:"company"`
	Industry        *string `json:"industry"`
	Website         *string `json:"website"`
	CompanyLinkedin *string `json:"company_linkedin"`
	CompanyAddress  *string `json:"company_address"`
	CompanyCity     *string `json:"company_city"`
	CompanyState    *string `json:"company_state"`
	CompanyCountry  *string `json:"company_country"`

	Employees           *int64   `json:"employees"`
	EmployeeSizeBracket *string  `json:"employee_size_bracket"`
	AnnualRevenue       *float64 `json:"annual_revenue"`
	LeadScore           *float64 `json:"lead_score"`

	Technologies       []string `json:"technologies"`
	TechnologyCategory *string  `json:"technology_category"`

	City        *string `json:"city"`
	State       *string `json:"state"`
	Country     *string `json:"country"`
	CountryCode *string `json:"country_code"`
	Region      *string `json:"region"`
	Timezone    *string `json:"timezone"`

	BusinessType *string `json:"business_type"`

	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Field is one rendered column of a contact.
type Field struct {
	Name  string
	Value string
}

// ArraySeparator joins array-typed values in flat renderings.
const ArraySeparator = "; "

// Fields renders the contact as ordered name/value pairs (null → "").
func (c *Contact) Fields() []Field {
	return []Field{
		{"id", strconv.FormatInt(c.ID, 10)},
		{"full_name", str(c.FullName)},
		{"first_name", str(c.FirstName)},
		{"last_name", str(c.LastName)},
		{"title", str(c.Title)},
		{"email", str(c.Email)},
		{"email_domain", str(c.EmailDomain)},
		{"mobile_phone", str(c.MobilePhone)},
		{"other_phone", str(c.OtherPhone)},
		{"home_phone", str(c.HomePhone)},
		{"corporate_phone", str(c.CorporatePhone)},
		{"person_linkedin", str(c.PersonLinkedin)},
		{"company", str(c.Company)},
		{"industry", str(c.Industry)},
		{"website", str(c.Website)},
		{"company_linkedin", str(c.CompanyLinkedin)},
		{"company_address", str(c.CompanyAddress)},
		{"company_city", str(c.CompanyCity)},
		{"company_state", str(c.CompanyState)},
		{"company_country", str(c.CompanyCountry)},
		{"employees", integer(c.Employees)},
		{"employee_size_bracket", str(c.EmployeeSizeBracket)},
		{"annual_revenue", decimal(c.AnnualRevenue)},
		{"lead_score", decimal(c.LeadScore)},
		{"technologies", strings.Join(c.Technologies, ArraySeparator)},
		{"technology_category", str(c.TechnologyCategory)},
		{"city", str(c.City)},
		{"state", str(c.State)},
		{"country", str(c.Country)},
		{"country_code", str(c.CountryCode)},
		{"region", str(c.Region)},
		{"timezone", str(c.Timezone)},
		{"business_type", str(c.BusinessType)},
		{"is_deleted", strconv.FormatBool(c.IsDeleted)},
		{"created_at", timestamp(c.CreatedAt)},
		{"updated_at", timestamp(c.UpdatedAt)},
	}
}

// ScanTargets returns destinations for a row selected with Columns, in order.
// arr wraps the technologies slice for the driver (pq.Array in the repository).
func (c *Contact) ScanTargets(arr func(*[]string) any) []any {
	return []any{
		&c.ID, &c.FullName, &c.FirstName, &c.LastName, &c.Title,
		&c.Email, &c.EmailDomain, &c.MobilePhone, &c.OtherPhone, &c.HomePhone,
		&c.CorporatePhone, &c.PersonLinkedin,
		&c.Company, &c.Industry, &c.Website, &c.CompanyLinkedin, &c.CompanyAddress,
		&c.CompanyCity, &c.CompanyState, &c.CompanyCountry,
		&c.Employees, &c.EmployeeSizeBracket, &c.AnnualRevenue, &c.LeadScore,
		arr(&c.Technologies), &c.TechnologyCategory,
		&c.City, &c.State, &c.Country, &c.CountryCode, &c.Region, &c.Timezone,
		&c.BusinessType,
		&c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func integer(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func decimal(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
