package contact

// Kind is the storage type of a contact column.
type Kind int

// Column kinds.
const (
	KindText Kind = iota
	KindInteger
	KindDecimal
	KindTextArray
	KindBool
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindTextArray:
		return "text[]"
	case KindBool:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// Column describes one attribute of the contact table.
type Column struct {
	Name string
	Kind Kind
}

// Columns lists the contact table in select order.
var Columns = []Column{
	{"id", KindInteger},
	{"full_name", KindText},
	{"first_name", KindText},
	{"last_name", KindText},
	{"title", KindText},
	{"email", KindText},
	{"email_domain", KindText},
	{"mobile_phone", KindText},
	{"other_phone", KindText},
	{"home_phone", KindText},
	{"corporate_phone", KindText},
	{"person_linkedin", KindText},
	{"company", KindText},
	{"industry", KindText},
	{"website", KindText},
	{"company_linkedin", KindText},
	{"company_address", KindText},
	{"company_city", KindText},
	{"company_state", KindText},
	{"company_country", KindText},
	{"employees", KindInteger},
	{"employee_size_bracket", KindText},
	{"annual_revenue", KindDecimal},
	{"lead_score", KindDecimal},
	{"technologies", KindTextArray},
	{"technology_category", KindText},
	{"city", KindText},
	{"state", KindText},
	{"country", KindText},
	{"country_code", KindText},
	{"region", KindText},
	{"timezone", KindText},
	{"business_type", KindText},
	{"is_deleted", KindBool},
	{"created_at", KindTimestamp},
	{"updated_at", KindTimestamp},
}

var byName = func() map[string]Column {
	m := make(map[string]Column, len(Columns))
	for _, c := range Columns {
		m[c.Name] = c
	}
	return m
}()

// Lookup returns the column with the given name.
func Lookup(name string) (Column, bool) {
	c, ok := byName[name]
	return c, ok
}

// GlobalSearchColumns are the high-signal text columns matched by a global search.
var GlobalSearchColumns = []string{"full_name", "email", "company", "title", "city", "industry"}

// SuggestionColumns are the low-cardinality fields served by autocomplete.
var SuggestionColumns = []string{"title", "company", "industry", "city", "country", "state", "business_type"}

// IsSuggestionColumn reports whether name is in the autocomplete allow-list.
func IsSuggestionColumn(name string) bool {
	for _, c := range SuggestionColumns {
		if c == name {
			return true
		}
	}
	return false
}
