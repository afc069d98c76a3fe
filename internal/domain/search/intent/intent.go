package intent

// Intent is the analyzer's classification of a free-text query.
type Intent string

// Intent vocabulary.
const (
	Company     Intent = "company_search"
	Title       Intent = "title_search"
	Location    Intent = "location_search"
	Industry    Intent = "industry_search"
	Employee    Intent = "employee_search"
	LeadScore   Intent = "lead_score_search"
	Technology  Intent = "technology_search"
	ContactInfo Intent = "contact_info_search"
	Linkedin    Intent = "linkedin_search"
	Name        Intent = "name_search"
	// General is the fallback when no category matched.
	General Intent = "general_search"
)

// IsValid checks if the intent is part of the vocabulary.
func (i Intent) IsValid() bool {
	switch i {
	case Company, Title, Location, Industry, Employee, LeadScore,
		Technology, ContactInfo, Linkedin, Name, General:
		return true
	}
	return false
}
