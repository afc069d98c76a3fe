package result

import "github.com/kailas-cloud/leadscope/internal/domain/contact"

// Result is one page of a structured search.
type Result struct {
	Data         []contact.Contact `json:"data"`
	TotalCount   int64             `json:"totalCount"`
	Page         int               `json:"page"`
	PageSize     int               `json:"pageSize"`
	TotalPages   int64             `json:"totalPages"`
	Aggregations *Aggregations     `json:"aggregations,omitempty"`
}

// New builds a page and derives TotalPages = ceil(total/pageSize).
func New(data []contact.Contact, total int64, page, pageSize int) Result {
	if data == nil {
		data = []contact.Contact{}
	}
	return Result{
		Data:       data,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(total, pageSize),
	}
}

// TotalPages returns ceil(total/pageSize), 0 when pageSize is not positive.
func TotalPages(total int64, pageSize int) int64 {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

// Bucket is one grouped count.
type Bucket struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Aggregations summarizes a browse view.
type Aggregations struct {
	ByIndustry     []Bucket `json:"byIndustry"`
	ByCountry      []Bucket `json:"byCountry"`
	ByEmployeeSize []Bucket `json:"byEmployeeSize"`
	AvgLeadScore   float64  `json:"avgLeadScore"`
}

// Statistics is the fixed scalar summary of the contact store.
type Statistics struct {
	TotalContacts      int64   `json:"totalContacts"`
	TotalCompanies     int64   `json:"totalCompanies"`
	AvgLeadScore       float64 `json:"avgLeadScore"`
	HighScoreContacts  int64   `json:"highScoreContacts"`
	EnterpriseContacts int64   `json:"enterpriseContacts"`
}

// Page is what the contact store returns for one compiled query.
type Page struct {
	Contacts     []contact.Contact
	Total        int64
	Aggregations *Aggregations
}
