package analyze

import "regexp"

// Per-category confidence. A later category overwrites an earlier one.
const (
	companyConfidence     = 85
	titleConfidence       = 80
	locationConfidence    = 75
	industryConfidence    = 80
	employeeConfidence    = 90
	leadScoreConfidence   = 85
	technologyConfidence  = 80
	contactInfoConfidence = 70
	linkedinConfidence    = 75
	nameConfidence        = 85
)

// qualityLeadScore is the threshold implied by "top/high quality leads".
const qualityLeadScore = 7.0

// stop ends a free-form capture (company, location).
const stop = `(?:\s+(?:with|in|at|who|that|having|and|over|under|more|less|above|below|using|named|called|based|located|working|from)\b|[,.;!?]|$)`

var (
	companyRe = regexp.MustCompile(
		`\bat\s+([a-z0-9][a-z0-9&.'\-]*(?:\s+[a-z0-9&.'\-]+){0,3}?)` + stop)

	titleRe = regexp.MustCompile(
		`\b((?:senior |sr |junior |lead |principal )?` +
			`(?:chief [a-z]+ officer|ceo|cto|cfo|coo|cmo|cio|ciso|co-founder|cofounder|founder|president|` +
			`owner|partner|vice president|vp|director|head|manager|engineer|developer|recruiter|consultant))` +
			`s?((?:\s+of\s+[a-z]+)?)\b`)

	locationRe = regexp.MustCompile(
		`\b(?:based in|located in|in|from|near)\s+([a-z][a-z.'\-]*(?:\s+[a-z][a-z.'\-]*){0,3}?)` +
			`(?:,\s*([a-z]{2}))?` + stop)

	// locationTailRe takes a long place phrase that runs to the end of the
	// text, keeping at most its first eight words.
	locationTailRe = regexp.MustCompile(
		`\b(?:based in|located in|in|from|near)\s+([a-z][a-z.'\-]*(?:\s+[a-z][a-z.'\-]*){0,7})(?:\s+[a-z][a-z.'\-]*)*$`)

	industryRe = regexp.MustCompile(
		`\b(financial services|information technology|it services|real estate|health ?care|oil and gas|` +
			`food and beverage|e-?commerce|software|saas|fintech|finance|banking|insurance|biotech|` +
			`pharmaceuticals?|pharma|manufacturing|retail|education|edtech|construction|logistics|` +
			`transportation|energy|telecommunications|telecom|media|marketing|advertising|hospitality|` +
			`automotive|aerospace|agriculture|legal|consulting|technology|tech|cybersecurity|gaming|` +
			`entertainment|nonprofit|government|staffing)\b`)

	num = `(\d[\d,]*)`
	emp = `\s*(?:employees?|staff|people)\b`

	employeeRangeRe   = regexp.MustCompile(`\b` + num + `\s*(?:-|–|to)\s*` + num + emp)
	employeeBetweenRe = regexp.MustCompile(`\bbetween\s+` + num + `\s+and\s+` + num + emp)
	employeeMinRe     = regexp.MustCompile(`\b(?:over|more than|above|at least|greater than)\s+` + num + emp)
	employeeMaxRe     = regexp.MustCompile(`\b(?:under|less than|below|fewer than|at most)\s+` + num + emp)
	employeePlusRe    = regexp.MustCompile(`\b` + num + `\s*\+` + emp)

	qualityLeadsRe = regexp.MustCompile(`\b(?:top|high)[- ]quality\s+leads?\b`)
	leadScoreRe    = regexp.MustCompile(
		`\b(?:lead\s+)?score\s+(?:(?:over|above|greater than|more than|of at least|at least|of|>=|>)\s*)?` +
			`(\d+(?:\.\d+)?)`)

	technologyRe = regexp.MustCompile(
		`\b(salesforce|hubspot|marketo|zendesk|intercom|slack|shopify|magento|wordpress|` +
			`amazon web services|aws|azure|google cloud|gcp|kubernetes|docker|react|angular|vue|` +
			`nodejs|node\.js|python|java|golang|ruby on rails|php|dotnet|stripe|snowflake|databricks|` +
			`tableau|sap|oracle|workday|jira|atlassian|twilio|segment|mailchimp|google analytics)\b`)

	contactTriggerRe = regexp.MustCompile(
		`\b(?:with|having|has|have)\s+(?:(?:an?|verified|valid|direct)\s+)*` +
			`(?:emails?|email addresses|phones?|phone numbers?|mobile(?: numbers?)?|dials?)\b`)
	emailRe    = regexp.MustCompile(`\bemails?\b`)
	phoneRe    = regexp.MustCompile(`\b(?:phones?|mobile|dials?)\b`)
	linkedinRe = regexp.MustCompile(`\blinked ?in\b`)

	nameRe = regexp.MustCompile(
		`\b(?:named|called|name is)\s+([a-z][a-z'\-]+)(?:\s+([a-z][a-z'\-]+))?`)
)

// companySuffixes turn "at fintech companies" into an industry reference.
var companySuffixes = map[string]struct{}{
	"company": {}, "companies": {}, "firm": {}, "firms": {},
	"startup": {}, "startups": {}, "business": {}, "businesses": {},
	"organization": {}, "organizations": {},
}

// nameStopwords never end a captured person name.
var nameStopwords = map[string]struct{}{
	"at": {}, "in": {}, "with": {}, "from": {}, "who": {}, "and": {},
	"working": {}, "that": {}, "as": {}, "on": {},
}
