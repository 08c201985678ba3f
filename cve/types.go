package cve

type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Severities lists the known levels from the highest precedence down.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
}

// Response is the envelope every API endpoint answers with.
type Response struct {
	Code          string   `json:"code"`
	ErrorMessages []string `json:"error_messages"`
}

type ListResponse struct {
	Response
	Result ListResult `json:"result"`
}

type ListResult struct {
	TotalCount       int      `json:"total_count"`
	DisplayCountFrom int      `json:"display_count_from"`
	DisplayCountTo   int      `json:"display_count_to"`
	CurrentPage      int      `json:"current_page"`
	MaxPage          int      `json:"max_page"`
	CveList          []Record `json:"cve_list"`
}

type Record struct {
	CveID            string   `json:"cve_id"`
	CveURL           string   `json:"cve_url"`
	NvdURL           string   `json:"nvd_url"`
	NvdContentExists bool     `json:"nvd_content_exists"`
	CveDescription   string   `json:"cve_description"`
	Cvss3Score       *float64 `json:"cvss3_score"`
	Cvss3Severity    Severity `json:"cvss3_severity"`
	Cvss2Score       *float64 `json:"cvss2_score"`
	Cvss2Severity    Severity `json:"cvss2_severity"`
	PublishedDate    *string  `json:"published_date"`
	LabelID          *int     `json:"label_id"`
	Comment          *string  `json:"comment"`
}

// Label is a category a user can attach to a CVE.
type Label struct {
	ID   string `yaml:"id" json:"cve_label_id"`
	Code string `yaml:"code" json:"cve_label_code"`
	Name string `yaml:"name" json:"cve_label_name"`
}

// DefaultLabels mirrors the label master of a fresh installation.
var DefaultLabels = []Label{
	{ID: "1", Code: "todo", Name: "要対応"},
	{ID: "2", Code: "not_required", Name: "対応不要"},
	{ID: "3", Code: "done", Name: "対応済み"},
	{ID: "4", Code: "other", Name: "その他"},
}
