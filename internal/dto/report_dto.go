package dto

type CreateReportRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type ResolveReportRequest struct {
	Outcome   string `json:"outcome"`
	Action    string `json:"action,omitempty"`
	AdminNote string `json:"admin_note,omitempty"`
}
