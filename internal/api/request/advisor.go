package request

type AdvisorFeedbackRequest struct {
	Description string `json:"description"`
	Merchant    string `json:"merchant,omitempty"`
	CategoryID  string `json:"categoryId"`
}
