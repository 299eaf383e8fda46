package request

type SplitItemRequest struct {
	Amount      float64 `json:"amount"`
	CategoryID  string  `json:"categoryId"`
	Description string  `json:"description,omitempty"`
	Merchant    string  `json:"merchant,omitempty"`
}

type CreateSplitRequest struct {
	Splits       []SplitItemRequest `json:"splits"`
	RetainParent bool               `json:"retainParent"`
}

type ConvertToRegularRequest struct {
	CategoryID  string `json:"categoryId"`
	Description string `json:"description,omitempty"`
}
