package request

type SetFilterRequest struct {
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
	Types       []string `json:"types,omitempty"`
	AccountIDs  []string `json:"accountIds,omitempty"`
	MinAmount   *float64 `json:"minAmount,omitempty"`
	MaxAmount   *float64 `json:"maxAmount,omitempty"`
	SearchText  string   `json:"searchText,omitempty"`
}
