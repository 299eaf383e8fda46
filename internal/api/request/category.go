package request

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	ColorHex string `json:"colorHex,omitempty"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	ColorHex *string `json:"colorHex,omitempty"`
}
