package taxbracket

type CreateTaxBracketRequest struct {
	LowerLimit string  `json:"lower_limit" binding:"required"`
	UpperLimit *string `json:"upper_limit"`
	Rate       string  `json:"rate" binding:"required"`
}

type UpdateTaxBracketRequest struct {
	LowerLimit string  `json:"lower_limit" binding:"required"`
	UpperLimit *string `json:"upper_limit"`
	Rate       string  `json:"rate" binding:"required"`
}

type TaxBracketResponse struct {
	ID         string  `json:"id"`
	LowerLimit string  `json:"lower_limit"`
	UpperLimit *string `json:"upper_limit,omitempty"`
	Rate       string  `json:"rate"`
	IsDefault  bool    `json:"is_default"`
}
