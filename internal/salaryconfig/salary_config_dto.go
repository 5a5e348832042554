package salaryconfig

type CreateSalaryConfigurationRequest struct {
	Name             string  `json:"name" binding:"required"`
	BasicPercent     float64 `json:"basic_percent" binding:"required,gt=0"`
	TransportPercent float64 `json:"transport_percent" binding:"gte=0"`
	HousingPercent   float64 `json:"housing_percent" binding:"gte=0"`
	UtilityPercent   float64 `json:"utility_percent" binding:"gte=0"`
	MealPercent      float64 `json:"meal_percent" binding:"gte=0"`
	ClothingPercent  float64 `json:"clothing_percent" binding:"gte=0"`
}

type UpdateSalaryConfigurationRequest = CreateSalaryConfigurationRequest

type SalaryConfigurationResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	BasicPercent     string  `json:"basic_percent"`
	TransportPercent string  `json:"transport_percent"`
	HousingPercent   string  `json:"housing_percent"`
	UtilityPercent   string  `json:"utility_percent"`
	MealPercent      string  `json:"meal_percent"`
	ClothingPercent  string  `json:"clothing_percent"`
	IsActive         bool    `json:"is_active"`
	CreatedBy        string  `json:"created_by,omitempty"`
}
