package countries

// ListRequest represents the query parameters of the country list endpoint.
type ListRequest struct {
	Query   string   `form:"q" validate:"max=64"`
	Mode    string   `form:"mode" validate:"omitempty,oneof=all including excluding"`
	Codes   []string `form:"codes" validate:"max=300,dive,region"`
	Current string   `form:"current" validate:"omitempty,region"`
}

// CountryItem is a directory entry with its resolved flag.
type CountryItem struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	DialCode  string `json:"dialCode"`
	FlagAsset string `json:"flagAsset"`
	Flag      string `json:"flag"`
	Selected  bool   `json:"selected"`
}

type ListResponse struct {
	Items []CountryItem `json:"items"`
	Total int           `json:"total"`
}
