package config

type MapsConfig struct {
	// Provider selects the place-search backend: "nominatim" or "google".
	Provider         string `yaml:"provider"`
	GoogleAPIKey     string `yaml:"google_api_key"`
	NominatimBaseURL string `yaml:"nominatim_base_url"`
	CountryCode      string `yaml:"country_code"`
	UserAgent        string `yaml:"user_agent"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider:         getEnv("MAPS_PROVIDER", "nominatim"),
		GoogleAPIKey:     getEnv("GOOGLE_MAPS_API_KEY", ""),
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", ""),
		CountryCode:      getEnv("MAPS_COUNTRY_CODE", "in"),
		UserAgent:        getEnv("MAPS_USER_AGENT", "taxihail/1.0"),
	}
}
