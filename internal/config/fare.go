package config

type FareConfig struct {
	RatePerKm  float64 `yaml:"rate_per_km"`
	RoadFactor float64 `yaml:"road_factor"`
	Currency   string  `yaml:"currency"`
}

func loadFareConfig() *FareConfig {
	return &FareConfig{
		RatePerKm:  getEnvAsFloat64("FARE_RATE_PER_KM", 12.0),
		RoadFactor: getEnvAsFloat64("FARE_ROAD_FACTOR", 1.2),
		Currency:   getEnv("FARE_CURRENCY", "INR"),
	}
}
