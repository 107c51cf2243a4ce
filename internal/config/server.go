package config

// StorefrontServerConfig holds configuration for the local fixture storefront
type StorefrontServerConfig struct {
	Port string
}

// LoadStorefrontServerConfig loads fixture server configuration from environment variables
func LoadStorefrontServerConfig(getenv func(string) string) StorefrontServerConfig {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	return StorefrontServerConfig{
		Port: port,
	}
}
