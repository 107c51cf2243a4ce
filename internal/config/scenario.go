package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRemoveProduct is the cart item removed during reconciliation
const DefaultRemoveProduct = "Backpack"

// Credentials holds the storefront login
type Credentials struct {
	Username string
	Password string
}

// ShippingInfo holds the checkout form values
type ShippingInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// ScenarioConfig holds the test data for one scenario run
type ScenarioConfig struct {
	Credentials    Credentials
	WantedProducts []string
	ShippingInfo   ShippingInfo
	RemoveProduct  string
}

// Scenario config file formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// scenarioFile is the on-disk layout of the scenario config
type scenarioFile struct {
	Username      string   `json:"username" yaml:"username"`
	Password      string   `json:"password" yaml:"password"`
	Products      []string `json:"products" yaml:"products"`
	FirstName     string   `json:"firstName" yaml:"firstName"`
	LastName      string   `json:"lastName" yaml:"lastName"`
	PostalCode    string   `json:"postalCode" yaml:"postalCode"`
	RemoveProduct string   `json:"removeProduct" yaml:"removeProduct"`
}

// LoadScenarioConfig reads the scenario config file at path
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario config: %w", err)
	}
	return ParseScenarioConfig(data, formatOf(path))
}

// ParseScenarioConfig decodes and validates a scenario config document
func ParseScenarioConfig(data []byte, format string) (*ScenarioConfig, error) {
	var file scenarioFile
	var err error
	if format == FormatJSON {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse scenario config: %w", err)
	}

	// Validate required fields
	if file.Username == "" {
		return nil, errors.New("username is required")
	}
	if file.Password == "" {
		return nil, errors.New("password is required")
	}
	if file.RemoveProduct == "" {
		file.RemoveProduct = DefaultRemoveProduct
	}

	products := make([]string, 0, len(file.Products))
	for _, p := range file.Products {
		if p == "" {
			return nil, errors.New("products must not contain empty names")
		}
		products = append(products, p)
	}

	return &ScenarioConfig{
		Credentials: Credentials{
			Username: file.Username,
			Password: file.Password,
		},
		WantedProducts: products,
		ShippingInfo: ShippingInfo{
			FirstName:  file.FirstName,
			LastName:   file.LastName,
			PostalCode: file.PostalCode,
		},
		RemoveProduct: file.RemoveProduct,
	}, nil
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}
