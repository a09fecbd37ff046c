/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedOps is the default operation allow-list.
var SupportedOps = []string{"create", "update", "get", "delete", "list", "query"}

// EncryptedAttribute names an item attribute whose value is encrypted with
// the given KMS key before it is written.
type EncryptedAttribute struct {
	// Name is the item attribute name.
	Name string `yaml:"name" json:"name"`

	// KeyID is the KMS master key used to encrypt the value.
	KeyID string `yaml:"key_id" json:"key_id"`
}

// Config holds configuration for a Handler.
type Config struct {
	// TableName is the backing DynamoDB table (required).
	TableName string `yaml:"table_name" json:"table_name"`

	// Region selects the AWS region.
	Region string `yaml:"region" json:"region"`

	// Profile selects a shared AWS credential profile.
	Profile string `yaml:"profile" json:"profile"`

	// AccessKey and SecretKey override the credential chain when both are set.
	AccessKey string `yaml:"access_key" json:"access_key"`
	SecretKey string `yaml:"secret_key" json:"secret_key"`

	// Defaults are name/value pairs used to initialize newly created items.
	// Values may be token strings ("<uuid>", "<timestamp>", "<datetime>") or
	// literals. The "id" and "created_at" defaults are always present.
	Defaults map[string]any `yaml:"defaults" json:"defaults"`

	// SupportedOps is the operation allow-list.
	// Default: create, update, get, delete, list, query.
	SupportedOps []string `yaml:"supported_ops" json:"supported_ops"`

	// EncryptedAttributes lists attributes to encrypt via KMS.
	EncryptedAttributes []EncryptedAttribute `yaml:"encrypted_attributes" json:"encrypted_attributes"`

	// Debug keeps the raw provider response on the envelope.
	Debug bool `yaml:"debug" json:"debug"`
}

// validate fills defaults and checks required fields.
func (c *Config) validate() error {
	if c.TableName == "" {
		return fmt.Errorf("cruddy: table_name is required")
	}
	if len(c.SupportedOps) == 0 {
		c.SupportedOps = SupportedOps
	}
	defaults := make(map[string]any, len(c.Defaults)+2)
	for k, v := range c.Defaults {
		defaults[k] = v
	}
	// The hash key and creation timestamp are always handler-managed.
	defaults["id"] = "<uuid>"
	defaults["created_at"] = "<timestamp>"
	c.Defaults = defaults
	return nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}
