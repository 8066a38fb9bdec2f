// Package models defines the secret record protected by the vault.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/xpost/internal/common"
)

// Credentials is the full set of API credentials stored for one user.
// The record is always handled as a whole: collected together, serialized
// together, encrypted together. No field is optional.
type Credentials struct {
	ClientID          string `json:"client_id"`
	ClientSecret      string `json:"client_secret"`
	APIKey            string `json:"api_key"`
	APIKeySecret      string `json:"api_key_secret"`
	BearerToken       string `json:"bearer_token"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

// Field pairs a credential label with a pointer into a Credentials value.
// The CLI iterates Fields to prompt for every value in a fixed order.
type Field struct {
	Label string
	Value *string
}

// Fields returns the record's fields in their canonical prompt/print order.
func (c *Credentials) Fields() []Field {
	return []Field{
		{"CLIENT_ID", &c.ClientID},
		{"CLIENT_SECRET", &c.ClientSecret},
		{"API_KEY", &c.APIKey},
		{"API_KEY_SECRET", &c.APIKeySecret},
		{"BEARER_TOKEN", &c.BearerToken},
		{"ACCESS_TOKEN", &c.AccessToken},
		{"ACCESS_TOKEN_SECRET", &c.AccessTokenSecret},
	}
}

// Validate checks that every field is present. The record is rejected as a
// whole if any value is empty, so a partially filled record never reaches
// the cipher.
func (c *Credentials) Validate() error {
	for _, f := range c.Fields() {
		if *f.Value == "" {
			return fmt.Errorf("%w: %s is required", common.ErrorValidation, f.Label)
		}
	}
	return nil
}
