package domain

import "strings"

// SyncConfig is the credential pair for the external workspace database.
// Either both values are present or the configuration counts as absent.
type SyncConfig struct {
	APIToken   string `json:"apiToken"`
	DatabaseID string `json:"databaseId"`
}

// Complete reports whether c is non-nil and carries both credentials.
func (c *SyncConfig) Complete() bool {
	return c != nil &&
		strings.TrimSpace(c.APIToken) != "" &&
		strings.TrimSpace(c.DatabaseID) != ""
}
