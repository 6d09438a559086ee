// internal/config/database.go
package config

import (
	"fmt"
)

const applicationName = "mvshop-backend"

// DSN returns DATABASE_URL verbatim when set, otherwise a keyword/value
// connection string built from the discrete DB_* settings.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC application_name=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode, applicationName,
	)
}
