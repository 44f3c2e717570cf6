package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	appconfig "github.com/GTDGit/gtd_storefront/internal/config"
)

func TestDSNEscapesCredentials(t *testing.T) {
	dsn := DSN(&appconfig.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "shop user",
		Password: "p@ss/word",
		Name:     "storefront",
		SSLMode:  "disable",
	})

	assert.Equal(t, "postgres://shop+user:p%40ss%2Fword@db:5432/storefront?sslmode=disable", dsn)
}

func TestConnectRejectsNilConfig(t *testing.T) {
	_, err := Connect(nil)
	assert.Error(t, err)
}
