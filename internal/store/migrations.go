package store

import (
	"fmt"
	"strings"
)

// migrate applies the schema as an ordered list of idempotent statements.
// Dialect differences are confined to the {{id}} and {{timestamp}} tokens.
func (s *Store) migrate() error {
	var idCol, tsCol string
	switch s.driver {
	case DriverPostgres:
		idCol = "BIGSERIAL PRIMARY KEY"
		tsCol = "TIMESTAMPTZ NOT NULL DEFAULT now()"
	case DriverMySQL:
		idCol = "BIGINT PRIMARY KEY AUTO_INCREMENT"
		tsCol = "DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP"
	default:
		idCol = "INTEGER PRIMARY KEY AUTOINCREMENT"
		tsCol = "DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP"
	}
	dialect := strings.NewReplacer("{{id}}", idCol, "{{timestamp}}", tsCol)

	migrations := []string{
		// UNIQUE(username) is load-bearing: it is the authoritative guard
		// against duplicate accounts when concurrent requests pass the
		// count check. See Store.CreateFirstAdmin.
		`CREATE TABLE IF NOT EXISTS admin_users (
			id {{id}},
			username VARCHAR(255) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at {{timestamp}}
		)`,

		`CREATE TABLE IF NOT EXISTS solutions (
			id {{id}},
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id {{id}},
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			video TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS news_items (
			id {{id}},
			title TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS partner_benefits (
			id {{id}},
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS associations (
			id {{id}},
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			join_info TEXT NOT NULL DEFAULT '',
			logo TEXT NOT NULL DEFAULT '',
			contact_info TEXT NOT NULL DEFAULT '',
			website TEXT NOT NULL DEFAULT '',
			created_at {{timestamp}}
		)`,

		`CREATE TABLE IF NOT EXISTS exhibition_applications (
			id {{id}},
			exhibition TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL,
			contact_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			created_at {{timestamp}}
		)`,
	}

	for _, m := range migrations {
		stmt := dialect.Replace(m)
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, stmt)
		}
	}
	return nil
}
