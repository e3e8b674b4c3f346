package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/dashboard_test?parseTime=true&clientFoundRows=true"

// SetupTestDB opens the integration database named by TEST_DB_DSN (a local
// dashboard_test schema by default) and skips the test when it is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"invoices", "customers", "products", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS customers (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		image_url VARCHAR(255) NOT NULL DEFAULT ''
	)`

	createInvoicesTable := `
	CREATE TABLE IF NOT EXISTS invoices (
		id CHAR(36) NOT NULL PRIMARY KEY,
		customer_id CHAR(36) NOT NULL,
		amount INT NOT NULL,
		status VARCHAR(16) NOT NULL,
		date DATE NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id),
		INDEX idx_amount (amount)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createUsersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"customers", createCustomersTable},
		{"invoices", createInvoicesTable},
		{"products", createProductsTable},
		{"users", createUsersTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// InsertCustomer seeds one customer row for tests that need a valid foreign key.
func InsertCustomer(t *testing.T, db *sql.DB, id, name, email string) {
	_, err := db.Exec(`INSERT INTO customers (id, name, email) VALUES (?, ?, ?)`, id, name, email)
	if err != nil {
		t.Fatalf("failed to insert customer %s: %v", id, err)
	}
}
