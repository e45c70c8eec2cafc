// ABOUTME: Lead database operations
// ABOUTME: Handles lead creation, lookups, listing, and funnel counts
package db

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/engrity/intake/models"
)

// ErrDuplicateEmail is returned when a lead already exists for the email.
var ErrDuplicateEmail = errors.New("a lead already exists for this email")

func CreateLead(db *sql.DB, lead *models.Lead) error {
	lead.ID = ulid.Make().String()
	lead.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO leads (id, address, first_name, last_name, email, phone, consent,
			bedrooms, bathrooms, basement, basement_status, selling_timeline,
			property_type, unit_number, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID, lead.Address, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Consent, lead.Bedrooms, lead.Bathrooms, lead.Basement, lead.BasementStatus,
		lead.SellingTimeline, lead.PropertyType, lead.UnitNumber, lead.CreatedAt)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicateEmail
	}

	return err
}

func GetLead(db *sql.DB, id string) (*models.Lead, error) {
	lead := &models.Lead{}

	err := db.QueryRow(`
		SELECT id, address, first_name, last_name, email, phone, consent,
			bedrooms, bathrooms, basement, basement_status, selling_timeline,
			property_type, unit_number, created_at
		FROM leads WHERE id = ?
	`, id).Scan(
		&lead.ID,
		&lead.Address,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.Consent,
		&lead.Bedrooms,
		&lead.Bathrooms,
		&lead.Basement,
		&lead.BasementStatus,
		&lead.SellingTimeline,
		&lead.PropertyType,
		&lead.UnitNumber,
		&lead.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return lead, nil
}

func FindLeadByEmail(db *sql.DB, email string) (*models.Lead, error) {
	row := db.QueryRow(`SELECT id FROM leads WHERE email = ?`, email)

	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return GetLead(db, id)
}

func FindLeads(db *sql.DB, query string, limit int) ([]models.Lead, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error

	if query != "" {
		searchPattern := "%" + strings.ToLower(query) + "%"
		rows, err = db.Query(`
			SELECT id, address, first_name, last_name, email, phone, consent,
				bedrooms, bathrooms, basement, basement_status, selling_timeline,
				property_type, unit_number, created_at
			FROM leads
			WHERE LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?
				OR LOWER(email) LIKE ? OR LOWER(address) LIKE ?
			ORDER BY created_at DESC
			LIMIT ?
		`, searchPattern, searchPattern, searchPattern, searchPattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT id, address, first_name, last_name, email, phone, consent,
				bedrooms, bathrooms, basement, basement_status, selling_timeline,
				property_type, unit_number, created_at
			FROM leads
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var lead models.Lead
		err := rows.Scan(
			&lead.ID,
			&lead.Address,
			&lead.FirstName,
			&lead.LastName,
			&lead.Email,
			&lead.Phone,
			&lead.Consent,
			&lead.Bedrooms,
			&lead.Bathrooms,
			&lead.Basement,
			&lead.BasementStatus,
			&lead.SellingTimeline,
			&lead.PropertyType,
			&lead.UnitNumber,
			&lead.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// CountLeadsByTimeline groups stored leads by their selling timeline answer.
func CountLeadsByTimeline(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT selling_timeline, COUNT(*)
		FROM leads
		GROUP BY selling_timeline
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var timeline string
		var count int
		if err := rows.Scan(&timeline, &count); err != nil {
			return nil, err
		}
		counts[timeline] = count
	}

	return counts, rows.Err()
}
