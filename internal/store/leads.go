package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"leadgen-engine/internal/domain"
)

// InsertLeadIgnore persists a qualified lead. The unique index on
// lower(domain) makes this a no-op for a domain already present; the
// returned added flag distinguishes the two outcomes.
func InsertLeadIgnore(db *sql.DB, l domain.Lead) (added bool, err error) {
	emails, _ := json.Marshal(orEmpty(l.Emails))
	details, _ := json.Marshal(orEmptyDetails(l.EmailDetails))

	now := time.Now().UTC().Format(time.RFC3339)
	qualifiedAt := ""
	if !l.Qualification.QualifiedAt.IsZero() {
		qualifiedAt = l.Qualification.QualifiedAt.UTC().Format(time.RFC3339)
	}

	_, err = db.Exec(`
INSERT OR IGNORE INTO leads
  (domain, name, description, url, phone, linkedin_url,
   emails, email_details, email_source,
   score, fit, reasoning, qualified_at,
   product_id, product_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		l.Domain, l.Name, l.Description, l.URL, l.Phone, l.LinkedInURL,
		string(emails), string(details), l.EmailSource,
		l.Qualification.Score, l.Qualification.Fit, l.Qualification.Reasoning, qualifiedAt,
		l.ProductID, l.ProductName, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("insert lead: %w", err)
	}

	// changes() tells us whether IGNORE swallowed the row.
	var changes int
	if e := db.QueryRow(`SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// LeadFilter narrows ListLeads. Zero values mean "no constraint".
type LeadFilter struct {
	MinScore    int
	ProductID   string
	ProductName string
	Persona     string
	Limit       int
	Skip        int
}

func ListLeads(db *sql.DB, f LeadFilter) ([]domain.Lead, error) {
	where, args := leadWhere(f)

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := `
SELECT id, domain, name, description, url, phone, linkedin_url,
       emails, email_details, email_source,
       score, fit, reasoning, qualified_at,
       product_id, product_name, created_at, updated_at
FROM leads` + where + `
ORDER BY score DESC, created_at DESC
LIMIT ? OFFSET ?;`
	args = append(args, limit, f.Skip)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Lead, 0, 32)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func CountLeads(db *sql.DB, f LeadFilter) (int, error) {
	where, args := leadWhere(f)
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM leads`+where+`;`, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}

func leadWhere(f LeadFilter) (string, []any) {
	var conds []string
	var args []any

	if f.MinScore > 0 {
		conds = append(conds, "score >= ?")
		args = append(args, f.MinScore)
	}
	if f.ProductID != "" {
		conds = append(conds, "product_id = ?")
		args = append(args, f.ProductID)
	}
	if f.ProductName != "" {
		conds = append(conds, "lower(product_name) = lower(?)")
		args = append(args, f.ProductName)
	}
	if f.Persona != "" {
		// email_details is a JSON array; good enough for a local tool.
		conds = append(conds, `email_details LIKE ?`)
		args = append(args, `%"persona":"`+f.Persona+`"%`)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanLead(rows *sql.Rows) (domain.Lead, error) {
	var l domain.Lead
	var emails, details, qualifiedAt, createdAt, updatedAt string

	if err := rows.Scan(
		&l.ID, &l.Domain, &l.Name, &l.Description, &l.URL, &l.Phone, &l.LinkedInURL,
		&emails, &details, &l.EmailSource,
		&l.Qualification.Score, &l.Qualification.Fit, &l.Qualification.Reasoning, &qualifiedAt,
		&l.ProductID, &l.ProductName, &createdAt, &updatedAt,
	); err != nil {
		return domain.Lead{}, fmt.Errorf("scan lead: %w", err)
	}

	_ = json.Unmarshal([]byte(emails), &l.Emails)
	_ = json.Unmarshal([]byte(details), &l.EmailDetails)
	if l.Emails == nil {
		l.Emails = []string{}
	}
	if l.EmailDetails == nil {
		l.EmailDetails = []domain.EmailDetail{}
	}

	if t, err := time.Parse(time.RFC3339, qualifiedAt); err == nil {
		l.Qualification.QualifiedAt = t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		l.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		l.UpdatedAt = t
	}
	return l, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyDetails(d []domain.EmailDetail) []domain.EmailDetail {
	if d == nil {
		return []domain.EmailDetail{}
	}
	return d
}
