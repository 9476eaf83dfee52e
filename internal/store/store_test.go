package store

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"leadgen-engine/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func testLead(companyDomain string, score int) domain.Lead {
	return domain.Lead{
		Domain:      companyDomain,
		Name:        "Acme",
		Description: "Cloud monitoring",
		URL:         "https://" + companyDomain,
		Emails:      []string{"sales@" + companyDomain},
		EmailDetails: []domain.EmailDetail{
			{Email: "sales@" + companyDomain, Confidence: 70, Status: "likely", HasMX: true},
		},
		EmailSource: "generated",
		Qualification: domain.Qualification{
			Score:       score,
			Fit:         "high",
			Reasoning:   "match",
			QualifiedAt: time.Now().UTC(),
		},
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, Migrate(db))

	var v int
	require.NoError(t, db.QueryRow(`PRAGMA user_version;`).Scan(&v))
	require.Equal(t, 1, v)
}

func TestInsertLeadIgnore(t *testing.T) {
	db := testDB(t)

	added, err := InsertLeadIgnore(db, testLead("acme.io", 80))
	require.NoError(t, err)
	require.True(t, added)

	// Same domain again: swallowed, not an error.
	added, err = InsertLeadIgnore(db, testLead("acme.io", 90))
	require.NoError(t, err)
	require.False(t, added)

	// Case only differs: still a duplicate.
	added, err = InsertLeadIgnore(db, testLead("ACME.IO", 90))
	require.NoError(t, err)
	require.False(t, added)

	n, err := CountLeads(db, LeadFilter{})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// First writer wins.
	leads, err := ListLeads(db, LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	require.Equal(t, 80, leads[0].Qualification.Score)
	require.Equal(t, "acme.io", leads[0].Domain)
}

func TestListLeadsRoundTrip(t *testing.T) {
	db := testDB(t)

	in := testLead("acme.io", 80)
	in.Phone = "(415) 555-0123"
	in.LinkedInURL = "https://www.linkedin.com/company/acme-io"
	in.EmailDetails[0].Persona = "C-Level"
	in.ProductID = uuid.NewString()
	in.ProductName = "Monitor Pro"

	_, err := InsertLeadIgnore(db, in)
	require.NoError(t, err)

	leads, err := ListLeads(db, LeadFilter{})
	require.NoError(t, err)
	require.Len(t, leads, 1)

	got := leads[0]
	require.NotZero(t, got.ID)
	require.Equal(t, in.Name, got.Name)
	require.Equal(t, in.Phone, got.Phone)
	require.Equal(t, in.LinkedInURL, got.LinkedInURL)
	require.Equal(t, in.Emails, got.Emails)
	require.Equal(t, in.EmailDetails, got.EmailDetails)
	require.Equal(t, "generated", got.EmailSource)
	require.Equal(t, in.ProductID, got.ProductID)
	require.Equal(t, "high", got.Qualification.Fit)
	require.False(t, got.CreatedAt.IsZero())
	require.False(t, got.Qualification.QualifiedAt.IsZero())
}

func TestListLeadsFilters(t *testing.T) {
	db := testDB(t)

	a := testLead("acme.io", 90)
	a.ProductID = "p1"
	a.ProductName = "Monitor Pro"
	a.EmailDetails[0].Persona = "C-Level"

	b := testLead("widgetco.com", 70)
	b.ProductID = "p2"
	b.ProductName = "Widget Suite"

	c := testLead("initech.com", 65)
	c.ProductID = "p1"
	c.ProductName = "Monitor Pro"

	for _, l := range []domain.Lead{a, b, c} {
		_, err := InsertLeadIgnore(db, l)
		require.NoError(t, err)
	}

	t.Run("min score", func(t *testing.T) {
		got, err := ListLeads(db, LeadFilter{MinScore: 70})
		require.NoError(t, err)
		require.Len(t, got, 2)
		// score DESC ordering
		require.Equal(t, "acme.io", got[0].Domain)
		require.Equal(t, "widgetco.com", got[1].Domain)
	})

	t.Run("product id", func(t *testing.T) {
		got, err := ListLeads(db, LeadFilter{ProductID: "p1"})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("product name case-insensitive", func(t *testing.T) {
		got, err := ListLeads(db, LeadFilter{ProductName: "monitor pro"})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("persona", func(t *testing.T) {
		got, err := ListLeads(db, LeadFilter{Persona: "C-Level"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "acme.io", got[0].Domain)
	})

	t.Run("limit and skip", func(t *testing.T) {
		got, err := ListLeads(db, LeadFilter{Limit: 1, Skip: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "widgetco.com", got[0].Domain)
	})

	t.Run("count honors filter", func(t *testing.T) {
		n, err := CountLeads(db, LeadFilter{ProductID: "p1"})
		require.NoError(t, err)
		require.Equal(t, 2, n)
	})
}
