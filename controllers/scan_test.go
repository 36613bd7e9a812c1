package controllers

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errScan = errors.New("scan failed")

// failingRows yields n rows whose Scan always errors.
type failingRows struct {
	n int
}

func (r *failingRows) Close() {}

func (r *failingRows) Err() error { return nil }

func (r *failingRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *failingRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *failingRows) Next() bool { r.n--; return r.n >= 0 }

func (r *failingRows) Scan(dest ...any) error { return errScan }

func (r *failingRows) Values() ([]any, error) { return nil, errScan }

func (r *failingRows) RawValues() [][]byte { return nil }

func (r *failingRows) Conn() *pgx.Conn { return nil }

// A row that fails to scan must fail the whole read, never produce a
// silently shortened result.
func TestScannersPropagateScanErrors(t *testing.T) {
	cases := map[string]func(pgx.Rows) error{
		"nodes":         func(r pgx.Rows) error { _, err := scanNodes(r); return err },
		"parameters":    func(r pgx.Rows) error { _, err := scanParameters(r); return err },
		"restrictions":  func(r pgx.Rows) error { _, err := scanRestrictions(r); return err },
		"taxes":         func(r pgx.Rows) error { _, err := scanTaxes(r); return err },
		"declarations":  func(r pgx.Rows) error { _, err := scanDeclarations(r); return err },
		"documents":     func(r pgx.Rows) error { _, err := scanDocuments(r); return err },
		"faqs":          func(r pgx.Rows) error { _, err := scanFAQs(r); return err },
		"services":      func(r pgx.Rows) error { _, err := scanServices(r); return err },
		"home sections": func(r pgx.Rows) error { _, err := scanHomeSections(r); return err },
	}
	for name, scan := range cases {
		if err := scan(&failingRows{n: 1}); !errors.Is(err, errScan) {
			t.Errorf("%s: scan error swallowed, got %v", name, err)
		}
	}
}

func TestScanAdvertPropagatesError(t *testing.T) {
	if _, err := scanAdvert(&failingRows{n: 1}); !errors.Is(err, errScan) {
		t.Fatalf("scan error swallowed, got %v", err)
	}
}
