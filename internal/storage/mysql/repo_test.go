package mysql

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotel_finder/internal/domain"
)

func TestWhereClause(t *testing.T) {
	where, args, err := whereClause(domain.Filter{Fields: []string{"name"}})
	if err != nil || where != "" || args != nil {
		t.Fatalf("match-all: %q %v %v", where, args, err)
	}

	where, args, err = whereClause(domain.Filter{Fields: []string{"hotel_name", "city"}, Pattern: "par"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "WHERE REGEXP_LIKE(JSON_UNQUOTE(JSON_EXTRACT(doc, '$.hotel_name')), ?, 'i') OR " +
		"REGEXP_LIKE(JSON_UNQUOTE(JSON_EXTRACT(doc, '$.city')), ?, 'i')"
	if where != want {
		t.Fatalf("where:\n got %s\nwant %s", where, want)
	}
	if len(args) != 2 || args[0] != "par" || args[1] != "par" {
		t.Fatalf("unexpected args %v", args)
	}

	if _, _, err := whereClause(domain.Filter{Fields: []string{"x') OR 1=1 --"}, Pattern: "a"}); err == nil {
		t.Fatalf("expected rejection of unsafe field name")
	}
}

func TestTable(t *testing.T) {
	if n, err := table(domain.Hotels); err != nil || n != "hotels" {
		t.Fatalf("hotels: %q %v", n, err)
	}
	if _, err := table(domain.Collection("hotels; DROP TABLE x")); !errors.Is(err, domain.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestFindByID_Invalid(t *testing.T) {
	r := New(nil)
	if _, err := r.FindByID(context.Background(), domain.Cities, "nope"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestDecodeDoc(t *testing.T) {
	d, err := decodeDoc("64b7f0c2a1b2c3d4e5f60718", []byte(`{"name":"Paris","extra":{"a":1}}`))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if d.ID() != "64b7f0c2a1b2c3d4e5f60718" || d.String("name") != "Paris" {
		t.Fatalf("unexpected doc %+v", d)
	}
	if _, err := decodeDoc("x", []byte(`not json`)); err == nil || !strings.Contains(err.Error(), "decode document x") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
