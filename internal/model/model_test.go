package model

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("due date", "2025-01-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(d); got != "2025-01-15" {
		t.Fatalf("FormatDate = %q, want 2025-01-15", got)
	}

	for _, in := range []string{"", "  ", "15/01/2025", "2025-13-01", "tomorrow"} {
		if _, err := ParseDate("due date", in); !errors.Is(err, ErrValidation) {
			t.Errorf("ParseDate(%q) err = %v, want ErrValidation", in, err)
		}
	}
}

func TestValidationErrorAs(t *testing.T) {
	err := Required("title", " ")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Required returned %T, want *ValidationError", err)
	}
	if ve.Field != "title" {
		t.Fatalf("Field = %q, want title", ve.Field)
	}
	if Required("title", "x") != nil {
		t.Fatal("Required rejected a non-empty value")
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"pending":     StatusPending,
		"todo":        StatusPending,
		"in-progress": StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		"done":        StatusCompleted,
		"completed":   StatusCompleted,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil || got != want {
			t.Errorf("ParseStatus(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseStatus("blocked"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseStatus(blocked) err = %v, want ErrValidation", err)
	}
}

func TestCentsString(t *testing.T) {
	cases := []struct {
		in   Cents
		want string
	}{
		{0, "$0"},
		{5500000, "$55,000"},
		{123456, "$1,234.56"},
		{105, "$1.05"},
		{-2950000, "-$29,500"},
	}
	for _, c := range cases {
		if got := c.in.String(); got != c.want {
			t.Errorf("Cents(%d).String() = %q, want %q", c.in, got, c.want)
		}
	}
}
