package validation

import (
	"errors"
	"math"
	"testing"
)

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{
			name:  "already normalized",
			value: "Buddy",
			want:  "Buddy",
		},
		{
			name:  "trims and title-cases",
			value: "  rex ",
			want:  "Rex",
		},
		{
			name:  "multiple words",
			value: "new zealand",
			want:  "New Zealand",
		},
		{
			name:  "upper case is folded",
			value: "USA",
			want:  "Usa",
		},
		{
			name:    "empty string",
			value:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			value:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NonEmpty(tt.value, "name")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NonEmpty(%q) expected error, got %q", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NonEmpty(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("NonEmpty(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestNonNegativeInt(t *testing.T) {
	if _, err := NonNegativeInt(-1, "age"); err == nil {
		t.Fatalf("expected error for negative value")
	}
	got, err := NonNegativeInt(0, "age")
	if err != nil || got != 0 {
		t.Fatalf("NonNegativeInt(0) = %d, %v", got, err)
	}
}

func TestPositiveFinite(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{name: "positive", value: 25.5},
		{name: "zero", value: 0, wantErr: true},
		{name: "negative", value: -3, wantErr: true},
		{name: "nan", value: math.NaN(), wantErr: true},
		{name: "positive infinity", value: math.Inf(1), wantErr: true},
		{name: "negative infinity", value: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PositiveFinite(tt.value, "weight")
			if tt.wantErr && err == nil {
				t.Fatalf("PositiveFinite(%v) expected error", tt.value)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("PositiveFinite(%v) unexpected error: %v", tt.value, err)
			}
		})
	}
}

func TestFieldErrorIdentifiesField(t *testing.T) {
	_, err := PositiveFinite(0, "weight")

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected *FieldError, got %T", err)
	}
	if fieldErr.Field != "weight" {
		t.Fatalf("FieldError.Field = %q, want %q", fieldErr.Field, "weight")
	}
	if fieldErr.Error() != "weight must be a positive, finite number" {
		t.Fatalf("unexpected message: %q", fieldErr.Error())
	}
}

func TestIntValue(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "int", value: 3, want: 3},
		{name: "int32 from driver", value: int32(4), want: 4},
		{name: "int64 from driver", value: int64(5), want: 5},
		{name: "whole float from json", value: float64(2), want: 2},
		{name: "fractional float", value: 2.5, wantErr: true},
		{name: "string", value: "2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntValue(tt.value, "age")
			if tt.wantErr {
				if err == nil {
					t.Fatalf("IntValue(%v) expected error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("IntValue(%v) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Fatalf("IntValue(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestBoolValue(t *testing.T) {
	if _, err := BoolValue("Yes", "reserved"); err == nil {
		t.Fatalf("string value must not be accepted as boolean")
	}
	got, err := BoolValue(true, "reserved")
	if err != nil || !got {
		t.Fatalf("BoolValue(true) = %v, %v", got, err)
	}
}
