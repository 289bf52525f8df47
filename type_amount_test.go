package solin

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("175.50")
	if err != nil {
		t.Fatalf("ParseAmount failed: %v", err)
	}
	if !got.Equal(A(175.50)) {
		t.Errorf("ParseAmount = %v, want %v", got, A(175.50))
	}

	if _, err := ParseAmount("ten rupees"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseAmount error = %v, want %v", err, ErrValidation)
	}
}

func TestAmountArithmetic(t *testing.T) {
	a, b := A(100.25), A(50)
	if got := a.Add(b); !got.Equal(A(150.25)) {
		t.Errorf("Add = %v, want %v", got, A(150.25))
	}
	if got := a.Sub(b); !got.Equal(A(50.25)) {
		t.Errorf("Sub = %v, want %v", got, A(50.25))
	}
	if !b.LessThanOrEqual(a) || !a.GreaterThan(b) {
		t.Errorf("comparison between %v and %v is inconsistent", a, b)
	}
	if !A(0).IsZero() || !A(-1).IsNegative() || !A(1).IsPositive() {
		t.Error("sign predicates are inconsistent")
	}
}

func TestAmountJSON(t *testing.T) {
	// Amounts serialize as bare JSON numbers, not quoted strings.
	content, err := json.Marshal(A(250.75))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(content) != "250.75" {
		t.Errorf("Marshal = %s, want 250.75", content)
	}

	var got Amount
	if err := json.Unmarshal([]byte("250.75"), &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !got.Equal(A(250.75)) {
		t.Errorf("Unmarshal = %v, want %v", got, A(250.75))
	}
	// Quoted numbers from older documents decode too.
	if err := json.Unmarshal([]byte(`"99.99"`), &got); err != nil {
		t.Fatalf("Unmarshal of quoted number failed: %v", err)
	}
	if !got.Equal(A(99.99)) {
		t.Errorf("Unmarshal = %v, want %v", got, A(99.99))
	}
}
