package validate

import (
	"strings"
	"testing"
)

type sample struct {
	Number  string  `json:"whatsappNumber" binding:"required,bdmobile"`
	Hours   float64 `json:"studyHours"     binding:"required,gte=0.5,lte=24"`
	Summary string  `json:"learningSummary" binding:"required,min=5,max=2000"`
}

func TestIsBDMobile(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01712345678", true},
		{"01012345678", true},
		{"0171234567", false},
		{"017123456789", false},
		{"02712345678", false},
		{"+8801712345678", false},
		{"0171234567a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBDMobile(tt.in); got != tt.want {
			t.Errorf("IsBDMobile(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	if err := v.Struct(sample{Number: "01712345678", Hours: 0.5, Summary: "hello"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestStruct_MessagesUseJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(sample{Number: "12345", Hours: 25, Summary: "hi"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := v.Messages(err)
	for _, field := range []string{"whatsappNumber", "studyHours", "learningSummary"} {
		if !strings.Contains(msg, field) {
			t.Errorf("expected message to mention %s, got %q", field, msg)
		}
	}
	if !strings.Contains(msg, "starting with 01") {
		t.Errorf("expected custom bdmobile text, got %q", msg)
	}
}

func TestGinValidator_IgnoresNonStructs(t *testing.T) {
	g := New().Gin()
	if err := g.ValidateStruct(nil); err != nil {
		t.Errorf("nil should pass: %v", err)
	}
	n := 3
	if err := g.ValidateStruct(&n); err != nil {
		t.Errorf("non-struct should pass: %v", err)
	}
	if err := g.ValidateStruct(&sample{}); err == nil {
		t.Error("empty struct should fail required rules")
	}
}
