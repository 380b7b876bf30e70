package utils

import (
	"errors"
	"testing"

	"event-crm/pkg/apperrors"
)

type validationFixture struct {
	Name  string           `validate:"required,max=10"`
	Phone string           `validate:"required,phone"`
	Inner *validationInner `validate:"omitempty"`
}

type validationInner struct {
	Location string `validate:"omitempty,max=5"`
}

func TestValidateStruct_Passes(t *testing.T) {
	fixture := &validationFixture{Name: "Jane", Phone: "+1 (555) 010-0000"}
	if err := ValidateStruct(fixture); err != nil {
		t.Errorf("ValidateStruct returned %v", err)
	}
}

func TestValidateStruct_FieldBreakdown(t *testing.T) {
	fixture := &validationFixture{Phone: "call me maybe"}

	err := ValidateStruct(fixture)
	if !apperrors.IsValidation(err) {
		t.Fatalf("ValidateStruct = %v, want validation error", err)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatal("error is not an AppError")
	}
	if len(appErr.Fields) != 2 {
		t.Fatalf("got %d field errors, want 2", len(appErr.Fields))
	}

	byField := make(map[string]string, len(appErr.Fields))
	for _, fe := range appErr.Fields {
		byField[fe.Field] = fe.Message
	}
	if byField["name"] != "is required" {
		t.Errorf("name error = %q, want %q", byField["name"], "is required")
	}
	if byField["phone"] != "must be a valid phone number" {
		t.Errorf("phone error = %q, want %q", byField["phone"], "must be a valid phone number")
	}
}

func TestValidateStruct_NestedFieldName(t *testing.T) {
	fixture := &validationFixture{
		Name:  "Jane",
		Phone: "+15550100",
		Inner: &validationInner{Location: "somewhere far away"},
	}

	err := ValidateStruct(fixture)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("ValidateStruct = %v, want validation error", err)
	}
	if len(appErr.Fields) != 1 {
		t.Fatalf("got %d field errors, want 1", len(appErr.Fields))
	}
	if appErr.Fields[0].Field != "inner.location" {
		t.Errorf("field = %q, want inner.location", appErr.Fields[0].Field)
	}
}
