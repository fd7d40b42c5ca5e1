package handler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reasonStruct struct {
	Reason string `validate:"required,reason"`
}

type amountStruct struct {
	Amount decimal.Decimal `validate:"gt=0"`
}

type subjectStruct struct {
	SubjectID string `validate:"required,max=16,subject"`
}

func TestValidator_Reason(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		reason  string
		wantErr bool
	}{
		{"mining:1700000000000", false},
		{"task:v1", false},
		{"task:", true},
		{"mining", true},
		{"referral:bob", true},
		{"withdraw:req-1", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			err := v.ValidateStruct(reasonStruct{Reason: tt.reason})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_DecimalAmount(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(amountStruct{Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.ValidateStruct(amountStruct{Amount: decimal.Zero}))
	assert.Error(t, v.ValidateStruct(amountStruct{Amount: decimal.NewFromInt(-3)}))
}

func TestValidator_Subject(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(subjectStruct{SubjectID: "tg_12345"}))
	assert.Error(t, v.ValidateStruct(subjectStruct{SubjectID: "has space"}))
	assert.Error(t, v.ValidateStruct(subjectStruct{SubjectID: "a/b"}))
	assert.Error(t, v.ValidateStruct(subjectStruct{SubjectID: "this-id-is-far-too-long"}))
	assert.Error(t, v.ValidateStruct(subjectStruct{}))
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(struct {
		SubjectID string          `validate:"required"`
		Reason    string          `validate:"reason"`
		Amount    decimal.Decimal `validate:"gt=0"`
	}{Reason: "bonus:x"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["subjectid"])
	assert.Equal(t, "Must be mining:<id> or task:<id>", fields["reason"])
	assert.Equal(t, "Must be greater than 0", fields["amount"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
