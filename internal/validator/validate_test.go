package validator

import (
	"testing"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createPaletteInput struct {
	Name   string
	Colors []string
}

func (r createPaletteInput) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Name, NameRule...),
		vd.Field(&r.Colors, ColorsRule...),
	)
}

func TestFieldErrors_SortedByField(t *testing.T) {
	t.Parallel()

	err := createPaletteInput{Name: "", Colors: nil}.Validate()
	require.Error(t, err)

	fieldErrs := FieldErrors(err)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "Colors", fieldErrs[0].Field)
	assert.Equal(t, "Name", fieldErrs[1].Field)
}

func TestColorsRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		colors  []string
		wantErr bool
	}{
		{"single valid color", []string{"#112233"}, false},
		{"mixed case digits", []string{"#aAbBcC", "#FF0000"}, false},
		{"ten colors", []string{"#000001", "#000002", "#000003", "#000004", "#000005", "#000006", "#000007", "#000008", "#000009", "#00000a"}, false},
		{"empty list", []string{}, true},
		{"eleven colors", []string{"#000001", "#000002", "#000003", "#000004", "#000005", "#000006", "#000007", "#000008", "#000009", "#00000a", "#00000b"}, true},
		{"missing hash", []string{"112233"}, true},
		{"short hex", []string{"#123"}, true},
		{"non-hex characters", []string{"#11223G"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := createPaletteInput{Name: "ok", Colors: tt.colors}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResetPasswordRule(t *testing.T) {
	t.Parallel()

	validate := func(pw string) error {
		return vd.Validate(pw, ResetPasswordRule...)
	}

	assert.NoError(t, validate("Abcdef1!"))
	assert.Error(t, validate("abcdef1!"), "missing uppercase")
	assert.Error(t, validate("ABCDEF1!"), "missing lowercase")
	assert.Error(t, validate("Abcdefg!"), "missing digit")
	assert.Error(t, validate("Abcdefg1"), "missing special character")
	assert.Error(t, validate("Ab1!"), "too short")
}
