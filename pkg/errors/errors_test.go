package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidConfig, "box %q: missing y", "Cloud"), `INVALID_CONFIG: box "Cloud": missing y`},
		{"wrapped", Wrap(ErrCodeInvalidConfig, cause, "decode TOML"), "INVALID_CONFIG: decode TOML: unexpected EOF"},
		{"with source", &Error{Code: ErrCodeInvalidEntry, Message: "bad row", Source: "deck.toml"}, "INVALID_ENTRY: deck.toml: bad row"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	err := Wrap(ErrCodeImageNotFound, os.ErrNotExist, "read image %s", "logo.png")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Same(t, os.ErrNotExist, errors.Unwrap(err))
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeVariantNotFound, "variant %q", "Nope")
	outer := Wrap(ErrCodeInvalidInput, inner, "render")

	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantCat  Category
	}{
		{"direct", inner, ErrCodeVariantNotFound, CategoryMissing},
		{"fmt wrapped", fmt.Errorf("layout: %w", inner), ErrCodeVariantNotFound, CategoryMissing},
		{"outermost wins", outer, ErrCodeInvalidInput, CategoryInput},
		{"plain error", os.ErrClosed, "", CategoryInternal},
		{"unknown code", New("SOMETHING_ELSE", "x"), "SOMETHING_ELSE", CategoryInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetCode(tt.err))
			assert.Equal(t, tt.wantCat, CategoryOf(tt.err))
			if tt.wantCode != "" {
				assert.True(t, Is(tt.err, tt.wantCode))
			}
			assert.False(t, Is(tt.err, ErrCodeUnsupported))
		})
	}
}

func TestCategories(t *testing.T) {
	tests := map[Code]Category{
		ErrCodeInvalidInput:    CategoryInput,
		ErrCodeInvalidConfig:   CategoryDocument,
		ErrCodeInvalidEntry:    CategoryDocument,
		ErrCodeInvalidFormat:   CategoryDocument,
		ErrCodeImageNotFound:   CategoryDocument,
		ErrCodeVariantNotFound: CategoryMissing,
		ErrCodeUnsupported:     CategoryUnsupported,
		ErrCodeInternal:        CategoryInternal,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.Category(), "%s", code)
	}
	assert.Equal(t, "document", CategoryDocument.String())
	assert.Equal(t, "internal", Category(42).String())
}

func TestIsConfig(t *testing.T) {
	assert.True(t, IsConfig(New(ErrCodeInvalidEntry, "x")))
	assert.True(t, IsConfig(fmt.Errorf("wrap: %w", New(ErrCodeInvalidConfig, "x"))))
	assert.False(t, IsConfig(New(ErrCodeInvalidInput, "x")))
	assert.False(t, IsConfig(errors.New("plain")))
}

func TestAt(t *testing.T) {
	assert.NoError(t, At(nil, "deck.toml"))

	err := At(New(ErrCodeInvalidConfig, "duplicate variant"), "deck.toml")
	assert.Equal(t, "INVALID_CONFIG: deck.toml: duplicate variant", err.Error())
	assert.Equal(t, "deck.toml: duplicate variant", UserMessage(err))

	err = At(err, "other.toml")
	assert.Equal(t, "deck.toml: duplicate variant", UserMessage(err), "existing source is kept")

	plain := At(os.ErrClosed, "deck.toml")
	assert.Equal(t, "deck.toml: "+os.ErrClosed.Error(), plain.Error())
	assert.ErrorIs(t, plain, os.ErrClosed)
}

func TestUserMessage(t *testing.T) {
	err := Wrap(ErrCodeInvalidInput, os.ErrPermission, "write %s", "out.svg")
	assert.Equal(t, "write out.svg", UserMessage(err))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
}
