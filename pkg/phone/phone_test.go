package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

func TestIsValidE164(t *testing.T) {
	valid := []string{"+15125551234", "+442079460958", "+8613800138000"}
	for _, number := range valid {
		assert.True(t, IsValidE164(number), number)
	}

	invalid := []string{"", "5125551234", "+0125551234", "+1 512 555 1234", "+abc"}
	for _, number := range invalid {
		assert.False(t, IsValidE164(number), number)
	}
}

func TestNormalizePrefixesDefaultCountryCode(t *testing.T) {
	normalized, err := Normalize("5125551234", "1")
	require.NoError(t, err)
	assert.Equal(t, "+15125551234", normalized)
}

func TestNormalizeStripsFormatting(t *testing.T) {
	normalized, err := Normalize("(512) 555-1234", "1")
	require.NoError(t, err)
	assert.Equal(t, "+15125551234", normalized)
}

func TestNormalizeIsIdempotentOnValidInput(t *testing.T) {
	const number = "+15125551234"
	normalized, err := Normalize(number, "44")
	require.NoError(t, err)
	assert.Equal(t, number, normalized)

	again, err := Normalize(normalized, "44")
	require.NoError(t, err)
	assert.Equal(t, number, again)
}

func TestNormalizeKeepsExplicitCountryCode(t *testing.T) {
	normalized, err := Normalize("+44 20 7946 0958", "1")
	require.NoError(t, err)
	assert.Equal(t, "+442079460958", normalized)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-phone", "+0"} {
		_, err := Normalize(input, "1")
		require.Error(t, err, input)
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	}
}

func TestCountryCode(t *testing.T) {
	code, err := CountryCode("+15125551234")
	require.NoError(t, err)
	assert.Equal(t, "1", code)

	code, err = CountryCode("+442079460958")
	require.NoError(t, err)
	assert.Equal(t, "44", code)

	_, err = CountryCode("5125551234")
	require.Error(t, err)
}
