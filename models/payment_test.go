package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRequestResolveCashByPlatform(t *testing.T) {
	variant, err := PaymentRequest{Platform: "CASH"}.Resolve()
	require.Nil(t, err)
	assert.True(t, variant.IsCash)
	assert.Equal(t, PlatformCash, variant.Platform)
	assert.Empty(t, variant.Name)
	assert.Empty(t, variant.Number)
}

func TestPaymentRequestResolveCashByFlag(t *testing.T) {
	variant, err := PaymentRequest{IsCashPayment: true}.Resolve()
	require.Nil(t, err)
	assert.True(t, variant.IsCash)
}

func TestPaymentRequestResolveElectronic(t *testing.T) {
	variant, err := PaymentRequest{
		Platform: "WAAFI",
		Name:     "Boutique Waafi",
		Number:   "77123456",
	}.Resolve()
	require.Nil(t, err)
	assert.False(t, variant.IsCash)
	assert.Equal(t, "WAAFI", variant.Platform)
	assert.Equal(t, "Boutique Waafi", variant.Name)
	assert.Equal(t, "77123456", variant.Number)
}

func TestPaymentRequestResolveMissingFields(t *testing.T) {
	cases := []PaymentRequest{
		{},
		{Platform: "WAAFI"},
		{Platform: "WAAFI", Name: "Boutique Waafi"},
		{Name: "Boutique Waafi", Number: "77123456"},
	}
	for _, req := range cases {
		_, err := req.Resolve()
		require.NotNil(t, err)
		assert.Equal(t, CodeMissingRequiredFields, err.Code)
	}
}

func TestPaymentRequestResolveInvalidPlatform(t *testing.T) {
	_, err := PaymentRequest{
		Platform: "MPESA",
		Name:     "Boutique",
		Number:   "123",
	}.Resolve()
	require.NotNil(t, err)
	assert.Equal(t, CodeInvalidPlatform, err.Code)
	assert.Contains(t, err.Message, "WAAFI")
}

func TestPaymentRequestResolveAllElectronicPlatforms(t *testing.T) {
	for _, platform := range ElectronicPlatforms {
		variant, err := PaymentRequest{Platform: platform, Name: "n", Number: "1"}.Resolve()
		require.Nil(t, err, platform)
		assert.Equal(t, platform, variant.Platform)
	}
}
