package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment platforms supported by the shop. CASH is a singleton fulfilled at
// pickup; the others are electronic wallets, capped at four entries total.
const (
	PlatformCash   = "CASH"
	PlatformWaafi  = "WAAFI"
	PlatformDMoney = "D-MONEY"
	PlatformCacPay = "CAC-PAY"
	PlatformBciPay = "BCI-PAY"
)

// ElectronicPlatforms lists the accepted non-cash platforms.
var ElectronicPlatforms = []string{PlatformWaafi, PlatformDMoney, PlatformCacPay, PlatformBciPay}

// MaxElectronicPayments caps the number of non-cash payment entries.
const MaxElectronicPayments = 4

// Machine codes attached to payment validation failures.
const (
	CodeCashAlreadyExists     = "CASH_ALREADY_EXISTS"
	CodePaymentLimitReached   = "PAYMENT_LIMIT_REACHED"
	CodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	CodeInvalidPlatform       = "INVALID_PLATFORM"
	CodePlatformAlreadyExists = "PLATFORM_ALREADY_EXISTS"
	CodeValidationError       = "VALIDATION_ERROR"
	CodeInternalError         = "INTERNAL_ERROR"
)

// PaymentType is a stored payment method. Name and Number are absent for CASH.
type PaymentType struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Platform      string             `json:"platform" bson:"platform"`
	Name          string             `json:"paymentName,omitempty" bson:"paymentName,omitempty"`
	Number        string             `json:"paymentNumber,omitempty" bson:"paymentNumber,omitempty"`
	IsCashPayment bool               `json:"isCashPayment" bson:"isCashPayment"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// PaymentRequest is the loosely-typed body of POST /api/settings/paymentType.
type PaymentRequest struct {
	Platform      string `json:"platform"`
	Name          string `json:"paymentName"`
	Number        string `json:"paymentNumber"`
	IsCashPayment bool   `json:"isCashPayment"`
}

// PaymentVariant is the resolved, validated form of a PaymentRequest:
// either cash, or an electronic wallet with credentials.
type PaymentVariant struct {
	IsCash   bool
	Platform string
	Name     string
	Number   string
}

// PaymentError carries a machine code alongside the human-readable message.
type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string { return e.Message }

// Resolve classifies the request as cash or electronic and validates the
// fields that do not depend on database state. Duplicate and limit checks
// are left to the caller.
func (r PaymentRequest) Resolve() (PaymentVariant, *PaymentError) {
	if r.Platform == PlatformCash || r.IsCashPayment {
		return PaymentVariant{IsCash: true, Platform: PlatformCash}, nil
	}

	if r.Platform == "" || r.Name == "" || r.Number == "" {
		return PaymentVariant{}, &PaymentError{
			Code:    CodeMissingRequiredFields,
			Message: "Platform, name and number are required for electronic payments",
		}
	}

	valid := false
	for _, p := range ElectronicPlatforms {
		if r.Platform == p {
			valid = true
			break
		}
	}
	if !valid {
		return PaymentVariant{}, &PaymentError{
			Code:    CodeInvalidPlatform,
			Message: "Unsupported platform. Use: WAAFI, D-MONEY, CAC-PAY, BCI-PAY",
		}
	}

	return PaymentVariant{Platform: r.Platform, Name: r.Name, Number: r.Number}, nil
}
