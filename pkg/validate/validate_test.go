package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/swaad/pkg/validate"
)

type addressForm struct {
	Street      string `json:"street"      validate:"required,min=3,max=200"`
	City        string `json:"city"        validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,digits=10"`
	ZipCode     string `json:"zipCode"     validate:"nullable,digits=6"`
}

func TestStruct_ValidAddress(t *testing.T) {
	errs := validate.Struct(&addressForm{
		Street:      "12 MG Road",
		City:        "Bengaluru",
		PhoneNumber: "9876543210",
	})
	assert.Empty(t, errs)
}

func TestStruct_RequiredAndDigits(t *testing.T) {
	errs := validate.Struct(&addressForm{
		Street:      "12 MG Road",
		PhoneNumber: "98765",
	})

	assert.Equal(t, "The city field is required.", errs["city"])
	assert.Equal(t, "The phoneNumber must be 10 digits.", errs["phoneNumber"])
}

func TestStruct_NullableSkipsWhenEmpty(t *testing.T) {
	form := &addressForm{
		Street:      "12 MG Road",
		City:        "Bengaluru",
		PhoneNumber: "9876543210",
	}

	assert.Empty(t, validate.Struct(form))

	form.ZipCode = "56"
	errs := validate.Struct(form)
	assert.Equal(t, "The zipCode must be 6 digits.", errs["zipCode"])
}

func TestStruct_InWithCommaSeparatedValues(t *testing.T) {
	type form struct {
		PaymentMethod string `json:"paymentMethod" validate:"required,in=card,whatsapp,cod"`
	}

	for _, method := range []string{"card", "whatsapp", "cod"} {
		assert.Empty(t, validate.Struct(&form{PaymentMethod: method}), method)
	}

	errs := validate.Struct(&form{PaymentMethod: "paypal"})
	assert.Equal(t, "The selected paymentMethod is invalid.", errs["paymentMethod"])
}

func TestStruct_InFollowedByAnotherRule(t *testing.T) {
	type form struct {
		Role string `json:"role" validate:"in=user,admin,required"`
	}

	assert.Empty(t, validate.Struct(&form{Role: "admin"}))

	errs := validate.Struct(&form{Role: ""})
	assert.NotEmpty(t, errs["role"])
}

func TestStruct_Confirmed(t *testing.T) {
	type form struct {
		Password             string `json:"password"              validate:"required,min=6"`
		PasswordConfirmation string `json:"password_confirmation" validate:"required,confirmed"`
	}

	assert.Empty(t, validate.Struct(&form{
		Password:             "secret99",
		PasswordConfirmation: "secret99",
	}))

	errs := validate.Struct(&form{
		Password:             "secret99",
		PasswordConfirmation: "different",
	})
	assert.Contains(t, errs["password_confirmation"], "does not match")
}

func TestStruct_RequiredOnStructField(t *testing.T) {
	type form struct {
		Name  string          `json:"name"  validate:"required"`
		Price decimal.Decimal `json:"price" validate:"required"`
	}

	errs := validate.Struct(&form{Name: "Idli"})
	assert.Equal(t, "The price field is required.", errs["price"])

	assert.Empty(t, validate.Struct(&form{
		Name:  "Idli",
		Price: decimal.NewFromInt(60),
	}))
}

func TestStruct_EmailAndNumeric(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
		Qty   int    `json:"qty"   validate:"required,gte=1"`
	}

	errs := validate.Struct(&form{Email: "not-an-email", Qty: 0})
	assert.Equal(t, "The email must be a valid email address.", errs["email"])
	assert.NotEmpty(t, errs["qty"])

	assert.Empty(t, validate.Struct(&form{Email: "a@b.co", Qty: 2}))
}
