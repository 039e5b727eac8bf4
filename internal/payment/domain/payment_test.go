package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dmehra2102/paypal-checkout/internal/payment/domain"
	"github.com/stretchr/testify/require"
)

func TestValidate_Valid(t *testing.T) {
	for _, req := range []domain.PaymentRequest{
		{Amount: "10", Currency: "USD"},
		{Amount: "0.01", Currency: "eur"},
		{Amount: "999999.99", Currency: "Gbp"},
		{Amount: " 12.50 ", Currency: " jpy "},
	} {
		require.Empty(t, domain.Validate(req), "request %+v", req)
	}
}

func TestValidate_Amount(t *testing.T) {
	cases := map[string]string{
		"":            domain.MsgAmountRequired,
		"   ":         domain.MsgAmountRequired,
		"0":           domain.MsgAmountNotPositive,
		"-5":          domain.MsgAmountNotPositive,
		"0.00":        domain.MsgAmountNotPositive,
		"NaN":         domain.MsgAmountNotPositive,
		"Infinity":    domain.MsgAmountNotPositive,
		"abc":         domain.MsgAmountNotPositive,
		"12abc":       domain.MsgAmountNotPositive,
		"1,000":       domain.MsgAmountNotPositive,
		"1000000":     domain.MsgAmountTooLarge,
		"999999.991":  domain.MsgAmountTooLarge,
		"1e16":        domain.MsgAmountTooLarge,
		"1e17":        domain.MsgAmountTooLarge,
		"1e308":       domain.MsgAmountTooLarge,
		"0.001":       domain.MsgAmountNotPositive,
		"0.0049":      domain.MsgAmountNotPositive,
		"-1e100":      domain.MsgAmountNotPositive,
		"1e309":       domain.MsgAmountNotPositive,
		"1e99999999":  domain.MsgAmountNotPositive,
		"1e-9999999":  domain.MsgAmountNotPositive,
		"1e-99999999": domain.MsgAmountNotPositive,
	}
	cases["1"+strings.Repeat("0", 70)] = domain.MsgAmountNotPositive

	for amount, want := range cases {
		errs := domain.Validate(domain.PaymentRequest{Amount: amount, Currency: "USD"})
		require.Equal(t, domain.ValidationErrors{want}, errs, "amount %q", amount)
	}
}

func TestValidate_HugeExponentIsCheap(t *testing.T) {
	start := time.Now()
	for _, amount := range []string{"1e999999999", "1e-999999999", "9E2147483647"} {
		errs := domain.Validate(domain.PaymentRequest{Amount: amount, Currency: "USD"})
		require.Equal(t, domain.ValidationErrors{domain.MsgAmountNotPositive}, errs, "amount %q", amount)
	}
	require.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestValidate_Currency(t *testing.T) {
	errs := domain.Validate(domain.PaymentRequest{Amount: "1", Currency: ""})
	require.Equal(t, domain.ValidationErrors{domain.MsgCurrencyRequired}, errs)

	for _, c := range []string{"BTC", "usdt", "XYZ", "US"} {
		errs := domain.Validate(domain.PaymentRequest{Amount: "1", Currency: c})
		require.Equal(t, domain.ValidationErrors{"Currency must be one of: USD, EUR, GBP, CAD, AUD, JPY"}, errs, "currency %q", c)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	errs := domain.Validate(domain.PaymentRequest{Amount: "", Currency: "BTC"})
	require.Equal(t, domain.ValidationErrors{
		domain.MsgAmountRequired,
		domain.MsgCurrencyUnsupported(),
	}, errs)

	errs = domain.Validate(domain.PaymentRequest{})
	require.Len(t, errs, 2)
	require.Contains(t, errs.Error(), domain.MsgCurrencyRequired)
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"1":         "1.00",
		"2.005":     "2.01",
		"2.004":     "2.00",
		"10.5":      "10.50",
		"1e3":       "1000.00",
		"999999.99": "999999.99",
		"0.005":     "0.01",
		"1.5e-2":    "0.02",
	}
	for in, want := range cases {
		got, err := domain.FormatAmount(in)
		require.NoError(t, err)
		require.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"-1", "0.004", "1e99999999"} {
		_, err := domain.FormatAmount(in)
		require.ErrorIs(t, err, domain.ErrInvalidAmount, "input %q", in)
	}
	_, err := domain.FormatAmount("1e20")
	require.ErrorIs(t, err, domain.ErrAmountTooLarge)
}

func TestNormalizeCurrency(t *testing.T) {
	require.Equal(t, "USD", domain.NormalizeCurrency(" usd"))
	require.True(t, domain.IsSupportedCurrency("cad"))
	require.False(t, domain.IsSupportedCurrency("cny"))
}
