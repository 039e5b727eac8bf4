package main

import (
	"errors"

	payment "github.com/dmehra2102/paypal-checkout/internal/payment/domain"
	"github.com/spf13/cobra"
)

var errValidation = errors.New("validation failed")

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Fetch an access token to check the configured credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			tok, err := a.Tokens.AccessToken(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{
				"mode":      a.Env.Mode,
				"baseURL":   a.Env.BaseURL,
				"tokenType": tok.Type,
				"expiresIn": tok.ExpiresIn.String(),
			})
		},
	}
}

type validateResult struct {
	Valid    bool     `json:"valid"`
	Amount   string   `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Details  []string `json:"details,omitempty"`
}

func validateCmd() *cobra.Command {
	var req payment.PaymentRequest
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a payment request locally without calling PayPal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := payment.Validate(req); len(errs) > 0 {
				if err := printJSON(cmd, validateResult{Details: errs}); err != nil {
					return err
				}
				return errValidation
			}

			value, err := payment.FormatAmount(req.Amount)
			if err != nil {
				return err
			}
			return printJSON(cmd, validateResult{
				Valid:    true,
				Amount:   value,
				Currency: payment.NormalizeCurrency(req.Currency),
			})
		},
	}

	cmd.Flags().StringVarP(&req.Amount, "amount", "a", "", "Amount as decimal text, e.g. 19.99")
	cmd.Flags().StringVarP(&req.Currency, "currency", "c", "", "ISO currency code (USD, EUR, GBP, CAD, AUD, JPY)")
	return cmd
}

func orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Create or capture PayPal orders",
	}
	cmd.AddCommand(orderCreateCmd())
	cmd.AddCommand(orderCaptureCmd())
	return cmd
}

func orderCreateCmd() *cobra.Command {
	var req payment.PaymentRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a CAPTURE order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			order, err := a.Service.CreateOrder(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{
				"orderID": order.ID,
				"status":  order.Status,
			})
		},
	}

	cmd.Flags().StringVarP(&req.Amount, "amount", "a", "", "Amount as decimal text, e.g. 19.99")
	cmd.Flags().StringVarP(&req.Currency, "currency", "c", "", "ISO currency code")
	return cmd
}

type captureResult struct {
	OrderID    string `json:"orderID"`
	Status     string `json:"status"`
	PayerEmail string `json:"payerEmail,omitempty"`
	CaptureID  string `json:"captureID,omitempty"`
}

func orderCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture <orderID>",
		Short: "Capture an approved order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			c, err := a.Service.CaptureOrder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, captureResult{
				OrderID:    c.OrderID,
				Status:     c.Status,
				PayerEmail: c.PayerEmail,
				CaptureID:  c.CaptureID,
			})
		},
	}
}
