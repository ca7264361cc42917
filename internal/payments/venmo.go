// Package payments builds payment-request links for settled balances.
package payments

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Payment types accepted by Venmo deep links.
const (
	TypePay    = "pay"
	TypeCharge = "charge"
)

var (
	ErrNoRecipient    = errors.New("at least one recipient username required")
	ErrBadPaymentType = errors.New(`payment type must be "pay" or "charge"`)
	ErrBadAmount      = errors.New("payment amount must be positive")
)

// VenmoRequest describes a payment link to generate. Amounts are in
// currency units; the link carries them with cent precision.
type VenmoRequest struct {
	Amount      float64  `json:"payment_amount" binding:"required"`
	Note        string   `json:"note"`
	Usernames   []string `json:"username" binding:"required"`
	PaymentType string   `json:"payment_type" binding:"required"`
}

// VenmoLink formats a venmo.com deep link for the request. This is pure
// formatting: no network call is made and no payment is executed.
func VenmoLink(req VenmoRequest) (string, error) {
	if len(req.Usernames) == 0 {
		return "", ErrNoRecipient
	}
	if req.PaymentType != TypePay && req.PaymentType != TypeCharge {
		return "", ErrBadPaymentType
	}
	if req.Amount <= 0 {
		return "", ErrBadAmount
	}

	query := url.Values{}
	query.Set("txn", req.PaymentType)
	query.Set("recipients", strings.Join(req.Usernames, ","))
	query.Set("amount", fmt.Sprintf("%.2f", req.Amount))
	if req.Note != "" {
		query.Set("note", req.Note)
	}

	link := url.URL{
		Scheme:   "https",
		Host:     "venmo.com",
		RawQuery: query.Encode(),
	}
	return link.String(), nil
}
