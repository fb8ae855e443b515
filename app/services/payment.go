package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shashiranjanraj/swaad/pkg/http"
	"github.com/shashiranjanraj/swaad/pkg/metrics"
)

// PaymentError is the processor's own failure message, shown to the user
// verbatim ("Your card was declined." and friends).
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string { return "services: payment failed: " + e.Message }

// PaymentClient confirms card payment intents directly against the
// processor, mirroring what the browser SDK does: the publishable key plus
// the intent's client secret authorize the confirm call.
type PaymentClient struct {
	base      string
	publicKey string
}

// NewPaymentClient builds a client for the processor API,
// e.g. config.PaymentURL() and config.PaymentPublicKey().
func NewPaymentClient(base, publicKey string) *PaymentClient {
	return &PaymentClient{base: base, publicKey: publicKey}
}

// intentIDFromSecret extracts the payment intent ID from a client secret of
// the form "pi_XXX_secret_YYY".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("services: malformed client secret")
	}
	return id, nil
}

// ConfirmCardPayment confirms the intent behind clientSecret using a card
// token. Returns the resulting intent status ("succeeded", "processing").
func (p *PaymentClient) ConfirmCardPayment(ctx context.Context, clientSecret, cardToken string) (string, error) {
	const op = "payment.confirm"

	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("key", p.publicKey)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][token]", cardToken)

	defer metrics.ObserveUpstream("payment", op, time.Now())

	resp, err := http.Post(p.base + "/v1/payment_intents/" + url.PathEscape(intentID) + "/confirm").
		Header("Content-Type", "application/x-www-form-urlencoded").
		Body(form.Encode()).
		WithContext(ctxOrBackground(ctx)).
		Send()
	if err != nil {
		metrics.CountUpstreamError("payment", op)
		return "", err
	}

	var reply struct {
		Status string `json:"status"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := resp.JSON(&reply); err != nil {
		metrics.CountUpstreamError("payment", op)
		return "", err
	}

	if reply.Error != nil {
		metrics.CountUpstreamError("payment", op)
		return "", &PaymentError{Message: reply.Error.Message}
	}
	if !resp.OK() {
		metrics.CountUpstreamError("payment", op)
		return "", &PaymentError{Message: "payment could not be confirmed"}
	}
	return reply.Status, nil
}
