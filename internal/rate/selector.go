package rate

import (
	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/config"
	"github.com/x31a/acrobits-websvc/internal/format"
)

// Variant selects the field naming of the rate response.
type Variant int

const (
	// VariantNumber answers a targetNumber request.
	VariantNumber Variant = iota + 1
	// VariantURI answers a smartUri request.
	VariantURI
)

func (v Variant) String() string {
	switch v {
	case VariantNumber:
		return "number"
	case VariantURI:
		return "uri"
	default:
		return "unknown"
	}
}

// Response is one of NumberResponse or URIResponse.
type Response interface {
	variant() Variant
}

// NumberResponse is the wire shape for targetNumber requests.
type NumberResponse struct {
	CallRateString    string `json:"callRateString"`
	MessageRateString string `json:"messageRateString"`
}

func (NumberResponse) variant() Variant { return VariantNumber }

// URIResponse is the wire shape for smartUri requests.
type URIResponse struct {
	SmartCallRateString    string `json:"smartCallRateString"`
	SmartMessageRateString string `json:"smartMessageRateString"`
}

func (URIResponse) variant() Variant { return VariantURI }

// SelectVariant picks the response shape from the request parameters. It
// fails with a bad request when neither targetNumber nor smartUri is set.
func SelectVariant(params Params) (Variant, error) {
	switch {
	case params.TargetNumber != "":
		return VariantNumber, nil
	case params.SmartURI != "":
		return VariantURI, nil
	default:
		return 0, apierror.BadRequest("targetNumber or smartUri is required")
	}
}

// Render formats r into the shape selected by v.
func Render(v Variant, r Rate, settings config.RateSettings) Response {
	call, message := formatStrings(r, settings)
	if v == VariantURI {
		return URIResponse{SmartCallRateString: call, SmartMessageRateString: message}
	}
	return NumberResponse{CallRateString: call, MessageRateString: message}
}

func formatStrings(r Rate, settings config.RateSettings) (call, message string) {
	currency := r.Currency
	if currency == "" {
		currency = settings.Currency
	}
	if r.Call != nil {
		call = format.Rate(r.Call.Price, r.Call.Specification, settings.Specification, currency)
	}
	if r.Message != nil {
		message = format.MessageRate(*r.Message, currency)
	}
	return call, message
}
