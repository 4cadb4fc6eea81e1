// Package triage holds the complaint intake and triage rules: submission
// validation, the status workflow, operator filtering and dashboard statistics.
package triage

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

// Field keys used in FieldErrors, matching the wire names of the submission.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCountry     = "country"
	FieldScamType    = "scam_type"
	FieldDescription = "description"
	FieldAmountLost  = "amount_lost"
	FieldCurrency    = "currency"
)

// MinDescriptionLength is the minimum trimmed description length in UTF-16 code units.
const MinDescriptionLength = 10

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a field key to its single user facing message.
type FieldErrors map[string]string

// Empty reports whether no rule was violated.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// Details converts the errors into the generic error details shape.
func (fe FieldErrors) Details() map[string]any {
	details := make(map[string]any, len(fe))
	for field, msg := range fe {
		details[field] = msg
	}
	return details
}

// ValidEmail reports whether email matches the local@domain.tld pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks a draft against every field rule and collects all violations.
// currencies is the reference table of known codes; when it is empty the
// currency is only checked for presence. The returned draft has the default
// scam type applied and the currency code trimmed and upper-cased; it is
// otherwise the input unchanged.
func Validate(draft domain.ComplaintDraft, currencies map[string]string) (domain.ComplaintDraft, FieldErrors) {
	errs := FieldErrors{}

	if strings.TrimSpace(draft.Name) == "" {
		errs[FieldName] = "Name is required"
	}

	if strings.TrimSpace(draft.Email) == "" {
		errs[FieldEmail] = "Email is required"
	} else if !ValidEmail(draft.Email) {
		errs[FieldEmail] = "Invalid email format"
	}

	// the length message replaces the required one, so an empty
	// description reports the length rule
	if descriptionLength(draft.Description) < MinDescriptionLength {
		errs[FieldDescription] = "Please provide at least 10 characters"
	}

	currency := strings.ToUpper(strings.TrimSpace(draft.Currency))
	if currency == "" {
		errs[FieldCurrency] = "Currency is required"
	} else if len(currencies) > 0 {
		if _, ok := currencies[currency]; !ok {
			errs[FieldCurrency] = "Unsupported currency"
		}
	}
	draft.Currency = currency

	if strings.TrimSpace(draft.Country) == "" {
		errs[FieldCountry] = "Country is required"
	}

	if draft.ScamType == "" {
		draft.ScamType = domain.DefaultScamType
	} else if !draft.ScamType.Valid() {
		errs[FieldScamType] = "Invalid scam type"
	}

	if draft.AmountLost != nil && *draft.AmountLost < 0 {
		errs[FieldAmountLost] = "Amount lost cannot be negative"
	}

	return draft, errs
}

// descriptionLength counts UTF-16 code units of the trimmed description, the
// unit browsers use for input length.
func descriptionLength(description string) int {
	return len(utf16.Encode([]rune(strings.TrimSpace(description))))
}
