package partner

import (
	"fmt"

	"pharmadelivery/internal/pkg/errs"
)

// Kind distinguishes in-house couriers from third-party fleet partners.
// Third-party partners additionally receive dispatch notifications through
// the external courier API when work is assigned to them.
type Kind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown Kind = iota

	// KindInternal is a courier employed by the pharmacy marketplace.
	KindInternal

	// KindThirdParty is an external fleet partner reached through the
	// dispatch provider.
	KindThirdParty
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		KindUnknown:    "unknown",
		KindInternal:   "internal",
		KindThirdParty: "third_party",
	}
}

func getValidKindStrings() map[Kind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[Kind]string{
		KindInternal:   "internal",
		KindThirdParty: "third_party",
	}
}

// KindFromString parses a partner kind from its wire representation.
func KindFromString(s string) (Kind, error) {
	for kind, str := range getValidKindStrings() {
		if str == s {
			return kind, nil
		}
	}
	return KindUnknown, errs.NewValueIsInvalidErrorWithCause("kind",
		fmt.Errorf("%q is not a valid partner kind", s))
}

// Validate checks that the kind is one of the defined values.
func (k Kind) Validate() error {
	if _, ok := getValidKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("kind",
			fmt.Errorf("%d is not a valid partner kind", k))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}
