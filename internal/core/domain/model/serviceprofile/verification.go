package serviceprofile

import (
	"fmt"

	"repair/internal/pkg/errs"
)

// VerificationStatus is the administrator's decision about a profile.
type VerificationStatus int

const (
	VerificationUnknown VerificationStatus = iota
	VerificationPending
	VerificationVerified
	VerificationRejected
)

func getVerificationStrings() map[VerificationStatus]string {
	return map[VerificationStatus]string{
		VerificationUnknown:  "unknown",
		VerificationPending:  "pending",
		VerificationVerified: "verified",
		VerificationRejected: "rejected",
	}
}

func ParseVerificationStatus(s string) (VerificationStatus, error) {
	for v, name := range getVerificationStrings() {
		if v != VerificationUnknown && name == s {
			return v, nil
		}
	}
	return VerificationUnknown, errs.NewValueIsInvalidErrorWithCause("verification_status",
		fmt.Errorf("%q is not a known verification status", s))
}

func (v VerificationStatus) Validate() error {
	if v <= VerificationUnknown || v > VerificationRejected {
		return errs.NewValueIsInvalidErrorWithCause("verification_status",
			fmt.Errorf("%d is not a valid verification status", v))
	}
	return nil
}

func (v VerificationStatus) String() string {
	if s, ok := getVerificationStrings()[v]; ok {
		return s
	}
	return "unknown"
}
