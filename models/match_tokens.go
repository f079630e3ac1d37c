package models

import "fmt"

// MatchTokenCode is a stable identifier for an eligibility outcome.
// Codes are what tests and the UI key on; Text is for display only.
type MatchTokenCode string

const (
	// blockers
	BlockerMissingCertificate         MatchTokenCode = "MISSING_CERTIFICATE"
	BlockerExpiredCertificate         MatchTokenCode = "EXPIRED_CERTIFICATE"
	BlockerUnavailableDateRange       MatchTokenCode = "UNAVAILABLE_DATE_RANGE"
	BlockerAlreadyAssignedOverlapping MatchTokenCode = "ALREADY_ASSIGNED_OVERLAPPING"
	BlockerStcwNotConfirmed           MatchTokenCode = "STCW_NOT_CONFIRMED"

	// warnings
	WarningCertExpiringSoon  MatchTokenCode = "CERT_EXPIRING_SOON"
	WarningNoPreferredCert   MatchTokenCode = "NO_PREFERRED_CERT"
	WarningLimitedExperience MatchTokenCode = "LIMITED_EXPERIENCE"

	// positive reasons
	ReasonCertificateMatch  MatchTokenCode = "CERTIFICATE_MATCH"
	ReasonLocationMatch     MatchTokenCode = "LOCATION_MATCH"
	ReasonAvailabilityMatch MatchTokenCode = "AVAILABILITY_MATCH"
	ReasonExperienceMatch   MatchTokenCode = "EXPERIENCE_MATCH"
)

type MatchToken struct {
	Code     MatchTokenCode  `json:"code"`
	CertType CertificateType `json:"cert_type,omitempty"`
	Days     int             `json:"days,omitempty"`
	Text     string          `json:"text"`
}

func MissingCertificateToken(certType CertificateType) MatchToken {
	return MatchToken{
		Code:     BlockerMissingCertificate,
		CertType: certType,
		Text:     fmt.Sprintf("mandatory certificate %v is missing", certType),
	}
}

func ExpiredCertificateToken(certType CertificateType) MatchToken {
	return MatchToken{
		Code:     BlockerExpiredCertificate,
		CertType: certType,
		Text:     fmt.Sprintf("mandatory certificate %v expires before contract start", certType),
	}
}

func UnavailableDateRangeToken() MatchToken {
	return MatchToken{
		Code: BlockerUnavailableDateRange,
		Text: "availability does not cover the contract period",
	}
}

func AlreadyAssignedToken() MatchToken {
	return MatchToken{
		Code: BlockerAlreadyAssignedOverlapping,
		Text: "candidate holds an overlapping assignment",
	}
}

func StcwNotConfirmedToken() MatchToken {
	return MatchToken{
		Code: BlockerStcwNotConfirmed,
		Text: "STCW confirmation is missing",
	}
}

func CertExpiringSoonToken(certType CertificateType, days int) MatchToken {
	return MatchToken{
		Code:     WarningCertExpiringSoon,
		CertType: certType,
		Days:     days,
		Text:     fmt.Sprintf("certificate %v expires %d days after contract start window", certType, days),
	}
}

func NoPreferredCertToken(certType CertificateType) MatchToken {
	return MatchToken{
		Code:     WarningNoPreferredCert,
		CertType: certType,
		Text:     fmt.Sprintf("preferred certificate %v is missing", certType),
	}
}

func LimitedExperienceToken() MatchToken {
	return MatchToken{
		Code: WarningLimitedExperience,
		Text: "experience below the requested minimum",
	}
}

func CertificateMatchToken() MatchToken {
	return MatchToken{
		Code: ReasonCertificateMatch,
		Text: "all mandatory certificates held and valid",
	}
}

func LocationMatchToken() MatchToken {
	return MatchToken{
		Code: ReasonLocationMatch,
		Text: "home region matches the requirement",
	}
}

func AvailabilityMatchToken() MatchToken {
	return MatchToken{
		Code: ReasonAvailabilityMatch,
		Text: "availability covers the contract period",
	}
}

func ExperienceMatchToken() MatchToken {
	return MatchToken{
		Code: ReasonExperienceMatch,
		Text: "experience meets the requested minimum",
	}
}
