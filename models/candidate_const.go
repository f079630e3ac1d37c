package models

type CandidateStatus string

const (
	CandidateStatusActive   CandidateStatus = "ACTIVE"
	CandidateStatusArchived CandidateStatus = "ARCHIVED"
)

type AssignmentStatus string

const (
	AssignmentStatusPlanned   AssignmentStatus = "PLANNED"
	AssignmentStatusActive    AssignmentStatus = "ACTIVE"
	AssignmentStatusCompleted AssignmentStatus = "COMPLETED"
	AssignmentStatusCancelled AssignmentStatus = "CANCELLED"
)

// IsBlocking reports whether an assignment in this status occupies the candidate.
func (s AssignmentStatus) IsBlocking() bool {
	return s == AssignmentStatusPlanned || s == AssignmentStatusActive
}

type CertVerification string

const (
	CertVerificationPending  CertVerification = "PENDING"
	CertVerificationVerified CertVerification = "VERIFIED"
	CertVerificationRejected CertVerification = "REJECTED"
)

// CertificateType is an open dictionary of maritime certificate types.
// The known values below cover what staffing uses in requirements today.
type CertificateType string

const (
	CertStcwBasic      CertificateType = "STCW_BASIC"
	CertMedical        CertificateType = "MEDICAL"
	CertGmdss          CertificateType = "GMDSS"
	CertDp             CertificateType = "DP"
	CertTankerman      CertificateType = "TANKERMAN"
	CertCraneOperator  CertificateType = "CRANE_OPERATOR"
	CertAdvancedFire   CertificateType = "ADVANCED_FIREFIGHTING"
	CertMedicalFirstAid CertificateType = "MEDICAL_FIRST_AID"
)
