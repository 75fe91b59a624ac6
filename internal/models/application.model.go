package models

import "time"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// RiderApplication is one submitted companion-rider application. Optional
// detail fields and document references stay nil when the applicant leaves
// them out or an upload fails.
type RiderApplication struct {
	BaseUUIDModel

	// Personal information
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string `gorm:"type:varchar(255);not null" json:"email"`
	Phone         string `gorm:"type:varchar(30);not null"  json:"phone"`
	DateOfBirth   string `gorm:"type:varchar(10);not null"  json:"date_of_birth"`
	Age           int    `gorm:"not null"                   json:"age"`
	AddressStreet string `gorm:"type:varchar(255);not null" json:"address_street"`
	AddressCity   string `gorm:"type:varchar(100);not null" json:"address_city"`
	AddressState  string `gorm:"type:varchar(50);not null"  json:"address_state"`
	AddressZip    string `gorm:"type:varchar(20);not null"  json:"address_zip"`
	IDNumber      string `gorm:"type:varchar(50);not null"  json:"id_number"`

	// Emergency contact
	EmergencyContactName         string `gorm:"type:varchar(100);not null" json:"emergency_contact_name"`
	EmergencyContactPhone        string `gorm:"type:varchar(30);not null"  json:"emergency_contact_phone"`
	EmergencyContactRelationship string `gorm:"type:varchar(50);not null"  json:"emergency_contact_relationship"`

	// Background eligibility
	HasFelonyConviction      bool    `gorm:"not null"  json:"has_felony_conviction"`
	FelonyDetails            *string `gorm:"type:text" json:"felony_details,omitempty"`
	IsOnProbationParole      bool    `gorm:"not null"  json:"is_on_probation_parole"`
	ProbationParoleDetails   *string `gorm:"type:text" json:"probation_parole_details,omitempty"`
	IsBannedFromCarrier      bool    `gorm:"not null"  json:"is_banned_from_carrier"`
	BannedCarrierDetails     *string `gorm:"type:text" json:"banned_carrier_details,omitempty"`
	HasMedicalConditions     bool    `gorm:"not null"  json:"has_medical_conditions"`
	MedicalConditionsDetails *string `gorm:"type:text" json:"medical_conditions_details,omitempty"`
	CanSitExtendedPeriods    bool    `gorm:"not null"  json:"can_sit_extended_periods"`
	HasMotionSickness        bool    `gorm:"not null"  json:"has_motion_sickness"`
	TakesMedications         bool    `gorm:"not null"  json:"takes_medications"`
	MedicationsDetails       *string `gorm:"type:text" json:"medications_details,omitempty"`

	// Experience and purpose
	WhyCompanionRider        string  `gorm:"type:text;not null"        json:"why_companion_rider"`
	HasTraveledLongDistances bool    `gorm:"not null"                  json:"has_traveled_long_distances"`
	LongDistanceExperience   *string `gorm:"type:text"                 json:"long_distance_experience,omitempty"`
	OvernightComfortLevel    string  `gorm:"type:varchar(50);not null" json:"overnight_comfort_level"`
	ConfinedSpacesComfort    bool    `gorm:"not null"                  json:"confined_spaces_comfort"`
	UnderstandsNotRomantic   bool    `gorm:"not null"                  json:"understands_not_romantic"`

	// Conduct acknowledgment
	ConductAcknowledged bool   `gorm:"not null"                   json:"conduct_acknowledged"`
	ConductSignature    string `gorm:"type:varchar(200);not null" json:"conduct_signature"`
	ConductDate         string `gorm:"type:varchar(10);not null"  json:"conduct_date"`

	// Insurance
	HealthInsuranceName      string  `gorm:"type:varchar(200);not null" json:"health_insurance_name"`
	HealthInsurancePolicy    string  `gorm:"type:varchar(100);not null" json:"health_insurance_policy"`
	HealthInsuranceStart     string  `gorm:"type:varchar(10);not null"  json:"health_insurance_start"`
	HealthInsuranceEnd       string  `gorm:"type:varchar(10);not null"  json:"health_insurance_end"`
	LiabilityInsuranceName   *string `gorm:"type:varchar(200)"          json:"liability_insurance_name,omitempty"`
	LiabilityInsurancePolicy *string `gorm:"type:varchar(100)"          json:"liability_insurance_policy,omitempty"`
	LiabilityInsuranceStart  *string `gorm:"type:varchar(10)"           json:"liability_insurance_start,omitempty"`
	LiabilityInsuranceEnd    *string `gorm:"type:varchar(10)"           json:"liability_insurance_end,omitempty"`

	// Document references, nil when no file was attached or its upload failed
	IDDocumentURL                 *string `gorm:"type:text" json:"id_document_url,omitempty"`
	HealthInsuranceDocumentURL    *string `gorm:"type:text" json:"health_insurance_document_url,omitempty"`
	LiabilityInsuranceDocumentURL *string `gorm:"type:text" json:"liability_insurance_document_url,omitempty"`

	// Review
	ApplicationStatus ApplicationStatus `gorm:"type:varchar(20);not null;default:pending;index" json:"application_status"`
	AdminNotes        *string           `gorm:"type:text"                                       json:"admin_notes,omitempty"`
	ReviewedAt        *time.Time        `gorm:"type:datetime"                                   json:"reviewed_at,omitempty"`
}

type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status"`
	Notes  *string           `json:"notes,omitempty"`
}
