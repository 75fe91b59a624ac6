package forms

import "time"

// FileSlot names the three document attachment slots on an application.
type FileSlot string

const (
	SlotIDDocument                 FileSlot = "id_document"
	SlotHealthInsuranceDocument    FileSlot = "health_insurance_document"
	SlotLiabilityInsuranceDocument FileSlot = "liability_insurance_document"
)

func (s FileSlot) Valid() bool {
	switch s {
	case SlotIDDocument, SlotHealthInsuranceDocument, SlotLiabilityInsuranceDocument:
		return true
	}
	return false
}

// Storage folder per slot, mirrored in the object keys.
func (s FileSlot) Folder() string {
	switch s {
	case SlotIDDocument:
		return "id-documents"
	case SlotHealthInsuranceDocument:
		return "health-insurance"
	case SlotLiabilityInsuranceDocument:
		return "liability-insurance"
	}
	return "misc"
}

// ComfortLevels are the accepted answers for the overnight-travel question.
var ComfortLevels = []string{
	"very_comfortable",
	"comfortable",
	"neutral",
	"uncomfortable",
	"very_uncomfortable",
}

// ApplicationValues is the flat record of every field across all five steps.
// Fields from steps the applicant has not reached yet are simply zero; the
// record is never reset between steps. Optional free-text details stay empty
// strings until persisted.
type ApplicationValues struct {
	// Step 1: personal information
	FirstName                    string `json:"first_name"`
	LastName                     string `json:"last_name"`
	Email                        string `json:"email"`
	Phone                        string `json:"phone"`
	DateOfBirth                  string `json:"date_of_birth"`
	AddressStreet                string `json:"address_street"`
	AddressCity                  string `json:"address_city"`
	AddressState                 string `json:"address_state"`
	AddressZip                   string `json:"address_zip"`
	IDNumber                     string `json:"id_number"`
	EmergencyContactName         string `json:"emergency_contact_name"`
	EmergencyContactPhone        string `json:"emergency_contact_phone"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`

	// Step 2: background eligibility
	HasFelonyConviction      bool   `json:"has_felony_conviction"`
	FelonyDetails            string `json:"felony_details"`
	IsOnProbationParole      bool   `json:"is_on_probation_parole"`
	ProbationParoleDetails   string `json:"probation_parole_details"`
	IsBannedFromCarrier      bool   `json:"is_banned_from_carrier"`
	BannedCarrierDetails     string `json:"banned_carrier_details"`
	HasMedicalConditions     bool   `json:"has_medical_conditions"`
	MedicalConditionsDetails string `json:"medical_conditions_details"`
	CanSitExtendedPeriods    bool   `json:"can_sit_extended_periods"`
	HasMotionSickness        bool   `json:"has_motion_sickness"`
	TakesMedications         bool   `json:"takes_medications"`
	MedicationsDetails       string `json:"medications_details"`

	// Step 3: experience and purpose
	WhyCompanionRider        string `json:"why_companion_rider"`
	HasTraveledLongDistances bool   `json:"has_traveled_long_distances"`
	LongDistanceExperience   string `json:"long_distance_experience"`
	OvernightComfortLevel    string `json:"overnight_comfort_level"`
	ConfinedSpacesComfort    bool   `json:"confined_spaces_comfort"`
	UnderstandsNotRomantic   bool   `json:"understands_not_romantic"`

	// Step 4: conduct acknowledgment
	ConductAcknowledged bool   `json:"conduct_acknowledged"`
	ConductSignature    string `json:"conduct_signature"`
	ConductDate         string `json:"conduct_date"`

	// Step 5: insurance
	HealthInsuranceName      string `json:"health_insurance_name"`
	HealthInsurancePolicy    string `json:"health_insurance_policy"`
	HealthInsuranceStart     string `json:"health_insurance_start"`
	HealthInsuranceEnd       string `json:"health_insurance_end"`
	LiabilityInsuranceName   string `json:"liability_insurance_name"`
	LiabilityInsurancePolicy string `json:"liability_insurance_policy"`
	LiabilityInsuranceStart  string `json:"liability_insurance_start"`
	LiabilityInsuranceEnd    string `json:"liability_insurance_end"`
}

// DefaultValues matches the form's initial state: the two comfort booleans
// start true, the conduct date defaults to today, everything else is zero.
func DefaultValues(now time.Time) ApplicationValues {
	return ApplicationValues{
		CanSitExtendedPeriods: true,
		ConfinedSpacesComfort: true,
		ConductDate:           now.Format("2006-01-02"),
	}
}

// ValuesPatch is a partial update; only non-nil fields are applied, so a
// PATCH for one step never clobbers fields entered on another.
type ValuesPatch struct {
	FirstName                    *string `json:"first_name,omitempty"`
	LastName                     *string `json:"last_name,omitempty"`
	Email                        *string `json:"email,omitempty"`
	Phone                        *string `json:"phone,omitempty"`
	DateOfBirth                  *string `json:"date_of_birth,omitempty"`
	AddressStreet                *string `json:"address_street,omitempty"`
	AddressCity                  *string `json:"address_city,omitempty"`
	AddressState                 *string `json:"address_state,omitempty"`
	AddressZip                   *string `json:"address_zip,omitempty"`
	IDNumber                     *string `json:"id_number,omitempty"`
	EmergencyContactName         *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone        *string `json:"emergency_contact_phone,omitempty"`
	EmergencyContactRelationship *string `json:"emergency_contact_relationship,omitempty"`

	HasFelonyConviction      *bool   `json:"has_felony_conviction,omitempty"`
	FelonyDetails            *string `json:"felony_details,omitempty"`
	IsOnProbationParole      *bool   `json:"is_on_probation_parole,omitempty"`
	ProbationParoleDetails   *string `json:"probation_parole_details,omitempty"`
	IsBannedFromCarrier      *bool   `json:"is_banned_from_carrier,omitempty"`
	BannedCarrierDetails     *string `json:"banned_carrier_details,omitempty"`
	HasMedicalConditions     *bool   `json:"has_medical_conditions,omitempty"`
	MedicalConditionsDetails *string `json:"medical_conditions_details,omitempty"`
	CanSitExtendedPeriods    *bool   `json:"can_sit_extended_periods,omitempty"`
	HasMotionSickness        *bool   `json:"has_motion_sickness,omitempty"`
	TakesMedications         *bool   `json:"takes_medications,omitempty"`
	MedicationsDetails       *string `json:"medications_details,omitempty"`

	WhyCompanionRider        *string `json:"why_companion_rider,omitempty"`
	HasTraveledLongDistances *bool   `json:"has_traveled_long_distances,omitempty"`
	LongDistanceExperience   *string `json:"long_distance_experience,omitempty"`
	OvernightComfortLevel    *string `json:"overnight_comfort_level,omitempty"`
	ConfinedSpacesComfort    *bool   `json:"confined_spaces_comfort,omitempty"`
	UnderstandsNotRomantic   *bool   `json:"understands_not_romantic,omitempty"`

	ConductAcknowledged *bool   `json:"conduct_acknowledged,omitempty"`
	ConductSignature    *string `json:"conduct_signature,omitempty"`
	ConductDate         *string `json:"conduct_date,omitempty"`

	HealthInsuranceName      *string `json:"health_insurance_name,omitempty"`
	HealthInsurancePolicy    *string `json:"health_insurance_policy,omitempty"`
	HealthInsuranceStart     *string `json:"health_insurance_start,omitempty"`
	HealthInsuranceEnd       *string `json:"health_insurance_end,omitempty"`
	LiabilityInsuranceName   *string `json:"liability_insurance_name,omitempty"`
	LiabilityInsurancePolicy *string `json:"liability_insurance_policy,omitempty"`
	LiabilityInsuranceStart  *string `json:"liability_insurance_start,omitempty"`
	LiabilityInsuranceEnd    *string `json:"liability_insurance_end,omitempty"`
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Apply merges the patch into the record in place.
func (v *ApplicationValues) Apply(patch ValuesPatch) {
	applyString(&v.FirstName, patch.FirstName)
	applyString(&v.LastName, patch.LastName)
	applyString(&v.Email, patch.Email)
	applyString(&v.Phone, patch.Phone)
	applyString(&v.DateOfBirth, patch.DateOfBirth)
	applyString(&v.AddressStreet, patch.AddressStreet)
	applyString(&v.AddressCity, patch.AddressCity)
	applyString(&v.AddressState, patch.AddressState)
	applyString(&v.AddressZip, patch.AddressZip)
	applyString(&v.IDNumber, patch.IDNumber)
	applyString(&v.EmergencyContactName, patch.EmergencyContactName)
	applyString(&v.EmergencyContactPhone, patch.EmergencyContactPhone)
	applyString(&v.EmergencyContactRelationship, patch.EmergencyContactRelationship)

	applyBool(&v.HasFelonyConviction, patch.HasFelonyConviction)
	applyString(&v.FelonyDetails, patch.FelonyDetails)
	applyBool(&v.IsOnProbationParole, patch.IsOnProbationParole)
	applyString(&v.ProbationParoleDetails, patch.ProbationParoleDetails)
	applyBool(&v.IsBannedFromCarrier, patch.IsBannedFromCarrier)
	applyString(&v.BannedCarrierDetails, patch.BannedCarrierDetails)
	applyBool(&v.HasMedicalConditions, patch.HasMedicalConditions)
	applyString(&v.MedicalConditionsDetails, patch.MedicalConditionsDetails)
	applyBool(&v.CanSitExtendedPeriods, patch.CanSitExtendedPeriods)
	applyBool(&v.HasMotionSickness, patch.HasMotionSickness)
	applyBool(&v.TakesMedications, patch.TakesMedications)
	applyString(&v.MedicationsDetails, patch.MedicationsDetails)

	applyString(&v.WhyCompanionRider, patch.WhyCompanionRider)
	applyBool(&v.HasTraveledLongDistances, patch.HasTraveledLongDistances)
	applyString(&v.LongDistanceExperience, patch.LongDistanceExperience)
	applyString(&v.OvernightComfortLevel, patch.OvernightComfortLevel)
	applyBool(&v.ConfinedSpacesComfort, patch.ConfinedSpacesComfort)
	applyBool(&v.UnderstandsNotRomantic, patch.UnderstandsNotRomantic)

	applyBool(&v.ConductAcknowledged, patch.ConductAcknowledged)
	applyString(&v.ConductSignature, patch.ConductSignature)
	applyString(&v.ConductDate, patch.ConductDate)

	applyString(&v.HealthInsuranceName, patch.HealthInsuranceName)
	applyString(&v.HealthInsurancePolicy, patch.HealthInsurancePolicy)
	applyString(&v.HealthInsuranceStart, patch.HealthInsuranceStart)
	applyString(&v.HealthInsuranceEnd, patch.HealthInsuranceEnd)
	applyString(&v.LiabilityInsuranceName, patch.LiabilityInsuranceName)
	applyString(&v.LiabilityInsurancePolicy, patch.LiabilityInsurancePolicy)
	applyString(&v.LiabilityInsuranceStart, patch.LiabilityInsuranceStart)
	applyString(&v.LiabilityInsuranceEnd, patch.LiabilityInsuranceEnd)
}
