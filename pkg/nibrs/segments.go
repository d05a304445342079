package nibrs

import "time"

// Slot capacities fixed by the flat-file layout.
const (
	BiasMotivationSlotsLegacy = 1
	BiasMotivationSlots       = 5
	SuspectedOfUsingSlots     = 3
	CriminalActivitySlots     = 3
	WeaponForceSlots          = 3
	PropertyDescriptionSlots  = 10
	SuspectedDrugSlots        = 3
	OffenseConnectionSlots    = 10
	OffenderRelationshipSlots = 10
	AggravatedAssaultSlots    = 2
	InjurySlots               = 5
	ArmedWithSlots            = 2
)

// Offense is a level 2 segment.
type Offense struct {
	Source ReportSource

	UCROffenseCode     string
	AttemptedCompleted string
	LocationType       string
	PremisesEntered    Parsed[int]
	MethodOfEntry      string

	// BiasMotivations holds 1 slot for a 63-character line and 5 for a
	// 71-character line.
	BiasMotivations  Slots[string]
	SuspectedOfUsing Slots[string]
	CriminalActivity Slots[string]
	WeaponForce      Slots[WeaponForce]
}

// WeaponForce pairs a weapon/force code with its automatic-weapon flag.
type WeaponForce struct {
	Code      string
	Automatic string
}

// Property is a level 3 segment.
type Property struct {
	Source ReportSource

	TypeOfLoss        string
	Descriptions      Slots[PropertyDescription]
	StolenVehicles    Parsed[int]
	RecoveredVehicles Parsed[int]
	Drugs             Slots[SuspectedDrug]
}

// PropertyDescription is one (description, value, date recovered) triple.
type PropertyDescription struct {
	Code          string
	Value         Parsed[int]
	DateRecovered Parsed[time.Time]
}

// SuspectedDrug is one (drug type, quantity, unit) triple.
type SuspectedDrug struct {
	Type            string
	Quantity        Parsed[float64]
	MeasurementUnit string
}

// Victim is a level 4 segment.
type Victim struct {
	Source ReportSource

	SequenceNumber                 Parsed[int]
	OffenseConnections             Slots[string]
	VictimType                     string
	Age                            Parsed[Age]
	Sex                            string
	Race                           string
	Ethnicity                      string
	ResidentStatus                 string
	AggravatedAssaultCircumstances Slots[string]
	AdditionalJustifiableHomicide  string
	Injuries                       Slots[string]
	OffenderRelationships          Slots[OffenderRelationship]

	// LEOKA fields, present only on 141-character lines.
	OfficerActivity   string
	OfficerAssignment string
	OfficerOtherORI   string
}

// HasLeoka reports whether any officer field was supplied.
func (v *Victim) HasLeoka() bool {
	return v.OfficerActivity != "" || v.OfficerAssignment != "" || v.OfficerOtherORI != ""
}

// OffenderRelationship links a victim to an offender sequence number.
type OffenderRelationship struct {
	OffenderNumber Parsed[int]
	Relationship   string
}

// Offender is a level 5 segment.
type Offender struct {
	Source ReportSource

	SequenceNumber Parsed[int]
	Age            Parsed[Age]
	Sex            string
	Race           string
	Ethnicity      string
}

// Arrestee is a level 6 segment, or the body of a level 7 Group B arrest.
type Arrestee struct {
	Source ReportSource

	SequenceNumber            Parsed[int]
	ArrestTransactionNumber   string
	ArrestDate                Parsed[time.Time]
	TypeOfArrest              string
	MultipleArresteeIndicator string
	UCROffenseCode            string
	ArmedWith                 Slots[WeaponForce]
	Age                       Parsed[Age]
	Sex                       string
	Race                      string
	Ethnicity                 string
	ResidentStatus            string
	DispositionOfUnder18      string
}
