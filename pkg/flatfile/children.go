// =============================================================================
// NIBRS Flat File - Child Segment Builders
// =============================================================================
//
// Builders for the Group A child segments (levels 2-6). Each one checks the
// line length against its legal set before touching any field, because the
// positions below are only meaningful for those lengths.
//
// REPEATED GROUPS:
//   Repeated field groups are read at base + i*stride and stop at the first
//   blank slot. A blank slot ends the group without an error.
//
// =============================================================================

package flatfile

import (
	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// =============================================================================
// OFFENSE (LEVEL 2)
// =============================================================================

// buildOffense decodes an offense segment.
//
// LAYOUTS:
//   - 63: one bias-motivation slot at 62-63
//   - 71: five bias-motivation slots at 62-71, 2-character stride
func buildOffense(seg *Segment) (*nibrs.Offense, []nibrs.Error) {
	r := newFieldReader(seg)
	o := &nibrs.Offense{Source: seg.Source}
	if !r.checkLength(legalLengths[LevelOffense]...) {
		return o, r.errs
	}

	o.UCROffenseCode = r.str(38, 40)
	r.withinID = o.UCROffenseCode
	o.AttemptedCompleted = r.str(41, 41)

	o.SuspectedOfUsing = nibrs.NewSlots[string](nibrs.SuspectedOfUsingSlots)
	r.codes(&o.SuspectedOfUsing, 42, 1, 1)

	o.LocationType = r.str(45, 46)
	o.PremisesEntered = r.integer(47, 48, nibrs.CodePremisesEntered, nibrs.DEPremisesEntered)
	o.MethodOfEntry = r.str(49, 49)

	o.CriminalActivity = nibrs.NewSlots[string](nibrs.CriminalActivitySlots)
	r.codes(&o.CriminalActivity, 50, 1, 1)

	o.WeaponForce = readWeaponPairs(r, 53, nibrs.WeaponForceSlots)

	biasSlots := nibrs.BiasMotivationSlots
	if seg.Length() == offenseLegacyLength {
		biasSlots = nibrs.BiasMotivationSlotsLegacy
	}
	o.BiasMotivations = nibrs.NewSlots[string](biasSlots)
	r.codes(&o.BiasMotivations, 62, 2, 2)

	return o, r.errs
}

// =============================================================================
// PROPERTY (LEVEL 3)
// =============================================================================

// buildProperty decodes a property segment.
//
// LAYOUT:
//   - 38        type of property loss
//   - 39-228    10 x (description 2, value 9, date recovered 8)
//   - 229-232   stolen / recovered vehicle counts
//   - 233-277   3 x (drug type 1, quantity 9+3, unit 2)
func buildProperty(seg *Segment) (*nibrs.Property, []nibrs.Error) {
	r := newFieldReader(seg)
	p := &nibrs.Property{Source: seg.Source}
	if !r.checkLength(legalLengths[LevelProperty]...) {
		return p, r.errs
	}

	p.TypeOfLoss = r.str(38, 38)
	r.withinID = p.TypeOfLoss

	p.Descriptions = nibrs.NewSlots[nibrs.PropertyDescription](nibrs.PropertyDescriptionSlots)
	for i := 0; i < nibrs.PropertyDescriptionSlots; i++ {
		base := 39 + i*19
		code := r.str(base, base+1)
		if code == "" {
			break
		}
		p.Descriptions.Append(nibrs.PropertyDescription{
			Code:          code,
			Value:         r.integer(base+2, base+10, nibrs.CodePropertyValue, nibrs.DEValueOfProperty),
			DateRecovered: r.date(base+11, base+18, nibrs.CodeDateRecovered, nibrs.DEDateRecovered),
		})
	}

	p.StolenVehicles = r.integer(229, 230, nibrs.CodePropertyNumeric, nibrs.DEStolenVehicles)
	p.RecoveredVehicles = r.integer(231, 232, nibrs.CodePropertyNumeric, nibrs.DERecoveredVehicles)

	p.Drugs = nibrs.NewSlots[nibrs.SuspectedDrug](nibrs.SuspectedDrugSlots)
	for i := 0; i < nibrs.SuspectedDrugSlots; i++ {
		base := 233 + i*15
		drugType := r.str(base, base)
		if drugType == "" {
			break
		}
		p.Drugs.Append(nibrs.SuspectedDrug{
			Type:            drugType,
			Quantity:        readDrugQuantity(r, base+1),
			MeasurementUnit: r.str(base+13, base+14),
		})
	}

	return p, r.errs
}

// readDrugQuantity joins the 9-character whole part and the 3-character
// fractional part (default "000") at base and parses the result.
func readDrugQuantity(r *fieldReader, base int) nibrs.Parsed[float64] {
	whole := r.str(base, base+8)
	if whole == "" {
		return nibrs.MissingValue[float64]()
	}
	fraction := r.str(base+9, base+11)
	if fraction == "" {
		fraction = "000"
	}
	return r.decimal(whole+"."+fraction, nibrs.CodePropertyNumeric, nibrs.DEDrugQuantity)
}

// =============================================================================
// VICTIM (LEVEL 4)
// =============================================================================

// buildVictim decodes a victim segment. A 141-character line carries the
// LEOKA officer fields at 130-141.
func buildVictim(seg *Segment) (*nibrs.Victim, []nibrs.Error) {
	r := newFieldReader(seg)
	v := &nibrs.Victim{Source: seg.Source}
	if !r.checkLength(legalLengths[LevelVictim]...) {
		return v, r.errs
	}

	r.withinID = r.str(38, 40)
	v.SequenceNumber = r.integer(38, 40, nibrs.CodeVictimMandatory, nibrs.DEVictimSequenceNumber)

	v.OffenseConnections = nibrs.NewSlots[string](nibrs.OffenseConnectionSlots)
	r.codes(&v.OffenseConnections, 41, 3, 3)

	v.VictimType = r.str(71, 71)
	v.Age = r.age(72, nibrs.DEVictimAge)
	v.Sex = r.str(76, 76)
	v.Race = r.str(77, 77)
	v.Ethnicity = r.str(78, 78)
	v.ResidentStatus = r.str(79, 79)

	v.AggravatedAssaultCircumstances = nibrs.NewSlots[string](nibrs.AggravatedAssaultSlots)
	r.codes(&v.AggravatedAssaultCircumstances, 80, 2, 2)

	v.AdditionalJustifiableHomicide = r.str(84, 84)

	v.Injuries = nibrs.NewSlots[string](nibrs.InjurySlots)
	r.codes(&v.Injuries, 85, 1, 1)

	v.OffenderRelationships = nibrs.NewSlots[nibrs.OffenderRelationship](nibrs.OffenderRelationshipSlots)
	for i := 0; i < nibrs.OffenderRelationshipSlots; i++ {
		base := 90 + i*4
		if r.str(base, base+1) == "" {
			break
		}
		v.OffenderRelationships.Append(nibrs.OffenderRelationship{
			OffenderNumber: r.integer(base, base+1, nibrs.CodeOffenderNumber, nibrs.DEOffenderNumber),
			Relationship:   r.str(base+2, base+3),
		})
	}

	if seg.Length() == victimLeokaLength {
		v.OfficerActivity = r.str(130, 131)
		v.OfficerAssignment = r.str(132, 132)
		v.OfficerOtherORI = r.str(133, 141)
	}

	return v, r.errs
}

// =============================================================================
// OFFENDER (LEVEL 5)
// =============================================================================

func buildOffender(seg *Segment) (*nibrs.Offender, []nibrs.Error) {
	r := newFieldReader(seg)
	o := &nibrs.Offender{Source: seg.Source}
	if !r.checkLength(legalLengths[LevelOffender]...) {
		return o, r.errs
	}

	r.withinID = r.str(38, 39)
	o.SequenceNumber = r.integer(38, 39, nibrs.CodeOffenderMandatory, nibrs.DEOffenderSequenceNumber)
	o.Age = r.age(40, nibrs.DEOffenderAge)
	o.Sex = r.str(44, 44)
	o.Race = r.str(45, 45)
	if seg.Length() == offenderEthnicityLength {
		o.Ethnicity = r.str(46, 46)
	}
	return o, r.errs
}

// =============================================================================
// ARRESTEE (LEVEL 6)
// =============================================================================

func buildArrestee(seg *Segment) (*nibrs.Arrestee, []nibrs.Error) {
	r := newFieldReader(seg)
	a := &nibrs.Arrestee{Source: seg.Source}
	if !r.checkLength(legalLengths[LevelArrestee]...) {
		return a, r.errs
	}

	r.withinID = r.str(38, 39)
	a.SequenceNumber = r.integer(38, 39, nibrs.CodeArresteeMandatory, nibrs.DEArresteeSequenceNumber)
	a.ArrestTransactionNumber = r.str(40, 51)
	a.ArrestDate = r.date(52, 59, nibrs.CodeArrestDate, nibrs.DEArrestDate)
	a.TypeOfArrest = r.str(60, 60)
	a.MultipleArresteeIndicator = r.str(61, 61)
	a.UCROffenseCode = r.str(62, 64)
	a.ArmedWith = readArmedWith(r, 65)
	a.Age = r.age(71, nibrs.DEArresteeAge)
	a.Sex = r.str(75, 75)
	a.Race = r.str(76, 76)
	a.Ethnicity = r.str(77, 77)
	a.ResidentStatus = r.str(78, 78)
	a.DispositionOfUnder18 = r.str(79, 79)
	return a, r.errs
}
