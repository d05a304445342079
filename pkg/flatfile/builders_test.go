package flatfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// =============================================================================
// TOP-LEVEL SEGMENTS
// =============================================================================

func TestBuildGroupAReport(t *testing.T) {
	seg := adminLine().set(46, "R").set(50, "20230601").segment()

	report, errs := buildGroupAReport(seg)

	require.Empty(t, errs)
	assert.Equal(t, testUniqueID, report.IncidentNumber)
	assert.Equal(t, testORI, report.ORI)
	assert.Equal(t, nibrs.ValueOf(5), report.MonthOfTape)
	assert.Equal(t, nibrs.ValueOf(2023), report.YearOfTape)
	assert.Equal(t, "R", report.ReportDateIndicator)
	assert.Equal(t, nibrs.ValueOf(13), report.IncidentHour)
	assert.Equal(t, "N", report.ExceptionalClearance)
	assert.True(t, report.ExceptionalClearanceDate.Valid())
	assert.False(t, report.IncludesCargoTheft)
}

func TestBuildGroupAReportCargoTheft(t *testing.T) {
	seg := newLine(LevelAdministrative, 88).set(38, "20230514").set(88, "Y").segment()

	report, errs := buildGroupAReport(seg)

	require.Empty(t, errs)
	assert.True(t, report.IncludesCargoTheft)
	assert.Equal(t, "Y", report.CargoTheft)
}

func TestNonNumericMonthOfSubmission(t *testing.T) {
	// Given an administrative segment whose month of submission is "AB"
	seg := adminLine().set(7, "AB").set(47, "2X").segment()

	// When it is built
	report, errs := buildGroupAReport(seg)

	// Then the month error carries its data element and the other fields
	// are still extracted
	require.Len(t, errs, 2)
	assert.Equal(t, nibrs.CodeAdminMandatory, errs[0].Code)
	assert.Equal(t, nibrs.DEMonthOfSubmission, errs[0].DataElement)
	assert.Equal(t, "AB", errs[0].Value)
	assert.Equal(t, nibrs.CodeInvalidHour, errs[1].Code)

	assert.True(t, report.MonthOfTape.Invalid)
	assert.Equal(t, nibrs.ValueOf(2023), report.YearOfTape)
	assert.True(t, report.IncidentDate.Valid())
	assert.Equal(t, "N", report.ExceptionalClearance)
}

func TestBuildZeroReport(t *testing.T) {
	seg := newLine(LevelZero, 43).set(38, "AB").set(40, "2023").segment()

	report, errs := buildZeroReport(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.CodeZeroReportMonth, errs[0].Code)
	assert.Equal(t, nibrs.DEZeroReportingMonth, errs[0].DataElement)
	assert.True(t, report.ReportMonth.Invalid)
	assert.Equal(t, nibrs.ValueOf(2023), report.ReportYear)
	assert.Equal(t, testUniqueID, report.IncidentNumber)
}

func TestBuildGroupBReport(t *testing.T) {
	seg := newLine(LevelGroupB, 66).
		set(38, "01").
		set(40, "20230302").
		set(48, "O").
		set(49, "90D").
		set(52, "01 ").
		set(58, "34  ").
		set(62, "MWNRH").
		segment()

	report, errs := buildGroupBReport(seg)

	require.Empty(t, errs)
	require.NotNil(t, report.Arrestee)
	a := report.Arrestee
	assert.Equal(t, testUniqueID, a.ArrestTransactionNumber)
	assert.Equal(t, nibrs.ValueOf(1), a.SequenceNumber)
	assert.True(t, a.ArrestDate.Valid())
	assert.Equal(t, "O", a.TypeOfArrest)
	assert.Equal(t, "90D", a.UCROffenseCode)
	require.Equal(t, 1, a.ArmedWith.Len())
	assert.Equal(t, "01", a.ArmedWith.At(0).Code)
	assert.Equal(t, nibrs.NewNumericAge(34), a.Age.Value)
	assert.Equal(t, "M", a.Sex)
	assert.Equal(t, "W", a.Race)
	assert.Equal(t, "N", a.Ethnicity)
	assert.Equal(t, "R", a.ResidentStatus)
	assert.Equal(t, "H", a.DispositionOfUnder18)
}

func TestBuildGroupBReportIllegalLength(t *testing.T) {
	seg := newLine(LevelGroupB, 70).set(38, "01").segment()

	report, errs := buildGroupBReport(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.ErrorCode("701"), errs[0].Code)
	assert.Equal(t, "70", errs[0].Value)
	assert.Nil(t, report.Arrestee)
	assert.Equal(t, testORI, report.ORI)
}

// =============================================================================
// OFFENSE
// =============================================================================

func TestOffenseLegacyBiasSlot(t *testing.T) {
	seg := newLine(LevelOffense, 63).set(38, "13A").set(62, "88").segment()

	o, errs := buildOffense(seg)

	require.Empty(t, errs)
	assert.Equal(t, 1, o.BiasMotivations.Cap())
	require.Equal(t, 1, o.BiasMotivations.Len())
	assert.Equal(t, "88", o.BiasMotivations.At(0))
}

func TestOffenseBiasSlotsStopAtFirstBlank(t *testing.T) {
	seg := offenseLine().set(62, "11").set(64, "22").set(68, "33").segment()

	o, errs := buildOffense(seg)

	require.Empty(t, errs)
	assert.Equal(t, 5, o.BiasMotivations.Cap())
	assert.Equal(t, []string{"11", "22"}, o.BiasMotivations.All())
}

func TestOffenseAllBiasSlots(t *testing.T) {
	seg := offenseLine().set(62, "1112131415").segment()

	o, _ := buildOffense(seg)

	assert.Equal(t, []string{"11", "12", "13", "14", "15"}, o.BiasMotivations.All())
}

func TestBuildOffenseFields(t *testing.T) {
	seg := offenseLine().
		set(42, "AC").
		set(47, "AB").
		set(49, "F").
		set(50, "J").
		set(53, "11A12 ").
		set(62, "88").
		segment()

	o, errs := buildOffense(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.CodePremisesEntered, errs[0].Code)
	assert.Equal(t, nibrs.DEPremisesEntered, errs[0].DataElement)
	assert.Equal(t, "13A", errs[0].WithinSegmentID)

	assert.Equal(t, "13A", o.UCROffenseCode)
	assert.Equal(t, "C", o.AttemptedCompleted)
	assert.Equal(t, []string{"A", "C"}, o.SuspectedOfUsing.All())
	assert.Equal(t, "20", o.LocationType)
	assert.True(t, o.PremisesEntered.Invalid)
	assert.Equal(t, "F", o.MethodOfEntry)
	assert.Equal(t, []string{"J"}, o.CriminalActivity.All())
	assert.Equal(t, []nibrs.WeaponForce{{Code: "11", Automatic: "A"}, {Code: "12"}}, o.WeaponForce.All())
}

func TestOffenseIllegalLength(t *testing.T) {
	seg := newLine(LevelOffense, 65).set(38, "13A").set(62, "88").segment()

	o, errs := buildOffense(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.CodeOffenseMandatory, errs[0].Code)
	assert.Equal(t, nibrs.DESegmentLength, errs[0].DataElement)
	assert.Empty(t, o.UCROffenseCode, "no kind-specific field may be read")
	assert.Zero(t, o.BiasMotivations.Len())
}

// =============================================================================
// PROPERTY
// =============================================================================

func TestBuildProperty(t *testing.T) {
	seg := newLine(LevelProperty, 307).
		set(38, "7").
		set(39, "01"+"000001000"+"20230115").
		set(58, "20"+"00000ABC0").
		set(229, "0100").
		set(233, "E"+"000000001"+"500"+"GM").
		set(248, "A"+"000000002"+"   "+"KG").
		segment()

	p, errs := buildProperty(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.CodePropertyValue, errs[0].Code)
	assert.Equal(t, "7", errs[0].WithinSegmentID)

	assert.Equal(t, "7", p.TypeOfLoss)
	require.Equal(t, 2, p.Descriptions.Len())
	first := p.Descriptions.At(0)
	assert.Equal(t, "01", first.Code)
	assert.Equal(t, nibrs.ValueOf(1000), first.Value)
	assert.True(t, first.DateRecovered.Valid())
	second := p.Descriptions.At(1)
	assert.True(t, second.Value.Invalid)
	assert.True(t, second.DateRecovered.Missing)

	assert.Equal(t, nibrs.ValueOf(1), p.StolenVehicles)
	assert.Equal(t, nibrs.ValueOf(0), p.RecoveredVehicles)

	require.Equal(t, 2, p.Drugs.Len())
	assert.Equal(t, "E", p.Drugs.At(0).Type)
	assert.InDelta(t, 1.5, p.Drugs.At(0).Quantity.Value, 1e-9)
	assert.Equal(t, "GM", p.Drugs.At(0).MeasurementUnit)
	assert.InDelta(t, 2.0, p.Drugs.At(1).Quantity.Value, 1e-9)
}

func TestPropertyDrugQuantityInvalid(t *testing.T) {
	seg := newLine(LevelProperty, 307).set(38, "6").set(233, "E"+"0000000X1"+"000"+"GM").segment()

	p, errs := buildProperty(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.DEDrugQuantity, errs[0].DataElement)
	assert.True(t, p.Drugs.At(0).Quantity.Invalid)
}

// =============================================================================
// VICTIM
// =============================================================================

func victimLine(length int) *lineBuilder {
	return newLine(LevelVictim, length).
		set(38, "001").
		set(41, "13A120").
		set(71, "I").
		set(72, "2529").
		set(76, "FWNR").
		set(80, "01").
		set(85, "NM").
		set(90, "01SE02AQ")
}

func TestBuildVictim(t *testing.T) {
	v, errs := buildVictim(victimLine(129).segment())

	require.Empty(t, errs)
	assert.Equal(t, nibrs.ValueOf(1), v.SequenceNumber)
	assert.Equal(t, []string{"13A", "120"}, v.OffenseConnections.All())
	assert.Equal(t, "I", v.VictimType)
	assert.Equal(t, nibrs.NewAgeRange(25, 29), v.Age.Value)
	assert.Equal(t, "F", v.Sex)
	assert.Equal(t, "W", v.Race)
	assert.Equal(t, "N", v.Ethnicity)
	assert.Equal(t, "R", v.ResidentStatus)
	assert.Equal(t, []string{"01"}, v.AggravatedAssaultCircumstances.All())
	assert.Equal(t, []string{"N", "M"}, v.Injuries.All())
	require.Equal(t, 2, v.OffenderRelationships.Len())
	assert.Equal(t, nibrs.ValueOf(2), v.OffenderRelationships.At(1).OffenderNumber)
	assert.Equal(t, "AQ", v.OffenderRelationships.At(1).Relationship)
	assert.False(t, v.HasLeoka())
}

func TestBuildVictimLeoka(t *testing.T) {
	seg := victimLine(141).set(130, "01").set(132, "F").set(133, "WA0000001").segment()

	v, errs := buildVictim(seg)

	require.Empty(t, errs)
	assert.True(t, v.HasLeoka())
	assert.Equal(t, "01", v.OfficerActivity)
	assert.Equal(t, "F", v.OfficerAssignment)
	assert.Equal(t, "WA0000001", v.OfficerOtherORI)
}

func TestBuildVictimErrorsCarrySequence(t *testing.T) {
	seg := victimLine(129).set(72, "AA  ").segment()

	v, errs := buildVictim(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.ErrorCode("404"), errs[0].Code)
	assert.Equal(t, nibrs.DEVictimAge, errs[0].DataElement)
	assert.Equal(t, "001", errs[0].WithinSegmentID)
	assert.True(t, v.Age.Invalid)
	assert.Equal(t, "F", v.Sex)
}

// =============================================================================
// OFFENDER / ARRESTEE
// =============================================================================

func TestBuildOffender(t *testing.T) {
	legacy, errs := buildOffender(newLine(LevelOffender, 45).set(38, "01").set(40, "NB  ").set(44, "MW").segment())
	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.ErrorCode("556"), errs[0].Code)
	assert.Equal(t, "M", legacy.Sex)
	assert.Empty(t, legacy.Ethnicity)

	current, errs := buildOffender(newLine(LevelOffender, 46).set(38, "02").set(40, "30  ").set(44, "FBH").segment())
	require.Empty(t, errs)
	assert.Equal(t, nibrs.ValueOf(2), current.SequenceNumber)
	assert.Equal(t, nibrs.NewNumericAge(30), current.Age.Value)
	assert.Equal(t, "H", current.Ethnicity)
}

func TestBuildArrestee(t *testing.T) {
	seg := newLine(LevelArrestee, 110).
		set(38, "01").
		set(40, "ATN000000001").
		set(52, "20230520").
		set(60, "TM").
		set(62, "13A").
		set(65, "11A12 ").
		set(71, "2224").
		set(75, "MWNRH").
		segment()

	a, errs := buildArrestee(seg)

	require.Empty(t, errs)
	assert.Equal(t, nibrs.ValueOf(1), a.SequenceNumber)
	assert.Equal(t, "ATN000000001", a.ArrestTransactionNumber)
	assert.True(t, a.ArrestDate.Valid())
	assert.Equal(t, "T", a.TypeOfArrest)
	assert.Equal(t, "M", a.MultipleArresteeIndicator)
	assert.Equal(t, "13A", a.UCROffenseCode)
	assert.Equal(t, 2, a.ArmedWith.Len())
	avg, ok := a.Age.Value.Average()
	require.True(t, ok)
	assert.Equal(t, 23, avg)
	assert.Equal(t, "H", a.DispositionOfUnder18)
}

func TestBuildArresteeBadDate(t *testing.T) {
	seg := newLine(LevelArrestee, 110).set(38, "01").set(52, "20231340").segment()

	_, errs := buildArrestee(seg)

	require.Len(t, errs, 1)
	assert.Equal(t, nibrs.CodeArrestDate, errs[0].Code)
	assert.Equal(t, nibrs.DEArrestDate, errs[0].DataElement)
	assert.Equal(t, "01", errs[0].WithinSegmentID)
}
