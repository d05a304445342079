package codetable

// Table names.
const (
	BiasMotivation   = "bias_motivation"
	UCROffense       = "ucr_offense"
	Sex              = "sex"
	Race             = "race"
	Ethnicity        = "ethnicity"
	ResidentStatus   = "resident_status"
	PropertyLoss     = "property_loss"
	VictimType       = "victim_type"
	ArrestType       = "arrest_type"
	AttemptCompleted = "attempted_completed"
)

// entry is one (code, label) pair of a built-in table.
type entry struct {
	code  string
	label string
}

var builtin = map[string][]entry{
	BiasMotivation: {
		{"11", "Anti-White"},
		{"12", "Anti-Black or African American"},
		{"13", "Anti-American Indian or Alaska Native"},
		{"14", "Anti-Asian"},
		{"15", "Anti-Multiple Races, Group"},
		{"16", "Anti-Native Hawaiian or Other Pacific Islander"},
		{"21", "Anti-Jewish"},
		{"22", "Anti-Catholic"},
		{"23", "Anti-Protestant"},
		{"24", "Anti-Islamic (Muslim)"},
		{"25", "Anti-Other Religion"},
		{"26", "Anti-Multiple Religions, Group"},
		{"27", "Anti-Atheism/Agnosticism"},
		{"28", "Anti-Mormon"},
		{"29", "Anti-Jehovah's Witness"},
		{"31", "Anti-Arab"},
		{"32", "Anti-Hispanic or Latino"},
		{"33", "Anti-Other Race/Ethnicity/Ancestry"},
		{"41", "Anti-Gay"},
		{"42", "Anti-Lesbian"},
		{"43", "Anti-Lesbian, Gay, Bisexual, or Transgender (Mixed Group)"},
		{"44", "Anti-Heterosexual"},
		{"45", "Anti-Bisexual"},
		{"51", "Anti-Physical Disability"},
		{"52", "Anti-Mental Disability"},
		{"61", "Anti-Male"},
		{"62", "Anti-Female"},
		{"71", "Anti-Transgender"},
		{"72", "Anti-Gender Non-Conforming"},
		{"81", "Anti-Eastern Orthodox (Russian, Greek, Other)"},
		{"82", "Anti-Other Christian"},
		{"83", "Anti-Buddhist"},
		{"84", "Anti-Hindu"},
		{"85", "Anti-Sikh"},
		{"88", "None (no bias)"},
		{"99", "Unknown (offender's motivation not known)"},
	},
	UCROffense: {
		{"09A", "Murder & Non-negligent Manslaughter"},
		{"09B", "Negligent Manslaughter"},
		{"09C", "Justifiable Homicide"},
		{"100", "Kidnapping/Abduction"},
		{"11A", "Rape"},
		{"11B", "Sodomy"},
		{"11C", "Sexual Assault With An Object"},
		{"11D", "Fondling"},
		{"120", "Robbery"},
		{"13A", "Aggravated Assault"},
		{"13B", "Simple Assault"},
		{"13C", "Intimidation"},
		{"200", "Arson"},
		{"210", "Extortion/Blackmail"},
		{"220", "Burglary/Breaking & Entering"},
		{"23A", "Pocket-picking"},
		{"23B", "Purse-snatching"},
		{"23C", "Shoplifting"},
		{"23D", "Theft From Building"},
		{"23E", "Theft From Coin-Operated Machine or Device"},
		{"23F", "Theft From Motor Vehicle"},
		{"23G", "Theft of Motor Vehicle Parts or Accessories"},
		{"23H", "All Other Larceny"},
		{"240", "Motor Vehicle Theft"},
		{"250", "Counterfeiting/Forgery"},
		{"26A", "False Pretenses/Swindle/Confidence Game"},
		{"26B", "Credit Card/Automated Teller Machine Fraud"},
		{"26C", "Impersonation"},
		{"26D", "Welfare Fraud"},
		{"26E", "Wire Fraud"},
		{"26F", "Identity Theft"},
		{"26G", "Hacking/Computer Invasion"},
		{"270", "Embezzlement"},
		{"280", "Stolen Property Offenses"},
		{"290", "Destruction/Damage/Vandalism of Property"},
		{"35A", "Drug/Narcotic Violations"},
		{"35B", "Drug Equipment Violations"},
		{"36A", "Incest"},
		{"36B", "Statutory Rape"},
		{"370", "Pornography/Obscene Material"},
		{"39A", "Betting/Wagering"},
		{"39B", "Operating/Promoting/Assisting Gambling"},
		{"39C", "Gambling Equipment Violations"},
		{"39D", "Sports Tampering"},
		{"40A", "Prostitution"},
		{"40B", "Assisting or Promoting Prostitution"},
		{"40C", "Purchasing Prostitution"},
		{"510", "Bribery"},
		{"520", "Weapon Law Violations"},
		{"64A", "Human Trafficking, Commercial Sex Acts"},
		{"64B", "Human Trafficking, Involuntary Servitude"},
		{"720", "Animal Cruelty"},
		{"90A", "Bad Checks"},
		{"90B", "Curfew/Loitering/Vagrancy Violations"},
		{"90C", "Disorderly Conduct"},
		{"90D", "Driving Under the Influence"},
		{"90E", "Drunkenness"},
		{"90F", "Family Offenses, Nonviolent"},
		{"90G", "Liquor Law Violations"},
		{"90H", "Peeping Tom"},
		{"90I", "Runaway"},
		{"90J", "Trespass of Real Property"},
		{"90Z", "All Other Offenses"},
	},
	Sex: {
		{"M", "Male"},
		{"F", "Female"},
		{"U", "Unknown"},
	},
	Race: {
		{"W", "White"},
		{"B", "Black or African American"},
		{"I", "American Indian or Alaska Native"},
		{"A", "Asian"},
		{"P", "Native Hawaiian or Other Pacific Islander"},
		{"U", "Unknown"},
	},
	Ethnicity: {
		{"H", "Hispanic or Latino"},
		{"N", "Not Hispanic or Latino"},
		{"U", "Unknown"},
	},
	ResidentStatus: {
		{"R", "Resident"},
		{"N", "Nonresident"},
		{"U", "Unknown"},
	},
	PropertyLoss: {
		{"1", "None"},
		{"2", "Burned"},
		{"3", "Counterfeited/Forged"},
		{"4", "Destroyed/Damaged/Vandalized"},
		{"5", "Recovered"},
		{"6", "Seized"},
		{"7", "Stolen/Etc."},
		{"8", "Unknown"},
	},
	VictimType: {
		{"B", "Business"},
		{"F", "Financial Institution"},
		{"G", "Government"},
		{"I", "Individual"},
		{"L", "Law Enforcement Officer"},
		{"O", "Other"},
		{"R", "Religious Organization"},
		{"S", "Society/Public"},
		{"U", "Unknown"},
	},
	ArrestType: {
		{"O", "On-View Arrest"},
		{"S", "Summoned/Cited"},
		{"T", "Taken Into Custody"},
	},
	AttemptCompleted: {
		{"A", "Attempted"},
		{"C", "Completed"},
	},
}
