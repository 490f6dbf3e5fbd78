package triage

// Reference sets for the rule overlay. Hormonal components cover the pill
// formulations the app tracks; inducers are the strong CYP3A4 inducers known
// to lower contraceptive hormone levels.
var (
	hormonalComponents = []string{
		"ethinyl estradiol",
		"levonorgestrel",
		"norethindrone",
		"drospirenone",
	}

	enzymeInducers = []string{
		"rifampin",
		"st. john's wort",
		"carbamazepine",
		"phenytoin",
		"phenobarbital",
		"topiramate",
	}
)

const inducerDescription = "Enzyme induction may reduce contraceptive hormone levels and effectiveness."

// OverlayRules emits one high-severity record per (inducer, hormonal
// component) pair whenever the medication list contains a known enzyme
// inducer and the pill contains a known hormonal component. Pure function
// over the two reference sets above; no I/O, cannot fail.
func OverlayRules(pillComponents, meds []string) []Interaction {
	pill := lowerSet(pillComponents)
	taken := lowerSet(meds)

	var hormonal []string
	for _, hc := range hormonalComponents {
		if pill[hc] {
			hormonal = append(hormonal, hc)
		}
	}
	var inducers []string
	for _, ind := range enzymeInducers {
		if taken[ind] {
			inducers = append(inducers, ind)
		}
	}

	var records []Interaction
	for _, ind := range inducers {
		for _, hc := range hormonal {
			records = append(records, Interaction{
				DrugA:       Display(ind),
				DrugB:       Display(hc),
				Level:       LevelHigh,
				Source:      SourceRule,
				Description: inducerDescription,
			})
		}
	}
	return records
}
