package catalog

// DosageOption is a labeled multiplier applied to a medicine's unit price.
// The set is fixed and not medicine-specific.
type DosageOption struct {
	Label    string `json:"label"`
	Quantity int    `json:"quantity"`
}

var dosageOptions = []DosageOption{
	{Label: "1 tablet", Quantity: 1},
	{Label: "2 tablets", Quantity: 2},
}

// DosageOptions returns the fixed dosage option list attached to every
// recommendation and cart line.
func DosageOptions() []DosageOption {
	opts := make([]DosageOption, len(dosageOptions))
	copy(opts, dosageOptions)
	return opts
}

// FindDosageOption resolves a dosage option by its label.
func FindDosageOption(label string) (DosageOption, bool) {
	for _, opt := range dosageOptions {
		if opt.Label == label {
			return opt, true
		}
	}
	return DosageOption{}, false
}
