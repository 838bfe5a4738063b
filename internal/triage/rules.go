package triage

// The rule tables below are a deliberately simple prototype rule set.
// TODO: replace with a clinical decision-support service once one is procured.

// urgentPatterns escalate to an urgent consultation when any keyword in a
// group appears in the normalized symptom text.
var urgentPatterns = [][]string{
	{"chest pain", "severe chest"},
	{"breathing difficulty", "shortness of breath", "can't breathe", "cannot breathe"},
	{"severe headache", "worst headache"},
	{"blood", "bleeding", "vomiting blood", "coughing blood"},
	{"unconscious", "fainting", "fainted", "seizure", "convulsion"},
	{"severe abdominal", "severe stomach", "acute abdomen"},
	{"stroke", "paralysis", "can't move"},
}

// High fever together with a rash is treated as a potential serious
// infection regardless of the keyword groups above.
var (
	feverTerms = []string{"high fever", "very high fever"}
	rashTerms  = []string{"rash", "spots"}
)

type recommendationRule struct {
	keywords  []string
	medicines []string
}

// recommendationRules map symptom keywords to catalog medicine keys. Rules
// are applied in order and matched medicines accumulate without duplicates.
var recommendationRules = []recommendationRule{
	{
		keywords:  []string{"fever", "temperature", "hot", "high fever"},
		medicines: []string{"paracetamol", "ibuprofen"},
	},
	{
		keywords:  []string{"headache", "head pain", "head ache", "migraine"},
		medicines: []string{"paracetamol", "ibuprofen"},
	},
	{
		keywords:  []string{"cold", "runny nose", "sneezing", "sneeze"},
		medicines: []string{"decold", "cetirizine", "sinex"},
	},
	{
		keywords:  []string{"cough", "coughing", "throat", "sore throat"},
		medicines: []string{"broncho", "decold"},
	},
	{
		keywords:  []string{"allergy", "allergic", "itching", "itch", "hives"},
		medicines: []string{"cetirizine"},
	},
	{
		keywords:  []string{"diarrhea", "loose motion", "loose stool", "dehydration"},
		medicines: []string{"ors"},
	},
	{
		keywords:  []string{"stomach pain", "stomach ache", "abdominal pain", "tummy ache"},
		medicines: []string{"ors"},
	},
	{
		keywords:  []string{"body pain", "body ache", "muscle pain", "joint pain", "back pain"},
		medicines: []string{"ibuprofen"},
	},
	{
		keywords:  []string{"nasal", "nose blocked", "blocked nose", "congestion", "stuffy nose"},
		medicines: []string{"sinex", "decold"},
	},
	{
		keywords:  []string{"flu", "influenza", "common cold"},
		medicines: []string{"decold", "paracetamol"},
	},
}

// fallbackMedicine is recommended when no rule matches.
const fallbackMedicine = "paracetamol"
