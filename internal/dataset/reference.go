package dataset

import "github.com/Skufu/GoSymptom/internal/lexicon"

// Reference is background information shown next to a condition.
type Reference struct {
	Description  string   `json:"description"`
	CommonCauses []string `json:"common_causes"`
	RiskFactors  []string `json:"risk_factors"`
	Severity     string   `json:"severity"`
}

var references = map[lexicon.Condition]Reference{
	lexicon.FoodPoisoning: {
		Description:  "Illness caused by eating contaminated food",
		CommonCauses: []string{"Bacteria", "Viruses", "Parasites", "Toxins"},
		RiskFactors:  []string{"Eating raw/undercooked food", "Poor hygiene", "Contaminated water"},
		Severity:     "Moderate to High",
	},
	lexicon.Flu: {
		Description:  "Influenza viral infection",
		CommonCauses: []string{"Influenza viruses"},
		RiskFactors:  []string{"Weakened immune system", "Age", "Chronic conditions"},
		Severity:     "Moderate",
	},
	lexicon.Anxiety: {
		Description:  "Mental health condition characterized by excessive worry",
		CommonCauses: []string{"Genetic factors", "Brain chemistry", "Environmental stress"},
		RiskFactors:  []string{"Trauma", "Stress", "Other mental health conditions"},
		Severity:     "Moderate",
	},
	lexicon.HeartAttack: {
		Description:  "Blocked blood flow to part of the heart muscle",
		CommonCauses: []string{"Coronary artery disease", "Blood clot", "Artery spasm"},
		RiskFactors:  []string{"Smoking", "High blood pressure", "High cholesterol", "Diabetes"},
		Severity:     "Critical",
	},
	lexicon.Stroke: {
		Description:  "Interrupted blood supply to part of the brain",
		CommonCauses: []string{"Blood clot", "Ruptured blood vessel"},
		RiskFactors:  []string{"High blood pressure", "Atrial fibrillation", "Smoking", "Age"},
		Severity:     "Critical",
	},
	lexicon.Dehydration: {
		Description:  "Loss of more fluid than the body takes in",
		CommonCauses: []string{"Vomiting", "Diarrhea", "Heat exposure", "Insufficient intake"},
		RiskFactors:  []string{"Age", "Chronic illness", "Strenuous exercise"},
		Severity:     "Mild to Moderate",
	},
}

// ReferenceFor returns background information for cond, if any.
func ReferenceFor(cond lexicon.Condition) (Reference, bool) {
	r, ok := references[cond]
	return r, ok
}
