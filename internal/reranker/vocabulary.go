package reranker

// DefaultMedicalTerms returns the built-in clinical vocabulary used for the
// domain-term overlap signal. Deployments with specialty corpora can replace
// it via WithVocabulary without touching scoring logic.
func DefaultMedicalTerms() []string {
	return []string{
		// Conditions
		"hypertension", "diabetes", "pneumonia", "infection", "cancer",
		"stroke", "infarction", "failure", "disease", "syndrome",
		"disorder", "deficiency", "inflammation", "neoplasm",
		// Treatments
		"therapy", "treatment", "medication", "drug", "antibiotic",
		"antihypertensive", "insulin", "chemotherapy", "surgery",
		// Body systems
		"cardiac", "pulmonary", "renal", "hepatic", "neurological",
		"gastrointestinal", "cardiovascular", "respiratory",
		// Clinical terms
		"diagnosis", "prognosis", "symptom", "indication", "contraindication",
		"dosage", "adverse", "interaction", "efficacy", "safety",
		// Japanese medical terms (romanized)
		"ketsuen", "tounyou", "haien", "kansen", "gan",
	}
}
