package retriever

// DemoCorpus returns the built-in demonstration documents served when no
// vector backend is reachable. Every document is marked Fallback so degraded
// answers are distinguishable from live retrieval hits.
func DemoCorpus() []Source {
	return []Source{
		{
			Content: "Hypertension Management Guidelines (2024): First-line treatments include " +
				"thiazide diuretics, ACE inhibitors, ARBs, and calcium channel blockers. Target BP " +
				"for most adults is <130/80 mmHg. Lifestyle modifications including DASH diet, " +
				"sodium restriction (<2.3g/day), regular aerobic exercise, and weight management " +
				"should be recommended for all patients.",
			Meta: Metadata{
				Title:      "ACC/AHA Hypertension Guidelines 2024",
				Authors:    []string{"American College of Cardiology", "American Heart Association"},
				Journal:    "Journal of the American College of Cardiology",
				Year:       2024,
				DOI:        "10.1016/j.jacc.2024.01.001",
				SourceType: "guideline",
				Fallback:   true,
			},
			Score: 0.92,
		},
		{
			Content: "Drug interactions with antihypertensive medications: NSAIDs can reduce " +
				"the effectiveness of ACE inhibitors, ARBs, and diuretics. Potassium-sparing " +
				"diuretics combined with ACE inhibitors increase hyperkalemia risk. Monitor " +
				"potassium levels when combining these medications. Grapefruit juice affects " +
				"calcium channel blocker metabolism.",
			Meta: Metadata{
				Title:      "Antihypertensive Drug Interactions: A Comprehensive Review",
				Authors:    []string{"Smith J", "Johnson M", "Williams R"},
				Journal:    "Clinical Pharmacology & Therapeutics",
				Year:       2023,
				PMID:       "34567890",
				SourceType: "paper",
				Fallback:   true,
			},
			Score: 0.88,
		},
		{
			Content: "Diabetes mellitus type 2 treatment algorithm: Metformin remains " +
				"first-line therapy unless contraindicated. For patients with ASCVD, heart failure, " +
				"or CKD, consider SGLT2 inhibitors or GLP-1 receptor agonists regardless of A1C. " +
				"Target A1C <7% for most adults, individualize based on patient factors.",
			Meta: Metadata{
				Title:      "Standards of Medical Care in Diabetes - 2024",
				Authors:    []string{"American Diabetes Association"},
				Journal:    "Diabetes Care",
				Year:       2024,
				DOI:        "10.2337/dc24-S001",
				SourceType: "guideline",
				Fallback:   true,
			},
			Score: 0.85,
		},
		{
			Content: "Clinical presentation of acute myocardial infarction: Classic symptoms " +
				"include chest pain/pressure, dyspnea, diaphoresis, and nausea. Atypical " +
				"presentations more common in women, elderly, and diabetic patients - may present " +
				"with fatigue, weakness, or epigastric discomfort. ECG changes and troponin " +
				"elevation confirm diagnosis.",
			Meta: Metadata{
				Title:      "Acute Coronary Syndromes: Recognition and Management",
				Authors:    []string{"Chen L", "Anderson K"},
				Journal:    "New England Journal of Medicine",
				Year:       2023,
				PMID:       "36789012",
				SourceType: "paper",
				Fallback:   true,
			},
			Score: 0.82,
		},
		{
			Content: "Antibiotic selection for community-acquired pneumonia: For outpatients " +
				"without comorbidities, amoxicillin or doxycycline recommended. For outpatients " +
				"with comorbidities, combination therapy with beta-lactam plus macrolide or " +
				"respiratory fluoroquinolone monotherapy. Duration typically 5-7 days for " +
				"uncomplicated cases.",
			Meta: Metadata{
				Title:      "IDSA/ATS CAP Guidelines 2023",
				Authors:    []string{"Infectious Diseases Society of America"},
				Journal:    "Clinical Infectious Diseases",
				Year:       2023,
				DOI:        "10.1093/cid/ciad123",
				SourceType: "guideline",
				Fallback:   true,
			},
			Score: 0.78,
		},
	}
}
