package main

// sampleCorpus returns the built-in demonstration corpus of medical
// literature excerpts used when no corpus file is given.
func sampleCorpus() []corpusDocument {
	return []corpusDocument{
		{
			Content: "Hypertension Management Guidelines (2024): First-line treatments for essential " +
				"hypertension include thiazide diuretics (e.g., hydrochlorothiazide, chlorthalidone), " +
				"ACE inhibitors (e.g., lisinopril, enalapril), ARBs (e.g., losartan, valsartan), and " +
				"calcium channel blockers (e.g., amlodipine, nifedipine). The target blood pressure for " +
				"most adults is <130/80 mmHg. Lifestyle modifications should be recommended for all patients " +
				"and include: DASH diet (Dietary Approaches to Stop Hypertension), sodium restriction to " +
				"<2.3g/day (ideally <1.5g/day), regular aerobic exercise (150 minutes/week of moderate " +
				"intensity), weight management (BMI <25), limiting alcohol intake, and smoking cessation.",
			Metadata: corpusMetadata{
				Title:      "ACC/AHA Hypertension Guidelines 2024",
				Authors:    []string{"American College of Cardiology", "American Heart Association"},
				Journal:    "Journal of the American College of Cardiology",
				Year:       2024,
				DOI:        "10.1016/j.jacc.2024.01.001",
				SourceType: "guideline",
			},
		},
		{
			Content: "Drug interactions with antihypertensive medications require careful monitoring. " +
				"NSAIDs (including ibuprofen, naproxen) can significantly reduce the effectiveness of " +
				"ACE inhibitors, ARBs, and diuretics by promoting sodium and water retention. Potassium-sparing " +
				"diuretics (spironolactone, eplerenone) combined with ACE inhibitors or ARBs substantially " +
				"increase the risk of hyperkalemia - serum potassium should be monitored regularly. " +
				"Grapefruit juice affects the metabolism of certain calcium channel blockers (felodipine, " +
				"nifedipine) by inhibiting CYP3A4, leading to increased drug levels and potential toxicity. " +
				"Beta-blockers combined with non-dihydropyridine calcium channel blockers (verapamil, diltiazem) " +
				"can cause severe bradycardia and heart block.",
			Metadata: corpusMetadata{
				Title:      "Antihypertensive Drug Interactions: A Comprehensive Review",
				Authors:    []string{"Smith J", "Johnson M", "Williams R"},
				Journal:    "Clinical Pharmacology & Therapeutics",
				Year:       2023,
				PMID:       "34567890",
				SourceType: "paper",
			},
		},
		{
			Content: "Type 2 Diabetes Mellitus Treatment Algorithm (2024): Metformin remains the " +
				"preferred first-line pharmacologic therapy unless contraindicated (eGFR <30 mL/min/1.73m2, " +
				"acute kidney injury, hepatic impairment, or metabolic acidosis risk). For patients with " +
				"established atherosclerotic cardiovascular disease (ASCVD), heart failure, or chronic kidney " +
				"disease, SGLT2 inhibitors (empagliflozin, dapagliflozin, canagliflozin) or GLP-1 receptor " +
				"agonists (semaglutide, dulaglutide, liraglutide) are recommended regardless of A1C level, " +
				"given their proven cardiovascular and renal benefits. Target A1C is <7% for most adults, " +
				"but should be individualized based on hypoglycemia risk, disease duration, life expectancy, " +
				"comorbidities, and patient preferences.",
			Metadata: corpusMetadata{
				Title:      "Standards of Medical Care in Diabetes - 2024",
				Authors:    []string{"American Diabetes Association"},
				Journal:    "Diabetes Care",
				Year:       2024,
				DOI:        "10.2337/dc24-S001",
				SourceType: "guideline",
			},
		},
		{
			Content: "Clinical presentation of acute myocardial infarction (AMI): Classic symptoms " +
				"include chest pain or pressure (described as squeezing, tightness, or heaviness), often " +
				"radiating to the left arm, jaw, neck, or back. Associated symptoms include dyspnea, " +
				"diaphoresis (sweating), nausea, vomiting, and lightheadedness. IMPORTANT: Atypical " +
				"presentations are more common in women, elderly patients (>75 years), and diabetic patients. " +
				"These patients may present with fatigue, generalized weakness, dyspnea without chest pain, " +
				"epigastric discomfort, or syncope. ECG changes (ST-elevation, ST-depression, T-wave inversions) " +
				"and cardiac troponin elevation confirm the diagnosis. Time to reperfusion is critical - " +
				"door-to-balloon time should be <90 minutes for STEMI.",
			Metadata: corpusMetadata{
				Title:      "Acute Coronary Syndromes: Recognition and Management",
				Authors:    []string{"Chen L", "Anderson K"},
				Journal:    "New England Journal of Medicine",
				Year:       2023,
				PMID:       "36789012",
				SourceType: "paper",
			},
		},
		{
			Content: "Community-Acquired Pneumonia (CAP) Antibiotic Selection (IDSA/ATS 2023): " +
				"For outpatients without comorbidities or risk factors for resistant pathogens: " +
				"amoxicillin 1g TID or doxycycline 100mg BID or a macrolide (if local resistance <25%). " +
				"For outpatients with comorbidities (chronic heart, lung, liver, or kidney disease; " +
				"diabetes; alcoholism; malignancy; asplenia): combination therapy with amoxicillin-clavulanate " +
				"or cephalosporin PLUS macrolide or doxycycline; OR respiratory fluoroquinolone monotherapy " +
				"(moxifloxacin, levofloxacin). For inpatients (non-ICU): beta-lactam (ampicillin-sulbactam, " +
				"ceftriaxone, cefotaxime) PLUS macrolide or respiratory fluoroquinolone alone. " +
				"Duration: typically 5-7 days for uncomplicated CAP with clinical stability.",
			Metadata: corpusMetadata{
				Title:      "IDSA/ATS Community-Acquired Pneumonia Guidelines 2023",
				Authors:    []string{"Infectious Diseases Society of America"},
				Journal:    "Clinical Infectious Diseases",
				Year:       2023,
				DOI:        "10.1093/cid/ciad123",
				SourceType: "guideline",
			},
		},
		{
			Content: "Heart Failure with Reduced Ejection Fraction (HFrEF) Guideline-Directed Medical " +
				"Therapy (GDMT): Four pillars of therapy should be initiated and optimized in all eligible " +
				"patients: 1) ACEI/ARB/ARNI - ARNI (sacubitril/valsartan) is preferred over ACEI/ARB when " +
				"tolerated; 2) Beta-blockers - carvedilol, metoprolol succinate, or bisoprolol; " +
				"3) Mineralocorticoid receptor antagonists (MRA) - spironolactone or eplerenone; " +
				"4) SGLT2 inhibitors - dapagliflozin or empagliflozin (regardless of diabetes status). " +
				"Additional therapies include hydralazine/nitrates for African American patients, " +
				"ivabradine for symptomatic patients on maximally tolerated beta-blocker with HR >=70 bpm, " +
				"and loop diuretics for volume management. Target doses should be achieved when tolerated.",
			Metadata: corpusMetadata{
				Title:      "2023 AHA/ACC/HFSA Heart Failure Guidelines",
				Authors:    []string{"American Heart Association", "American College of Cardiology"},
				Journal:    "Circulation",
				Year:       2023,
				DOI:        "10.1161/CIR.0000000000001063",
				SourceType: "guideline",
			},
		},
		{
			Content: "Warfarin Management and Drug Interactions: Warfarin has a narrow therapeutic " +
				"index requiring careful INR monitoring (target 2.0-3.0 for most indications, 2.5-3.5 for " +
				"mechanical heart valves). Drugs that INCREASE warfarin effect (bleeding risk): amiodarone, " +
				"fluconazole, metronidazole, TMP-SMX, fluoroquinolones, macrolides, statins, NSAIDs, " +
				"acetaminophen (high dose), SSRIs. Drugs that DECREASE warfarin effect: rifampin, " +
				"carbamazepine, phenytoin, barbiturates, St. John's Wort. Foods high in vitamin K " +
				"(green leafy vegetables) can decrease anticoagulation. Patients should maintain consistent " +
				"vitamin K intake rather than avoiding these foods. Bridging anticoagulation decisions " +
				"should be individualized based on thrombotic vs bleeding risk.",
			Metadata: corpusMetadata{
				Title:      "Warfarin Drug Interactions and Management",
				Authors:    []string{"Garcia D", "Crowther M"},
				Journal:    "Chest",
				Year:       2023,
				PMID:       "35678901",
				SourceType: "paper",
			},
		},
		{
			Content: "Acute Kidney Injury (AKI) Management: AKI is defined as increase in serum " +
				"creatinine >=0.3 mg/dL within 48 hours, or increase >=1.5x baseline within 7 days, or " +
				"urine output <0.5 mL/kg/hr for 6 hours. KDIGO staging: Stage 1 (Cr 1.5-1.9x baseline), " +
				"Stage 2 (Cr 2.0-2.9x baseline), Stage 3 (Cr >=3x baseline or Cr >=4.0 mg/dL or RRT initiation). " +
				"Key management principles: 1) Identify and treat underlying cause (prerenal, intrinsic, " +
				"postrenal); 2) Discontinue nephrotoxic medications (NSAIDs, aminoglycosides, contrast agents, " +
				"ACE inhibitors in acute setting); 3) Optimize volume status; 4) Avoid hyperkalemia and " +
				"metabolic acidosis; 5) Adjust medication dosing for reduced GFR; 6) Consider nephrology " +
				"consultation for stage 2-3 AKI or unclear etiology.",
			Metadata: corpusMetadata{
				Title:      "KDIGO Clinical Practice Guideline for Acute Kidney Injury",
				Authors:    []string{"Kidney Disease: Improving Global Outcomes"},
				Journal:    "Kidney International Supplements",
				Year:       2023,
				DOI:        "10.1038/kisup.2023.1",
				SourceType: "guideline",
			},
		},
		{
			Content: "Sepsis Recognition and Initial Management (Surviving Sepsis Campaign 2023): " +
				"Sepsis is defined as life-threatening organ dysfunction caused by dysregulated host response " +
				"to infection. Use qSOFA for bedside screening (altered mental status, RR >=22, SBP <=100). " +
				"Hour-1 Bundle: 1) Measure lactate (remeasure if >2 mmol/L); 2) Obtain blood cultures before " +
				"antibiotics; 3) Administer broad-spectrum antibiotics; 4) Begin rapid fluid resuscitation " +
				"with 30 mL/kg crystalloid for hypotension or lactate >=4 mmol/L; 5) Apply vasopressors " +
				"(norepinephrine first-line) if hypotensive during or after fluid resuscitation to maintain " +
				"MAP >=65 mmHg. De-escalate antibiotics based on culture results and clinical improvement. " +
				"Corticosteroids (hydrocortisone 200mg/day) for refractory septic shock.",
			Metadata: corpusMetadata{
				Title:      "Surviving Sepsis Campaign: International Guidelines 2023",
				Authors:    []string{"Society of Critical Care Medicine"},
				Journal:    "Critical Care Medicine",
				Year:       2023,
				DOI:        "10.1097/CCM.0000000000005804",
				SourceType: "guideline",
			},
		},
		{
			Content: "Atrial Fibrillation Stroke Prevention: CHA2DS2-VASc score determines stroke " +
				"risk and anticoagulation need. Score components: Congestive heart failure (1), Hypertension " +
				"(1), Age >=75 (2), Diabetes (1), Stroke/TIA/thromboembolism (2), Vascular disease (1), " +
				"Age 65-74 (1), Sex category female (1). Anticoagulation recommendations: Score 0 (men) or " +
				"1 (women) - no anticoagulation; Score 1 (men) - consider anticoagulation; Score >=2 - " +
				"anticoagulation recommended. Direct oral anticoagulants (DOACs: apixaban, rivaroxaban, " +
				"dabigatran, edoxaban) are preferred over warfarin for non-valvular AF. Warfarin remains " +
				"indicated for mechanical heart valves and moderate-severe mitral stenosis. " +
				"HAS-BLED score assesses bleeding risk but should not preclude anticoagulation in " +
				"high-risk patients.",
			Metadata: corpusMetadata{
				Title:      "2023 ACC/AHA Atrial Fibrillation Guidelines",
				Authors:    []string{"American College of Cardiology"},
				Journal:    "Journal of the American College of Cardiology",
				Year:       2023,
				DOI:        "10.1016/j.jacc.2023.08.017",
				SourceType: "guideline",
			},
		},
	}
}
