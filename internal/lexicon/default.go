package lexicon

import "sync"

const (
	Fever               Symptom = "fever"
	Headache            Symptom = "headache"
	Cough               Symptom = "cough"
	Dizziness           Symptom = "dizziness"
	Dryness             Symptom = "dryness"
	Fatigue             Symptom = "fatigue"
	Nausea              Symptom = "nausea"
	Vomiting            Symptom = "vomiting"
	ShortnessOfBreath   Symptom = "shortness of breath"
	ChestPain           Symptom = "chest pain"
	AbdominalPain       Symptom = "abdominal pain"
	Diarrhea            Symptom = "diarrhea"
	Rash                Symptom = "rash"
	SoreThroat          Symptom = "sore throat"
	MusclePain          Symptom = "muscle pain"
	JointPain           Symptom = "joint pain"
	Confusion           Symptom = "confusion"
	Seizures            Symptom = "seizures"
	LossOfConsciousness Symptom = "loss of consciousness"
	SensitivityToLight  Symptom = "sensitivity to light"

	Chills              Symptom = "chills"
	Sweating            Symptom = "sweating"
	RunnyNose           Symptom = "runny nose"
	Congestion          Symptom = "congestion"
	Sneezing            Symptom = "sneezing"
	MildFever           Symptom = "mild fever"
	SensitivityToSound  Symptom = "sensitivity to sound"
	VisualDisturbances  Symptom = "visual disturbances"
	Thirst              Symptom = "thirst"
	DarkUrine           Symptom = "dark urine"
	DryMouth            Symptom = "dry mouth"
	SunkenEyes          Symptom = "sunken eyes"
	RapidHeartbeat      Symptom = "rapid heartbeat"
	Trembling           Symptom = "trembling"
	FeelingOfDoom       Symptom = "feeling of doom"
	Weakness            Symptom = "weakness"
	LossOfAppetite      Symptom = "loss of appetite"
	Swelling            Symptom = "swelling"
	Itching             Symptom = "itching"
	Hives               Symptom = "hives"
	Wheezing            Symptom = "wheezing"
	PainInArms          Symptom = "pain in arms"
	JawPain             Symptom = "jaw pain"
	ColdSweat           Symptom = "cold sweat"
	Lightheadedness     Symptom = "lightheadedness"
	Numbness            Symptom = "numbness"
	TroubleSpeaking     Symptom = "trouble speaking"
	VisionProblems      Symptom = "vision problems"
	LossOfBalance       Symptom = "loss of balance"
)

const (
	HeartAttack      Condition = "heart attack"
	Stroke           Condition = "stroke"
	AllergicReaction Condition = "allergic reaction"
	Anxiety          Condition = "anxiety"
	FoodPoisoning    Condition = "food poisoning"
	Dehydration      Condition = "dehydration"
	Migraine         Condition = "migraine"
	Flu              Condition = "flu"
	CommonCold       Condition = "common cold"
)

var defaultWeights = []WeightedSymptom{
	{Fever, 0.8},
	{Headache, 0.6},
	{Cough, 0.7},
	{Dizziness, 0.7},
	{Dryness, 0.5},
	{Fatigue, 0.6},
	{Nausea, 0.7},
	{Vomiting, 0.8},
	{ShortnessOfBreath, 0.9},
	{ChestPain, 0.9},
	{AbdominalPain, 0.7},
	{Diarrhea, 0.6},
	{Rash, 0.6},
	{SoreThroat, 0.5},
	{MusclePain, 0.5},
	{JointPain, 0.6},
	{Confusion, 0.8},
	{Seizures, 0.9},
	{LossOfConsciousness, 0.9},
	{SensitivityToLight, 0.5},

	{Chills, 0.6},
	{Sweating, 0.5},
	{RunnyNose, 0.3},
	{Congestion, 0.3},
	{Sneezing, 0.3},
	{MildFever, 0.4},
	{SensitivityToSound, 0.4},
	{VisualDisturbances, 0.6},
	{Thirst, 0.4},
	{DarkUrine, 0.5},
	{DryMouth, 0.4},
	{SunkenEyes, 0.6},
	{RapidHeartbeat, 0.7},
	{Trembling, 0.5},
	{FeelingOfDoom, 0.7},
	{Weakness, 0.5},
	{LossOfAppetite, 0.4},
	{Swelling, 0.7},
	{Itching, 0.4},
	{Hives, 0.5},
	{Wheezing, 0.7},
	{PainInArms, 0.8},
	{JawPain, 0.7},
	{ColdSweat, 0.7},
	{Lightheadedness, 0.6},
	{Numbness, 0.8},
	{TroubleSpeaking, 0.9},
	{VisionProblems, 0.7},
	{LossOfBalance, 0.8},
}

// Ordered by urgency; scoring ties resolve to the earlier entry.
var defaultEntries = []Entry{
	{
		Condition: HeartAttack,
		Primary:   []Symptom{ChestPain, ShortnessOfBreath, Dizziness, Nausea},
		FollowUps: []Symptom{PainInArms, JawPain, ColdSweat, Lightheadedness},
	},
	{
		Condition: Stroke,
		Primary:   []Symptom{Dizziness, Confusion, Headache, LossOfConsciousness},
		FollowUps: []Symptom{Numbness, TroubleSpeaking, VisionProblems, LossOfBalance},
	},
	{
		Condition: AllergicReaction,
		Primary:   []Symptom{Rash, ShortnessOfBreath, Dizziness},
		FollowUps: []Symptom{Swelling, Itching, Hives, Wheezing},
	},
	{
		Condition: Anxiety,
		Primary:   []Symptom{Dizziness, ShortnessOfBreath, ChestPain, Fatigue},
		FollowUps: []Symptom{RapidHeartbeat, Sweating, Trembling, FeelingOfDoom},
	},
	{
		Condition: FoodPoisoning,
		Primary:   []Symptom{Nausea, Vomiting, Diarrhea, AbdominalPain},
		FollowUps: []Symptom{Fever, Chills, Weakness, LossOfAppetite},
	},
	{
		Condition: Dehydration,
		Primary:   []Symptom{Dryness, Dizziness, Fatigue, Confusion},
		FollowUps: []Symptom{Thirst, DarkUrine, DryMouth, SunkenEyes},
	},
	{
		Condition: Migraine,
		Primary:   []Symptom{Headache, Nausea, Dizziness, SensitivityToLight},
		FollowUps: []Symptom{SensitivityToSound, VisualDisturbances, Nausea},
	},
	{
		Condition: Flu,
		Primary:   []Symptom{Fever, Cough, Headache, Fatigue, MusclePain, SoreThroat},
		FollowUps: []Symptom{Chills, Sweating, RunnyNose, Congestion},
	},
	{
		Condition: CommonCold,
		Primary:   []Symptom{Cough, SoreThroat, Headache, Fatigue},
		FollowUps: []Symptom{Sneezing, RunnyNose, Congestion, MildFever},
	},
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the built-in lexicon. It panics if the built-in tables are
// inconsistent, which is a programming error caught by the package tests.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		l, err := New(defaultWeights, defaultEntries)
		if err != nil {
			panic(err)
		}
		defaultLex = l
	})
	return defaultLex
}
