package recommend

import (
	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/risk"
)

// actionGroups holds two groups of advice per tier; two items are drawn from
// each group.
var actionGroups = map[risk.Tier][2][]string{
	risk.TierHigh: {
		{
			"Seek emergency medical attention immediately",
			"Call emergency services right away",
			"Visit the nearest emergency room",
			"Contact your healthcare provider immediately",
		},
		{
			"Stay calm and rest while waiting for medical help",
			"Have someone stay with you",
			"Keep emergency contacts readily available",
			"Prepare your medical history information",
		},
	},
	risk.TierMedium: {
		{
			"Schedule an appointment with your doctor",
			"Consult a healthcare professional",
			"Visit a walk-in clinic",
			"Contact your primary care physician",
		},
		{
			"Monitor your symptoms closely",
			"Keep a symptom diary",
			"Stay hydrated and rest",
			"Avoid strenuous activities",
		},
	},
	risk.TierLow: {
		{
			"Maintain a healthy diet",
			"Get regular exercise",
			"Practice stress management",
			"Ensure adequate sleep",
		},
		{
			"Wash hands frequently",
			"Stay up to date with vaccinations",
			"Practice good hygiene",
			"Maintain a clean environment",
		},
	},
}

var motivational = map[risk.Tier][]string{
	risk.TierHigh: {
		"Your health is our top priority. Help is on the way, and you're taking the right steps by seeking assistance.",
		"You're showing great strength by addressing this situation. Medical professionals are here to help you through this.",
		"Every moment you take care of your health is a moment well spent. Help is on the way.",
	},
	risk.TierMedium: {
		"Taking care of your health is a sign of wisdom. You're making the right choice by seeking medical advice.",
		"Your health matters, and so do you. Taking these steps shows your dedication to your well-being.",
		"Your proactive approach to wellness is admirable. Keep moving forward with confidence.",
	},
	risk.TierLow: {
		"Small steps lead to big changes. Your commitment to health is making a difference every day.",
		"Prevention is the best medicine, and you're doing an excellent job staying on top of your health.",
		"Every healthy choice you make is an investment in your future. Stay strong!",
	},
}

var generalTips = []string{
	"Stay hydrated throughout the day",
	"Get 7-9 hours of sleep nightly",
	"Practice deep breathing exercises",
	"Take regular breaks from screens",
	"Maintain good posture",
	"Keep a regular sleep schedule",
}

var conditionTips = map[lexicon.Condition][]string{
	lexicon.Flu: {
		"Get plenty of rest",
		"Stay hydrated with warm fluids",
		"Use a humidifier",
		"Gargle with salt water",
		"Use saline nasal spray",
	},
	lexicon.CommonCold: {
		"Drink warm fluids",
		"Use a saline nasal rinse",
		"Try steam inhalation",
	},
	lexicon.Anxiety: {
		"Practice mindfulness meditation",
		"Try progressive muscle relaxation",
		"Limit caffeine intake",
		"Practice box breathing",
	},
	lexicon.FoodPoisoning: {
		"Stay hydrated with clear fluids",
		"Eat bland foods when ready",
		"Avoid dairy products",
		"Gradually reintroduce solid foods",
	},
	lexicon.Dehydration: {
		"Sip water or oral rehydration solution regularly",
		"Avoid caffeine and alcohol",
		"Rest in a cool place",
	},
	lexicon.Migraine: {
		"Rest in a dark, quiet room",
		"Apply a cold compress to your forehead",
		"Keep a headache diary to find triggers",
	},
}

// tierKey folds very_low and unknown into the low templates.
func tierKey(t risk.Tier) risk.Tier {
	switch t {
	case risk.TierHigh, risk.TierMedium:
		return t
	default:
		return risk.TierLow
	}
}
