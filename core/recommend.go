package core

import (
	"fmt"
	"math"

	"github.com/huangsam/wellscore/schema"
)

// Rule is one row of the recommendation table.
type Rule struct {
	Personal   []string
	Leadership []string
}

type ruleKey struct {
	zone     schema.Zone
	category schema.Category
}

// RecommendationRules is keyed by zone and the dominant negative category.
var RecommendationRules = map[ruleKey]Rule{
	{schema.ZoneRed, schema.CategorySleep}: {
		Personal: []string{
			"Make tonight an early night and keep screens out of the last hour before bed.",
			"Skip caffeine after noon until your sleep is back on track.",
			"Block a recovery break in your calendar tomorrow afternoon.",
		},
		Leadership: []string{
			"Check in privately this week and offer to move non-essential deadlines.",
			"Avoid scheduling early-morning or late-evening meetings for this person.",
		},
	},
	{schema.ZoneRed, schema.CategoryWorkload}: {
		Personal: []string{
			"List what must be done this week and flag the rest to your manager today.",
			"Set a hard stop for the workday and log off at that time.",
			"Take a full rest day within the next few days.",
		},
		Leadership: []string{
			"Redistribute or defer part of the current workload this week.",
			"Discourage overtime and after-hours messages until load returns to normal.",
		},
	},
	{schema.ZoneRed, schema.CategoryStress}: {
		Personal: []string{
			"Take two short breaks today for a walk or breathing exercise.",
			"Keep training light until your heart metrics recover.",
			"Talk to someone you trust or use the employee assistance program.",
		},
		Leadership: []string{
			"Have a supportive one-on-one and ask what is adding pressure.",
			"Make sure they know how to reach support resources.",
		},
	},
	{schema.ZoneRed, schema.CategoryExercise}: {
		Personal: []string{
			"Fit in a 20 minute walk today, ideally outdoors.",
			"Replace one seated meeting with a walking call.",
		},
		Leadership: []string{
			"Encourage real lunch breaks away from the desk.",
		},
	},
	{schema.ZoneRed, schema.CategoryMeetings}: {
		Personal: []string{
			"Decline or delegate meetings where you are not essential this week.",
			"Block two hours of focus time each morning.",
		},
		Leadership: []string{
			"Audit recurring meetings on their calendar and cancel what is not needed.",
			"Protect a no-meeting block for the team.",
		},
	},
	{schema.ZoneRed, schema.CategoryNone}: {
		Personal: []string{
			"Plan a lighter day tomorrow and prioritize rest.",
		},
		Leadership: []string{
			"Check in this week to see how they are doing.",
		},
	},

	{schema.ZoneYellow, schema.CategorySleep}: {
		Personal: []string{
			"Aim to be in bed 30 minutes earlier for the next few nights.",
			"Keep a consistent wake-up time, including weekends.",
		},
		Leadership: []string{
			"Avoid late messages that invite after-hours replies.",
		},
	},
	{schema.ZoneYellow, schema.CategoryWorkload}: {
		Personal: []string{
			"Pick the top three priorities for tomorrow and park the rest.",
			"Finish on time at least three days this week.",
		},
		Leadership: []string{
			"Review upcoming deadlines together and trim scope where possible.",
		},
	},
	{schema.ZoneYellow, schema.CategoryStress}: {
		Personal: []string{
			"Schedule a short break between demanding tasks.",
			"Try a few minutes of slow breathing before bed.",
		},
		Leadership: []string{
			"Ask in your next one-on-one whether anything is adding pressure.",
		},
	},
	{schema.ZoneYellow, schema.CategoryExercise}: {
		Personal: []string{
			"Add a short walk or workout to tomorrow's plan.",
			"Stand up and move for five minutes every hour.",
		},
		Leadership: []string{
			"Support flexible time for activity during the day.",
		},
	},
	{schema.ZoneYellow, schema.CategoryMeetings}: {
		Personal: []string{
			"Shorten default meetings to 25 or 50 minutes.",
			"Protect one focus block each day.",
		},
		Leadership: []string{
			"Consider fewer status meetings and more async updates.",
		},
	},
	{schema.ZoneYellow, schema.CategoryNone}: {
		Personal: []string{
			"Keep an eye on sleep and workload over the next few days.",
		},
		Leadership: []string{
			"Keep regular one-on-ones on the calendar.",
		},
	},

	{schema.ZoneGreen, schema.CategorySleep}: {
		Personal: []string{
			"Things look good overall. Protect your sleep routine to stay here.",
		},
		Leadership: []string{
			"No action needed. Keep workloads steady.",
		},
	},
	{schema.ZoneGreen, schema.CategoryWorkload}: {
		Personal: []string{
			"You are in a good place. Watch that busy days do not become the norm.",
		},
		Leadership: []string{
			"No action needed. Keep an eye on upcoming crunch periods.",
		},
	},
	{schema.ZoneGreen, schema.CategoryStress}: {
		Personal: []string{
			"Overall healthy. Keep up the habits that help you unwind.",
		},
		Leadership: []string{
			"No action needed.",
		},
	},
	{schema.ZoneGreen, schema.CategoryExercise}: {
		Personal: []string{
			"Overall healthy. A little more movement would round things out.",
		},
		Leadership: []string{
			"No action needed.",
		},
	},
	{schema.ZoneGreen, schema.CategoryMeetings}: {
		Personal: []string{
			"Overall healthy. Keep guarding your focus time.",
		},
		Leadership: []string{
			"No action needed. Keep meeting load where it is.",
		},
	},
	{schema.ZoneGreen, schema.CategoryNone}: {
		Personal: []string{
			"Great balance today. Keep up your current routine.",
		},
		Leadership: []string{
			"No action needed. Recognize the sustainable pace.",
		},
	},
}

const maxPersonalRecommendations = 3

// DominantCategory returns the category with the largest summed burnout
// contribution among negative factors. Ties follow schema.CategoryPriority.
func DominantCategory(devs []Deviation) schema.Category {
	totals := make(map[schema.Category]float64)
	for _, d := range devs {
		if d.Impact() == schema.ImpactNegative {
			totals[d.Target.Factor.Category] += math.Max(d.Burnout, 0)
		}
	}
	best, bestTotal := schema.CategoryNone, 0.0
	for _, c := range schema.CategoryPriority {
		total, ok := totals[c]
		if !ok {
			continue
		}
		if best == schema.CategoryNone || total > bestTotal+1e-9 {
			best, bestTotal = c, total
		}
	}
	return best
}

// Recommend selects the rule for the zone and dominant category and adds a
// tip built from the employee's stated ideal for that category.
func Recommend(zone schema.Zone, devs []Deviation) schema.Recommendations {
	category := DominantCategory(devs)
	rule, ok := RecommendationRules[ruleKey{zone, category}]
	if !ok {
		rule = RecommendationRules[ruleKey{zone, schema.CategoryNone}]
	}

	personal := append([]string(nil), rule.Personal...)
	if tip := idealTip(category, devs); tip != "" {
		if len(personal) >= maxPersonalRecommendations {
			personal = personal[:maxPersonalRecommendations-1]
		}
		personal = append(personal, tip)
	}
	if len(personal) > maxPersonalRecommendations {
		personal = personal[:maxPersonalRecommendations]
	}

	return schema.Recommendations{
		Personal:   personal,
		Leadership: append([]string(nil), rule.Leadership...),
	}
}

// idealTip quotes the stated ideal for the dominant category, if one exists.
func idealTip(category schema.Category, devs []Deviation) string {
	for _, d := range devs {
		t := d.Target
		if t.Ideal == nil || t.Factor.Category != category || d.Impact() != schema.ImpactNegative {
			continue
		}
		ideal := t.Factor.FormatValue(*t.Ideal)
		switch t.Factor.Key {
		case schema.FactorSleepHours:
			return fmt.Sprintf("Work back toward your goal of %s of sleep a night.", ideal)
		case schema.FactorHoursWorked:
			return fmt.Sprintf("Hold to your stated limit of %s of work a day.", ideal)
		case schema.FactorExercise:
			return fmt.Sprintf("Your goal is %s of exercise a day, even a short session counts.", ideal)
		}
	}
	return ""
}
