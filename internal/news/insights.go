package news

import (
	"strings"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const (
	maxInsights     = 3
	maxContentIdeas = 4
)

type insightRule struct {
	words    []string
	insights []string
}

var genericInsightRules = []insightRule{
	{[]string{"trend", "popular"}, []string{
		"Consider incorporating this trend into your service offerings",
		"Update your marketing messaging to align with current trends",
	}},
	{[]string{"technology", "digital"}, []string{
		"Evaluate how this technology could improve your business operations",
		"Consider digital adoption to stay competitive",
	}},
	{[]string{"customer", "consumer"}, []string{
		"Review your customer experience strategy",
		"Adapt services to meet changing customer expectations",
	}},
	{[]string{"growth", "increase"}, []string{
		"This presents a potential business opportunity",
		"Consider expanding services in this area",
	}},
}

var industryInsightRules = map[domain.Industry][]insightRule{
	domain.IndustryFitness: {
		{[]string{"workout"}, []string{"Update your class schedule to include trending workout styles"}},
		{[]string{"nutrition"}, []string{"Consider partnering with nutritionists or offering meal plans"}},
	},
	domain.IndustryBeauty: {
		{[]string{"skincare"}, []string{"Review your skincare service menu for new treatment options"}},
		{[]string{"sustainable"}, []string{"Highlight eco-friendly products and practices"}},
	},
	domain.IndustryFood: {
		{[]string{"plant-based"}, []string{"Expand plant-based options on your menu"}},
		{[]string{"local"}, []string{"Emphasize local sourcing in your marketing"}},
	},
}

var defaultInsights = []string{
	"Monitor this trend for potential business impact",
	"Consider how this development affects your target market",
}

// BusinessInsights suggests up to three actions a business could take on a headline.
func BusinessInsights(headline string, industry domain.Industry) []string {
	lower := strings.ToLower(headline)

	var out []string
	apply := func(rules []insightRule) {
		for _, rule := range rules {
			for _, w := range rule.words {
				if strings.Contains(lower, w) {
					out = append(out, rule.insights...)
					break
				}
			}
		}
	}
	apply(genericInsightRules)
	apply(industryInsightRules[industry])

	if len(out) == 0 {
		out = append(out, defaultInsights...)
	}
	return out[:min(len(out), maxInsights)]
}

var industryIdeas = map[domain.Industry][]string{
	domain.IndustryFitness: {
		"Post a workout video demonstrating the trending exercise",
		"Share client transformation stories related to this trend",
		"Create an educational post about the health benefits",
	},
	domain.IndustryBeauty: {
		"Before/after photos showcasing relevant treatments",
		"Tutorial video demonstrating trending techniques",
		"Product recommendation post featuring trending items",
	},
	domain.IndustryFood: {
		"Share photos of dishes that align with this trend",
		"Post about your restaurant's take on trending cuisine",
		"Behind-the-scenes video of food preparation",
	},
}

// ContentIdeas suggests up to four social posts built around a headline.
func ContentIdeas(headline string, industry domain.Industry) []string {
	out := []string{
		"Share your thoughts on: " + headline,
		"How this trend affects our clients: " + headline,
		"Behind the scenes: How we're adapting to " + strings.ToLower(headline),
	}
	out = append(out, industryIdeas[industry]...)
	return out[:min(len(out), maxContentIdeas)]
}
