package news

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

// industrySource is the built-in news material for one industry.
type industrySource struct {
	feeds     []string
	keywords  []string
	headlines []string
}

var sources = map[domain.Industry]industrySource{
	domain.IndustryFitness: {
		feeds:    []string{"https://www.fitnessmagazine.com/rss.xml", "https://www.menshealth.com/rss/all.xml"},
		keywords: []string{"fitness", "workout", "gym", "health", "exercise", "training"},
		headlines: []string{
			"New HIIT workout trends gaining popularity in 2025",
			"Wearable fitness tech sees 40% growth this quarter",
			"Mental health benefits of regular exercise confirmed in latest study",
			"Virtual personal training becomes mainstream post-pandemic",
			"Nutrition timing: When to eat for optimal workout performance",
		},
	},
	domain.IndustryBeauty: {
		feeds:    []string{"https://www.allure.com/feed/rss", "https://www.harpersbazaar.com/rss/all.xml"},
		keywords: []string{"beauty", "skincare", "cosmetics", "hair", "makeup", "spa"},
		headlines: []string{
			"Clean beauty movement drives 60% of new product launches",
			"K-beauty trends continue to influence global market",
			"Sustainable packaging becomes priority for beauty brands",
			"At-home beauty treatments market expected to double",
			"Anti-aging serums with peptides show promising results",
		},
	},
	domain.IndustryFood: {
		feeds:    []string{"https://www.foodnetwork.com/feeds/all.rss", "https://www.bonappetit.com/feed/rss"},
		keywords: []string{"restaurant", "food", "dining", "culinary", "cuisine", "chef"},
		headlines: []string{
			"Plant-based menu options now standard in 75% of restaurants",
			"Ghost kitchens reshape food delivery landscape",
			"Sustainable sourcing becomes key differentiator",
			"Local ingredients trend drives menu innovation",
			"Technology transforms restaurant customer experience",
		},
	},
	domain.IndustryRetail: {
		feeds:    []string{"https://nrf.com/feed", "https://www.retaildive.com/feeds/news/"},
		keywords: []string{"retail", "shopping", "ecommerce", "fashion", "store"},
		headlines: []string{
			"Omnichannel retail strategies show 35% higher customer retention",
			"AR try-on technology adoption accelerates across fashion brands",
			"Sustainable fashion drives purchasing decisions for Gen Z",
			"Local shopping experiences make comeback",
			"Inventory management AI reduces waste by 45%",
		},
	},
	domain.IndustryHealthcare: {
		feeds:    []string{"https://www.healthcarefinancenews.com/feeds/all.rss"},
		keywords: []string{"healthcare", "medical", "wellness", "health", "treatment"},
		headlines: []string{
			"Telemedicine adoption remains high post-pandemic",
			"Preventive care focus reduces long-term healthcare costs",
			"Wearable health monitoring devices gain medical approval",
			"Mental health services see increased demand and innovation",
			"Personalized medicine approaches show promising outcomes",
		},
	},
	domain.IndustryGeneral: {
		feeds:    []string{"https://feeds.feedburner.com/TechCrunch"},
		keywords: []string{"business", "technology", "innovation", "trends"},
		headlines: []string{
			"Small businesses embrace digital transformation",
			"Customer experience becomes top business priority",
			"AI tools help small businesses compete with larger companies",
			"Social media marketing ROI reaches all-time high",
			"Local business support drives community economic growth",
		},
	},
}

func sourceFor(industry domain.Industry) industrySource {
	if s, ok := sources[industry]; ok {
		return s
	}
	return sources[domain.IndustryGeneral]
}
