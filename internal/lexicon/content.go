package lexicon

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

// Pool is the industry-specific material templates draw from.
type Pool struct {
	Offers     []string
	Tips       []string
	ValueProps []string
	Hashtags   []string
}

var pools = map[domain.Industry]Pool{
	domain.IndustryFitness: {
		Offers: []string{
			"50% off personal training sessions this month",
			"Free fitness assessment with membership signup",
			"Buy 10 classes, get 2 free",
			"New member special: First month for $39",
			"Partner workout packages available",
		},
		Tips: []string{
			"Stay hydrated - aim for 8 glasses of water daily",
			"Warm up before workouts to prevent injury",
			"Rest days are just as important as workout days",
			"Focus on form over speed for better results",
			"Set realistic goals and celebrate small wins",
		},
		ValueProps: []string{
			"helping you achieve your fitness goals",
			"creating a supportive fitness community",
			"providing expert guidance and motivation",
			"offering flexible workout options",
			"building healthy lifestyle habits",
		},
		Hashtags: []string{"#fitness", "#gym", "#workout", "#health", "#motivation", "#personaltraining", "#fitnesscommunity"},
	},
	domain.IndustryBeauty: {
		Offers: []string{
			"20% off all facial treatments this week",
			"Bridal package deal - hair, makeup, and nails",
			"Refer a friend and both get 15% off",
			"New client special: $99 spa day package",
			"Loyalty program: 10th service free",
		},
		Tips: []string{
			"Always remove makeup before bed",
			"Use SPF daily, even in winter",
			"Deep condition your hair weekly",
			"Exfoliate 2-3 times per week for glowing skin",
			"Schedule regular trims to keep hair healthy",
		},
		ValueProps: []string{
			"enhancing your natural beauty",
			"providing relaxing spa experiences",
			"using high-quality, safe products",
			"helping you feel confident and beautiful",
			"creating personalized beauty solutions",
		},
		Hashtags: []string{"#beauty", "#spa", "#skincare", "#salon", "#selfcare", "#beautytips", "#glowup"},
	},
	domain.IndustryFood: {
		Offers: []string{
			"Happy hour: 50% off appetizers 3-6pm",
			"Weekend brunch special: $15 bottomless mimosas",
			"Family dinner deal: Kids eat free Sundays",
			"Date night package: Dinner for two $49",
			"Catering 20% off for orders over $200",
		},
		Tips: []string{
			"Try new flavors - expand your palate",
			"Fresh, local ingredients make all the difference",
			"Pair wines with complementary dishes",
			"Save room for dessert - life's too short",
			"Share dishes to try more variety",
		},
		ValueProps: []string{
			"serving fresh, locally-sourced ingredients",
			"creating memorable dining experiences",
			"bringing people together over great food",
			"supporting local farmers and suppliers",
			"crafting dishes with passion and care",
		},
		Hashtags: []string{"#restaurant", "#food", "#dining", "#localfood", "#freshingredients", "#foodie", "#delicious"},
	},
	domain.IndustryGeneral: {
		Offers: []string{
			"New customer discount: 20% off first service",
			"Loyalty rewards program now available",
			"Refer a friend and save",
			"Seasonal promotion: Limited time only",
			"Bundle deals available",
		},
		Tips: []string{
			"Quality service makes all the difference",
			"Building relationships is key to business success",
			"Customer satisfaction is our top priority",
			"Continuous improvement drives excellence",
			"Local businesses strengthen communities",
		},
		ValueProps: []string{
			"providing exceptional customer service",
			"delivering quality results every time",
			"supporting our local community",
			"building lasting relationships",
			"exceeding customer expectations",
		},
		Hashtags: []string{"#business", "#service", "#quality", "#community", "#local", "#customerservice"},
	},
}

// PoolFor returns the industry's pool, or the general pool for industries
// without dedicated material.
func PoolFor(industry domain.Industry) Pool {
	if p, ok := pools[industry]; ok {
		return p
	}
	return pools[domain.IndustryGeneral]
}

// CallsToAction are shared by every industry.
var CallsToAction = []string{
	"Book now!",
	"Call to schedule your appointment.",
	"Visit us today!",
	"DM us for more info.",
	"Link in bio to book online.",
	"Stop by or give us a call!",
	"Schedule online or call us.",
	"Don't wait - spaces are limited!",
	"Contact us to learn more.",
	"Book your spot today!",
}

// Updates are shared announcement lines for update posts.
var Updates = []string{
	"We've extended our hours for your convenience",
	"New services now available",
	"We're implementing new safety protocols",
	"Our team has completed additional training",
	"We've upgraded our facilities",
}

// Benefits complete "help you {benefit}" in tip posts.
var Benefits = []string{"succeed", "improve", "feel great", "achieve your goals"}

var typeHashtags = map[domain.PostType][]string{
	domain.PostTypePromo:   {"#deal", "#offer", "#special", "#save"},
	domain.PostTypeTip:     {"#tips", "#advice", "#howto", "#expert"},
	domain.PostTypeUpdate:  {"#news", "#update", "#announcement"},
	domain.PostTypeInsight: {"#trends", "#insights", "#industry", "#knowledge"},
}

// TypeHashtags returns the post type's hashtags; unknown types have none.
func TypeHashtags(t domain.PostType) []string {
	return typeHashtags[t]
}

// GeneralHashtags are added to every post.
var GeneralHashtags = []string{"#local", "#smallbusiness", "#community"}

// InsightHashtags are added to the candidate set of insight posts.
var InsightHashtags = []string{"#industrytrends", "#businessinsights"}

// MaxHashtags caps the hashtags on one post.
const MaxHashtags = 8

// DefaultNewsSource names a news item without a source.
const DefaultNewsSource = "Industry Reports"
