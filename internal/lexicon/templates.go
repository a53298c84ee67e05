package lexicon

import "github.com/jonesrussell/north-cloud/social-planner/internal/domain"

// Slot names understood by templates.
const (
	SlotBusinessName   = "business_name"
	SlotCallToAction   = "call_to_action"
	SlotValueProp      = "value_prop"
	SlotContactInfo    = "contact_info"
	SlotOffer          = "offer"
	SlotTipContent     = "tip_content"
	SlotBenefit        = "benefit"
	SlotUpdateContent  = "update_content"
	SlotInsightContent = "insight_content"
)

type templateKey struct {
	postType domain.PostType
	tone     domain.Tone
}

var templates = map[templateKey][3]string{
	{domain.PostTypePromo, domain.ToneProfessional}: {
		"We're excited to announce {offer}! {business_name} is committed to providing {value_prop}. {call_to_action} {contact_info}",
		"Limited time offer: {offer}. Experience the {business_name} difference. {call_to_action}",
		"Special promotion alert! {offer} at {business_name}. {value_prop} {call_to_action}",
	},
	{domain.PostTypePromo, domain.ToneFriendly}: {
		"Hey everyone! 🎉 We've got something special for you: {offer}! Come see us at {business_name} and {value_prop}. {call_to_action}",
		"Guess what? {offer} is here! 😊 We can't wait to see you at {business_name}. {call_to_action}",
		"Friends, we're so excited to share {offer} with you! {business_name} is all about {value_prop}. {call_to_action}",
	},
	{domain.PostTypePromo, domain.ToneCasual}: {
		"Yo! {offer} just dropped! 🔥 Come through {business_name} and check it out. {call_to_action}",
		"New deal alert! {offer} - because you deserve the best. {call_to_action}",
		"PSA: {offer} is happening now! Don't sleep on this one. {call_to_action}",
	},
	{domain.PostTypePromo, domain.TonePremium}: {
		"Exclusive opportunity: {offer}. Discover the luxury experience at {business_name}. {value_prop} {call_to_action}",
		"Elevate your experience with {offer}. {business_name} - where excellence meets sophistication. {call_to_action}",
		"Premium members, this is for you: {offer}. Experience unparalleled {value_prop} at {business_name}.",
	},
	{domain.PostTypeTip, domain.ToneProfessional}: {
		"Professional tip: {tip_content}. At {business_name}, we believe in sharing knowledge to help you {benefit}. {call_to_action}",
		"Industry insight: {tip_content} This is why at {business_name}, we focus on {value_prop}. {call_to_action}",
		"Expert advice: {tip_content} Trust {business_name} for professional {industry} guidance.",
	},
	{domain.PostTypeTip, domain.ToneFriendly}: {
		"Quick tip from your friends at {business_name}: {tip_content} 💡 We love helping you {benefit}! {call_to_action}",
		"Here's something helpful: {tip_content} ✨ That's just one way we care for our {business_name} family! {call_to_action}",
		"Friendly reminder: {tip_content} 😊 We're always here to help at {business_name}!",
	},
	{domain.PostTypeTip, domain.ToneCasual}: {
		"Pro tip: {tip_content} 💯 That's the kind of real talk you get from {business_name}. {call_to_action}",
		"Life hack: {tip_content} You're welcome! 😎 More tips coming from your crew at {business_name}.",
		"Real talk: {tip_content} That's how we roll at {business_name}. {call_to_action}",
	},
	{domain.PostTypeTip, domain.TonePremium}: {
		"Expert insight: {tip_content} This level of expertise is what distinguishes {business_name}. {call_to_action}",
		"Exclusive knowledge: {tip_content} Elevate your {industry} experience with {business_name}.",
		"Professional mastery: {tip_content} Discover the {business_name} advantage.",
	},
	{domain.PostTypeUpdate, domain.ToneProfessional}: {
		"Update from {business_name}: {update_content}. We're committed to {value_prop} and keeping you informed. {call_to_action}",
		"Business update: {update_content} Thank you for your continued trust in {business_name}. {call_to_action}",
		"Important notice: {update_content} {business_name} remains dedicated to serving you with excellence.",
	},
	{domain.PostTypeUpdate, domain.ToneFriendly}: {
		"Hey everyone! Quick update from the {business_name} family: {update_content} 😊 {call_to_action}",
		"Update time! {update_content} Thanks for being part of the {business_name} community! 💙 {call_to_action}",
		"Just wanted to let you know: {update_content} Love you all! - The {business_name} team ❤️",
	},
	{domain.PostTypeUpdate, domain.ToneCasual}: {
		"What's up! Quick update: {update_content} Keep doing you! 🤘 - {business_name}",
		"Update drop: {update_content} Thanks for rolling with us! 🔥 {call_to_action}",
		"Heads up: {update_content} Much love from {business_name}! ✌️",
	},
	{domain.PostTypeUpdate, domain.TonePremium}: {
		"Exclusive update for our valued clients: {update_content} {business_name} continues to set the standard for excellence.",
		"Important announcement: {update_content} Your luxury experience at {business_name} remains our priority.",
		"Distinguished clients, please note: {update_content} {business_name} - your premier destination.",
	},
	{domain.PostTypeInsight, domain.ToneProfessional}: {
		"Industry insight: {insight_content} At {business_name}, we stay ahead of trends to better serve you. {call_to_action}",
		"Market analysis: {insight_content} This is why choosing {business_name} makes a difference. {call_to_action}",
		"Professional perspective: {insight_content} Trust {business_name} to keep you informed and ahead.",
	},
	{domain.PostTypeInsight, domain.ToneFriendly}: {
		"Interesting news! {insight_content} 🤓 We love staying on top of trends for our {business_name} family! {call_to_action}",
		"Did you know? {insight_content} ✨ That's why we're always evolving at {business_name}! {call_to_action}",
		"Cool industry update: {insight_content} 😎 We're always learning for you at {business_name}!",
	},
	{domain.PostTypeInsight, domain.ToneCasual}: {
		"FYI: {insight_content} 📰 That's why {business_name} stays fresh and relevant! {call_to_action}",
		"Industry tea: {insight_content} ☕ We keep our finger on the pulse at {business_name}!",
		"Real industry talk: {insight_content} 💯 {business_name} keeps it 100 with the latest!",
	},
	{domain.PostTypeInsight, domain.TonePremium}: {
		"Market intelligence: {insight_content} {business_name} leverages industry insights for your advantage.",
		"Exclusive industry analysis: {insight_content} Discover how {business_name} stays at the forefront.",
		"Strategic insight: {insight_content} {business_name} - where expertise meets innovation.",
	},
}

// Templates returns the three candidate templates for (postType, tone).
// Unknown post types resolve to promo and unknown tones to professional.
func Templates(postType domain.PostType, tone domain.Tone) [3]string {
	if t, ok := templates[templateKey{postType, tone}]; ok {
		return t
	}
	if parsed, known := domain.ParsePostType(string(postType)); known {
		postType = parsed
	} else {
		postType = domain.PostTypePromo
	}
	return templates[templateKey{postType, domain.ParseTone(string(tone))}]
}
