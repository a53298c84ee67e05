package analyzer

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const (
	noDescription   = "No description available"
	fallbackName    = "Business"
	maxServices     = 10
	minPageTextLen  = 200
	maxHeadingName  = 100
	minTitleNameLen = 3
)

var (
	titleSuffix  = regexp.MustCompile(`\s*[|\-—]\s*.*$`)
	phonePattern = regexp.MustCompile(`(\+?1?[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	ratingNumber = regexp.MustCompile(`\d+\.?\d*`)
)

var (
	descriptionSelectors = []string{".about", ".description", ".intro", ".hero-text", "#about", "#description", ".welcome", ".mission"}
	addressSelectors     = []string{".address", ".location", ".contact-address", "#address"}
	ratingSelectors      = []string{".rating", ".stars", ".review-rating", ".score"}
	testimonialSelectors = []string{".testimonial", ".review", ".feedback", ".client-review"}
	serviceWords         = []string{"service", "offer", "provide", "specialize"}
)

const (
	serviceSections = ".services, .service, .offerings, .products, #services, #service, .menu, .treatments"
	serviceItems    = "li, h3, h4, h5"
	clientSections  = ".clients, .partners, .featured-in, .logos"
)

// Extraction is everything read from one page before classification.
type Extraction struct {
	Name        string
	Description string
	Services    []string
	Contact     domain.ContactInfo
	SocialProof domain.SocialProof
	// Text is the page text used for classification.
	Text string
}

// Extract reads business details from doc.
func Extract(doc *goquery.Document, pageURL string) Extraction {
	text := doc.Text()
	return Extraction{
		Name:        extractName(doc, pageURL),
		Description: extractDescription(doc),
		Services:    extractServices(doc),
		Contact:     extractContact(doc, text),
		SocialProof: extractSocialProof(doc),
		Text:        pageText(doc, text, pageURL),
	}
}

func extractName(doc *goquery.Document, pageURL string) string {
	if title := doc.Find("title").First(); title.Length() > 0 {
		name := titleSuffix.ReplaceAllString(strings.TrimSpace(title.Text()), "")
		if utf8.RuneCountInString(name) >= minTitleNameLen {
			return name
		}
	}

	var name string
	doc.Find("h1").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if text != "" && utf8.RuneCountInString(text) < maxHeadingName {
			name = text
			return false
		}
		return true
	})
	if name != "" {
		return name
	}

	if site, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok && site != "" {
		return site
	}
	return DomainName(pageURL)
}

// DomainName title-cases the first label of the host, ignoring "www.".
func DomainName(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return fallbackName
	}
	host := strings.Replace(u.Hostname(), "www.", "", 1)
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return fallbackName
	}
	return cases.Title(language.English).String(label)
}

func extractDescription(doc *goquery.Document) string {
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if content, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}

	for _, sel := range descriptionSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(el.Text())
		if n := utf8.RuneCountInString(text); n > 50 && n < 500 {
			return text
		}
	}

	var desc string
	paragraphs := doc.Find("p")
	paragraphs.Slice(0, min(3, paragraphs.Length())).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if n := utf8.RuneCountInString(text); n > 30 && n < 300 {
			desc = text
			return false
		}
		return true
	})
	if desc != "" {
		return desc
	}
	return noDescription
}

func extractServices(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var services []string
	add := func(text string) {
		if text == "" || seen[text] || len(services) >= maxServices {
			return
		}
		seen[text] = true
		services = append(services, text)
	}

	doc.Find(serviceSections).Find(serviceItems).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if n := utf8.RuneCountInString(text); n > 5 && n < 100 {
			add(text)
		}
	})
	doc.Find("h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		lower := strings.ToLower(text)
		for _, w := range serviceWords {
			if strings.Contains(lower, w) {
				add(text)
				return
			}
		}
	})

	if services == nil {
		return []string{}
	}
	return services
}

func extractContact(doc *goquery.Document, text string) domain.ContactInfo {
	var info domain.ContactInfo
	if m := phonePattern.FindStringSubmatch(text); m != nil {
		info.Phone = strings.TrimSpace(strings.Join(m[1:], ""))
	}
	info.Email = emailPattern.FindString(text)

	for _, sel := range addressSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if addr := strings.TrimSpace(el.Text()); utf8.RuneCountInString(addr) > 10 {
			info.Address = addr
			break
		}
	}
	return info
}

func extractSocialProof(doc *goquery.Document) domain.SocialProof {
	var proof domain.SocialProof
	// A later selector with a number overrides an earlier one.
	for _, sel := range ratingSelectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if m := ratingNumber.FindString(el.Text()); m != "" {
			proof.Rating = m
		}
	}

	for _, sel := range testimonialSelectors {
		proof.TestimonialsCount += doc.Find(sel).Length()
	}
	proof.HasClientLogos = doc.Find(clientSections).Length() > 0
	return proof
}

// pageText appends the readability article text when the document text is thin.
func pageText(doc *goquery.Document, text, pageURL string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) >= minPageTextLen {
		return text
	}
	html, err := doc.Html()
	if err != nil {
		return text
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return text
	}
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return text
	}
	if extra := strings.TrimSpace(article.TextContent); extra != "" {
		return text + " " + extra
	}
	return text
}
