package analyzer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/social-planner/internal/analyzer"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/domain"
)

const gymPage = `<html>
<head>
<title>Iron Temple Gym | Home</title>
<meta name="description" content="Iron Temple Gym is a friendly community gym offering personal training and group fitness classes.">
</head>
<body>
<h1>Welcome to Iron Temple</h1>
<section class="services">
<ul>
<li>Personal Training</li>
<li>Group Fitness Classes</li>
<li>Yoga</li>
</ul>
</section>
<h2>Services we provide</h2>
<div class="address">123 Main Street, Springfield</div>
<p>Call us at (555) 123-4567 or email hello@irontemple.example today.</p>
<div class="rating">Rated 4.8 stars</div>
<div class="testimonial">Great coaches!</div>
<div class="review">Love the place.</div>
<div class="partners"><img src="logo.png" alt=""></div>
</body>
</html>`

func testConfig() config.AnalyzerConfig {
	return config.AnalyzerConfig{Timeout: 5 * time.Second, MaxBodyBytes: 1 << 20, UserAgent: "planner-test"}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "planner-test", r.UserAgent())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(gymPage))
	}))
	t.Cleanup(srv.Close)

	a := analyzer.New(analyzer.NewCollyFetcher(testConfig()), nil, nil, nil)
	profile, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Iron Temple Gym", profile.Name)
	assert.Equal(t, srv.URL, profile.WebsiteURL)
	assert.Equal(t, domain.IndustryFitness, profile.Industry)
	assert.Equal(t, domain.ToneFriendly, profile.ToneOfVoice)
	assert.Contains(t, profile.Description, "friendly community gym")
	assert.Equal(t, []string{"Personal Training", "Group Fitness Classes", "Services we provide"}, profile.Services)
	assert.Equal(t, domain.ContactInfo{
		Phone:   "5551234567",
		Email:   "hello@irontemple.example",
		Address: "123 Main Street, Springfield",
	}, profile.ContactInfo)
	assert.Equal(t, domain.SocialProof{Rating: "4.8", TestimonialsCount: 2, HasClientLogos: true}, profile.SocialProof)
	assert.Empty(t, profile.ExtractionError)
	assert.False(t, profile.ExtractedAt.IsZero())
}

func TestAnalyzer_FallbackOnFetchFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	a := analyzer.New(analyzer.NewCollyFetcher(testConfig()), nil, nil, nil)
	profile, err := a.Analyze(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, domain.IndustryGeneral, profile.Industry)
	assert.Equal(t, domain.ToneProfessional, profile.ToneOfVoice)
	assert.Equal(t, "Business profile could not be fully extracted", profile.Description)
	assert.Empty(t, profile.Services)
	assert.NotEmpty(t, profile.ExtractionError)
}

type failingFetcher struct{ err error }

func (f failingFetcher) Fetch(context.Context, string) (*analyzer.Page, error) { return nil, f.err }

func TestAnalyzer_FallbackName(t *testing.T) {
	t.Parallel()

	a := analyzer.New(failingFetcher{err: assert.AnError}, nil, nil, nil)
	profile, err := a.Analyze(context.Background(), "www.sunny-bakery.com")
	require.NoError(t, err)
	assert.Equal(t, "https://www.sunny-bakery.com", profile.WebsiteURL)
	assert.Equal(t, "Sunny-Bakery", profile.Name)
	assert.Equal(t, assert.AnError.Error(), profile.ExtractionError)
}

func TestAnalyzer_EmptyURL(t *testing.T) {
	t.Parallel()

	a := analyzer.New(failingFetcher{}, nil, nil, nil)
	_, err := a.Analyze(context.Background(), "   ")
	require.ErrorIs(t, err, analyzer.ErrEmptyURL)
}

func TestAnalyzer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := analyzer.New(failingFetcher{err: context.Canceled}, nil, nil, nil)
	_, err := a.Analyze(ctx, "example.com")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com", analyzer.NormalizeURL(" example.com "))
	assert.Equal(t, "http://example.com", analyzer.NormalizeURL("http://example.com"))
	assert.Empty(t, analyzer.NormalizeURL(""))
}

func TestDomainName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Example", analyzer.DomainName("https://www.example.co.uk/path"))
	assert.Equal(t, "Business", analyzer.DomainName("not a url"))
}

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestExtract_NameFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"title separator", `<title>Bella Salon - Hair and Nails</title>`, "Bella Salon"},
		{"short title uses h1", `<title>AB | Home</title><h1>Acme Auto Repair</h1>`, "Acme Auto Repair"},
		{"og site name", `<meta property="og:site_name" content="Corner Cafe"><h1>` + strings.Repeat("x", 120) + `</h1>`, "Corner Cafe"},
		{"domain", `<p>nothing</p>`, "Shop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ex := analyzer.Extract(doc(t, tt.html), "https://shop.example.com")
			assert.Equal(t, tt.want, ex.Name)
		})
	}
}

func TestExtract_DescriptionFallbacks(t *testing.T) {
	t.Parallel()

	about := strings.Repeat("We have served the neighbourhood for years. ", 2)
	ex := analyzer.Extract(doc(t, `<div class="about">`+about+`</div>`), "https://a.example")
	assert.Equal(t, strings.TrimSpace(about), ex.Description)

	ex = analyzer.Extract(doc(t, `<p>short</p><p>Fresh bread baked every single morning by hand.</p>`), "https://a.example")
	assert.Equal(t, "Fresh bread baked every single morning by hand.", ex.Description)

	ex = analyzer.Extract(doc(t, `<p>tiny</p>`), "https://a.example")
	assert.Equal(t, "No description available", ex.Description)
}

func TestExtract_ServicesCappedAndUnique(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<ul class="menu">`)
	for i := range 15 {
		b.WriteString("<li>Menu item number " + string(rune('A'+i)) + "</li>")
	}
	b.WriteString("<li>Menu item number A</li></ul>")

	ex := analyzer.Extract(doc(t, b.String()), "https://a.example")
	require.Len(t, ex.Services, 10)
	assert.Equal(t, "Menu item number A", ex.Services[0])
	assert.Equal(t, "Menu item number J", ex.Services[9])
}

func TestExtract_ThinPageText(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Tiny</title></head><body><article><p>Our bakery makes sourdough.</p></article></body></html>`
	ex := analyzer.Extract(doc(t, html), "https://tiny.example")
	assert.Contains(t, ex.Text, "sourdough")
}
