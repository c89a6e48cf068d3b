package actions

// Template holds the fixed time, cost, and checklist for a class of fixes.
// Templates are matched against gap titles by keyword; order matters because
// the first match wins.
type Template struct {
	Keyword     string
	Title       string
	Category    string
	TimeMinutes int
	CostEUR     float64
	Steps       []string
}

var actionTemplates = []Template{
	{
		Keyword:     "instant book",
		Title:       "Enable Instant Book",
		Category:    "settings",
		TimeMinutes: 5,
		CostEUR:     0,
		Steps: []string{
			"Open Listing > Booking settings",
			"Turn on Instant Book",
			"Pick your guest requirements (ID verification, etc.)",
			"Save the changes",
		},
	},
	{
		Keyword:     "photo",
		Title:       "Add high-quality photos",
		Category:    "content",
		TimeMinutes: 180,
		CostEUR:     0,
		Steps: []string{
			"Shoot during the day with natural light",
			"Tidy and clean every room first",
			"Photograph every space (bedroom, living room, kitchen, bathroom, outdoors)",
			"Capture details (decor, amenities, the view)",
			"Edit the photos (brightness, framing)",
			"Upload in a logical order (exterior, main rooms, details)",
		},
	},
	{
		Keyword:     "response",
		Title:       "Improve response time",
		Category:    "response",
		TimeMinutes: 15,
		CostEUR:     0,
		Steps: []string{
			"Enable push notifications in the app",
			"Create 3-5 saved quick replies",
			"Set up email/SMS alerts",
			"Block 10 minutes morning and evening for replies",
		},
	},
	{
		Keyword:     "rating",
		Title:       "Improve your rating",
		Category:    "reviews",
		TimeMinutes: 120,
		CostEUR:     50,
		Steps: []string{
			"Analyze the last 10 negative reviews",
			"Identify recurring problems",
			"Improve cleanliness with a detailed checklist",
			"Add small touches (coffee, snacks, a local guide)",
			"Communicate proactively before, during, and after the stay",
			"Ask for private feedback before checkout",
		},
	},
	{
		Keyword:     "review",
		Title:       "Get more reviews",
		Category:    "reviews",
		TimeMinutes: 30,
		CostEUR:     0,
		Steps: []string{
			"Send a personal message after checkout",
			"Gently remind guests how much reviews matter",
			"Review the guest first (often triggers a review back)",
			"Offer a discount on the next stay",
			"Price attractively for the first guests",
		},
	},
	{
		Keyword:     "pric",
		Title:       "Adjust your price",
		Category:    "pricing",
		TimeMinutes: 20,
		CostEUR:     0,
		Steps: []string{
			"Analyze the prices of your 10 closest competitors",
			"Enable Smart Pricing or use a dynamic pricing tool",
			"Set weekly (-10%) and monthly (-20%) discounts",
			"Create a promotion for the next 3 months",
			"Adjust for season and local events",
		},
	},
	{
		Keyword:     "amenit",
		Title:       "Add essential amenities",
		Category:    "amenities",
		TimeMinutes: 60,
		CostEUR:     150,
		Steps: []string{
			"List the amenities you lack versus competitors",
			"Prioritize fast wifi, air conditioning, a fully equipped kitchen",
			"Buy the missing amenities",
			"Install and test them",
			"Update the listing with the new amenities",
			"Photograph the new amenities",
		},
	},
	{
		Keyword:     "superhost",
		Title:       "Reach Superhost status",
		Category:    "badges",
		TimeMinutes: 0, // ongoing effort, no fixed time
		CostEUR:     0,
		Steps: []string{
			"Keep your rating at 4.8+ (check every review)",
			"Reply to 90%+ of messages within 24h",
			"Complete at least 10 stays per year",
			"Never cancel (0% cancellation rate)",
			"Track your progress in the host dashboard",
		},
	},
	{
		Keyword:     "guest favorite",
		Title:       "Aim for the Guest Favorite badge",
		Category:    "badges",
		TimeMinutes: 0,
		CostEUR:     0,
		Steps: []string{
			"Reach a 4.9+ rating (top priority)",
			"Collect at least 5 reviews",
			"Keep the cancellation rate under 1%",
			"Excel in all six sub-categories (cleanliness, accuracy, etc.)",
			"Be in the top 10% of your area",
		},
	},
}

// fallbackSteps is the generic checklist used when no template matches.
var fallbackSteps = []string{
	"Analyze the problem in detail",
	"Research possible solutions",
	"Implement the chosen fix",
	"Verify the result",
	"Update the listing if needed",
}
