package approvals

import "time"

// DemoItems returns a fixed set of one submission per content type. It is
// shown when the pending list cannot be loaded and demo fallback is enabled.
func DemoItems() []Item {
	return []Item{
		{
			ID:           "p_101",
			ContentID:    "p_101",
			ContentType:  ContentPost,
			Title:        "Why Rust in Prod",
			Snippet:      "Lessons from moving our volunteer matching service to Rust.",
			AuthorName:   "Asha Verma",
			AuthorHandle: "asha",
			SubmittedAt:  time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
			Tags:         []string{"engineering", "rust"},
			Detail:       PostDetail{Body: "Lessons from moving our volunteer matching service to Rust."},
		},
		{
			ID:           "r_205",
			ContentID:    "r_205",
			ContentType:  ContentResource,
			Title:        "CSR Impact Report Template",
			Snippet:      "A reusable template for quarterly CSR impact reporting.",
			AuthorName:   "Daniel Okafor",
			AuthorHandle: "dokafor",
			SubmittedAt:  time.Date(2025, 1, 11, 14, 5, 0, 0, time.UTC),
			Tags:         []string{"csr", "reporting"},
			Detail:       ResourceDetail{URL: "https://example.org/csr-template.docx", FileType: "docx", Category: "templates"},
		},
		{
			ID:           "q_309",
			ContentID:    "q_309",
			ContentType:  ContentQnA,
			Title:        "How do we measure volunteer hours?",
			Snippet:      "Looking for a consistent way to log hours across chapters.",
			AuthorName:   "Mei Lin",
			AuthorHandle: "meilin",
			SubmittedAt:  time.Date(2025, 1, 12, 8, 0, 0, 0, time.UTC),
			Tags:         []string{"volunteering", "metrics"},
			Detail:       QnADetail{Question: "How do we measure volunteer hours?"},
		},
		{
			ID:           "s_412",
			ContentID:    "s_412",
			ContentType:  ContentStory,
			Title:        "Planting 10,000 Trees in Pune",
			Snippet:      "How three chapters coordinated a city-wide planting drive.",
			AuthorName:   "Ravi Kumar",
			AuthorHandle: "ravik",
			SubmittedAt:  time.Date(2025, 1, 13, 17, 45, 0, 0, time.UTC),
			Tags:         []string{"environment", "community"},
			Detail:       StoryDetail{Location: "Pune", ImpactMetric: "10,000 trees"},
		},
	}
}
