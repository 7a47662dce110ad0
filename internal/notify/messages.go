// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import "fmt"

// EmptySearch is emitted when a form is submitted with no parameters.
func EmptySearch() Notification {
	return Notification{
		Category: Validation,
		Title:    "Empty search",
		Message:  "Please enter at least one search parameter",
	}
}

// SearchCompleted is emitted when a search returns total > 0 records.
func SearchCompleted(total int) Notification {
	return Notification{
		Category: Found,
		Title:    "Search completed",
		Message:  fmt.Sprintf("Found %d results related to your query.", total),
	}
}

// NoResults is emitted when a search succeeds with zero records.
func NoResults() Notification {
	return Notification{
		Category: Empty,
		Title:    "No results found",
		Message:  "Try adjusting your search parameters.",
	}
}

// SearchFailed is emitted when the query service rejects a search.
func SearchFailed() Notification {
	return Notification{
		Category: Failed,
		Title:    "Search failed",
		Message:  "There was an error processing your request. Please try again.",
	}
}
