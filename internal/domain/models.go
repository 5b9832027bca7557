package domain

import "strings"

// NotFound stands in for any field the extractor could not resolve.
const NotFound = "Not Found"

// FirstDataRow is the first store row below the header.
const FirstDataRow = 2

// JobPosting is the set of fields scraped from one job page.
type JobPosting struct {
	URL            string `json:"url"`
	JobTitle       string `json:"jobTitle"`
	CompanyName    string `json:"companyName"`
	Location       string `json:"location"`
	JobDescription string `json:"jobDescription"`
}

// NewJobPosting returns a posting for url with every field unresolved.
func NewJobPosting(url string) JobPosting {
	return JobPosting{
		URL:            url,
		JobTitle:       NotFound,
		CompanyName:    NotFound,
		Location:       NotFound,
		JobDescription: NotFound,
	}
}

// Succeeded reports whether both title and company were resolved.
func (p JobPosting) Succeeded() bool {
	return Resolved(p.JobTitle) && Resolved(p.CompanyName)
}

// Resolved reports whether v carries a real value.
func Resolved(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != NotFound
}

// QueueRow is one pending unit of work read from the store.
type QueueRow struct {
	RowIndex int    `json:"row"`
	URL      string `json:"url"`
}
