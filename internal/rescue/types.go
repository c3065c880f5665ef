package rescue

import (
	"strings"
	"time"
)

const apiTimestampLayout = "2006-01-02T15:04:05-0700"

// Animal mirrors an entry of /v2/animals.
type Animal struct {
	ID             int64       `json:"id"`
	OrganizationID string      `json:"organization_id"`
	URL            string      `json:"url"`
	Type           string      `json:"type"`
	Species        string      `json:"species"`
	Breeds         Breeds      `json:"breeds"`
	Age            string      `json:"age"`
	Gender         string      `json:"gender"`
	Size           string      `json:"size"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Photos         []Photo     `json:"photos"`
	Status         string      `json:"status"`
	Tags           []string    `json:"tags"`
	Contact        Contact     `json:"contact"`
	PublishedAt    string      `json:"published_at"`
	Distance       *float64    `json:"distance"`
	Attributes     Attributes  `json:"attributes"`
	Environment    Environment `json:"environment"`
}

// Breeds lists the primary and secondary breed.
type Breeds struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Mixed     bool   `json:"mixed"`
	Unknown   bool   `json:"unknown"`
}

// Label renders the breed as shown in lists.
func (b Breeds) Label() string {
	primary := strings.TrimSpace(b.Primary)
	secondary := strings.TrimSpace(b.Secondary)
	switch {
	case primary == "" && b.Unknown:
		return "Unknown breed"
	case primary == "":
		return ""
	case secondary != "":
		return primary + " / " + secondary
	case b.Mixed:
		return primary + " mix"
	default:
		return primary
	}
}

// Photo holds the resized variants of one picture.
type Photo struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
	Full   string `json:"full"`
}

// Attributes are the care flags reported by the shelter. Nil means unknown.
type Attributes struct {
	SpayedNeutered bool  `json:"spayed_neutered"`
	HouseTrained   bool  `json:"house_trained"`
	Declawed       *bool `json:"declawed"`
	SpecialNeeds   bool  `json:"special_needs"`
	ShotsCurrent   bool  `json:"shots_current"`
}

// Environment reports compatibility. Nil means unknown.
type Environment struct {
	Children *bool `json:"children"`
	Dogs     *bool `json:"dogs"`
	Cats     *bool `json:"cats"`
}

// Contact is how to reach the listing organization.
type Contact struct {
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// Address is a postal address; any field may be empty.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// Place renders "City, ST" or whatever part is known.
func (a Address) Place() string {
	parts := make([]string, 0, 2)
	if city := strings.TrimSpace(a.City); city != "" {
		parts = append(parts, city)
	}
	if state := strings.TrimSpace(a.State); state != "" {
		parts = append(parts, state)
	}
	return strings.Join(parts, ", ")
}

// Pagination mirrors the API's paging block.
type Pagination struct {
	CountPerPage int `json:"count_per_page"`
	TotalCount   int `json:"total_count"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
}

// HasNext reports whether a later page exists.
func (p Pagination) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// AnimalPage is one page of search results.
type AnimalPage struct {
	Animals    []Animal   `json:"animals"`
	Pagination Pagination `json:"pagination"`
}

type animalResponse struct {
	Animal Animal `json:"animal"`
}

// AnimalType is a species known to the API, e.g. "Dog".
type AnimalType struct {
	Name    string   `json:"name"`
	Coats   []string `json:"coats"`
	Colors  []string `json:"colors"`
	Genders []string `json:"genders"`
}

type typesResponse struct {
	Types []AnimalType `json:"types"`
}

// Organization is a shelter or rescue group.
type Organization struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
	URL     string  `json:"url"`
	Website string  `json:"website"`
	Mission string  `json:"mission_statement"`
}

type organizationResponse struct {
	Organization Organization `json:"organization"`
}

// ParsedPublishedAt returns PublishedAt as time.Time, or zero.
func (a Animal) ParsedPublishedAt() time.Time {
	return parseTime(a.PublishedAt)
}

// PrimaryPhoto returns the best medium-sized photo URL, or "".
func (a Animal) PrimaryPhoto() string {
	for _, p := range a.Photos {
		for _, u := range []string{p.Medium, p.Large, p.Full, p.Small} {
			if u != "" {
				return u
			}
		}
	}
	return ""
}

// SpeciesLabel prefers Species and falls back to Type.
func (a Animal) SpeciesLabel() string {
	if s := strings.TrimSpace(a.Species); s != "" {
		return s
	}
	return strings.TrimSpace(a.Type)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, apiTimestampLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
