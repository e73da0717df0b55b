package handler

import (
	"net/url"
	"testing"
)

func TestDecodeFormNestedKeys(t *testing.T) {
	values := url.Values{
		"title":                      {"Two story house"},
		"budget[min]":                {"10000"},
		"budget[max]":                {"50000"},
		"budget[currency]":           {"USD"},
		"location[city]":             {"Pune"},
		"location[coordinates][lat]": {"18.52"},
	}

	var dst struct {
		Title  string `json:"title"`
		Budget struct {
			Min      string `json:"min"`
			Max      string `json:"max"`
			Currency string `json:"currency"`
		} `json:"budget"`
		Location struct {
			City        string `json:"city"`
			Coordinates struct {
				Lat string `json:"lat"`
			} `json:"coordinates"`
		} `json:"location"`
	}
	if err := decodeForm(values, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Title != "Two story house" {
		t.Fatalf("unexpected title %q", dst.Title)
	}
	if dst.Budget.Min != "10000" || dst.Budget.Max != "50000" || dst.Budget.Currency != "USD" {
		t.Fatalf("unexpected budget %+v", dst.Budget)
	}
	if dst.Location.City != "Pune" || dst.Location.Coordinates.Lat != "18.52" {
		t.Fatalf("unexpected location %+v", dst.Location)
	}
}

func TestDecodeFormIndexedRepetition(t *testing.T) {
	values := url.Values{
		"specifications[requirements][0]": {"3 bedrooms"},
		"specifications[requirements][1]": {"solar panels"},
	}

	var dst struct {
		Specifications struct {
			Requirements []string `json:"requirements"`
		} `json:"specifications"`
	}
	if err := decodeForm(values, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reqs := dst.Specifications.Requirements
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %v", reqs)
	}
	seen := map[string]bool{}
	for _, r := range reqs {
		seen[r] = true
	}
	if !seen["3 bedrooms"] || !seen["solar panels"] {
		t.Fatalf("unexpected requirements %v", reqs)
	}
}

func TestDecodeFormRepeatedPlainKey(t *testing.T) {
	values := url.Values{
		"skills": {"masonry", "carpentry"},
	}

	var dst struct {
		Skills []string `json:"skills"`
	}
	if err := decodeForm(values, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dst.Skills) != 2 || dst.Skills[0] != "masonry" || dst.Skills[1] != "carpentry" {
		t.Fatalf("unexpected skills %v", dst.Skills)
	}
}

func TestDecodeFormScalarNestedConflict(t *testing.T) {
	var dst map[string]any

	err := decodeForm(url.Values{"budget": {"100"}, "budget[min]": {"10"}}, &dst)
	if err == nil {
		t.Fatal("expected an error when a key is both scalar and nested")
	}
}

func TestSplitFormKey(t *testing.T) {
	cases := map[string][]string{
		"title":                           {"title"},
		"budget[min]":                     {"budget", "min"},
		"location[coordinates][lat]":      {"location", "coordinates", "lat"},
		"specifications[requirements][0]": {"specifications", "requirements"},
	}
	for key, want := range cases {
		got := splitFormKey(key)
		if len(got) != len(want) {
			t.Errorf("splitFormKey(%q) = %v, want %v", key, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("splitFormKey(%q) = %v, want %v", key, got, want)
				break
			}
		}
	}
}
