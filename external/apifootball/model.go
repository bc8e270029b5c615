package apifootball

import (
	"fmt"
	"sort"
	"strings"
)

// envelope carries the fields every API-Football response shares.
// errors is an empty array on success and an object keyed by field otherwise.
type envelope struct {
	Errors  any    `json:"errors"`
	Results int    `json:"results"`
	Paging  paging `json:"paging"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

func (e envelope) providerErrors() map[string]string {
	out := make(map[string]string)
	switch v := e.Errors.(type) {
	case map[string]any:
		for key, value := range v {
			out[key] = fmt.Sprint(value)
		}
	case []any:
		for idx, value := range v {
			out[fmt.Sprintf("%d", idx)] = fmt.Sprint(value)
		}
	}
	return out
}

func formatProviderErrors(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+errs[key])
	}
	return strings.Join(parts, "; ")
}

type oddsEnvelope struct {
	envelope
	Response []oddsItem `json:"response"`
}

type oddsItem struct {
	League struct {
		ID     int64 `json:"id"`
		Season int   `json:"season"`
	} `json:"league"`
	Fixture struct {
		ID int64 `json:"id"`
	} `json:"fixture"`
	Update     string          `json:"update"`
	Bookmakers []bookmakerItem `json:"bookmakers"`
}

type bookmakerItem struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Bets []betItem `json:"bets"`
}

type betItem struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Values []valueItem `json:"values"`
}

// valueItem.Odd is a decimal string such as "1.85".
type valueItem struct {
	Value string `json:"value"`
	Odd   string `json:"odd"`
}

type fixturesEnvelope struct {
	envelope
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID        int64  `json:"id"`
		Date      string `json:"date"`
		Timestamp int64  `json:"timestamp"`
	} `json:"fixture"`
	League struct {
		ID     int64 `json:"id"`
		Season int   `json:"season"`
	} `json:"league"`
	Teams struct {
		Home teamItem `json:"home"`
		Away teamItem `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type teamItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
