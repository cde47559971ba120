package openrouter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/agentstation/freerank/pkg/listings"
)

// ModelsResponse is the root object of the OpenRouter models endpoint.
type ModelsResponse struct {
	Data []Model `json:"data"`
}

// Model is the subset of an OpenRouter model entry this tool reads.
type Model struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ContextLength *int64  `json:"context_length"`
	Description   *string `json:"description"`
	Pricing       Pricing `json:"pricing"`
}

// Pricing maps a price kind (prompt, completion, request, ...) to its
// per-unit price. Values are usually decimal strings but may be numbers;
// numbers decode as json.Number so their literal text survives.
type Pricing map[string]any

// UnmarshalJSON decodes pricing keeping numeric literals as written.
func (p *Pricing) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*p = m
	return nil
}

// IsFree reports whether every price renders exactly as "0". A number
// written 0.0 renders as "0.0" and is not free, like the string "0.0".
// A model without any pricing entry counts as free.
func IsFree(pricing Pricing) bool {
	for _, v := range pricing {
		if fmt.Sprint(v) != "0" {
			return false
		}
	}
	return true
}

// ToSource converts a feed entry to a source listing.
func (m Model) ToSource() listings.Source {
	return listings.Source{
		ID:            m.ID,
		Name:          m.Name,
		ContextLength: m.ContextLength,
		Description:   m.Description,
	}
}

// FreeSources returns the free models of resp as source listings, in feed order.
func FreeSources(resp ModelsResponse) []listings.Source {
	sources := make([]listings.Source, 0, len(resp.Data))
	for _, m := range resp.Data {
		if IsFree(m.Pricing) {
			sources = append(sources, m.ToSource())
		}
	}
	return sources
}
