package domain

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// ScenarioID is assigned by the store. Stores may send it as a JSON string
// or number; it is kept as text either way.
type ScenarioID string

func (id *ScenarioID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.New("scenario id is null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ScenarioID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("scenario id %s is neither string nor number", data)
	}
	*id = ScenarioID(data)
	return nil
}

func (id ScenarioID) String() string {
	return string(id)
}

type ScenarioSummary struct {
	ID    ScenarioID `json:"id"`
	Title string     `json:"title"`
}

// Scenario is a named, persisted snapshot of inputs and results.
type Scenario struct {
	ID      ScenarioID `json:"id"`
	Title   string     `json:"title"`
	Inputs  InputState `json:"inputs"`
	Results ResultSet  `json:"results"`
}

// ScenarioDetail is what the store returns when a scenario is fetched by id.
// Pointers let a caller tell a missing half apart from a zero value.
type ScenarioDetail struct {
	Inputs  *InputState `json:"inputs"`
	Results *ResultSet  `json:"results"`
}

// CreateScenarioRequest is the POST body. Non-finite numbers go out as null.
type CreateScenarioRequest struct {
	Title   string      `json:"title"`
	Inputs  InputsWire  `json:"inputs"`
	Results ResultsWire `json:"results"`
}
