package agent

import (
	"encoding/json"
	"fmt"

	"github.com/slatehq/slate/pkg/formatting"
)

// envelope captures the wrapper shapes model responses arrive in.
// Some responses nest the payload under "output" or "result"; others
// return the analysis object directly.
type envelope struct {
	Output json.RawMessage `json:"output"`
	Result json.RawMessage `json:"result"`
}

// Normalize unwraps a model response into an Analysis. It prefers an
// "output" field, then "result", then treats the content as the analysis
// object itself. Markdown code fences around the JSON are tolerated.
// Returns ErrValidation when no interpretation yields a valid payload.
func Normalize(content string) (*Analysis, error) {
	env, err := formatting.Parse[envelope](content)
	if err == nil {
		if payload := firstPayload(env); payload != nil {
			var a Analysis
			if err := json.Unmarshal(payload, &a); err == nil {
				if err := validate(&a); err != nil {
					return nil, err
				}
				return &a, nil
			}
		}
	}

	a, err := formatting.Parse[Analysis](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := validate(&a); err != nil {
		return nil, err
	}

	return &a, nil
}

func firstPayload(env envelope) json.RawMessage {
	if len(env.Output) > 0 && string(env.Output) != "null" {
		return env.Output
	}
	if len(env.Result) > 0 && string(env.Result) != "null" {
		return env.Result
	}
	return nil
}

func validate(a *Analysis) error {
	if a.Title == "" && a.TotalScenes == 0 && len(a.Scenes) == 0 {
		return fmt.Errorf("%w: analysis payload is empty", ErrValidation)
	}
	return nil
}
