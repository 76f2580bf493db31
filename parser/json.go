package parser

import "encoding/json"

type jsonSystem struct {
	Variables []string       `json:"variables"`
	Equations []jsonEquation `json:"equations"`
}

type jsonEquation struct {
	Line  int        `json:"line,omitempty"`
	Terms []jsonTerm `json:"terms"`
	Value float64    `json:"value"`
}

type jsonTerm struct {
	Coefficient float64 `json:"coefficient"`
	Variable    string  `json:"variable"`
}

func (s *System) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toJSON())
}

func (s *System) toJSON() *jsonSystem {
	js := &jsonSystem{
		Variables: s.Variables(),
		Equations: make([]jsonEquation, 0, len(s.Equations)),
	}
	for _, eq := range s.Equations {
		je := jsonEquation{
			Line:  eq.Pos.Line,
			Value: eq.Value,
			Terms: make([]jsonTerm, 0, len(eq.Terms)),
		}
		for _, t := range eq.Terms {
			je.Terms = append(je.Terms, jsonTerm{Coefficient: t.Coefficient, Variable: t.Name()})
		}
		js.Equations = append(js.Equations, je)
	}
	return js
}
