package report

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/teachlens/teachlens-pipeline/analysis"
)

func JSON(r analysis.EvaluationResult) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

func YAML(r analysis.EvaluationResult) ([]byte, error) {
	return yaml.Marshal(r)
}
