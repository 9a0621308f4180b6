package scoring

import (
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const bankSchema = `{
  "type": "object",
  "required": ["assessments"],
  "properties": {
    "assessments": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["type", "categories", "questions"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "title": {"type": "string"},
          "categories": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string", "minLength": 1}
          },
          "questions": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["id", "text", "category"],
              "properties": {
                "id": {"type": "string", "minLength": 1},
                "text": {"type": "string", "minLength": 1},
                "category": {"type": "string", "minLength": 1}
              }
            }
          }
        }
      }
    }
  }
}`

type bankFile struct {
	Assessments []QuestionSet `yaml:"assessments"`
}

// LoadBankFile 从 YAML 文件加载题库
func LoadBankFile(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data)
}

// ParseBank 先做结构校验，再交给 NewQuestionBank 检查题号与维度
func ParseBank(data []byte) (*QuestionBank, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(bankSchema),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("validate question bank: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid question bank: %s", strings.Join(msgs, "; "))
	}

	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	return NewQuestionBank(f.Assessments...)
}
