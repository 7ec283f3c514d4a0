package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type PredictRequest struct {
	Skills           []string `json:"skills" validate:"max=200,dive,max=128"`
	AdditionalSkills []string `json:"additionalSkills" validate:"max=200,dive,max=128"`
	N                *int     `json:"n"`
}

func (r *PredictRequest) Validate() error {
	return validate.Struct(r)
}

// ValidationMessage turns the first validator failure into a client-facing message.
func ValidationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Sprintf("validation error: %s - %s=%s", fe.Namespace(), fe.Tag(), fe.Param())
	}
	return "validation error: invalid request"
}

type PartialMatchResponse struct {
	JobTitle      string   `json:"jobTitle"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

type PredictResponse struct {
	Results       []PartialMatchResponse `json:"results"`
	MatchedBadges []string               `json:"matchedBadges"`
	MatchedSkill  map[string][]string    `json:"matchedSkill"`
}
