package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var fieldLabels = map[string]string{
	"Titulo": "Nome",
	"Genero": "Categoria",
}

// Validate checks the required fields, the same ones a browser form would
// refuse to submit empty. Blank-only values count as empty; s itself is not
// modified. The error message is ready to show to the user.
func (s Submission) Validate() error {
	s.Titulo = strings.TrimSpace(s.Titulo)
	s.Genero = strings.TrimSpace(s.Genero)
	if err := validate.Struct(s); err != nil {
		return errors.New(FormatValidationError(err))
	}
	return nil
}

func FormatValidationError(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s é obrigatório", label))
		default:
			msgs = append(msgs, fmt.Sprintf("%s inválido", label))
		}
	}
	return strings.Join(msgs, "; ")
}
