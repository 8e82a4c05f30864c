package engine

import (
	"fmt"
	"strings"

	"github.com/delvin02/decision-maker/internal/model"
)

// Flip answers a yes/no question with a uniform coin flip and returns the
// formatted verdict. The topic must be non-empty after trimming.
func (e *Engine) Flip(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("%w: topic must not be empty", model.ErrValidation)
	}
	if e.rnd.Intn(2) == 0 {
		return fmt.Sprintf("Yes, you should %s!", topic), nil
	}
	return fmt.Sprintf("No, you shouldn't %s.", topic), nil
}
