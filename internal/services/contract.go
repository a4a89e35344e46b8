package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/fanpulse/fanpulse/internal/model"
)

// contractValidator checks engine output against the enum sets declared on
// the output structs. A failure here is a programming error (the cascade
// produced a value outside its declared contract), not a user error.
var contractValidator = validator.New()

func (s *SummaryService) checkContract(sum *model.FanSummary) error {
	if err := contractValidator.Struct(sum); err != nil {
		s.log.Error().Err(err).Str("fanId", sum.FanID).Msg("summary violates output contract")
		if s.strict {
			panic(fmt.Sprintf("summary output contract violation: %v", err))
		}
		return fmt.Errorf("summary output contract violation: %w", err)
	}
	return nil
}
