package converter

import (
	"adrd-care-system/internal/delivery/dto"
	"adrd-care-system/internal/domain/entity"
)

// DaysToSuggestions converts scanned days to the suggestions payload shape,
// preserving scan order and the upstream ordering of times.
func DaysToSuggestions(days []entity.DayAvailability) []dto.DaySuggestion {
	suggestions := make([]dto.DaySuggestion, len(days))
	for i, day := range days {
		suggestions[i] = dto.DaySuggestion{
			Date:  day.Date,
			Times: day.Times,
		}
	}
	return suggestions
}

// HistoryToTurns converts delivery-layer history to domain chat turns.
func HistoryToTurns(history []dto.HistoryTurn) []entity.ChatTurn {
	turns := make([]entity.ChatTurn, len(history))
	for i, turn := range history {
		turns[i] = entity.ChatTurn{
			Role:    turn.Role,
			Content: turn.Content,
		}
	}
	return turns
}
