package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NegotiationOutcome names which branch of the negotiation produced the
// response for a turn.
type NegotiationOutcome string

const (
	OutcomeMissingFields   NegotiationOutcome = "missing_fields"
	OutcomeBooked          NegotiationOutcome = "booked"
	OutcomeSameDayOffered  NegotiationOutcome = "same_day_offered"
	OutcomeMultiDayOffered NegotiationOutcome = "multi_day_offered"
	OutcomeNoAvailability  NegotiationOutcome = "no_availability"
	OutcomeUpstreamFailure NegotiationOutcome = "upstream_failure"
)

// NegotiationLog is the audit trail entry for one negotiation turn.
type NegotiationLog struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  string             `gorm:"type:varchar(50);index" json:"doctor_id"`
	Date      string             `gorm:"type:varchar(10)" json:"date"`
	Outcome   NegotiationOutcome `gorm:"type:varchar(30);not null;index" json:"outcome"`
	Agent     string             `gorm:"type:varchar(50);not null" json:"agent"`
	Booked    bool               `gorm:"not null;default:false" json:"booked"`
	Metadata  JSON               `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time          `gorm:"autoCreateTime;index" json:"created_at"`
}

func (NegotiationLog) TableName() string {
	return "negotiation_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
