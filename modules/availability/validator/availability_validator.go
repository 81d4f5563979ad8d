package validator

import (
	"fmt"
	"time"

	"planwise-api/core/timeslot"
	"planwise-api/core/validation"
	"planwise-api/modules/availability/dto"
)

const maxSlotsPerRequest = 500

func ValidateSubmitRequest(req *dto.SubmitAvailabilityRequest) *validation.Result {
	result := &validation.Result{}
	result.Required("user_name", req.UserName)
	result.Required("group_name", req.GroupName)
	result.Required("password", req.Password)
	if len(req.Slots) == 0 {
		result.Add("slots", "at least one slot is required")
	}
	if len(req.Slots) > maxSlotsPerRequest {
		result.Add("slots", fmt.Sprintf("at most %d slots per request", maxSlotsPerRequest))
	}
	return result
}

// ParseSlots converts request slots into time slots, reading zone-less
// timestamps in loc. Every slot must have start_time before end_time.
func ParseSlots(slots []dto.SlotRequest, loc *time.Location) ([]timeslot.TimeSlot, *validation.Result) {
	result := &validation.Result{}
	parsed := make([]timeslot.TimeSlot, 0, len(slots))

	for i, s := range slots {
		start, err := timeslot.ParseTimestamp(s.StartTime, loc)
		if err != nil {
			result.Add(fmt.Sprintf("slots[%d].start_time", i), err.Error())
			continue
		}
		end, err := timeslot.ParseTimestamp(s.EndTime, loc)
		if err != nil {
			result.Add(fmt.Sprintf("slots[%d].end_time", i), err.Error())
			continue
		}

		slot := timeslot.TimeSlot{Start: start, End: end}
		if !slot.Valid() {
			result.Add(fmt.Sprintf("slots[%d]", i), "start_time must be before end_time")
			continue
		}
		parsed = append(parsed, slot)
	}

	return parsed, result
}
