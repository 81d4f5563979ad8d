package mapper

import (
	"planwise-api/core/timeslot"
	"planwise-api/modules/availability/dto"
	"planwise-api/modules/availability/entity"

	"github.com/google/uuid"
)

func ToTimeSlots(rows []entity.AvailabilitySlot) []timeslot.TimeSlot {
	slots := make([]timeslot.TimeSlot, len(rows))
	for i, row := range rows {
		slots[i] = timeslot.TimeSlot{Start: row.StartTime, End: row.EndTime}
	}
	return slots
}

func ToEntities(userID uuid.UUID, slots []timeslot.TimeSlot) []entity.AvailabilitySlot {
	rows := make([]entity.AvailabilitySlot, len(slots))
	for i, s := range slots {
		rows[i] = entity.AvailabilitySlot{UserID: userID, StartTime: s.Start, EndTime: s.End}
	}
	return rows
}

func ToSlotResponses(slots []timeslot.TimeSlot) []dto.SlotResponse {
	resp := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		resp[i] = dto.SlotResponse{StartTime: s.Start, EndTime: s.End}
	}
	return resp
}

func ToAvailabilityResponse(userID uuid.UUID, slots []timeslot.TimeSlot) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		UserID: userID,
		Slots:  ToSlotResponses(slots),
	}
}
