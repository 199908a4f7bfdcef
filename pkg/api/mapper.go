package api

import (
	"time"

	"portal-hq/chronicle/pkg/actions"
)

// RecordMapper converts between API representations and stored action
// records. The action payload passes through both directions untouched.
type RecordMapper struct {
	saveIntervalHours int
}

// NewRecordMapper creates a mapper that stamps responses with the given
// retention horizon.
func NewRecordMapper(saveIntervalHours int) *RecordMapper {
	return &RecordMapper{saveIntervalHours: saveIntervalHours}
}

// ToRecord builds a storable record from a create request. The record ID is
// assigned by the store on insert.
func (m *RecordMapper) ToRecord(userID string, req *CreateActionRequest) *actions.ActionRecord {
	createdAt := req.ActionCreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return &actions.ActionRecord{
		UserID:    userID,
		CreatedAt: createdAt.UTC(),
		Payload:   req.Action,
	}
}

// ToResponse converts one stored record to its API representation.
func (m *RecordMapper) ToResponse(record *actions.ActionRecord) ActionResponse {
	return ActionResponse{
		ActionCreatedAt: record.CreatedAt,
		SaveInterval:    m.saveIntervalHours,
		Action:          record.Payload,
	}
}

// ToListResponse converts a page of records plus the window-wide total into
// the list response shape.
func (m *RecordMapper) ToListResponse(records []*actions.ActionRecord, totalCount int64) *ActionsListResponse {
	list := make([]ActionResponse, 0, len(records))
	for _, record := range records {
		list = append(list, m.ToResponse(record))
	}

	return &ActionsListResponse{
		ActionsList: list,
		TotalCount:  totalCount,
	}
}
