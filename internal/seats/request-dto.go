package seats

// BulkSeatActionRequest names the seats a workflow action applies to.
// Ids that do not belong to the event are ignored, not rejected.
type BulkSeatActionRequest struct {
	SeatIDs []string `json:"seat_ids" binding:"required,min=1"`
}
