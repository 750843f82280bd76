package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamPlacesIngest - стрим с пачками мест на сохранение
const StreamPlacesIngest = "stream:places:ingest"

// PlacesIngestEvent - пачка нормализованных мест из одного запроса
type PlacesIngestEvent struct {
	BatchID     uuid.UUID `json:"batch_id"`
	RequestedAt time.Time `json:"requested_at"`
	Places      []*Place  `json:"places"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
