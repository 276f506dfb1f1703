package repository

import (
	"time"

	"github.com/google/uuid"
)

// ContainerState represents a saved container row.
type ContainerState struct {
	ID        string
	Name      string
	Offset    int
	Bound     int
	Blob      []byte
	UpdatedAt time.Time
}

// ContainerID derives the stable row id for a named container.
func ContainerID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("container:"+name)).String()
}
