package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ClientID         ID
	InsightID        ID
	RecommendationID ID
	AnalysisID       ID
)

// String conversions for domain IDs
func (id ClientID) String() string         { return ID(id).String() }
func (id InsightID) String() string        { return ID(id).String() }
func (id RecommendationID) String() string { return ID(id).String() }
func (id AnalysisID) String() string       { return ID(id).String() }

// NewInsightID creates a unique identifier for a generated insight
func NewInsightID() InsightID { return InsightID(NewID()) }

// NewRecommendationID creates a unique identifier for a generated recommendation
func NewRecommendationID() RecommendationID { return RecommendationID(NewID()) }

// NewAnalysisID creates a unique identifier for an analysis run
func NewAnalysisID() AnalysisID { return AnalysisID(NewID()) }

// ParseClientID parses a string into ClientID
func ParseClientID(s string) (ClientID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("client ID cannot be empty")
	}
	return ClientID(s), nil
}
