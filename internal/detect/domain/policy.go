package domain

// Policy collects the tunable thresholds of the detection pipeline in one place.
// Channel scans cast a wide net and rely on the confidence floor to cut noise;
// DMs are mostly chit-chat so they get a higher floor and a longer minimum length.
type Policy struct {
	ChannelFloor  float64
	DMFloor       float64
	RealtimeFloor float64

	FallbackConfidence float64
	DedupSimilarity    float64

	MinChannelMessageLen int
	MinDMMessageLen      int

	ChannelFetchLimit int
	DMFetchLimit      int
}

// DefaultPolicy returns the stock thresholds
func DefaultPolicy() Policy {
	return Policy{
		ChannelFloor:         0.4,
		DMFloor:              0.7,
		RealtimeFloor:        0.7,
		FallbackConfidence:   0.65,
		DedupSimilarity:      0.8,
		MinChannelMessageLen: 8,
		MinDMMessageLen:      15,
		ChannelFetchLimit:    100,
		DMFetchLimit:         60,
	}
}

// FloorFor returns the confidence floor for a source kind
func (p Policy) FloorFor(kind SourceKind) float64 {
	if kind == SourceKindDM {
		return p.DMFloor
	}
	return p.ChannelFloor
}

// MinLenFor returns the minimum message length worth classifying for a source kind
func (p Policy) MinLenFor(kind SourceKind) int {
	if kind == SourceKindDM {
		return p.MinDMMessageLen
	}
	return p.MinChannelMessageLen
}

// FetchLimitFor returns the per-source history budget for a source kind
func (p Policy) FetchLimitFor(kind SourceKind) int {
	if kind == SourceKindDM {
		return p.DMFetchLimit
	}
	return p.ChannelFetchLimit
}
